package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the kind of wire carriage movement.
type MoveType int

const (
	MoveRapid MoveType = iota // G0: positioning, wire off
	MoveFeed                  // G1 with the wire off
	MoveCut                   // G1 with the wire on
)

// GCodeMove represents a single parsed movement from GCode.
type GCodeMove struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	ToX      float64
	ToY      float64
	FeedRate float64
}

// Length returns the XY distance travelled.
func (m GCodeMove) Length() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var coordRe = regexp.MustCompile(`([XYF])(-?\d*\.?\d+)`)

// ParseGCode parses a GCode string into a slice of structured moves.
// It tracks absolute position, feed rate and whether the wire is on
// (M3 on, M5 off).
func ParseGCode(code string) []GCodeMove {
	var moves []GCodeMove

	curX, curY := 0.0, 0.0
	curFeed := 0.0
	wireOn := false

	for _, line := range strings.Split(code, "\n") {
		line = stripComment(line)
		if line == "" {
			continue
		}
		upper := strings.ToUpper(line)
		word := strings.Fields(upper)[0]

		switch word {
		case "M3", "M03":
			wireOn = true
			continue
		case "M5", "M05":
			wireOn = false
			continue
		}

		isRapid := word == "G0" || word == "G00"
		isFeed := word == "G1" || word == "G01"
		if !isRapid && !isFeed {
			continue
		}

		newX, newY, newFeed := curX, curY, curFeed
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "F":
				newFeed = val
			}
		}

		moveType := MoveRapid
		switch {
		case isFeed && wireOn:
			moveType = MoveCut
		case isFeed:
			moveType = MoveFeed
		}

		moves = append(moves, GCodeMove{
			Type:     moveType,
			FromX:    curX,
			FromY:    curY,
			ToX:      newX,
			ToY:      newY,
			FeedRate: newFeed,
		})
		curX, curY, curFeed = newX, newY, newFeed
	}

	return moves
}

// stripComment removes semicolon and parenthetical comments.
func stripComment(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	for {
		start := strings.Index(line, "(")
		if start < 0 {
			break
		}
		end := strings.Index(line[start:], ")")
		if end < 0 {
			line = line[:start]
			break
		}
		line = line[:start] + line[start+end+1:]
	}
	return strings.TrimSpace(line)
}

// PathStats summarises a parsed program.
type PathStats struct {
	CutLength   float64 // inches with the wire on
	RapidLength float64
	CutMinutes  float64 // at each move's programmed feed
}

// Stats totals the move lengths and the cutting time.
func Stats(moves []GCodeMove) PathStats {
	var s PathStats
	for _, m := range moves {
		l := m.Length()
		switch m.Type {
		case MoveCut:
			s.CutLength += l
			if m.FeedRate > 0 {
				s.CutMinutes += l / m.FeedRate
			}
		case MoveRapid:
			s.RapidLength += l
		}
	}
	return s
}
