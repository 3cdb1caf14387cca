package gcode

import "fmt"

// StackBounds is the side-view rectangle occupied by the plates before
// cutting, in inches.
type StackBounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Collision is a non-cutting move that passes through the stack.
type Collision struct {
	MoveIndex int
	Move      GCodeMove
}

// CheckRapidCollisions returns every rapid or wire-off feed move whose
// path enters the interior of the stack. Touching the boundary is allowed
// so the approach may run down the leading face.
func CheckRapidCollisions(moves []GCodeMove, bounds StackBounds) []Collision {
	var collisions []Collision
	for i, m := range moves {
		if m.Type == MoveCut {
			continue
		}
		if segmentEntersBox(m.FromX, m.FromY, m.ToX, m.ToY, bounds) {
			collisions = append(collisions, Collision{MoveIndex: i, Move: m})
		}
	}
	return collisions
}

// segmentEntersBox clips the segment against the box (Liang-Barsky) and
// reports whether a piece of positive length lies strictly inside.
func segmentEntersBox(x0, y0, x1, y1 float64, b StackBounds) bool {
	const eps = 1e-9
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q > eps
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}

	if !clip(-dx, x0-b.MinX) || !clip(dx, b.MaxX-x0) ||
		!clip(-dy, y0-b.MinY) || !clip(dy, b.MaxY-y0) {
		return false
	}
	return t1-t0 > eps
}

// FormatCollisionWarnings produces human-readable warning messages.
func FormatCollisionWarnings(collisions []Collision) []string {
	var warnings []string
	for _, c := range collisions {
		kind := "rapid"
		if c.Move.Type == MoveFeed {
			kind = "wire-off feed"
		}
		warnings = append(warnings, fmt.Sprintf(
			"Move %d: %s from (%.3f, %.3f) to (%.3f, %.3f) passes through the stack",
			c.MoveIndex+1, kind, c.Move.FromX, c.Move.FromY, c.Move.ToX, c.Move.ToY,
		))
	}
	return warnings
}
