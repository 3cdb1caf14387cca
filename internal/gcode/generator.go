// Package gcode turns a wire sweep into controller G-code and reads
// generated programs back for inspection.
package gcode

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/model"
)

// Defaults for the motion outside the stack, in inches.
const (
	DefaultClearance = 0.5
	DefaultApproach  = 0.25
	DefaultDwell     = 0.5 // seconds, after the wire is switched on
)

// Generator produces the wire path for a job. X runs along the stack and
// Y is the wire elevation above the plate bottom face, both in inches.
type Generator struct {
	FeedRate  float64 // in/min
	Clearance float64
	Approach  float64
	profile   model.GCodeProfile
}

// New returns a generator for the named profile. Unknown names fall back
// to the Generic profile.
func New(profileName string, feedRate float64) *Generator {
	return NewWithProfile(model.GetProfile(profileName), feedRate)
}

// NewWithProfile returns a generator for an explicit profile, such as a
// user-defined one.
func NewWithProfile(profile model.GCodeProfile, feedRate float64) *Generator {
	return &Generator{
		FeedRate:  feedRate,
		Clearance: DefaultClearance,
		Approach:  DefaultApproach,
		profile:   profile,
	}
}

// Profile returns the profile in use.
func (g *Generator) Profile() model.GCodeProfile { return g.profile }

// Generate builds the program for a job: approach from the leading face,
// one cutting move per sweep frame and an exit past the trailing face.
func (g *Generator) Generate(job model.Job) (string, error) {
	if !(g.FeedRate > 0) {
		return "", fmt.Errorf("feed rate %g must be positive", g.FeedRate)
	}
	sweep, err := engine.RunSweep(job)
	if err != nil {
		return "", err
	}
	line, err := engine.NewWireLine(job.Wire)
	if err != nil {
		return "", err
	}

	h := job.Stack.PlateHeight
	span := sweep.Span()
	entry := line.Point(-g.Approach, h)
	exit := line.Point(span+g.Approach, h)
	clearY := math.Max(h, math.Max(entry.Y, exit.Y)) + g.Clearance

	var b strings.Builder
	g.writeHeader(&b, job, sweep.Len())

	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.RapidMove, g.format(entry.X), g.format(clearY)))
	b.WriteString(fmt.Sprintf("%s Y%s\n", g.profile.RapidMove, g.format(entry.Y)))
	if g.profile.WireOn != "" {
		b.WriteString(g.profile.WireOn + "\n")
	}
	if g.profile.DwellCode != "" {
		b.WriteString(fmt.Sprintf(g.profile.DwellCode+"\n", DefaultDwell))
	}

	b.WriteString(g.comment("Cut"))
	first := true
	for _, frame := range sweep.All() {
		p := frame.Wire[1]
		if first {
			b.WriteString(fmt.Sprintf("%s X%s Y%s %s\n", g.profile.FeedMove, g.format(p.X), g.format(p.Y), g.feed()))
			first = false
			continue
		}
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.FeedMove, g.format(p.X), g.format(p.Y)))
	}
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.FeedMove, g.format(exit.X), g.format(exit.Y)))

	if g.profile.WireOff != "" {
		b.WriteString(g.profile.WireOff + "\n")
	}
	b.WriteString(fmt.Sprintf("%s Y%s\n", g.profile.RapidMove, g.format(clearY)))
	g.writeFooter(&b, clearY)

	return b.String(), nil
}

func (g *Generator) writeHeader(b *strings.Builder, job model.Job, frames int) {
	p := g.profile

	name := job.Name
	if name == "" {
		name = "untitled"
	}
	b.WriteString(g.comment(fmt.Sprintf("WireCut wire path: %s", name)))
	b.WriteString(g.comment(fmt.Sprintf("Stack: %d plates, %.3f x %.3f in", job.Stack.PlateCount, job.Stack.PlateHeight, job.Stack.PlateWidth)))
	b.WriteString(g.comment(fmt.Sprintf("Wire: %.3f deg, offset %.4f in from %s", job.Wire.AngleDegrees, job.Wire.VerticalOffset, job.Wire.OriginSide)))
	b.WriteString(g.comment(fmt.Sprintf("Frame: %s, %d sweep steps", job.Frame, frames)))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.1f in/min", g.FeedRate)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	if p.UnitsCode != "" {
		b.WriteString(p.UnitsCode + "\n")
	}
	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder, clearY float64) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range g.profile.EndCode {
		b.WriteString(strings.ReplaceAll(code, "[Clear]", g.format(clearY)) + "\n")
	}
}

func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	s := fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
	if s == "-"+fmt.Sprintf("%.*f", g.profile.DecimalPlaces, 0.0) {
		return s[1:]
	}
	return s
}

func (g *Generator) feed() string {
	return fmt.Sprintf(g.profile.FeedFormat, g.FeedRate)
}

// SaveProgram writes a generated program to disk.
func SaveProgram(path, code string) error {
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write g-code: %w", err)
	}
	return nil
}
