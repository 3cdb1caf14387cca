package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBounds = StackBounds{MinX: 0, MaxX: 10, MinY: 0, MaxY: 5}

func TestSegmentEntersBox(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           bool
	}{
		{"above", -1, 6, 11, 6, false},
		{"along top face", 0, 5, 10, 5, false},
		{"down leading face", 0, 6, 0, 2, false},
		{"outside left", -1, 0, -1, 5, false},
		{"corner touch", -1, 4, 1, 6, false},
		{"through body", -1, 2, 11, 2, true},
		{"diagonal in", -1, 6, 2, 3, true},
		{"fully inside", 2, 2, 3, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, segmentEntersBox(tt.x0, tt.y0, tt.x1, tt.y1, testBounds))
		})
	}
}

func TestCheckRapidCollisions_IgnoresCuts(t *testing.T) {
	moves := []GCodeMove{
		{Type: MoveRapid, FromX: -1, FromY: 6, ToX: -1, ToY: 3},
		{Type: MoveCut, FromX: -1, FromY: 3, ToX: 11, ToY: 3},
		{Type: MoveRapid, FromX: 11, FromY: 3, ToX: 5, ToY: 3},
		{Type: MoveFeed, FromX: 5, FromY: 3, ToX: 5, ToY: 8},
	}

	collisions := CheckRapidCollisions(moves, testBounds)
	require.Len(t, collisions, 2)
	assert.Equal(t, 2, collisions[0].MoveIndex)
	assert.Equal(t, 3, collisions[1].MoveIndex)

	warnings := FormatCollisionWarnings(collisions)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "Move 3: rapid")
	assert.Contains(t, warnings[1], "wire-off feed")
}
