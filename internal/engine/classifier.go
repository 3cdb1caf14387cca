package engine

import (
	"math"

	"github.com/piwi3910/WireCut/internal/model"
)

// Classify marks each plate against the window (both bounds inclusive)
// and summarises the run. The input slice is not modified.
func Classify(plates []model.PlateResult, window model.ToleranceWindow) ([]model.PlateResult, model.Summary) {
	out := make([]model.PlateResult, len(plates))
	summary := model.Summary{
		Count:          len(plates),
		FailingIndices: []int{},
	}
	if len(plates) == 0 {
		return out, summary
	}

	summary.MinHeight = math.Inf(1)
	summary.MaxHeight = math.Inf(-1)
	var total float64

	for i, p := range plates {
		p.Passed = window.Contains(p.FinalHeight)
		out[i] = p

		if p.Passed {
			summary.Passed++
		} else {
			summary.Failed++
			summary.FailingIndices = append(summary.FailingIndices, p.Index)
		}
		summary.MinHeight = math.Min(summary.MinHeight, p.FinalHeight)
		summary.MaxHeight = math.Max(summary.MaxHeight, p.FinalHeight)
		total += p.FinalHeight
	}
	summary.MeanHeight = total / float64(len(plates))

	return out, summary
}
