package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/WireCut/internal/model"
)

var (
	sideOptions     = []string{model.FromTop.String(), model.FromBottom.String()}
	frameOptions    = []string{model.FrameFullStack.String(), model.FrameSinglePlate.String()}
	strategyOptions = []string{model.WidthAverage.String(), model.EdgeSampling.String()}
)

// jobForm holds the parameter inputs of the Job tab.
type jobForm struct {
	limits model.Limits

	name        *widget.Entry
	plates      *widget.Entry
	height      *widget.Entry
	width       *widget.Entry
	angle       *widget.Entry
	angleSlider *widget.Slider
	offset      *widget.Entry
	side        *widget.Select
	minHeight   *widget.Entry
	maxHeight   *widget.Entry
	frame       *widget.Select
	strategy    *widget.Select
	steps       *widget.Entry
	warnings    *widget.Label
}

func newJobForm(limits model.Limits) *jobForm {
	f := &jobForm{
		limits:    limits,
		name:      widget.NewEntry(),
		plates:    widget.NewEntry(),
		height:    widget.NewEntry(),
		width:     widget.NewEntry(),
		angle:     widget.NewEntry(),
		offset:    widget.NewEntry(),
		side:      widget.NewSelect(sideOptions, nil),
		minHeight: widget.NewEntry(),
		maxHeight: widget.NewEntry(),
		frame:     widget.NewSelect(frameOptions, nil),
		strategy:  widget.NewSelect(strategyOptions, nil),
		steps:     widget.NewEntry(),
		warnings:  widget.NewLabel(""),
	}
	f.warnings.Importance = widget.WarningImportance
	f.warnings.Wrapping = fyne.TextWrapWord

	f.angleSlider = widget.NewSlider(limits.MinAngle, limits.MaxAngle)
	f.angleSlider.Step = limits.AngleStep
	f.angleSlider.OnChanged = func(v float64) {
		f.angle.SetText(strconv.FormatFloat(limits.SnapAngle(v), 'f', 2, 64))
	}
	return f
}

// items returns the form rows in display order.
func (f *jobForm) items() []*widget.FormItem {
	l := f.limits
	return []*widget.FormItem{
		widget.NewFormItem("Job Name", f.name),
		widget.NewFormItem(fmt.Sprintf("Number of Plates (%d-%d)", l.MinPlates, l.MaxPlates), f.plates),
		widget.NewFormItem("Plate Height (in)", f.height),
		widget.NewFormItem("Plate Width (in)", f.width),
		widget.NewFormItem("Wire Angle (deg)", f.angle),
		widget.NewFormItem("", f.angleSlider),
		widget.NewFormItem("Wire Offset (in)", f.offset),
		widget.NewFormItem("Offset Measured From", f.side),
		widget.NewFormItem("Min Acceptable Height (in)", f.minHeight),
		widget.NewFormItem("Max Acceptable Height (in)", f.maxHeight),
		widget.NewFormItem("Coordinate Frame", f.frame),
		widget.NewFormItem("Height Strategy", f.strategy),
		widget.NewFormItem("Animation Steps", f.steps),
	}
}

// load shows a job in the form.
func (f *jobForm) load(job model.Job) {
	f.name.SetText(job.Name)
	f.plates.SetText(strconv.Itoa(job.Stack.PlateCount))
	f.height.SetText(formatFloat(job.Stack.PlateHeight))
	f.width.SetText(formatFloat(job.Stack.PlateWidth))
	f.angle.SetText(formatFloat(job.Wire.AngleDegrees))
	f.angleSlider.Value = job.Wire.AngleDegrees
	f.angleSlider.Refresh()
	f.offset.SetText(formatFloat(job.Wire.VerticalOffset))
	f.side.SetSelected(job.Wire.OriginSide.String())
	f.minHeight.SetText(formatFloat(job.Tolerance.MinHeight))
	f.maxHeight.SetText(formatFloat(job.Tolerance.MaxHeight))
	f.frame.SetSelected(job.Frame.String())
	f.strategy.SetSelected(job.Strategy.String())
	f.steps.SetText(strconv.Itoa(job.SweepSteps))
	f.showWarnings(job)
}

// read parses the form over base, which supplies the ID. The first
// unparseable field is reported by its label.
func (f *jobForm) read(base model.Job) (model.Job, error) {
	job := base
	job.Name = strings.TrimSpace(f.name.Text)

	ints := []struct {
		label string
		entry *widget.Entry
		dst   *int
	}{
		{"number of plates", f.plates, &job.Stack.PlateCount},
		{"animation steps", f.steps, &job.SweepSteps},
	}
	for _, in := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(in.entry.Text))
		if err != nil {
			return base, fmt.Errorf("%s: %q is not a whole number", in.label, in.entry.Text)
		}
		*in.dst = v
	}

	floats := []struct {
		label string
		entry *widget.Entry
		dst   *float64
	}{
		{"plate height", f.height, &job.Stack.PlateHeight},
		{"plate width", f.width, &job.Stack.PlateWidth},
		{"wire angle", f.angle, &job.Wire.AngleDegrees},
		{"wire offset", f.offset, &job.Wire.VerticalOffset},
		{"min height", f.minHeight, &job.Tolerance.MinHeight},
		{"max height", f.maxHeight, &job.Tolerance.MaxHeight},
	}
	for _, in := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(in.entry.Text), 64)
		if err != nil {
			return base, fmt.Errorf("%s: %q is not a number", in.label, in.entry.Text)
		}
		*in.dst = v
	}

	var err error
	if job.Wire.OriginSide, err = model.ParseOriginSide(f.side.Selected); err != nil {
		return base, err
	}
	if job.Frame, err = model.ParseFrame(f.frame.Selected); err != nil {
		return base, err
	}
	if job.Strategy, err = model.ParseStrategy(f.strategy.Selected); err != nil {
		return base, err
	}
	return job, nil
}

// showWarnings lists the fields outside the form limits.
func (f *jobForm) showWarnings(job model.Job) {
	f.warnings.SetText(strings.Join(f.limits.Check(job), "\n"))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
