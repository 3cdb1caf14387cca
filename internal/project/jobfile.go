package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/piwi3910/WireCut/internal/model"
)

// Job files are INI documents:
//
//	name = Batch 12
//
//	[stack]
//	plate_count  = 144
//	plate_height = 5.5
//	plate_width  = 1.5
//
//	[wire]
//	angle_degrees   = 0.25
//	vertical_offset = 0.02
//	origin_side     = top
//
//	[tolerance]
//	min_height = 5.48
//	max_height = 5.52
//
//	[model]
//	frame       = full-stack
//	strategy    = width-average
//	sweep_steps = 101
//
// Missing keys take the value of base.

// LoadJobFile reads a job from an INI file, filling gaps from base.
func LoadJobFile(path string, base model.Job) (model.Job, error) {
	file, err := ini.Load(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to read job file: %w", err)
	}
	return jobFromINI(file, base)
}

// ParseJob reads a job from INI text, filling gaps from base.
func ParseJob(data []byte, base model.Job) (model.Job, error) {
	file, err := ini.Load(data)
	if err != nil {
		return model.Job{}, fmt.Errorf("failed to parse job: %w", err)
	}
	return jobFromINI(file, base)
}

func jobFromINI(file *ini.File, base model.Job) (model.Job, error) {
	job := base

	root := file.Section(ini.DefaultSection)
	job.ID = root.Key("id").MustString(base.ID)
	job.Name = root.Key("name").MustString(base.Name)

	stack := file.Section("stack")
	job.Stack.PlateCount = stack.Key("plate_count").MustInt(base.Stack.PlateCount)
	job.Stack.PlateHeight = stack.Key("plate_height").MustFloat64(base.Stack.PlateHeight)
	job.Stack.PlateWidth = stack.Key("plate_width").MustFloat64(base.Stack.PlateWidth)

	wire := file.Section("wire")
	job.Wire.AngleDegrees = wire.Key("angle_degrees").MustFloat64(base.Wire.AngleDegrees)
	job.Wire.VerticalOffset = wire.Key("vertical_offset").MustFloat64(base.Wire.VerticalOffset)
	if wire.HasKey("origin_side") {
		side, err := model.ParseOriginSide(wire.Key("origin_side").String())
		if err != nil {
			return model.Job{}, fmt.Errorf("invalid [wire] origin_side: %w", err)
		}
		job.Wire.OriginSide = side
	}

	tol := file.Section("tolerance")
	job.Tolerance.MinHeight = tol.Key("min_height").MustFloat64(base.Tolerance.MinHeight)
	job.Tolerance.MaxHeight = tol.Key("max_height").MustFloat64(base.Tolerance.MaxHeight)

	m := file.Section("model")
	if m.HasKey("frame") {
		frame, err := model.ParseFrame(m.Key("frame").String())
		if err != nil {
			return model.Job{}, fmt.Errorf("invalid [model] frame: %w", err)
		}
		job.Frame = frame
	}
	if m.HasKey("strategy") {
		strategy, err := model.ParseStrategy(m.Key("strategy").String())
		if err != nil {
			return model.Job{}, fmt.Errorf("invalid [model] strategy: %w", err)
		}
		job.Strategy = strategy
	}
	job.SweepSteps = m.Key("sweep_steps").MustInt(base.SweepSteps)

	return job, nil
}

// SaveJobFile writes a job as INI, creating parent directories.
func SaveJobFile(path string, job model.Job) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create job directory: %w", err)
	}
	if err := jobToINI(job).SaveTo(path); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}
	return nil
}

func jobToINI(job model.Job) *ini.File {
	file := ini.Empty()
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

	root := file.Section(ini.DefaultSection)
	if job.ID != "" {
		root.Key("id").SetValue(job.ID)
	}
	root.Key("name").SetValue(job.Name)

	stack := file.Section("stack")
	stack.Key("plate_count").SetValue(strconv.Itoa(job.Stack.PlateCount))
	stack.Key("plate_height").SetValue(f(job.Stack.PlateHeight))
	stack.Key("plate_width").SetValue(f(job.Stack.PlateWidth))

	wire := file.Section("wire")
	wire.Key("angle_degrees").SetValue(f(job.Wire.AngleDegrees))
	wire.Key("vertical_offset").SetValue(f(job.Wire.VerticalOffset))
	wire.Key("origin_side").SetValue(job.Wire.OriginSide.String())

	tol := file.Section("tolerance")
	tol.Key("min_height").SetValue(f(job.Tolerance.MinHeight))
	tol.Key("max_height").SetValue(f(job.Tolerance.MaxHeight))

	m := file.Section("model")
	m.Key("frame").SetValue(job.Frame.String())
	m.Key("strategy").SetValue(job.Strategy.String())
	m.Key("sweep_steps").SetValue(strconv.Itoa(job.SweepSteps))

	return file
}
