// Package cli implements the wirecut command line.
package cli

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/WireCut/internal/model"
	"github.com/piwi3910/WireCut/internal/project"
)

// rootOptions carries the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	jobPath    string
	logLevel   string
	logJSON    bool

	name       string
	plates     int
	height     float64
	width      float64
	angle      float64
	offset     float64
	side       string
	minHeight  float64
	maxHeight  float64
	frame      string
	strategy   string
	sweepSteps int
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "wirecut",
		Short: "Wire cut plate stack simulator",
		Long: `Simulate a straight cutting wire passing through a row of identical
plates and check every plate's final height against a tolerance window.

Job parameters come from, in increasing priority: built-in defaults, the
application config (~/.wirecut/config.json), an INI job file (--job) and
the command line flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd.ErrOrStderr(), opts.logLevel, opts.logJSON)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "application config file")
	f.StringVar(&opts.jobPath, "job", "", "INI job file")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.BoolVar(&opts.logJSON, "log-json", false, "log as JSON")

	f.StringVar(&opts.name, "name", "", "job name")
	f.IntVar(&opts.plates, "plates", 0, "number of plates")
	f.Float64Var(&opts.height, "height", 0, "plate height (in)")
	f.Float64Var(&opts.width, "width", 0, "plate width along the wire (in)")
	f.Float64Var(&opts.angle, "angle", 0, "wire angle (degrees)")
	f.Float64Var(&opts.offset, "offset", 0, "wire offset from the origin face (in)")
	f.StringVar(&opts.side, "side", "", "origin face: top or bottom")
	f.Float64Var(&opts.minHeight, "min", 0, "minimum acceptable height (in)")
	f.Float64Var(&opts.maxHeight, "max", 0, "maximum acceptable height (in)")
	f.StringVar(&opts.frame, "frame", "", "coordinate frame: full-stack or single-plate")
	f.StringVar(&opts.strategy, "strategy", "", "height strategy: width-average or edge-sampling")
	f.IntVar(&opts.sweepSteps, "steps", 0, "sweep frames")

	cmd.AddCommand(
		newSimulateCmd(opts),
		newSweepCmd(opts),
		newExportCmd(opts),
		newCompareCmd(opts),
		newGCodeCmd(opts),
		newBatchCmd(opts),
		newServeCmd(opts),
		newBackupCmd(opts),
		newRestoreCmd(opts),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(w io.Writer, level string, asJSON bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	log.SetLevel(lvl)
	log.SetOutput(w)
	if asJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// loadConfig reads the application config; a missing file gives defaults.
func (o *rootOptions) loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to load config %s: %w", o.configPath, err)
	}
	return cfg, nil
}

// baseJob layers the config and the job file over the defaults.
func (o *rootOptions) baseJob(cfg model.AppConfig) (model.Job, error) {
	job := model.NewJob("Untitled")
	cfg.ApplyToJob(&job)

	if o.jobPath != "" {
		loaded, err := project.LoadJobFile(o.jobPath, job)
		if err != nil {
			return model.Job{}, err
		}
		job = loaded
		log.WithField("file", o.jobPath).Debug("job file loaded")
	}
	return job, nil
}

// applyFlags overrides job fields whose flags were set explicitly.
func (o *rootOptions) applyFlags(cmd *cobra.Command, job *model.Job) error {
	changed := func(name string) bool { return cmd.Flags().Changed(name) }

	if changed("name") {
		job.Name = o.name
	}
	if changed("plates") {
		job.Stack.PlateCount = o.plates
	}
	if changed("height") {
		job.Stack.PlateHeight = o.height
	}
	if changed("width") {
		job.Stack.PlateWidth = o.width
	}
	if changed("angle") {
		job.Wire.AngleDegrees = o.angle
	}
	if changed("offset") {
		job.Wire.VerticalOffset = o.offset
	}
	if changed("side") {
		side, err := model.ParseOriginSide(o.side)
		if err != nil {
			return fmt.Errorf("invalid --side: %w", err)
		}
		job.Wire.OriginSide = side
	}
	if changed("min") {
		job.Tolerance.MinHeight = o.minHeight
	}
	if changed("max") {
		job.Tolerance.MaxHeight = o.maxHeight
	}
	if changed("frame") {
		frame, err := model.ParseFrame(o.frame)
		if err != nil {
			return fmt.Errorf("invalid --frame: %w", err)
		}
		job.Frame = frame
	}
	if changed("strategy") {
		strategy, err := model.ParseStrategy(o.strategy)
		if err != nil {
			return fmt.Errorf("invalid --strategy: %w", err)
		}
		job.Strategy = strategy
	}
	if changed("steps") {
		job.SweepSteps = o.sweepSteps
	}
	return nil
}

// resolveJob returns the job a command should run.
func (o *rootOptions) resolveJob(cmd *cobra.Command) (model.Job, model.AppConfig, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return model.Job{}, model.AppConfig{}, err
	}
	job, err := o.baseJob(cfg)
	if err != nil {
		return model.Job{}, model.AppConfig{}, err
	}
	if err := o.applyFlags(cmd, &job); err != nil {
		return model.Job{}, model.AppConfig{}, err
	}

	for _, msg := range model.DefaultLimits().Check(job) {
		log.WithField("job", job.ID).Warn(msg)
	}
	return job, cfg, nil
}
