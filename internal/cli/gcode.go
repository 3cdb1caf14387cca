package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/WireCut/internal/gcode"
	"github.com/piwi3910/WireCut/internal/model"
	"github.com/piwi3910/WireCut/internal/project"
)

func newGCodeCmd(opts *rootOptions) *cobra.Command {
	var (
		profileName  string
		profilesPath string
		feedRate     float64
		outPath      string
	)

	cmd := &cobra.Command{
		Use:   "gcode",
		Short: "Generate the wire path as G-code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, cfg, err := opts.resolveJob(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("profile") {
				profileName = cfg.DefaultGCodeProfile
			}
			if !cmd.Flags().Changed("feed") {
				feedRate = cfg.FeedRate
			}

			custom, err := project.LoadCustomProfiles(profilesPath)
			if err != nil {
				return fmt.Errorf("failed to load profiles: %w", err)
			}
			gen := gcode.NewWithProfile(project.ResolveProfile(profileName, custom), feedRate)
			code, err := gen.Generate(job)
			if err != nil {
				return err
			}

			moves := gcode.ParseGCode(code)
			bounds := gcode.StackBounds{MaxX: job.Stack.StackWidth(), MaxY: job.Stack.PlateHeight}
			if job.Frame == model.FrameSinglePlate {
				bounds.MaxX = job.Stack.PlateWidth
			}
			for _, w := range gcode.FormatCollisionWarnings(gcode.CheckRapidCollisions(moves, bounds)) {
				log.Warn(w)
			}
			stats := gcode.Stats(moves)
			log.WithFields(log.Fields{
				"profile":     gen.Profile().Name,
				"cut_in":      fmt.Sprintf("%.3f", stats.CutLength),
				"cut_minutes": fmt.Sprintf("%.2f", stats.CutMinutes),
			}).Info("g-code generated")

			if outPath == "" || outPath == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), code)
				return err
			}
			if err := gcode.SaveProgram(outPath, code); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "Generic", "controller profile")
	cmd.Flags().StringVar(&profilesPath, "profiles", project.DefaultProfilesPath(), "custom profiles file")
	cmd.Flags().Float64Var(&feedRate, "feed", 20, "feed rate (in/min)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
