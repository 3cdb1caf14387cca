package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/model"
)

func newCompareCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare the job against what-if variants and find the widest passing angle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, _, err := opts.resolveJob(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Scenario\tFailed\tPass Rate\tMin (in)\tMax (in)")
			for _, r := range engine.CompareScenarios(engine.BuildDefaultScenarios(job)) {
				if r.Err != nil {
					fmt.Fprintf(tw, "%s\terror: %v\t\t\t\n", r.Scenario.Name, r.Err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%.4f\t%.4f\n",
					r.Scenario.Name, r.Failed, r.PassRate, r.MinHeight, r.MaxHeight)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			angle, ok, err := engine.MaxPassingAngle(job, model.DefaultLimits())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "\nNo wire angle passes: even a level wire leaves plates out of tolerance.")
				return nil
			}
			fmt.Fprintf(out, "\nAll plates pass for wire angles within +/-%.2f degrees.\n", angle)
			return nil
		},
	}
}
