package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/model"
)

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	var (
		asJSON     bool
		failedOnly bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Compute every plate's final height and PASS/FAIL status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, _, err := opts.resolveJob(cmd)
			if err != nil {
				return err
			}
			result, err := engine.Run(job)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"job":    result.ID,
				"plates": result.Summary.Count,
				"failed": result.Summary.Failed,
			}).Info("simulation complete")

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else if err := printResult(out, result, failedOnly); err != nil {
				return err
			}

			if strict && result.Summary.Failed > 0 {
				return fmt.Errorf("%d of %d plates out of tolerance", result.Summary.Failed, result.Summary.Count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&failedOnly, "failed-only", false, "list only failing plates")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when any plate fails")
	return cmd
}

// printSummary writes the headline numbers of a run.
func printSummary(w io.Writer, result model.SimulationResult) {
	s := result.Summary
	fmt.Fprintf(w, "Plates: %d  Passed: %d  Failed: %d  Pass rate: %.1f%%\n", s.Count, s.Passed, s.Failed, s.PassRate())
	fmt.Fprintf(w, "Height range: %.4f - %.4f in (mean %.4f)  Window: %.4f - %.4f in\n",
		s.MinHeight, s.MaxHeight, s.MeanHeight, result.Tolerance.MinHeight, result.Tolerance.MaxHeight)
}

func printResult(w io.Writer, result model.SimulationResult, failedOnly bool) error {
	printSummary(w, result)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Plate #\tFinal Height (in)\tStatus")
	for _, p := range result.Plates {
		if failedOnly && p.Passed {
			continue
		}
		fmt.Fprintf(tw, "%d\t%.4f\t%s\n", p.Number(), p.FinalHeight, p.Status())
	}
	return tw.Flush()
}
