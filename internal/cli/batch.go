package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/export"
	"github.com/piwi3910/WireCut/internal/importer"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	var exportDir string

	cmd := &cobra.Command{
		Use:   "batch <jobs.csv|jobs.xlsx>",
		Short: "Run every job listed in a CSV or Excel sheet",
		Long: `Run every job listed in a CSV or Excel sheet. Columns are matched by
header (name, plates, height, width, angle, offset, side, min, max, frame,
strategy, steps); empty cells take the value of the resolved base job.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, _, err := opts.resolveJob(cmd)
			if err != nil {
				return err
			}

			imported := importer.ImportFile(args[0], base)
			for _, w := range imported.Warnings {
				log.WithField("file", args[0]).Info(w)
			}
			for _, e := range imported.Errors {
				log.WithField("file", args[0]).Error(e)
			}
			if len(imported.Jobs) == 0 {
				return fmt.Errorf("no runnable jobs in %s", args[0])
			}

			if exportDir != "" {
				if err := os.MkdirAll(exportDir, 0755); err != nil {
					return fmt.Errorf("failed to create export directory: %w", err)
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "Job\tName\tPlates\tFailed\tPass Rate\tMin (in)\tMax (in)")
			failedJobs := 0
			for _, job := range imported.Jobs {
				result, err := engine.Run(job)
				if err != nil {
					log.WithError(err).WithField("job", job.Name).Error("job failed")
					failedJobs++
					continue
				}
				s := result.Summary
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.1f%%\t%.4f\t%.4f\n",
					result.ID, job.Name, s.Count, s.Failed, s.PassRate(), s.MinHeight, s.MaxHeight)

				if exportDir != "" {
					path := filepath.Join(exportDir, batchFileName(job.Name, result.ID))
					if err := export.ExportCSV(path, result); err != nil {
						return err
					}
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if failedJobs > 0 {
				return fmt.Errorf("%d jobs could not be run", failedJobs)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exportDir, "export-dir", "", "write one results CSV per job into this directory")
	return cmd
}

// batchFileName builds a file-system safe CSV name for a job.
func batchFileName(name, id string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return fmt.Sprintf("%s_%s.csv", clean, id)
}
