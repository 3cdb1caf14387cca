package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/WireCut/internal/engine"
	"github.com/piwi3910/WireCut/internal/export"
	"github.com/piwi3910/WireCut/internal/project"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		formats []string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the results as CSV, XLSX, PDF, PNG chart, DXF or QR labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := expandFormats(formats)
			if err != nil {
				return err
			}
			job, cfg, err := opts.resolveJob(cmd)
			if err != nil {
				return err
			}
			result, err := engine.Run(job)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			for _, f := range selected {
				path := filepath.Join(outDir, f.FileName)
				if err := f.Write(path, result); err != nil {
					return fmt.Errorf("%s export failed: %w", f.Name, err)
				}
				project.AddRecentExport(&cfg, path)
				log.WithFields(log.Fields{"format": f.Name, "file": path}).Info("exported")
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			if err := project.SaveAppConfig(opts.configPath, cfg); err != nil {
				log.WithError(err).Warn("could not record recent exports")
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{"csv"}, "formats: "+strings.Join(export.FormatNames(), ", ")+" or all")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

// expandFormats resolves format names, dropping duplicates. "all" selects
// every format.
func expandFormats(names []string) ([]export.Format, error) {
	var selected []export.Format
	seen := map[string]bool{}
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return export.Formats, nil
		}
		f, err := export.LookupFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f.Name] {
			seen[f.Name] = true
			selected = append(selected, f)
		}
	}
	return selected, nil
}
