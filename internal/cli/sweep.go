package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/WireCut/internal/engine"
)

func newSweepCmd(opts *rootOptions) *cobra.Command {
	var every int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Print the sweep animation frames as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if every < 1 {
				return fmt.Errorf("--every must be at least 1")
			}
			job, _, err := opts.resolveJob(cmd)
			if err != nil {
				return err
			}
			sweep, err := engine.RunSweep(job)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			last := sweep.Len() - 1
			for k, frame := range sweep.All() {
				if k%every != 0 && k != last {
					continue
				}
				if err := enc.Encode(frame); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&every, "every", 1, "print every n-th frame (the last frame is always printed)")
	return cmd
}
