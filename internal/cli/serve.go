package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/WireCut/internal/server"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		addr  string
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Stream sweeps to websocket clients on " + server.SweepPath,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("frame-delay") {
				delay = time.Duration(cfg.FrameDelayMillis) * time.Millisecond
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.NewServer(addr, server.DefaultUpgrader(), delay).Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9000", "listen address")
	cmd.Flags().DurationVar(&delay, "frame-delay", 30*time.Millisecond, "pause between sweep frames")
	return cmd
}
