package cli

import (
	"github.com/spf13/cobra"

	"github.com/metasystem/steering/internal/server"
	"github.com/metasystem/steering/pkg/metrics"
	"github.com/metasystem/steering/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the steering API over HTTP.

Routes:
  POST /api/v1/influence         full simulation with recommendations
  POST /api/v1/influence/paths   ranked influencers only
  POST /api/v1/power             total power
  POST /api/v1/integrity         axiological integrity
  POST /api/v1/distortion        information distortion
  GET  /healthz                  liveness
  GET  /metrics                  Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var opts []server.Option
			if !noMetrics {
				m := metrics.NewRegistry()
				observability.SetSearchHooks(m)
				observability.SetCacheHooks(m)
				observability.SetHTTPHooks(m)
				defer observability.Reset()
				opts = append(opts, server.WithMetrics(m.Handler()))
			}

			srv := server.New(runner, c.Logger, opts...)
			return srv.ListenAndServe(ctx, server.Config{
				Addr:         cfg.Addr,
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "do not expose /metrics")

	return cmd
}
