package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raysh454/a11ylens/internal/logging"
	"github.com/raysh454/a11ylens/internal/server"
)

func newServeCmd(s *state) *cobra.Command {
	var (
		addr   string
		origin string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket API",
		Long: `Serve exposes the analyzer over HTTP:

  GET  /status          fetch backend and API key status
  GET  /health          analyzer health
  POST /analyze         {"url": "...", "guidelines": true}
  GET  /guidelines      WCAG guideline links
  GET  /ws/analyze?url= stream run stages over a WebSocket
  GET  /swagger/        API documentation

Example:
  a11ylens serve --addr :8080`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				s.cfg.Server.ListenAddr = addr
			}

			// The server always logs.
			if !s.cfg.Log.Verbose {
				s.logger = logging.NewLogger(s.opts.Stderr, "", false)
			}
			logger := s.logger

			a, err := s.newApplication()
			if err != nil {
				return err
			}
			defer a.Close()

			srv, err := server.NewServer(server.Config{
				ListenAddr:    s.cfg.Server.ListenAddr,
				AllowedOrigin: origin,
				Logger:        logger,
			}, a.Runner)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "",
		"listen address (default from config, :8080)")
	cmd.Flags().StringVar(&origin, "allowed-origin", "",
		"CORS and WebSocket origin to allow (default: any)")
	return cmd
}
