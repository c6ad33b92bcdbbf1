package cli

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"heattreat/calculator"
	"heattreat/server"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the websocket and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}
			upgrader := websocket.Upgrader{
				ReadBufferSize:  1024,
				WriteBufferSize: 1024,
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			}
			calc := calculator.NewCalculator(cfg.Steel, cfg.Policy)
			s := server.NewServer(cfg, calc, upgrader)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return s.Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
