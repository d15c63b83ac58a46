package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pustakahq/pustakactl/internal/web"
)

func newServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The web UI never runs without a configured password.
			if err := cfg.RequirePasswordHash(); err != nil {
				return fmt.Errorf("%w (run 'pustakactl init' first)", err)
			}

			if host == "" {
				host = cfg.ServeHost
			}
			if port == 0 {
				port = cfg.ServePort
			}

			srv := web.NewServer(web.Options{
				Library:      lib,
				Covers:       covers,
				PasswordHash: cfg.PasswordHash,
			})

			addr := fmt.Sprintf("%s:%d", host, port)
			header("Serving the library UI on http://%s", addr)
			return srv.ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Bind host (default from config)")
	cmd.Flags().IntVar(&port, "port", 0, "Bind port (default from config)")
	return cmd
}
