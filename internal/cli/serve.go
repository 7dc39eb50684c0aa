package cli

import (
	"github.com/spf13/cobra"
)

func newServeCmd(o *options) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen != "" {
				o.cfg.ListenAddr = listen
			}
			return o.app.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default $ACRONYMS_LISTEN_ADDR or :8080)")
	return cmd
}
