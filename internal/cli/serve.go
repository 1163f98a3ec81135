package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pthm/junitguide/internal/server"
)

func newServeCommand(opts *options) *cobra.Command {
	var (
		addr        string
		contentFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive guide over HTTP",
		Long: `Starts the HTTP server. The page is rendered on the server and every
interaction is an HTMX request to the shell component; no state is kept
between requests.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				opts.cfg.Addr = addr
			}
			if cmd.Flags().Changed("content") {
				opts.cfg.ContentFile = contentFile
			}
			if err := opts.cfg.Validate(); err != nil {
				return err
			}

			store, err := opts.store()
			if err != nil {
				return err
			}

			srv, err := server.New(opts.cfg, store, opts.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&contentFile, "content", "", "YAML content document (overrides the embedded guide)")
	return cmd
}
