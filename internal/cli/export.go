package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/junitguide/internal/server"
)

func newExportCommand(opts *options) *cobra.Command {
	var (
		output   string
		versions []string
		dark     bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the guide as a single self-contained HTML file",
		Example: `  junitguide export -o guide.html
  junitguide export --versions junit4,junit6 --dark`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := selection(versions, nil, dark || opts.cfg.InitialDark(false, false))
			if err != nil {
				return err
			}
			store, err := opts.store()
			if err != nil {
				return err
			}

			exportOpts := server.ExportOptions{
				Store:  store,
				State:  state,
				Secret: opts.cfg.Secret,
			}
			if output == "" || output == "-" {
				return server.Export(cmd.Context(), cmd.OutOrStdout(), exportOpts)
			}
			if err := exportFile(cmd.Context(), output, exportOpts); err != nil {
				return err
			}
			opts.logger.Info("exported guide", "file", output, "versions", len(state.Selected))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringSliceVar(&versions, "versions", nil, "versions to show, by name or slug (default junit5)")
	cmd.Flags().BoolVar(&dark, "dark", false, "render with the dark theme")
	return cmd
}

// exportFile writes the export to path.
func exportFile(ctx context.Context, path string, opts server.ExportOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	return exportTo(ctx, f, path, opts)
}

// exportTo writes the export to w and closes it. A failed close is
// reported, since it can be the first sign of a short write.
func exportTo(ctx context.Context, w io.WriteCloser, name string, opts server.ExportOptions) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing %s: %w", name, cerr))
		}
	}()
	return server.Export(ctx, w, opts)
}
