// Package cli wires the junitguide commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pthm/junitguide/internal/config"
	"github.com/pthm/junitguide/internal/content"
	"github.com/pthm/junitguide/internal/log"
)

// Version is set via ldflags at build time.
var Version = "dev"

// options is shared by every subcommand. It is filled by the root
// command's PersistentPreRunE before any RunE executes.
type options struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "junitguide",
		Short: "Side-by-side comparison guide for JUnit 4, 5 and 6",
		Long: `junitguide serves an interactive comparison of JUnit 4, JUnit 5 and
JUnit 6: dependency declarations, assertions, assumptions and annotations
shown side by side for any selection of versions. The same guide can be
exported as a standalone HTML file or printed to the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "junitguide.yaml", "config file path")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (text, logfmt, json)")

	root.AddCommand(
		newServeCommand(opts),
		newExportCommand(opts),
		newPrintCommand(opts),
		newVersionCommand(),
	)

	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	o.cfg = cfg
	o.logger = log.New(cfg.LogLevel, cfg.LogFormat)
	return nil
}

// store loads the content document named by the config, or the embedded
// guide when none is set.
func (o *options) store() (*content.Store, error) {
	if o.cfg.ContentFile == "" {
		return content.Default(), nil
	}
	store, err := content.LoadFile(o.cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	o.logger.Debug("loaded content", "file", o.cfg.ContentFile, "versions", store.Len())
	return store, nil
}
