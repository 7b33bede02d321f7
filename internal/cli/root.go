// Package cli wires riffle's services together behind a cobra command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/riffle/internal/config"
	"github.com/llehouerou/riffle/internal/logger"
)

// Set via ldflags at build time.
var Version = "dev"

// env holds the flags and the services built from them for one run.
type env struct {
	configFile string
	logLevel   string
	verbose    bool

	cfg      *config.Config
	log      *zap.Logger
	logClose io.Closer
}

// NewRootCmd builds the command tree. Running it without a subcommand
// starts the terminal UI.
func NewRootCmd() *cobra.Command {
	rt := &env{}

	root := &cobra.Command{
		Use:   "riffle",
		Short: "Search, queue and play catalog previews",
		Long: `Riffle streams 30 second previews from the iTunes catalog.

Without a subcommand it starts the terminal player. The subcommands
search the catalog, manage playlists and play headless.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return rt.close()
		},
		RunE:          rt.runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&rt.configFile, "config", "c", "", "config file (default: ~/.config/riffle/config.toml)")
	root.PersistentFlags().StringVar(&rt.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "also log to stderr (ignored by the terminal UI)")

	root.AddCommand(
		newSearchCmd(rt),
		newHomeCmd(rt),
		newPlaylistCmd(rt),
		newPlayCmd(rt),
		newVersionCmd(),
	)
	return root
}

func (rt *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(rt.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	rt.cfg = cfg

	lc := cfg.GetLogConfig()
	if rt.logLevel != "" {
		lc.Level = rt.logLevel
	}
	opts := logger.Config{
		Level:      lc.Level,
		File:       lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAgeDays: lc.MaxAgeDays,
	}
	// The terminal UI owns the screen.
	if rt.verbose && cmd.Parent() != nil {
		opts.Console = cmd.ErrOrStderr()
	}
	log, closer, err := logger.New(opts)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	rt.log, rt.logClose = log, closer
	logger.Set(log)
	log.Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("version", Version))
	return nil
}

func (rt *env) close() error {
	if rt.log == nil {
		return nil
	}
	_ = rt.log.Sync()
	logger.Set(nil)
	rt.log = nil
	return rt.logClose.Close()
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "riffle:", err)
		os.Exit(1)
	}
}
