package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/52AnTIMateria812/dirscout/internal/config"
	"github.com/52AnTIMateria812/dirscout/internal/display"
	"github.com/52AnTIMateria812/dirscout/internal/inventory"
)

// Version is injected at build time via -ldflags
var Version = "dev"

var (
	rootDir    string
	configPath string
	logLevel   string
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command for dirscout
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirscout",
		Short: "Directory inventory and statistics tool",
		Long: `Dirscout scans a directory tree and reports file statistics:
counts, per-category breakdowns, largest files, and empty directories.

It can also query files by glob pattern or category, render a tree view,
batch-copy or batch-delete matching files, and export statistics as JSON.

Run with no arguments to print a report for the current directory.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				display.DisableColor()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation: scan and report the root directory.
			inv, _, err := buildInventory()
			if err != nil {
				return err
			}
			if _, err := inv.Scan(); err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			return inv.Report(cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".", "Root directory to operate on")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default <root>/.dirscout.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log verbosity: trace, debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewFindCommand())
	cmd.AddCommand(NewTreeCommand())
	cmd.AddCommand(NewCopyCommand())
	cmd.AddCommand(NewDeleteCommand())
	cmd.AddCommand(NewExportCommand())

	return cmd
}

// buildInventory assembles an Inventory from the config file and
// persistent flags. Flag values override file values.
func buildInventory() (*inventory.Inventory, *config.Config, error) {
	cfgFile := configPath
	if cfgFile == "" {
		cfgFile = filepath.Join(rootDir, config.DefaultFileName)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}

	log, err := newLogger(level)
	if err != nil {
		return nil, nil, err
	}

	inv, err := inventory.New(rootDir, inventory.Config{
		TopLargest:  cfg.TopLargest,
		ShowHidden:  cfg.ShowHidden,
		ExcludeDirs: cfg.ExcludeDirs,
		Categories:  cfg.Categories,
		Logger:      log,
	})
	if err != nil {
		return nil, nil, err
	}
	return inv, cfg, nil
}

// rebuildInventory constructs an Inventory from an already-loaded,
// possibly flag-adjusted config.
func rebuildInventory(cfg *config.Config) (*inventory.Inventory, error) {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log, err := newLogger(level)
	if err != nil {
		return nil, err
	}
	return inventory.New(rootDir, inventory.Config{
		TopLargest:  cfg.TopLargest,
		ShowHidden:  cfg.ShowHidden,
		ExcludeDirs: cfg.ExcludeDirs,
		Categories:  cfg.Categories,
		Logger:      log,
	})
}

// newLogger configures the structured logger used by all commands.
// Log output goes to stderr so reports on stdout stay clean.
func newLogger(level string) (*logrus.Entry, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(parsed)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   noColor || !display.IsTerminal(os.Stderr),
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	return logrus.NewEntry(log), nil
}
