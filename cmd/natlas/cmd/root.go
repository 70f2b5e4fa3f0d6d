package cmd

import (
	"fmt"
	"os"

	"github.com/corey/neuroatlas/internal/config"
	"github.com/corey/neuroatlas/internal/logger"
	"github.com/spf13/cobra"
)

// cfg is resolved from .env and the environment before any subcommand runs.
// Flags override it per command.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "natlas",
	Short:         "natlas: brain atlas vertex labeling",
	Long:          "Parse vertex atlases, resolve mesh faces to regions, and build per-vertex color buffers.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// Execute runs the root command. Errors are printed to stderr here since
// cobra's own printing is silenced.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", colorRed, colorReset, err)
		if isDBLockError(err) {
			fmt.Fprintln(os.Stderr, diagnoseDBLock(projectRoot()))
		}
	}
	return err
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(colorsCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
}
