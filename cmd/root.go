// Package cmd implements the linkrelay command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"linkrelay/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "linkrelay",
	Short:         "Relay video ids to the player API and return their stream links",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: ./linkrelay.yaml when present)")
}

func loadSettings() (*config.Settings, error) {
	return config.NewManager(afero.NewOsFs(), configPath).Load()
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
