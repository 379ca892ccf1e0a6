package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"linkrelay/config"
)

func init() {
	configCmd.Flags().Bool("describe", false, "List every configuration key with its environment variable, default and description")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with secrets redacted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if describe, _ := cmd.Flags().GetBool("describe"); describe {
			return describeFields(cmd.OutOrStdout(), config.Defaults)
		}

		settings, err := loadSettings()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(settings.Redacted())
	},
}

func describeFields(w io.Writer, fields []config.Field) error {
	for _, f := range fields {
		if _, err := fmt.Fprintf(w, "%s (%s)\n  default: %v\n  %s\n\n", f.Key, config.EnvName(f.Key), f.Value, f.Description); err != nil {
			return err
		}
	}
	return nil
}
