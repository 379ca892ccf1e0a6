package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"linkrelay/logging"
	"linkrelay/server"
)

func init() {
	serveCmd.Flags().String("host", "", "Override server.host")
	serveCmd.Flags().Int("port", 0, "Override server.port")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP relay",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("host") {
			settings.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			settings.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if err := settings.Validate(); err != nil {
			return err
		}

		logger := logging.New(settings.Logs)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Run(ctx, server.New(settings, logger), settings, logger)
	},
}
