package cli

import (
	"github.com/locvowork/task_management_sample/internal/logger"
	"github.com/spf13/cobra"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx, servePort)
	if err != nil {
		return err
	}
	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Application failed: %v", err)
		return err
	}
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides APP_PORT)")
	rootCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides APP_PORT)")
	rootCmd.AddCommand(serveCmd)
}
