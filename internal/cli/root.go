package cli

import (
	"context"

	"github.com/locvowork/task_management_sample/internal/bootstrap"
	"github.com/spf13/cobra"
)

var (
	envFile   string
	tasksFile string
)

var rootCmd = &cobra.Command{
	Use:   "task_management_sample",
	Short: "Chat task tracker backed by a spreadsheet",
	Long: `Tracks tasks handed out over chat. Tasks live as rows of an xlsx workbook;
the HTTP API creates, lists and updates them.

Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default .env)")
	rootCmd.PersistentFlags().StringVar(&tasksFile, "file", "", "task workbook path (overrides TASKS_FILE_PATH)")
}

// newApp initializes the application with the shared flag overrides.
func newApp(ctx context.Context, port string) (*bootstrap.App, error) {
	app := bootstrap.NewApp(bootstrap.Options{
		EnvFile:   envFile,
		Port:      port,
		TasksFile: tasksFile,
	})
	if err := app.Initialize(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
