package cli

import (
	"fmt"
	"os"

	"github.com/locvowork/task_management_sample/pkg/taskexport"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every task to an xlsx or csv file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := taskexport.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		out := exportOut
		if out == "" {
			out = format.FileName("tasks")
		}

		app, err := newApp(cmd.Context(), "")
		if err != nil {
			return err
		}
		tasks, _, err := app.Tasks.ListAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		if err := app.Exporter.Export(f, format, tasks); err != nil {
			f.Close()
			return fmt.Errorf("exporting tasks: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", len(tasks), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default tasks.<format>)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "xlsx or csv")
	rootCmd.AddCommand(exportCmd)
}
