package cli

import (
	"fmt"

	"github.com/locvowork/task_management_sample/internal/domain"
	"github.com/locvowork/task_management_sample/internal/service"
	"github.com/spf13/cobra"
)

var listAssignee string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print tasks from the workbook",
	Long: `Print every task in long form, or only those whose assignee contains
--assignee. Rows that cannot be decoded are reported at the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context(), "")
		if err != nil {
			return err
		}

		all, report, err := app.Tasks.ListAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing tasks: %w", err)
		}
		tasks := all
		if listAssignee != "" {
			tasks = filterAssignee(all, listAssignee)
		}

		out := cmd.OutOrStdout()
		for _, line := range service.FormatAll(tasks, service.FormatDetail) {
			fmt.Fprintln(out, line)
		}
		fmt.Fprintf(out, "%d tasks listed, %d rows scanned, %d skipped\n", len(tasks), report.Scanned, len(report.Skipped))
		for _, skip := range report.Skipped {
			fmt.Fprintf(out, "  row %d: %s\n", skip.Row, skip.Reason)
		}
		return nil
	},
}

func filterAssignee(tasks []domain.Task, query string) []domain.Task {
	var out []domain.Task
	for _, t := range tasks {
		if service.MatchesAssignee(query, t.Assignee) {
			out = append(out, t)
		}
	}
	return out
}

func init() {
	listCmd.Flags().StringVar(&listAssignee, "assignee", "", "only tasks whose assignee contains this text")
	rootCmd.AddCommand(listCmd)
}
