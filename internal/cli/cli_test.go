package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/locvowork/task_management_sample/internal/database"
	"github.com/locvowork/task_management_sample/internal/domain"
	"github.com/locvowork/task_management_sample/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWorkbook(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.xlsx")
	wb, err := database.NewWorkbook(ctx, database.Config{Path: path, Header: repository.TaskHeader})
	require.NoError(t, err)
	repo := repository.NewTaskRepository(wb)
	for _, assignee := range []string{"John Smith", "alice@example.com"} {
		require.NoError(t, repo.Append(ctx, domain.NewTask(domain.Task{
			Assigner:    "boss@example.com",
			Assignee:    assignee,
			RequestDate: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
			Name:        "Task for " + assignee,
			Description: "D",
		})))
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	envFile, tasksFile, listAssignee, exportOut, exportFormat = "", "", "", "", "xlsx"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "list", "export"} {
		assert.True(t, names[want], want)
	}
}

func TestListCommand(t *testing.T) {
	path := seedWorkbook(t)

	out, err := run(t, "list", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Task: Task for John Smith")
	assert.Contains(t, out, "2 tasks listed, 2 rows scanned, 0 skipped")

	out, err = run(t, "list", "--file", path, "--assignee", "john")
	require.NoError(t, err)
	assert.Contains(t, out, "1 tasks listed")
	assert.NotContains(t, out, "alice@example.com, Assigned by")
}

func TestExportCommand(t *testing.T) {
	path := seedWorkbook(t)
	target := filepath.Join(t.TempDir(), "out.csv")

	out, err := run(t, "export", "--file", path, "--format", "csv", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 tasks")

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = run(t, "export", "--file", path, "--format", "pdf")
	assert.Error(t, err)
}
