package service

import (
	"fmt"
	"time"

	"github.com/locvowork/task_management_sample/internal/domain"
)

const noDeadline = "N/A"

func displayTime(t *time.Time) string {
	if t == nil {
		return noDeadline
	}
	return t.Format(domain.DisplayLayout)
}

// FormatSummary is the one-line form used by the list-by-name endpoint.
func FormatSummary(t domain.Task) string {
	return fmt.Sprintf("ID: %s, Task: %s, Deadline: %s, Assigned by: %s, Status: %s",
		t.ID, t.Name, displayTime(t.Deadline), t.Assigner, t.Status)
}

// FormatDetail is the one-line form used by the assigned-to-me and
// assigned-by-me endpoints.
func FormatDetail(t domain.Task) string {
	return fmt.Sprintf("ID: %s, Task: %s, Description: %s, Request Date: %s, Deadline: %s, Assigned to: %s, Assigned by: %s, Status: %s",
		t.ID, t.Name, t.Description, displayTime(&t.RequestDate), displayTime(t.Deadline), t.Assignee, t.Assigner, t.Status)
}

// FormatAll renders every task with format.
func FormatAll(tasks []domain.Task, format func(domain.Task) string) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, format(t))
	}
	return out
}
