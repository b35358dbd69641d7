package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultStatus is assigned to tasks created without an explicit status.
const DefaultStatus = "incomplete"

// Task is a single assignment record.
type Task struct {
	Assigner    string     `json:"asigner"`
	Assignee    string     `json:"asignee"`
	RequestDate time.Time  `json:"request_date"`
	Name        string     `json:"task_name"`
	Description string     `json:"task_description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	ID          uuid.UUID  `json:"task_id"`
}

// NewTask fills in a random id and the default status where they are unset.
func NewTask(t Task) Task {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = DefaultStatus
	}
	return t
}

// TaskFilter narrows List. The zero value lists every task.
type TaskFilter struct {
	Assignee string
}

// RowSkip records one row that List could not decode.
type RowSkip struct {
	Row    int    `json:"row"` // 1-based sheet row number
	Reason string `json:"reason"`
}

// DecodeReport summarises a lenient scan of the task sheet.
type DecodeReport struct {
	Scanned int       `json:"scanned"`
	Decoded int       `json:"decoded"`
	Skipped []RowSkip `json:"skipped,omitempty"`
}

func (r *DecodeReport) Skip(row int, format string, args ...interface{}) {
	r.Skipped = append(r.Skipped, RowSkip{Row: row, Reason: fmt.Sprintf(format, args...)})
}

// TaskRepository persists tasks. Lookup misses are reported with a false
// return, never as an error.
type TaskRepository interface {
	Append(ctx context.Context, task Task) error
	List(ctx context.Context, filter TaskFilter) ([]Task, DecodeReport, error)
	UpdateStatusByID(ctx context.Context, id uuid.UUID, status string) (bool, error)
	UpdateStatusByAssigneeAndName(ctx context.Context, assignee, name, status string) (bool, error)
	ReplaceByID(ctx context.Context, id uuid.UUID, task Task) (bool, error)
}
