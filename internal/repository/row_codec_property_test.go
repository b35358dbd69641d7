package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/locvowork/task_management_sample/internal/domain"
	"pgregory.net/rapid"
)

func drawTask(t *rapid.T) domain.Task {
	text := rapid.StringMatching(`[A-Za-z0-9@. ]{0,20}[A-Za-z0-9]`)
	secs := rapid.Int64Range(0, 4102444800).Draw(t, "request_secs")
	task := domain.Task{
		Assigner:    text.Draw(t, "assigner"),
		Assignee:    text.Draw(t, "assignee"),
		RequestDate: time.Unix(secs, 0).UTC(),
		Name:        text.Draw(t, "name"),
		Description: text.Draw(t, "description"),
		Status:      rapid.SampledFrom([]string{"incomplete", "complete", "in_progress"}).Draw(t, "status"),
		ID:          uuid.Must(uuid.FromBytes(rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(t, "id"))),
	}
	if rapid.Bool().Draw(t, "has_deadline") {
		d := time.Unix(rapid.Int64Range(0, 4102444800).Draw(t, "deadline_secs"), 0).UTC()
		task.Deadline = &d
	}
	return task
}

func toCells(values []interface{}) []string {
	row := make([]string, len(values))
	for i, v := range values {
		row[i] = fmt.Sprint(v)
	}
	return row
}

// TestProperty_CurrentRowRoundTrip verifies that any task written as a
// current-shape row decodes back to the same task.
func TestProperty_CurrentRowRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		task := drawTask(t)
		row := toCells(encodeRow(task))
		if shapeOf(row) != shapeCurrent {
			t.Fatalf("encoded row has shape %v", shapeOf(row))
		}

		got, err := decodeRow(row)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != task.ID || got.Name != task.Name || got.Description != task.Description ||
			got.Assigner != task.Assigner || got.Assignee != task.Assignee || got.Status != task.Status {
			t.Fatalf("got %+v, want %+v", got, task)
		}
		if !got.RequestDate.Equal(task.RequestDate) {
			t.Fatalf("request date %v, want %v", got.RequestDate, task.RequestDate)
		}
		if (got.Deadline == nil) != (task.Deadline == nil) {
			t.Fatalf("deadline presence mismatch")
		}
		if task.Deadline != nil && !got.Deadline.Equal(*task.Deadline) {
			t.Fatalf("deadline %v, want %v", got.Deadline, task.Deadline)
		}
	})
}

// TestProperty_LegacyRowCopiesMergedText verifies that a legacy row always
// surfaces its merged task text as both name and description.
func TestProperty_LegacyRowCopiesMergedText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		task := drawTask(t)
		merged := task.Name
		deadline := ""
		if task.Deadline != nil {
			deadline = domain.FormatISO(*task.Deadline)
		}
		row := []string{
			task.Assigner, task.Assignee, domain.FormatISO(task.RequestDate),
			merged, deadline, task.Status, task.ID.String(),
		}

		got, err := decodeRow(row)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Name != merged || got.Description != merged {
			t.Fatalf("name %q description %q, want both %q", got.Name, got.Description, merged)
		}
	})
}

// TestProperty_UnknownShapesAreRejected verifies that any row that is not
// 7 or 8 cells wide fails to decode.
func TestProperty_UnknownShapesAreRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Filter(func(n int) bool { return n != 7 && n != 8 }).Draw(t, "cells")
		row := make([]string, n)
		for i := range row {
			row[i] = "x"
		}
		if _, err := decodeRow(row); err == nil {
			t.Fatalf("row of %d cells decoded", n)
		}
	})
}
