package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/locvowork/task_management_sample/internal/domain"
)

// TaskHeader is row 1 of a freshly created task sheet.
var TaskHeader = []string{
	"asigner", "asignee", "request_date", "task_name", "task_description", "deadline", "status", "task_id",
}

type rowShape int

const (
	shapeUnknown rowShape = iota
	// shapeLegacy rows predate the name/description split:
	// asigner, asignee, request_date, task, deadline, status, task_id.
	shapeLegacy
	// shapeCurrent rows match TaskHeader.
	shapeCurrent
)

func (s rowShape) String() string {
	switch s {
	case shapeLegacy:
		return "legacy"
	case shapeCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// layout holds the 0-based cell positions that mutations touch.
type layout struct {
	cells    int
	assignee int
	name     int
	status   int
	id       int
}

var layouts = map[rowShape]layout{
	shapeLegacy:  {cells: 7, assignee: 1, name: 3, status: 5, id: 6},
	shapeCurrent: {cells: 8, assignee: 1, name: 3, status: 6, id: 7},
}

// shapeOf classifies a row by its cell count alone.
func shapeOf(row []string) rowShape {
	switch len(row) {
	case layouts[shapeLegacy].cells:
		return shapeLegacy
	case layouts[shapeCurrent].cells:
		return shapeCurrent
	default:
		return shapeUnknown
	}
}

// rawTask is a row split into named text fields, before any parsing.
type rawTask struct {
	assigner, assignee, requestDate, name, description, deadline, status, id string
}

// Legacy rows may carry a blank merged task cell; those still decode, with
// placeholder text in place of the name and description.
const (
	legacyNoName        = "(no name)"
	legacyNoDescription = "(no description)"
)

func decodeLegacy(row []string) rawTask {
	name, description := row[3], row[3]
	if strings.TrimSpace(row[3]) == "" {
		name, description = legacyNoName, legacyNoDescription
	}
	return rawTask{
		assigner:    row[0],
		assignee:    row[1],
		requestDate: row[2],
		name:        name,
		description: description,
		deadline:    row[4],
		status:      row[5],
		id:          row[6],
	}
}

func decodeCurrent(row []string) rawTask {
	return rawTask{
		assigner:    row[0],
		assignee:    row[1],
		requestDate: row[2],
		name:        row[3],
		description: row[4],
		deadline:    row[5],
		status:      row[6],
		id:          row[7],
	}
}

// decodeRow turns a sheet row of either shape into a Task. The error text
// is what ends up in the decode report and names the row shape.
func decodeRow(row []string) (domain.Task, error) {
	shape := shapeOf(row)
	task, err := decodeShape(shape, row)
	if err != nil {
		return domain.Task{}, fmt.Errorf("%s row: %w", shape, err)
	}
	return task, nil
}

func decodeShape(shape rowShape, row []string) (domain.Task, error) {
	var raw rawTask
	switch shape {
	case shapeLegacy:
		raw = decodeLegacy(row)
	case shapeCurrent:
		raw = decodeCurrent(row)
	default:
		return domain.Task{}, fmt.Errorf("unexpected column count %d", len(row))
	}

	required := []struct{ name, value string }{
		{"asigner", raw.assigner},
		{"asignee", raw.assignee},
		{"request_date", raw.requestDate},
		{"status", raw.status},
		{"task_id", raw.id},
	}
	if shape == shapeCurrent {
		required = append(required,
			struct{ name, value string }{"task_name", raw.name},
			struct{ name, value string }{"task_description", raw.description},
		)
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return domain.Task{}, fmt.Errorf("missing %s", f.name)
		}
	}

	requestDate, err := domain.ParseISO(raw.requestDate)
	if err != nil {
		return domain.Task{}, fmt.Errorf("request_date: %w", err)
	}
	task := domain.Task{
		Assigner:    raw.assigner,
		Assignee:    raw.assignee,
		RequestDate: requestDate,
		Name:        raw.name,
		Description: raw.description,
		Status:      raw.status,
	}
	if strings.TrimSpace(raw.deadline) != "" {
		d, err := domain.ParseISO(raw.deadline)
		if err != nil {
			return domain.Task{}, fmt.Errorf("deadline: %w", err)
		}
		task.Deadline = &d
	}
	id, err := uuid.Parse(strings.TrimSpace(raw.id))
	if err != nil {
		return domain.Task{}, fmt.Errorf("task_id: %w", err)
	}
	task.ID = id
	return task, nil
}

// encodeRow renders a Task as a current-shape row.
func encodeRow(t domain.Task) []interface{} {
	deadline := ""
	if t.Deadline != nil {
		deadline = domain.FormatISO(*t.Deadline)
	}
	return []interface{}{
		t.Assigner,
		t.Assignee,
		domain.FormatISO(t.RequestDate),
		t.Name,
		t.Description,
		deadline,
		t.Status,
		t.ID.String(),
	}
}
