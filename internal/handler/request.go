package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/locvowork/task_management_sample/internal/domain"
)

const invalidDateMessage = "Invalid date format. Use ISO format: YYYY-MM-DDTHH:MM"

// Field spellings accepted from chat clients. The first name is the one the
// sheet-side tooling sends and the one reported back in errors.
var (
	assignerKeys = []string{"asigner", "assigner"}
	assigneeKeys = []string{"asignee", "assignee"}
)

// payload is a loosely typed JSON object. Clients send inconsistent key
// spellings, so bodies are read as maps rather than bound to structs.
type payload map[string]interface{}

func bindPayload(c echo.Context) (payload, error) {
	body := payload{}
	if err := c.Bind(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// lookup returns the value of the first key present in the body. A JSON
// null counts as present.
func (p payload) lookup(keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// text returns the value under keys as a string, or "" when absent or null.
func (p payload) text(keys ...string) string {
	v, _ := p.lookup(keys...)
	return stringify(v)
}

// require returns the text under keys, failing when none of them is present.
func (p payload) require(keys ...string) (string, error) {
	v, ok := p.lookup(keys...)
	if !ok {
		return "", domain.NewValidationError(keys[0], "Missing field: "+keys[0])
	}
	return stringify(v), nil
}

// date parses the value under key as an ISO-8601 timestamp.
func (p payload) date(key string) (time.Time, error) {
	v, _ := p.lookup(key)
	s, ok := v.(string)
	if !ok {
		return time.Time{}, domain.NewValidationError(key, invalidDateMessage)
	}
	t, err := domain.ParseISO(s)
	if err != nil {
		return time.Time{}, domain.NewValidationError(key, invalidDateMessage)
	}
	return t, nil
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// str returns the value under keys when it is a string. Absent keys, null
// and other JSON types report false. Blank strings fail unless allowBlank.
func (p payload) str(allowBlank bool, keys ...string) (string, bool) {
	v, _ := p.lookup(keys...)
	s, ok := v.(string)
	if !ok || (!allowBlank && strings.TrimSpace(s) == "") {
		return "", false
	}
	return s, true
}

// textField pairs a destination with the keys it is read from. Text fields
// land in required sheet cells, so only status may be blank.
type textField struct {
	dst        *string
	keys       []string
	allowBlank bool
}

// taskFromChat builds a task from an add-task-from-chat body. Every field
// key must be present; status may be empty.
func taskFromChat(p payload) (domain.Task, error) {
	var t domain.Task
	var err error
	for _, keys := range [][]string{assignerKeys, assigneeKeys, {"request_date"}, {"task_name"}, {"task_description"}, {"deadline"}, {"status"}} {
		if _, err = p.require(keys...); err != nil {
			return t, err
		}
	}

	fields := []textField{
		{&t.Assigner, assignerKeys, false},
		{&t.Assignee, assigneeKeys, false},
		{&t.Name, []string{"task_name"}, false},
		{&t.Description, []string{"task_description"}, false},
		{&t.Status, []string{"status"}, true},
	}
	for _, f := range fields {
		v, ok := p.str(f.allowBlank, f.keys...)
		if !ok {
			return t, domain.NewValidationError(f.keys[0], "Invalid value for field: "+f.keys[0])
		}
		*f.dst = v
	}

	if t.RequestDate, err = p.date("request_date"); err != nil {
		return t, err
	}
	deadline, err := p.date("deadline")
	if err != nil {
		return t, err
	}
	t.Deadline = &deadline
	return t, nil
}

// taskReplacement builds the full replacement record for
// update-task-status-by-id. Dates are optional; a missing request date is
// filled in by the service.
func taskReplacement(p payload) (domain.Task, error) {
	var t domain.Task
	var err error
	fields := []textField{
		{&t.Assigner, assignerKeys, false},
		{&t.Assignee, assigneeKeys, false},
		{&t.Name, []string{"task_name"}, false},
		{&t.Description, []string{"task_description"}, false},
		{&t.Status, []string{"status"}, false},
	}
	for _, f := range fields {
		key := f.keys[0]
		if _, ok := p.lookup(f.keys...); !ok {
			return t, domain.NewValidationError(key, fmt.Sprintf("Invalid input: '%s'", key))
		}
		v, ok := p.str(f.allowBlank, f.keys...)
		if !ok {
			return t, domain.NewValidationError(key, fmt.Sprintf("Invalid input: '%s' must be a non-empty string", key))
		}
		*f.dst = v
	}

	if p.text("request_date") != "" {
		if t.RequestDate, err = p.date("request_date"); err != nil {
			return t, domain.NewValidationError("request_date", "Invalid input: "+invalidDateMessage)
		}
	}
	if p.text("deadline") != "" {
		deadline, err := p.date("deadline")
		if err != nil {
			return t, domain.NewValidationError("deadline", "Invalid input: "+invalidDateMessage)
		}
		t.Deadline = &deadline
	}
	return t, nil
}

func parseTaskID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("task_id", "Invalid task_id format.")
	}
	return id, nil
}
