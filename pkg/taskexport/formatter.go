package taskexport

import (
	"fmt"
	"time"
)

// Formatter converts a raw field value into the cell value.
type Formatter func(interface{}) interface{}

const displayLayout = "2006-01-02 15:04"

func builtinFormatters() map[string]Formatter {
	return map[string]Formatter{
		"string":   formatString,
		"datetime": formatTime(displayLayout),
		"date":     formatTime("2006-01-02"),
		"iso":      formatTime("2006-01-02T15:04:05"),
	}
}

func formatString(v interface{}) interface{} {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func formatTime(layout string) Formatter {
	return func(v interface{}) interface{} {
		switch t := v.(type) {
		case time.Time:
			if t.IsZero() {
				return ""
			}
			return t.Format(layout)
		case *time.Time:
			if t == nil || t.IsZero() {
				return ""
			}
			return t.Format(layout)
		case nil:
			return ""
		}
		return v
	}
}
