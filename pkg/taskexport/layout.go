package taskexport

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

//go:embed default_layout.yaml
var defaultLayoutYAML []byte

// ColumnConfig maps one struct field to one output column.
type ColumnConfig struct {
	FieldName     string  `yaml:"field_name"`
	Header        string  `yaml:"header"`
	Width         float64 `yaml:"width"`
	FormatterName string  `yaml:"formatter"`
}

// Layout is the export template: a sheet name and its ordered columns.
type Layout struct {
	SheetName string         `yaml:"sheet_name"`
	Columns   []ColumnConfig `yaml:"columns"`
}

// ParseLayout reads a yaml layout.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse export layout: %w", err)
	}
	if len(l.Columns) == 0 {
		return nil, fmt.Errorf("export layout has no columns")
	}
	for i, col := range l.Columns {
		if col.FieldName == "" {
			return nil, fmt.Errorf("export layout column %d has no field_name", i+1)
		}
		if col.Header == "" {
			l.Columns[i].Header = col.FieldName
		}
	}
	if l.SheetName == "" {
		l.SheetName = "Sheet1"
	}
	return &l, nil
}

// LoadLayout reads the layout at path, or the built-in task layout when
// path is empty.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export layout %s: %w", path, err)
	}
	return ParseLayout(data)
}

// DefaultLayout returns the built-in task layout.
func DefaultLayout() *Layout {
	l, err := ParseLayout(defaultLayoutYAML)
	if err != nil {
		panic(err)
	}
	return l
}

// Headers returns the column headers in order.
func (l *Layout) Headers() []string {
	out := make([]string, len(l.Columns))
	for i, col := range l.Columns {
		out[i] = col.Header
	}
	return out
}
