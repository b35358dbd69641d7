package taskexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "xlsx" or "csv", case-insensitively. Empty means xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName appends the format extension to base.
func (f Format) FileName(base string) string {
	return base + "." + string(f)
}

// Exporter renders slices of structs (or maps) through a Layout.
type Exporter struct {
	layout     *Layout
	formatters map[string]Formatter
}

func NewExporter(layout *Layout) *Exporter {
	return &Exporter{layout: layout, formatters: builtinFormatters()}
}

// RegisterFormatter adds or replaces a named formatter.
func (e *Exporter) RegisterFormatter(name string, fn Formatter) *Exporter {
	e.formatters[name] = fn
	return e
}

// Export writes rows to w in the given format. rows must be a slice.
func (e *Exporter) Export(w io.Writer, format Format, rows interface{}) error {
	switch format {
	case FormatCSV:
		return e.ToCSV(w, rows)
	case FormatXLSX:
		return e.ToXLSX(w, rows)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// ToXLSX streams rows into a single-sheet workbook.
func (e *Exporter) ToXLSX(w io.Writer, rows interface{}) error {
	se := NewStreamExporter(w)
	sheet, err := se.AddSheet(e.layout.SheetName)
	if err != nil {
		return err
	}
	if err := sheet.WriteHeader(e.layout.Columns); err != nil {
		return err
	}
	if err := eachRow(rows, func(item reflect.Value) error {
		return sheet.WriteRow(e.values(item))
	}); err != nil {
		return err
	}
	return se.Close()
}

// ToCSV writes a header line followed by one line per row.
func (e *Exporter) ToCSV(w io.Writer, rows interface{}) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(e.layout.Headers()); err != nil {
		return err
	}
	err := eachRow(rows, func(item reflect.Value) error {
		vals := e.values(item)
		line := make([]string, len(vals))
		for i, v := range vals {
			line[i] = fmt.Sprint(v)
		}
		return cw.Write(line)
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) values(item reflect.Value) []interface{} {
	out := make([]interface{}, len(e.layout.Columns))
	for i, col := range e.layout.Columns {
		val := extractValue(item, col.FieldName)
		if fn, ok := e.formatters[col.FormatterName]; ok {
			val = fn(val)
		}
		if val == nil {
			val = ""
		}
		out[i] = val
	}
	return out
}

func eachRow(rows interface{}, fn func(reflect.Value) error) error {
	v := reflect.ValueOf(rows)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("export expects a slice, got %T", rows)
	}
	for i := 0; i < v.Len(); i++ {
		if err := fn(v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// extractValue reads fieldName from a struct or map, dereferencing
// pointers. A nil pointer yields nil.
func extractValue(item reflect.Value, fieldName string) interface{} {
	for item.Kind() == reflect.Ptr || item.Kind() == reflect.Interface {
		if item.IsNil() {
			return nil
		}
		item = item.Elem()
	}
	var f reflect.Value
	switch item.Kind() {
	case reflect.Struct:
		f = item.FieldByName(fieldName)
	case reflect.Map:
		f = item.MapIndex(reflect.ValueOf(fieldName))
	}
	if !f.IsValid() {
		return ""
	}
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return nil
		}
		f = f.Elem()
	}
	return f.Interface()
}

// StreamExporter writes a workbook sheet by sheet through excelize stream
// writers, so rows are never held in a cell model.
type StreamExporter struct {
	file   *excelize.File
	writer io.Writer
	sheets []*StreamSheet
}

func NewStreamExporter(w io.Writer) *StreamExporter {
	return &StreamExporter{file: excelize.NewFile(), writer: w}
}

// StreamSheet is one sheet of a streaming export.
type StreamSheet struct {
	stream      *excelize.StreamWriter
	name        string
	width       int
	currentRow  int
	headerShown bool
}

// AddSheet adds a sheet. The first sheet takes over the workbook's default
// sheet.
func (e *StreamExporter) AddSheet(name string) (*StreamSheet, error) {
	for _, s := range e.sheets {
		if s.name == name {
			return nil, fmt.Errorf("sheet %s already exists", name)
		}
	}

	if len(e.sheets) == 0 {
		if def := e.file.GetSheetName(0); def != name {
			if err := e.file.SetSheetName(def, name); err != nil {
				return nil, err
			}
		}
	} else if _, err := e.file.NewSheet(name); err != nil {
		return nil, err
	}

	sw, err := e.file.NewStreamWriter(name)
	if err != nil {
		return nil, err
	}
	sheet := &StreamSheet{stream: sw, name: name, currentRow: 1}
	e.sheets = append(e.sheets, sheet)
	return sheet, nil
}

// WriteHeader sets column widths and writes the header row. It must be
// called before any data row.
func (s *StreamSheet) WriteHeader(columns []ColumnConfig) error {
	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col.Header
		if col.Width > 0 {
			if err := s.stream.SetColWidth(i+1, i+1, col.Width); err != nil {
				return err
			}
		}
	}
	s.width = len(columns)
	s.headerShown = true
	return s.writeRow(header)
}

// WriteRow writes one row of already formatted cell values.
func (s *StreamSheet) WriteRow(values []interface{}) error {
	if !s.headerShown {
		return fmt.Errorf("header must be written before data")
	}
	if len(values) != s.width {
		return fmt.Errorf("row has %d values, sheet %s has %d columns", len(values), s.name, s.width)
	}
	return s.writeRow(values)
}

func (s *StreamSheet) writeRow(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, s.currentRow)
	if err != nil {
		return err
	}
	if err := s.stream.SetRow(cell, values); err != nil {
		return err
	}
	s.currentRow++
	return nil
}

// Close flushes every sheet and writes the workbook.
func (e *StreamExporter) Close() error {
	defer e.file.Close()
	for _, sheet := range e.sheets {
		if err := sheet.stream.Flush(); err != nil {
			return err
		}
	}
	return e.file.Write(e.writer)
}
