package taskexport

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type row struct {
	Name     string
	Due      *time.Time
	Priority int
}

var testLayout = []byte(`
sheet_name: Work
columns:
  - field_name: Name
    header: Task
    width: 20
  - field_name: Due
    header: Due
    formatter: datetime
  - field_name: Priority
`)

func sampleRows() []row {
	due := time.Date(2025, 7, 10, 18, 30, 0, 0, time.UTC)
	return []row{
		{Name: "Write report", Due: &due, Priority: 1},
		{Name: "Review, then merge", Priority: 2},
	}
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout(testLayout)
	require.NoError(t, err)
	assert.Equal(t, "Work", l.SheetName)
	assert.Equal(t, []string{"Task", "Due", "Priority"}, l.Headers())

	_, err = ParseLayout([]byte("sheet_name: Empty\n"))
	assert.Error(t, err)

	_, err = ParseLayout([]byte("columns:\n  - header: NoField\n"))
	assert.Error(t, err)
}

func TestLoadLayout(t *testing.T) {
	def, err := LoadLayout("")
	require.NoError(t, err)
	assert.Equal(t, "Tasks", def.SheetName)
	assert.Contains(t, def.Headers(), "Task ID")

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, testLayout, 0644))
	l, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, "Work", l.SheetName)

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatXLSX, "XLSX": FormatXLSX, " csv ": FormatCSV} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
	assert.Equal(t, "tasks.csv", FormatCSV.FileName("tasks"))
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
}

func TestExporter_CSV(t *testing.T) {
	l, err := ParseLayout(testLayout)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewExporter(l).Export(&buf, FormatCSV, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Task", "Due", "Priority"},
		{"Write report", "2025-07-10 18:30", "1"},
		{"Review, then merge", "", "2"},
	}, records)
}

func TestExporter_XLSX(t *testing.T) {
	l, err := ParseLayout(testLayout)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewExporter(l).Export(&buf, FormatXLSX, sampleRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Work"}, f.GetSheetList())
	rows, err := f.GetRows("Work")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Task", "Due", "Priority"}, rows[0])
	assert.Equal(t, []string{"Write report", "2025-07-10 18:30", "1"}, rows[1])
	assert.Equal(t, "Review, then merge", rows[2][0])
}

func TestExporter_CustomFormatterAndMaps(t *testing.T) {
	l := &Layout{SheetName: "M", Columns: []ColumnConfig{{FieldName: "status", Header: "Status", FormatterName: "shout"}}}
	e := NewExporter(l).RegisterFormatter("shout", func(v interface{}) interface{} {
		return v.(string) + "!"
	})

	var buf bytes.Buffer
	require.NoError(t, e.ToCSV(&buf, []map[string]interface{}{{"status": "done"}}))
	assert.Equal(t, "Status\ndone!\n", buf.String())

	assert.Error(t, e.ToCSV(&buf, "not a slice"))
}

func TestStreamSheet_RequiresHeader(t *testing.T) {
	se := NewStreamExporter(&bytes.Buffer{})
	sheet, err := se.AddSheet("S")
	require.NoError(t, err)
	assert.Error(t, sheet.WriteRow([]interface{}{"x"}))

	_, err = se.AddSheet("S")
	assert.Error(t, err)
}
