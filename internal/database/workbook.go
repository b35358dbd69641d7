package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/locvowork/task_management_sample/internal/logger"
	"github.com/xuri/excelize/v2"
)

// Config describes the spreadsheet file that backs the task store.
type Config struct {
	Path string
	// Sheet is the worksheet holding the rows; empty means the active sheet.
	Sheet string
	// Header is written as row 1 when the file is created.
	Header []string
	// SaveRetry retries a failed rewrite, e.g. while another program holds
	// the file open.
	SaveRetry RetryPolicy
}

// Workbook is a handle to one spreadsheet file. Every Open reads the whole
// file and every Save rewrites it; there is no locking between callers.
type Workbook struct {
	path      string
	sheet     string
	header    []string
	saveRetry RetryPolicy
}

// NewWorkbook returns a handle for cfg.Path, creating the file with its
// header row when it does not exist yet.
func NewWorkbook(ctx context.Context, cfg Config) (*Workbook, error) {
	if cfg.Path == "" {
		return nil, errors.New("workbook path is empty")
	}
	w := &Workbook{path: cfg.Path, sheet: cfg.Sheet, header: cfg.Header, saveRetry: cfg.SaveRetry}
	if err := w.ensure(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

// Path returns the file location.
func (w *Workbook) Path() string {
	return w.path
}

func (w *Workbook) ensure(ctx context.Context) error {
	if _, err := os.Stat(w.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat workbook %s: %w", w.path, err)
	}

	if dir := filepath.Dir(w.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create workbook dir: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if w.sheet != "" && w.sheet != sheet {
		if err := f.SetSheetName(sheet, w.sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		sheet = w.sheet
	}
	if len(w.header) > 0 {
		header := make([]interface{}, len(w.header))
		for i, h := range w.header {
			header[i] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save new workbook %s: %w", w.path, err)
	}
	logger.InfoLog(ctx, "Created workbook %s with sheet %q", w.path, sheet)
	return nil
}

// Open loads the file, recreating it first if it was removed since the
// handle was built. The caller must Close the returned file.
func (w *Workbook) Open(ctx context.Context) (*excelize.File, string, error) {
	if err := w.ensure(ctx); err != nil {
		return nil, "", err
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, "", fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	sheet := w.sheet
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		f.Close()
		return nil, "", fmt.Errorf("sheet %q not found in %s", sheet, w.path)
	}
	return f, sheet, nil
}

// Save rewrites the whole file, retrying per the configured policy.
func (w *Workbook) Save(ctx context.Context, f *excelize.File) error {
	err := w.saveRetry.do(ctx, "save workbook "+w.path, func() error {
		return f.SaveAs(w.path)
	})
	if err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}
