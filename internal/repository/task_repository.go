package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/locvowork/task_management_sample/internal/database"
	"github.com/locvowork/task_management_sample/internal/domain"
	"github.com/locvowork/task_management_sample/internal/logger"
	"github.com/xuri/excelize/v2"
)

type taskRepository struct {
	wb *database.Workbook
}

// NewTaskRepository returns a TaskRepository that keeps one task per row of
// the workbook's sheet. Each call loads the whole file and each mutation
// rewrites it.
func NewTaskRepository(wb *database.Workbook) domain.TaskRepository {
	return &taskRepository{wb: wb}
}

func (r *taskRepository) Append(ctx context.Context, task domain.Task) error {
	f, sheet, err := r.wb.Open(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	next := len(rows) + 1
	if next < 2 {
		next = 2
	}
	cell, err := excelize.CoordinatesToCellName(1, next)
	if err != nil {
		return err
	}
	values := encodeRow(task)
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", next, err)
	}
	if err := r.wb.Save(ctx, f); err != nil {
		return err
	}
	logger.DebugLog(ctx, "Appended task %s at row %d", task.ID, next)
	return nil
}

// List decodes every row after the header. Rows that cannot be decoded are
// skipped and recorded in the report. A non-empty filter.Assignee keeps only
// rows whose assignee equals it, ignoring case and surrounding whitespace.
func (r *taskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, domain.DecodeReport, error) {
	var report domain.DecodeReport

	f, sheet, err := r.wb.Open(ctx)
	if err != nil {
		return nil, report, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, report, fmt.Errorf("read rows: %w", err)
	}

	want := strings.TrimSpace(filter.Assignee)
	tasks := make([]domain.Task, 0, len(rows))
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		report.Scanned++
		task, err := decodeRow(row)
		if err != nil {
			report.Skip(i+1, "%v", err)
			logger.WarnLog(ctx, "Skipping row %d of %s: %v", i+1, sheet, err)
			continue
		}
		report.Decoded++
		if want != "" && !strings.EqualFold(strings.TrimSpace(task.Assignee), want) {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, report, nil
}

func (r *taskRepository) UpdateStatusByID(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	target := id.String()
	return r.mutateFirst(ctx,
		func(row []string, l layout) bool { return row[l.id] == target },
		func(f *excelize.File, sheet string, rowNum int, l layout) error {
			return setCell(f, sheet, l.status, rowNum, status)
		})
}

func (r *taskRepository) UpdateStatusByAssigneeAndName(ctx context.Context, assignee, name, status string) (bool, error) {
	return r.mutateFirst(ctx,
		func(row []string, l layout) bool { return row[l.assignee] == assignee && row[l.name] == name },
		func(f *excelize.File, sheet string, rowNum int, l layout) error {
			return setCell(f, sheet, l.status, rowNum, status)
		})
}

// ReplaceByID overwrites every field of the matching row. A legacy row is
// written back in the current shape.
func (r *taskRepository) ReplaceByID(ctx context.Context, id uuid.UUID, task domain.Task) (bool, error) {
	target := id.String()
	task.ID = id
	return r.mutateFirst(ctx,
		func(row []string, l layout) bool { return row[l.id] == target },
		func(f *excelize.File, sheet string, rowNum int, _ layout) error {
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return err
			}
			values := encodeRow(task)
			return f.SetSheetRow(sheet, cell, &values)
		})
}

// mutateFirst applies fn to the first data row accepted by match and saves
// the file. Rows of an unknown shape are never matched.
func (r *taskRepository) mutateFirst(
	ctx context.Context,
	match func(row []string, l layout) bool,
	fn func(f *excelize.File, sheet string, rowNum int, l layout) error,
) (bool, error) {
	f, sheet, err := r.wb.Open(ctx)
	if err != nil {
		return false, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return false, fmt.Errorf("read rows: %w", err)
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		l, ok := layouts[shapeOf(row)]
		if !ok || !match(row, l) {
			continue
		}
		if err := fn(f, sheet, i+1, l); err != nil {
			return false, fmt.Errorf("update row %d: %w", i+1, err)
		}
		if err := r.wb.Save(ctx, f); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func setCell(f *excelize.File, sheet string, col, rowNum int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
