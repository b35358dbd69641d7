package handler_test

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/task_management_sample/internal/handler"
	"github.com/locvowork/task_management_sample/internal/repository"
	"github.com/locvowork/task_management_sample/internal/service"
	"github.com/locvowork/task_management_sample/pkg/taskexport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportTasks(t *testing.T) {
	f := newFixture(t)
	f.post(t, f.h.AddTaskFromChatHandler, examplePayload)
	svc := service.NewTaskService(repository.NewTaskRepository(f.wb))
	exportHandler := handler.NewExportHandler(svc, taskexport.NewExporter(taskexport.DefaultLayout()))

	get := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/export-tasks"+query, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, exportHandler.ExportTasksHandler(f.e.NewContext(req, rec)))
		return rec
	}

	t.Run("Xlsx Export", func(t *testing.T) {
		rec := get("")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get(echo.HeaderContentType))
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".xlsx")

		file, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		defer file.Close()
		rows, err := file.GetRows("Tasks")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "T", rows[1][1])
	})

	t.Run("Csv Export", func(t *testing.T) {
		rec := get("?format=csv")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".csv")

		records, err := csv.NewReader(rec.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"T", "D", "b@x.com", "a@x.com", "2025-01-01 09:00", "2025-01-02 09:00", "incomplete"}, records[1][1:])
	})

	t.Run("Unknown format", func(t *testing.T) {
		rec := get("?format=pdf")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
