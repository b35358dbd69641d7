package bootstrap

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/task_management_sample/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("APP_PORT", "8000")
	t.Setenv("LOG_LEVEL", "error")
	app := NewApp(Options{
		EnvFile:   filepath.Join(t.TempDir(), "missing.env"),
		Port:      "9090",
		TasksFile: filepath.Join(t.TempDir(), "tasks.xlsx"),
	})
	require.NoError(t, app.Initialize(context.Background()))
	return app
}

func serve(app *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func TestInitializeAppliesOverrides(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, "9090", config.DefaultEnvConfig.APP_PORT)
	assert.Equal(t, app.Workbook.Path(), config.DefaultEnvConfig.TASKS_FILE_PATH)
	assert.NotNil(t, app.Tasks)
	assert.NotNil(t, app.Exporter)
}

func TestRoutes(t *testing.T) {
	app := newTestApp(t)

	t.Run("Health", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("Create then list", func(t *testing.T) {
		rec := serve(app, http.MethodPost, "/add-task-from-chat", `{"asigner":"a@x.com","asignee":"b@x.com","request_date":"2025-01-01T09:00","task_name":"T","task_description":"D","deadline":"2025-01-02T09:00","status":"incomplete"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = serve(app, http.MethodPost, "/get-tasks-by-name", `{"asignee":"b@x.com"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task: T")
	})

	t.Run("Export folds status", func(t *testing.T) {
		rec := serve(app, http.MethodPost, "/add-task-from-chat", `{"asigner":"a@x.com","asignee":"fold@x.com","request_date":"2025-01-01T09:00","task_name":"F","task_description":"D","deadline":"2025-01-02T09:00","status":"  Complete "}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = serve(app, http.MethodGet, "/export-tasks?format=csv", "")
		require.Equal(t, http.StatusOK, rec.Code)
		records, err := csv.NewReader(rec.Body).ReadAll()
		require.NoError(t, err)
		var statuses []string
		for _, r := range records[1:] {
			statuses = append(statuses, r[len(r)-1])
		}
		assert.ElementsMatch(t, []string{"incomplete", "complete"}, statuses)
	})

	t.Run("Unknown route uses the envelope", func(t *testing.T) {
		rec := serve(app, http.MethodGet, "/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Not Found"}`, rec.Body.String())
	})

	t.Run("Every route is registered", func(t *testing.T) {
		registered := map[string]bool{}
		for _, r := range app.Echo.Routes() {
			registered[r.Method+" "+r.Path] = true
		}
		for _, want := range []string{
			"POST /add-task-from-chat",
			"POST /get-tasks-by-name",
			"POST /update-task-status",
			"POST /update-task-status-by-name",
			"POST /update-task-status-by-id",
			"POST /get-tasks-assigned-to-me",
			"POST /get-tasks-assigned-by-me",
			"POST /get-task-summary",
			"GET /export-tasks",
			"GET /healthz",
		} {
			assert.True(t, registered[want], want)
		}
	})
}
