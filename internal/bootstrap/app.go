package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/task_management_sample/internal/config"
	"github.com/locvowork/task_management_sample/internal/database"
	"github.com/locvowork/task_management_sample/internal/handler"
	"github.com/locvowork/task_management_sample/internal/logger"
	"github.com/locvowork/task_management_sample/internal/repository"
	"github.com/locvowork/task_management_sample/internal/service"
	"github.com/locvowork/task_management_sample/internal/service/serviceutils"
	"github.com/locvowork/task_management_sample/pkg/taskexport"
)

// Options override values loaded from the environment. Empty fields keep
// the environment value.
type Options struct {
	EnvFile   string
	Port      string
	TasksFile string
}

type App struct {
	Echo     *echo.Echo
	Tasks    service.TaskService
	Exporter *taskexport.Exporter
	Workbook *database.Workbook

	opts Options
}

func NewApp(opts Options) *App {
	e := echo.New()
	e.HideBanner = true
	return &App{Echo: e, opts: opts}
}

func (a *App) Initialize(ctx context.Context) error {
	var envFiles []string
	if a.opts.EnvFile != "" {
		envFiles = append(envFiles, a.opts.EnvFile)
	}
	if err := config.LoadEnvConfig(envFiles...); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}
	if a.opts.Port != "" {
		config.DefaultEnvConfig.APP_PORT = a.opts.Port
	}
	if a.opts.TasksFile != "" {
		config.DefaultEnvConfig.TASKS_FILE_PATH = a.opts.TasksFile
	}
	cfg := config.DefaultEnvConfig

	logger.InitLogging(cfg.LOG_FILE_PATH, cfg.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	wb, err := database.NewWorkbook(ctx, database.Config{
		Path:   cfg.TASKS_FILE_PATH,
		Sheet:  cfg.TASKS_SHEET_NAME,
		Header: repository.TaskHeader,
		SaveRetry: database.RetryPolicy{
			MaxRetries: cfg.TASKS_SAVE_RETRIES,
			Backoff:    database.ExponentialBackoff(200 * time.Millisecond),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize task workbook: %w", err)
	}
	a.Workbook = wb

	layout, err := taskexport.LoadLayout(cfg.EXPORT_LAYOUT_PATH)
	if err != nil {
		return fmt.Errorf("failed to load export layout: %w", err)
	}
	a.Exporter = taskexport.NewExporter(layout).RegisterFormatter("status", statusCell)

	taskRepo := repository.NewTaskRepository(wb)
	a.Tasks = service.NewTaskService(taskRepo)
	taskHandler := handler.NewTaskHandler(a.Tasks)
	exportHandler := handler.NewExportHandler(a.Tasks, a.Exporter)

	a.Echo.HTTPErrorHandler = jsonErrorHandler
	a.RegisterMiddlewares()
	a.RegisterRoutes(taskHandler, exportHandler)

	logger.InfoLog(ctx, "Using task workbook %s", wb.Path())
	return nil
}

// statusCell folds free-form chat statuses into the buckets the task
// summary counts by.
func statusCell(v interface{}) interface{} {
	s, _ := v.(string)
	return strings.ToLower(strings.TrimSpace(s))
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(requestContext)
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

// requestContext carries the echo request id into the request context so
// service-level logs can be correlated with the access log.
func requestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Response().Header().Get(echo.HeaderXRequestID)
		if id != "" {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		}
		return next(c)
	}
}

// jsonErrorHandler renders errors that escape handlers (unknown routes,
// wrong methods, panics) in the same envelope as handler errors.
func jsonErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		err = fmt.Errorf("%v", he.Message)
	}
	if code >= http.StatusInternalServerError {
		logger.ErrorLog(c.Request().Context(), "Unhandled error on %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		err = errors.New(http.StatusText(code))
	}
	resp, status := serviceutils.ErrorJSON(err, code)
	if jsonErr := c.JSON(status, resp); jsonErr != nil {
		logger.ErrorLog(c.Request().Context(), "Failed to write error response: %v", jsonErr)
	}
}

func (a *App) RegisterRoutes(taskHandler *handler.TaskHandler, exportHandler *handler.ExportHandler) {
	a.Echo.POST("/add-task-from-chat", taskHandler.AddTaskFromChatHandler)
	a.Echo.POST("/get-tasks-by-name", taskHandler.GetTasksByNameHandler)
	a.Echo.POST("/update-task-status", taskHandler.UpdateTaskStatusHandler)
	a.Echo.POST("/update-task-status-by-name", taskHandler.UpdateTaskStatusByNameHandler)
	a.Echo.POST("/update-task-status-by-id", taskHandler.UpdateTaskStatusByIDHandler)
	a.Echo.POST("/get-tasks-assigned-to-me", taskHandler.GetTasksAssignedToMeHandler)
	a.Echo.POST("/get-tasks-assigned-by-me", taskHandler.GetTasksAssignedByMeHandler)
	a.Echo.POST("/get-task-summary", taskHandler.GetTaskSummaryHandler)

	a.Echo.GET("/export-tasks", exportHandler.ExportTasksHandler)
	a.Echo.GET("/healthz", handler.HealthHandler)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
