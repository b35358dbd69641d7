package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/task_management_sample/internal/logger"
	"github.com/locvowork/task_management_sample/internal/service"
	"github.com/locvowork/task_management_sample/internal/service/serviceutils"
	"github.com/locvowork/task_management_sample/pkg/taskexport"
)

type ExportHandler struct {
	svc      service.TaskService
	exporter *taskexport.Exporter
}

func NewExportHandler(svc service.TaskService, exporter *taskexport.Exporter) *ExportHandler {
	return &ExportHandler{svc: svc, exporter: exporter}
}

// ExportTasksHandler downloads every decodable task as xlsx or csv.
func (h *ExportHandler) ExportTasksHandler(c echo.Context) error {
	ctx := c.Request().Context()
	format, err := taskexport.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, err.Error(), nil)
	}

	tasks, report, err := h.svc.ListAll(ctx)
	if err != nil {
		logger.ErrorLog(ctx, "Failed to list tasks for export: %v", err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to export tasks", nil)
	}

	buf := new(bytes.Buffer)
	if err := h.exporter.Export(buf, format, tasks); err != nil {
		logger.ErrorLog(ctx, "Failed to render %s export: %v", format, err)
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to export tasks", nil)
	}
	logger.InfoLog(ctx, "Exported %d tasks as %s (%d rows skipped)", len(tasks), format, len(report.Skipped))

	filename := format.FileName("tasks_" + time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(buf.Len()))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
