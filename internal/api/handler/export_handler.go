package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"timetable-viewer/internal/service"
	"timetable-viewer/pkg/response"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	svc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ExportICS 导出 ICS 日历文件
// GET /api/v1/export/ics
func (h *ExportHandler) ExportICS(c *gin.Context) {
	buf, filename, err := h.svc.ExportICS(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeDownload(c, contentTypeICS, filename, buf.Bytes())
}

// ExportGrid 导出周历网格 Excel
// GET /api/v1/export/grid
func (h *ExportHandler) ExportGrid(c *gin.Context) {
	buf, filename, err := h.svc.ExportGrid(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	writeDownload(c, contentTypeXLSX, filename, buf.Bytes())
}

// writeDownload 设置下载响应头并写入文件内容
func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportBusy):
		response.Conflict(c, 15001, "已有导出任务进行中，请稍候")
	case errors.Is(err, service.ErrExportNoSelection):
		response.BadRequest(c, 15002, "尚未选中任何课程，无内容可导出")
	default:
		response.InternalError(c)
	}
}
