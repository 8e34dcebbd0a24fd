package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"timetable-viewer/internal/service"
	"timetable-viewer/pkg/response"
)

// TimetableHandler 时间表模块 Handler
type TimetableHandler struct {
	svc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler 实例
func NewTimetableHandler(svc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{svc: svc}
}

// GetSelection 当前选课状态
// GET /api/v1/selection
func (h *TimetableHandler) GetSelection(c *gin.Context) {
	response.OK(c, h.svc.GetSelection(c.Request.Context()))
}

// SelectCourse 选中课程
// POST /api/v1/selection/:code
func (h *TimetableHandler) SelectCourse(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 14000, "课程代码不能为空")
		return
	}

	resp, err := h.svc.Select(c.Request.Context(), code)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.Created(c, resp)
}

// RemoveCourse 取消选中课程
// DELETE /api/v1/selection/:code
func (h *TimetableHandler) RemoveCourse(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 14000, "课程代码不能为空")
		return
	}

	resp, err := h.svc.Remove(c.Request.Context(), code)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetTimetable 周历渲染载荷
// GET /api/v1/timetable
func (h *TimetableHandler) GetTimetable(c *gin.Context) {
	resp, err := h.svc.GetTimetable(c.Request.Context())
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleTimetableError 将时间表模块业务错误映射为统一响应
func handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 14001, "课程目录中不存在该课程")
	default:
		response.InternalError(c)
	}
}
