package handler

import (
	"github.com/gin-gonic/gin"

	"timetable-viewer/internal/service"
	"timetable-viewer/pkg/response"
)

// CourseHandler 课程目录模块 Handler
type CourseHandler struct {
	svc service.TimetableService
}

// NewCourseHandler 创建 CourseHandler 实例
func NewCourseHandler(svc service.TimetableService) *CourseHandler {
	return &CourseHandler{svc: svc}
}

// ListCourses 课程目录列表
// GET /api/v1/courses?q=xxx
func (h *CourseHandler) ListCourses(c *gin.Context) {
	query := c.Query("q")
	response.OK(c, h.svc.ListCourses(c.Request.Context(), query))
}
