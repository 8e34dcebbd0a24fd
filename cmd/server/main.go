package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"timetable-viewer/config"
	"timetable-viewer/internal/api/handler"
	"timetable-viewer/internal/api/router"
	"timetable-viewer/internal/catalog"
	"timetable-viewer/internal/service"
	"timetable-viewer/internal/store"
	"timetable-viewer/pkg/database"
	applogger "timetable-viewer/pkg/logger"
	appredis "timetable-viewer/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 加载课程目录（异步边界：加载完成前不受理任何选课操作；
	//    加载失败时降级为空目录继续运行，不中断启动）
	cat := loadCatalog(cfg, logger)
	logger.Info("课程目录加载完成", zap.Int("courses", cat.Len()))

	// 4. 初始化持久化存储（后端不可用时降级为内存存储）
	st, closeStore := newStore(cfg, logger)
	defer closeStore()

	// 5. 依赖注入: Service → Handler
	svc := service.NewService(cfg, cat, st, logger)
	h := handler.NewHandler(svc)

	// 6. 恢复上次会话的选课状态（必须在目录加载之后）
	svc.Timetable.Restore(context.Background())

	// 7. 初始化路由
	engine := router.Setup(cfg, h, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // 导出（网格栅格化）可能耗时较长
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	logger.Info("服务器已关闭")
}

// loadCatalog 按配置从 URL 或本地文件加载课程目录。
// 任何加载失败都记 Warn 后返回空目录——目录为空时系统照常
// 服务，只是无课可选。
func loadCatalog(cfg *config.Config, logger *zap.Logger) *catalog.Catalog {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.Catalog.URL != "" {
		cat, err = catalog.LoadURL(cfg.Catalog.URL, logger)
	} else {
		cat, err = catalog.LoadFile(cfg.Catalog.Path, logger)
	}
	if err != nil {
		logger.Warn("课程目录加载失败，以空目录继续运行", zap.Error(err))
		return catalog.Empty()
	}
	return cat
}

// newStore 按配置初始化持久化存储，返回存储实例与清理函数。
// postgres / redis 后端连接失败时降级为内存存储：选课功能完整可用，
// 仅跨会话持久化失效。
func newStore(cfg *config.Config, logger *zap.Logger) (store.Store, func()) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.NewDB(&cfg.Store.Database, logger)
		if err != nil {
			logger.Warn("数据库连接失败，降级为内存存储", zap.Error(err))
			return store.NewMemory(), func() {}
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Warn("获取底层 sql.DB 失败，降级为内存存储", zap.Error(err))
			return store.NewMemory(), func() {}
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Warn("数据库迁移失败，降级为内存存储", zap.Error(err))
			sqlDB.Close()
			return store.NewMemory(), func() {}
		}
		return store.NewGorm(db), func() { sqlDB.Close() }

	case "redis":
		rdb, err := appredis.NewClient(&cfg.Store.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，降级为内存存储", zap.Error(err))
			return store.NewMemory(), func() {}
		}
		return store.NewRedis(rdb), func() { rdb.Close() }

	default:
		logger.Info("使用内存存储，选课状态不跨进程保留")
		return store.NewMemory(), func() {}
	}
}
