package schedule

import (
	"fmt"

	"timetable-viewer/internal/model"
)

// Materialize 将已选课程集合展平为时段记录列表。
//
// 顺序约定：外层按选课插入顺序，内层按课程内时段的原始顺序，
// 不过滤、不去重。每条记录按展平顺序获得稳定的 Index。
//
// 教室始终取归属课程的教室，时段自带的教室字段不参与展示。
// 起止时间在此处一次性换算为分钟值，换算失败即返回错误，
// 保证下游冲突检测与布局计算面对的都是合法数据。
func Materialize(courses []model.Course) ([]model.MaterializedSession, error) {
	sessions := make([]model.MaterializedSession, 0, len(courses)*2)
	for _, c := range courses {
		for _, s := range c.Sessions {
			startMin, err := TimeToMinutes(s.StartTime)
			if err != nil {
				return nil, fmt.Errorf("课程 %s 时段开始时间非法: %w", c.CourseCode, err)
			}
			endMin, err := TimeToMinutes(s.EndTime)
			if err != nil {
				return nil, fmt.Errorf("课程 %s 时段结束时间非法: %w", c.CourseCode, err)
			}
			sessions = append(sessions, model.MaterializedSession{
				Index:        len(sessions),
				CourseCode:   c.CourseCode,
				CourseName:   c.CourseName,
				Classroom:    c.Classroom,
				DayOfWeek:    s.DayOfWeek,
				StartTime:    s.StartTime,
				EndTime:      s.EndTime,
				Label:        s.Label,
				SlotCode:     s.SlotCode,
				StartMinutes: startMin,
				EndMinutes:   endMin,
			})
		}
	}
	return sessions, nil
}
