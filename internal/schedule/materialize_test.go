package schedule

import (
	"testing"

	"timetable-viewer/internal/model"
)

func TestMaterialize_OrderAndIdentity(t *testing.T) {
	courses := []model.Course{
		{
			CourseCode: "CS101",
			CourseName: "程序设计基础",
			Classroom:  "A-201",
			Sessions: []model.Session{
				{DayOfWeek: model.Monday, StartTime: "08:00", EndTime: "09:40", Label: "Lecture"},
				{DayOfWeek: model.Wednesday, StartTime: "14:00", EndTime: "15:40", Label: "Lab", SlotCode: "W3"},
			},
		},
		{
			CourseCode: "MA102",
			CourseName: "线性代数",
			Classroom:  "B-105",
			Sessions: []model.Session{
				{DayOfWeek: model.Tuesday, StartTime: "10:00", EndTime: "11:40", Label: "Lecture"},
			},
		},
	}

	sessions, err := Materialize(courses)
	if err != nil {
		t.Fatalf("Materialize 失败: %v", err)
	}

	if len(sessions) != 3 {
		t.Fatalf("期望 3 条时段, 实际 %d 条", len(sessions))
	}

	// 外层按选课顺序、内层按时段原始顺序，Index 依次递增
	wantCodes := []string{"CS101", "CS101", "MA102"}
	for i, s := range sessions {
		if s.Index != i {
			t.Errorf("第 %d 条 Index 期望 %d, 实际 %d", i, i, s.Index)
		}
		if s.CourseCode != wantCodes[i] {
			t.Errorf("第 %d 条 CourseCode 期望 %s, 实际 %s", i, wantCodes[i], s.CourseCode)
		}
	}

	if sessions[1].SlotCode != "W3" {
		t.Errorf("SlotCode 期望 W3, 实际 %s", sessions[1].SlotCode)
	}
	if sessions[0].StartMinutes != 480 || sessions[0].EndMinutes != 580 {
		t.Errorf("分钟换算期望 480/580, 实际 %d/%d", sessions[0].StartMinutes, sessions[0].EndMinutes)
	}
}

// 教室始终取课程教室，时段自带教室不参与展示
func TestMaterialize_ClassroomFromCourse(t *testing.T) {
	courses := []model.Course{
		{
			CourseCode: "PH201",
			CourseName: "大学物理",
			Classroom:  "C-301",
			Sessions: []model.Session{
				{DayOfWeek: model.Friday, StartTime: "08:00", EndTime: "09:40", Label: "Lecture", Classroom: "实验楼-402"},
			},
		},
	}

	sessions, err := Materialize(courses)
	if err != nil {
		t.Fatalf("Materialize 失败: %v", err)
	}
	if sessions[0].Classroom != "C-301" {
		t.Errorf("教室期望取课程教室 C-301, 实际 %s", sessions[0].Classroom)
	}
}

func TestMaterialize_MalformedTime(t *testing.T) {
	courses := []model.Course{
		{
			CourseCode: "XX999",
			Sessions: []model.Session{
				{DayOfWeek: model.Monday, StartTime: "8am", EndTime: "09:40"},
			},
		},
	}
	if _, err := Materialize(courses); err == nil {
		t.Fatal("非法时间格式期望返回错误")
	}
}

func TestMaterialize_Empty(t *testing.T) {
	sessions, err := Materialize(nil)
	if err != nil {
		t.Fatalf("Materialize 失败: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("空输入期望 0 条时段, 实际 %d 条", len(sessions))
	}
}
