package catalog

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

const testCatalogJSON = `[
  {
    "course_code": "CS101",
    "course_name": "程序设计基础",
    "classroom": "A-201",
    "sessions": [
      {"day_of_week": 1, "start_time": "08:00", "end_time": "09:40", "label": "Lecture"},
      {"day_of_week": 3, "start_time": "14:00", "end_time": "15:40", "label": "Lab", "slot_code": "W3"}
    ]
  },
  {
    "course_code": "MA102",
    "course_name": "线性代数",
    "classroom": "B-105",
    "sessions": [
      {"day_of_week": 2, "start_time": "10:00", "end_time": "11:40", "label": "Lecture"}
    ]
  }
]`

func TestParse_Basic(t *testing.T) {
	c, err := Parse(strings.NewReader(testCatalogJSON), zap.NewNop())
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("期望 2 门课程, 实际 %d 门", c.Len())
	}

	course, ok := c.GetByCode("CS101")
	if !ok {
		t.Fatal("未找到 CS101")
	}
	if course.CourseName != "程序设计基础" {
		t.Errorf("课程名期望 程序设计基础, 实际 %s", course.CourseName)
	}
	if len(course.Sessions) != 2 {
		t.Errorf("CS101 时段数期望 2, 实际 %d", len(course.Sessions))
	}
}

// 非法课程在入口处整体剔除，不影响其余课程
func TestParse_InvalidCoursesDropped(t *testing.T) {
	bad := `[
      {"course_code": "OK1", "course_name": "正常课程",
       "sessions": [{"day_of_week": 1, "start_time": "08:00", "end_time": "09:00"}]},
      {"course_code": "BAD1", "course_name": "星期非法",
       "sessions": [{"day_of_week": 6, "start_time": "08:00", "end_time": "09:00"}]},
      {"course_code": "BAD2", "course_name": "时间格式错误",
       "sessions": [{"day_of_week": 1, "start_time": "8am", "end_time": "09:00"}]},
      {"course_code": "BAD3", "course_name": "结束不晚于开始",
       "sessions": [{"day_of_week": 1, "start_time": "10:00", "end_time": "10:00"}]},
      {"course_code": "", "course_name": "代码为空", "sessions": []}
    ]`

	c, err := Parse(strings.NewReader(bad), zap.NewNop())
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("期望仅保留 1 门合法课程, 实际 %d 门", c.Len())
	}
	if _, ok := c.GetByCode("OK1"); !ok {
		t.Error("合法课程 OK1 应保留")
	}
}

func TestParse_DuplicateCodeDropped(t *testing.T) {
	dup := `[
      {"course_code": "CS101", "course_name": "第一次出现", "sessions": []},
      {"course_code": "CS101", "course_name": "重复出现", "sessions": []}
    ]`
	c, err := Parse(strings.NewReader(dup), zap.NewNop())
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}
	if c.Len() != 1 {
		t.Fatalf("重复代码期望仅保留首条, 实际 %d 条", c.Len())
	}
	course, _ := c.GetByCode("CS101")
	if course.CourseName != "第一次出现" {
		t.Errorf("应保留首次出现的条目, 实际 %s", course.CourseName)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	if _, err := Parse(strings.NewReader("{not json"), zap.NewNop()); err == nil {
		t.Fatal("非法 JSON 期望返回错误")
	}
}

func TestSearch(t *testing.T) {
	c, err := Parse(strings.NewReader(testCatalogJSON), zap.NewNop())
	if err != nil {
		t.Fatalf("Parse 失败: %v", err)
	}

	if got := c.Search("cs1"); len(got) != 1 || got[0].CourseCode != "CS101" {
		t.Errorf("按代码子串搜索期望命中 CS101, 实际: %v", got)
	}
	if got := c.Search("线性"); len(got) != 1 || got[0].CourseCode != "MA102" {
		t.Errorf("按名称子串搜索期望命中 MA102, 实际: %v", got)
	}
	if got := c.Search(""); len(got) != 2 {
		t.Errorf("空查询期望返回全部, 实际 %d 条", len(got))
	}
	if got := c.Search("不存在"); len(got) != 0 {
		t.Errorf("无命中查询期望返回空, 实际 %d 条", len(got))
	}
}
