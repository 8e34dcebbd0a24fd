package ledger

import (
	"testing"

	"timetable-viewer/internal/model"
)

func course(code string) model.Course {
	return model.Course{CourseCode: code, CourseName: "课程 " + code}
}

func TestLedger_SelectAssignsSequentialColors(t *testing.T) {
	l := New()

	l.Select(course("A"))
	l.Select(course("B"))
	l.Select(course("C"))

	for i, code := range []string{"A", "B", "C"} {
		idx, ok := l.ColorOf(code)
		if !ok {
			t.Fatalf("课程 %s 应已分配颜色", code)
		}
		if idx != i {
			t.Errorf("课程 %s 颜色期望 %d, 实际 %d", code, i, idx)
		}
	}
}

func TestLedger_SelectIdempotent(t *testing.T) {
	l := New()

	if !l.Select(course("A")) {
		t.Error("首次选课应返回 true")
	}
	colorBefore, _ := l.ColorOf("A")

	if l.Select(course("A")) {
		t.Error("重复选课应返回 false")
	}
	if l.Len() != 1 {
		t.Errorf("重复选课后账本大小期望 1, 实际 %d", l.Len())
	}
	colorAfter, _ := l.ColorOf("A")
	if colorBefore != colorAfter {
		t.Errorf("重复选课不应改变颜色: %d → %d", colorBefore, colorAfter)
	}
}

func TestLedger_RemoveAbsentIsNoop(t *testing.T) {
	l := New()
	l.Select(course("A"))

	if l.Remove("Z") {
		t.Error("移除未选课程应返回 false")
	}
	if l.Len() != 1 {
		t.Errorf("移除未选课程后账本大小期望 1, 实际 %d", l.Len())
	}
}

// 移除课程后颜色计数器不回退：新课程拿到新下标，不复用旧颜色
func TestLedger_ColorsNotReusedAfterRemove(t *testing.T) {
	l := New()
	l.Select(course("A")) // 颜色 0
	l.Select(course("B")) // 颜色 1
	l.Remove("A")
	l.Select(course("C")) // 颜色 2，而非复用 0

	idx, _ := l.ColorOf("C")
	if idx != 2 {
		t.Errorf("课程 C 颜色期望 2, 实际 %d", idx)
	}
	if _, ok := l.ColorOf("A"); ok {
		t.Error("移除后课程 A 不应再有颜色")
	}
}

func TestLedger_ColorsCycleModuloPalette(t *testing.T) {
	l := New()
	for i := 0; i < PaletteSize+1; i++ {
		l.Select(course(string(rune('A' + i))))
	}
	idx, _ := l.ColorOf(string(rune('A' + PaletteSize)))
	if idx != 0 {
		t.Errorf("第 %d 门课程颜色期望循环回 0, 实际 %d", PaletteSize+1, idx)
	}
}

func TestLedger_InsertionOrderPreserved(t *testing.T) {
	l := New()
	l.Select(course("C"))
	l.Select(course("A"))
	l.Select(course("B"))
	l.Remove("A")

	codes := l.Codes()
	want := []string{"C", "B"}
	if len(codes) != len(want) {
		t.Fatalf("课程数期望 %d, 实际 %d", len(want), len(codes))
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("第 %d 门课程期望 %s, 实际 %s", i, want[i], codes[i])
		}
	}
}

// 恢复 {A:0, B:2} 后计数器为 3，即使下标 1 从未被使用
func TestLedger_RestoreCounterFromMaxColor(t *testing.T) {
	l := New()
	l.Restore(
		[]model.Course{course("A"), course("B")},
		map[string]int{"A": 0, "B": 2},
	)

	l.Select(course("C"))
	idx, _ := l.ColorOf("C")
	if idx != 3 {
		t.Errorf("恢复后新课程颜色期望 3, 实际 %d", idx)
	}
}

func TestLedger_RestoreRoundTrip(t *testing.T) {
	l := New()
	l.Select(course("A"))
	l.Select(course("B"))
	l.Remove("A")
	l.Select(course("C"))

	// 以持久化快照重放出等价账本
	replayed := New()
	var courses []model.Course
	for _, code := range l.Codes() {
		courses = append(courses, course(code))
	}
	replayed.Restore(courses, l.Colors())

	if replayed.Len() != l.Len() {
		t.Fatalf("重放后账本大小期望 %d, 实际 %d", l.Len(), replayed.Len())
	}
	for i, code := range l.Codes() {
		if replayed.Codes()[i] != code {
			t.Errorf("第 %d 门课程期望 %s, 实际 %s", i, code, replayed.Codes()[i])
		}
		want, _ := l.ColorOf(code)
		got, _ := replayed.ColorOf(code)
		if want != got {
			t.Errorf("课程 %s 颜色期望 %d, 实际 %d", code, want, got)
		}
	}
}

func TestLedger_RestoreEmpty(t *testing.T) {
	l := New()
	l.Select(course("A"))
	l.Restore(nil, nil)

	if l.Len() != 0 {
		t.Errorf("空恢复后账本应为空, 实际 %d", l.Len())
	}
	l.Select(course("B"))
	if idx, _ := l.ColorOf("B"); idx != 0 {
		t.Errorf("空恢复后计数器应归零, 新课程颜色期望 0, 实际 %d", idx)
	}
}
