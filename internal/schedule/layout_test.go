package schedule

import (
	"testing"

	"timetable-viewer/internal/model"
)

func layoutSession(startMin, endMin int) model.MaterializedSession {
	return model.MaterializedSession{StartMinutes: startMin, EndMinutes: endMin}
}

func TestLayoutOf_AtGridOrigin(t *testing.T) {
	grid := DefaultGrid()

	// 08:00–09:00，原点 08:00 → 偏移 0、高度 60
	l := grid.LayoutOf(layoutSession(480, 540))
	if l.TopOffset != 0 {
		t.Errorf("TopOffset 期望 0, 实际 %v", l.TopOffset)
	}
	if l.Height != 60 {
		t.Errorf("Height 期望 60, 实际 %v", l.Height)
	}
}

func TestLayoutOf_BeforeOriginNegativeOffset(t *testing.T) {
	grid := DefaultGrid()

	// 07:00 开课，早于原点 → 负偏移，裁剪是渲染方的事
	l := grid.LayoutOf(layoutSession(420, 480))
	if l.TopOffset != -60 {
		t.Errorf("TopOffset 期望 -60, 实际 %v", l.TopOffset)
	}
}

func TestLayoutOf_FractionalHeight(t *testing.T) {
	grid := DefaultGrid()

	// 50 分钟时长 → 50/30*30 = 50 像素，不做取整
	l := grid.LayoutOf(layoutSession(480, 530))
	if l.Height != 50 {
		t.Errorf("Height 期望 50, 实际 %v", l.Height)
	}

	// 10:15 开始 → (615-480)/30*30 = 135
	l = grid.LayoutOf(layoutSession(615, 660))
	if l.TopOffset != 135 {
		t.Errorf("TopOffset 期望 135, 实际 %v", l.TopOffset)
	}
}

func TestLayoutOf_CustomGrid(t *testing.T) {
	grid := Grid{OriginMinutes: 540, PxPerHalfHour: 40}

	// 10:00–11:30，原点 09:00、每半小时 40px
	l := grid.LayoutOf(layoutSession(600, 690))
	if l.TopOffset != 80 {
		t.Errorf("TopOffset 期望 80, 实际 %v", l.TopOffset)
	}
	if l.Height != 120 {
		t.Errorf("Height 期望 120, 实际 %v", l.Height)
	}
}
