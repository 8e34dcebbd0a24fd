package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"timetable-viewer/config"
	"timetable-viewer/internal/ledger"
	"timetable-viewer/internal/model"
	"timetable-viewer/internal/schedule"
)

// ── 导出模块业务错误 ──

var (
	ErrExportBusy         = errors.New("已有导出任务进行中，请稍候")
	ErrExportNoSelection  = errors.New("尚未选中任何课程，无内容可导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 两种导出：ICS 日历文件（逐时段生成周重复事件）与
//     Excel 网格快照（周一至周五 × 半小时行的周历画面）。
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入。
//   - 导出不接受并发：忙标记以 CAS 获取、defer 释放，
//     成功与失败路径都保证清除；进行中收到第二个请求直接拒绝。
type ExportService interface {
	// ExportICS 导出 ICS 日历文件
	ExportICS(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportGrid 导出周历网格为 Excel
	ExportGrid(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	led    *ledger.Ledger
	grid   schedule.Grid
	cfg    *config.ExportConfig
	logger *zap.Logger
	busy   atomic.Bool
	now    func() time.Time // 注入时钟便于测试
}

// NewExportService 创建 ExportService 实例
func NewExportService(led *ledger.Ledger, grid schedule.Grid, cfg *config.ExportConfig, logger *zap.Logger) ExportService {
	return &exportService{led: led, grid: grid, cfg: cfg, logger: logger, now: time.Now}
}

// acquire 获取忙标记，返回释放函数；已占用时返回 ok=false
func (s *exportService) acquire() (func(), bool) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, false
	}
	return func() { s.busy.Store(false) }, true
}

// ════════════════════════════════════════════════════════════
// ExportICS — 导出 ICS 日历文件
// ════════════════════════════════════════════════════════════
//
// 每条展平时段生成一个 VEVENT：
//   - UID 由 课程代码+星期+开始时间 派生，稳定可重入
//   - DTSTART/DTEND 取该星期自当下起的下一次出现
//   - RRULE FREQ=WEEKLY，次数封顶（默认 16 次）
//   - SUMMARY "{代码} - {时段类型}"，DESCRIPTION 课程名+教室

func (s *exportService) ExportICS(ctx context.Context) (*bytes.Buffer, string, error) {
	release, ok := s.acquire()
	if !ok {
		return nil, "", ErrExportBusy
	}
	defer release()

	sessions, err := schedule.Materialize(s.led.Courses())
	if err != nil {
		s.logger.Error("展平时段失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSelection
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(s.cfg.ProductID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	now := s.now()
	for _, sess := range sessions {
		start := nextOccurrence(now, sess.DayOfWeek, sess.StartMinutes)
		end := nextOccurrence(now, sess.DayOfWeek, sess.EndMinutes)

		event := cal.AddEvent(sessionUID(sess))
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s - %s", sess.CourseCode, sess.Label))
		event.SetDescription(fmt.Sprintf("%s (%s)", sess.CourseName, sess.Classroom))
		event.SetLocation(sess.Classroom)
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", s.cfg.RecurrenceCount))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("课程表_%s.ics", now.Format("20060102"))
	return buf, filename, nil
}

// sessionUID 由课程代码、星期与开始时间派生稳定事件 ID
func sessionUID(sess model.MaterializedSession) string {
	return fmt.Sprintf("%s-%d-%s@timetable-viewer",
		sess.CourseCode, sess.DayOfWeek, strings.ReplaceAll(sess.StartTime, ":", ""))
}

// nextOccurrence 将星期投影到自 now 起的下一次出现（当天即算）
func nextOccurrence(now time.Time, dayOfWeek, minutes int) time.Time {
	isoToday := int(now.Weekday())
	if now.Weekday() == time.Sunday {
		isoToday = 7
	}
	delta := (dayOfWeek - isoToday + 7) % 7
	date := now.AddDate(0, 0, delta)
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, now.Location())
}

// ════════════════════════════════════════════════════════════
// ExportGrid — 导出周历网格为 Excel
// ════════════════════════════════════════════════════════════
//
// 输出格式：
//   - 列头：周一 ~ 周五，行头：自网格原点起的半小时刻度
//   - 单元格：代码 + 时段类型 + 教室，按课程调色板着色
//   - 冲突时段红色填充
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

// gridPalette 与前端调色板对应的 10 色十六进制填充
var gridPalette = [ledger.PaletteSize]string{
	"#AEC6CF", "#FFB347", "#B39EB5", "#77DD77", "#F49AC2",
	"#CFCFC4", "#FDFD96", "#836953", "#779ECB", "#966FD6",
}

const conflictFill = "#FF6961"

// 网格覆盖到 22:00
const gridEndMinutes = 22 * 60

func (s *exportService) ExportGrid(ctx context.Context) (*bytes.Buffer, string, error) {
	release, ok := s.acquire()
	if !ok {
		return nil, "", ErrExportBusy
	}
	defer release()

	sessions, err := schedule.Materialize(s.led.Courses())
	if err != nil {
		s.logger.Error("展平时段失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSelection
	}
	conflicts := schedule.DetectConflicts(sessions)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课程表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽：A 为时间刻度列，B-F 为星期列
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "F", 24)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	f.SetCellValue(sheetName, "A1", "时间")
	for day := model.Monday; day <= model.Friday; day++ {
		cellRef, _ := excelize.CoordinatesToCellName(day+1, 1)
		f.SetCellValue(sheetName, cellRef, model.DayNames[day])
	}
	f.SetCellStyle(sheetName, "A1", "F1", headerStyle)

	// 时间刻度行（每半小时一行）
	slotCount := (gridEndMinutes - s.grid.OriginMinutes) / 30
	for i := 0; i < slotCount; i++ {
		min := s.grid.OriginMinutes + i*30
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetCellValue(sheetName, cellRef, fmt.Sprintf("%02d:%02d", min/60, min%60))
	}

	// 时段单元格：按半小时行定位，跨多行纵向合并
	for _, sess := range sessions {
		startRow := (sess.StartMinutes-s.grid.OriginMinutes)/30 + 2
		endRow := (sess.EndMinutes-s.grid.OriginMinutes+29)/30 + 1
		if startRow < 2 {
			// 早于网格原点的时段钉在首行显示
			startRow = 2
		}
		if endRow < startRow {
			endRow = startRow
		}

		col := sess.DayOfWeek + 1
		topRef, _ := excelize.CoordinatesToCellName(col, startRow)
		bottomRef, _ := excelize.CoordinatesToCellName(col, endRow)

		fill := gridPalette[s.colorOf(sess.CourseCode)]
		if conflicts[sess.Index] {
			fill = conflictFill
		}
		cellStyle, _ := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border: []excelize.Border{
				{Type: "left", Color: "888888", Style: 1},
				{Type: "right", Color: "888888", Style: 1},
				{Type: "top", Color: "888888", Style: 1},
				{Type: "bottom", Color: "888888", Style: 1},
			},
		})

		f.MergeCell(sheetName, topRef, bottomRef)
		f.SetCellValue(sheetName, topRef,
			fmt.Sprintf("%s %s\n%s", sess.CourseCode, sess.Label, sess.Classroom))
		f.SetCellStyle(sheetName, topRef, bottomRef, cellStyle)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课程表_%s.xlsx", s.now().Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) colorOf(code string) int {
	idx, ok := s.led.ColorOf(code)
	if !ok || idx < 0 {
		return 0
	}
	return idx % ledger.PaletteSize
}
