package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"timetable-viewer/internal/catalog"
	"timetable-viewer/internal/dto"
	"timetable-viewer/internal/ledger"
	"timetable-viewer/internal/model"
	"timetable-viewer/internal/schedule"
	"timetable-viewer/internal/store"
)

// ── 时间表模块业务错误 ──

var (
	ErrCourseNotFound = errors.New("课程目录中不存在该课程")
)

// ── TimetableService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 选课账本的每次变更（Select/Remove）都同步写回持久化存储，
//     写失败仅告警，进程以内存状态继续运行。
//   - 周历载荷（GetTimetable）每次从头重算：展平 → 冲突检测 →
//     坐标换算，不做增量更新、不跨请求缓存——选课规模下足够。
//   - Restore 仅在启动且课程目录加载完成后调用一次；持久化状态
//     中已不在目录内的课程代码静默丢弃。
// ─────────────────────────────────────────────────────────────

// TimetableService 时间表模块业务接口
type TimetableService interface {
	// Select 选中课程，已选中时幂等
	Select(ctx context.Context, code string) (*dto.SelectionResponse, error)
	// Remove 取消选中，未选中时为空操作
	Remove(ctx context.Context, code string) (*dto.SelectionResponse, error)
	// GetSelection 当前选课状态
	GetSelection(ctx context.Context) *dto.SelectionResponse
	// GetTimetable 周历渲染载荷
	GetTimetable(ctx context.Context) (*dto.TimetableResponse, error)
	// ListCourses 课程目录（可选子串过滤），附带选中标记
	ListCourses(ctx context.Context, query string) *dto.CourseListResponse
	// Restore 启动时从持久化存储重放选课状态
	Restore(ctx context.Context)
}

type timetableService struct {
	cat    *catalog.Catalog
	led    *ledger.Ledger
	st     store.Store
	grid   schedule.Grid
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(cat *catalog.Catalog, led *ledger.Ledger, st store.Store, grid schedule.Grid, logger *zap.Logger) TimetableService {
	return &timetableService{cat: cat, led: led, st: st, grid: grid, logger: logger}
}

// ════════════════════════════════════════════════════════════
// 选课变更
// ════════════════════════════════════════════════════════════

func (s *timetableService) Select(ctx context.Context, code string) (*dto.SelectionResponse, error) {
	course, ok := s.cat.GetByCode(code)
	if !ok {
		return nil, ErrCourseNotFound
	}

	if s.led.Select(course) {
		s.persist(ctx)
	}
	return s.selectionResponse(), nil
}

func (s *timetableService) Remove(ctx context.Context, code string) (*dto.SelectionResponse, error) {
	if s.led.Remove(code) {
		s.persist(ctx)
	}
	return s.selectionResponse(), nil
}

func (s *timetableService) GetSelection(_ context.Context) *dto.SelectionResponse {
	return s.selectionResponse()
}

// ════════════════════════════════════════════════════════════
// GetTimetable — 周历渲染载荷
// ════════════════════════════════════════════════════════════
//
// 流程（每次变更后渲染方重新拉取，全量重算）：
//  1. 按选课顺序展平为时段列表
//  2. 两两扫描找出同星期的时间重叠
//  3. 逐时段计算网格纵向坐标并附上颜色与冲突标记

func (s *timetableService) GetTimetable(_ context.Context) (*dto.TimetableResponse, error) {
	sessions, err := schedule.Materialize(s.led.Courses())
	if err != nil {
		// 目录在入口处已校验过时间格式，到这里属于数据完整性问题
		s.logger.Error("展平时段失败", zap.Error(err))
		return nil, err
	}

	conflicts := schedule.DetectConflicts(sessions)

	rendered := make([]dto.RenderSessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		layout := s.grid.LayoutOf(sess)
		colorIdx, _ := s.led.ColorOf(sess.CourseCode)
		rendered = append(rendered, dto.RenderSessionResponse{
			Index:      sess.Index,
			CourseCode: sess.CourseCode,
			CourseName: sess.CourseName,
			Classroom:  sess.Classroom,
			DayOfWeek:  sess.DayOfWeek,
			DayName:    model.DayNames[sess.DayOfWeek],
			StartTime:  sess.StartTime,
			EndTime:    sess.EndTime,
			Label:      sess.Label,
			SlotCode:   sess.SlotCode,
			TopOffset:  layout.TopOffset,
			Height:     layout.Height,
			ColorIndex: colorIdx,
			Conflict:   conflicts[sess.Index],
		})
	}

	originMin := s.grid.OriginMinutes
	return &dto.TimetableResponse{
		Sessions:      rendered,
		ConflictCount: len(conflicts),
		GridOrigin:    minutesToTime(originMin),
		PxPerHalfHour: s.grid.PxPerHalfHour,
	}, nil
}

// ════════════════════════════════════════════════════════════
// ListCourses — 课程目录
// ════════════════════════════════════════════════════════════

func (s *timetableService) ListCourses(_ context.Context, query string) *dto.CourseListResponse {
	courses := s.cat.Search(query)
	resp := &dto.CourseListResponse{
		Total:   len(courses),
		Courses: make([]dto.CourseResponse, 0, len(courses)),
	}
	for _, c := range courses {
		resp.Courses = append(resp.Courses, toCourseResponse(c, s.led.Contains(c.CourseCode)))
	}
	return resp
}

// ════════════════════════════════════════════════════════════
// Restore — 启动时重放持久化状态
// ════════════════════════════════════════════════════════════
//
// 两个键各自独立容错：缺失（首次运行）或 JSON 损坏都以
// 空/默认状态继续，绝不让错误越过存储边界中断启动。

func (s *timetableService) Restore(ctx context.Context) {
	codes := s.loadCodes(ctx)
	colors := s.loadColors(ctx)

	courses := make([]model.Course, 0, len(codes))
	dropped := 0
	for _, code := range codes {
		course, ok := s.cat.GetByCode(code)
		if !ok {
			// 持久化选课可能引用已停开的课程，静默丢弃
			dropped++
			continue
		}
		courses = append(courses, course)
	}

	s.led.Restore(courses, colors)

	s.logger.Info("选课状态已恢复",
		zap.Int("restored", len(courses)),
		zap.Int("dropped", dropped),
	)
}

func (s *timetableService) loadCodes(ctx context.Context) []string {
	raw, err := s.st.Get(ctx, store.KeySelected)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			s.logger.Warn("读取已选课程失败，以空选课继续", zap.Error(err))
		}
		return nil
	}
	var codes []string
	if err := json.Unmarshal([]byte(raw), &codes); err != nil {
		s.logger.Warn("已选课程数据损坏，以空选课继续", zap.Error(err))
		return nil
	}
	return codes
}

func (s *timetableService) loadColors(ctx context.Context) map[string]int {
	raw, err := s.st.Get(ctx, store.KeyColors)
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			s.logger.Warn("读取颜色映射失败，以默认颜色继续", zap.Error(err))
		}
		return nil
	}
	var colors map[string]int
	if err := json.Unmarshal([]byte(raw), &colors); err != nil {
		s.logger.Warn("颜色映射数据损坏，以默认颜色继续", zap.Error(err))
		return nil
	}
	return colors
}

// ── 私有辅助方法 ──

// persist 将两个状态 blob 写回存储。
// 写失败（如存储不可用）仅告警，进程以内存状态继续运行。
func (s *timetableService) persist(ctx context.Context) {
	codesJSON, err := json.Marshal(s.led.Codes())
	if err == nil {
		err = s.st.Set(ctx, store.KeySelected, string(codesJSON))
	}
	if err != nil {
		s.logger.Warn("保存已选课程失败，继续以内存状态运行", zap.Error(err))
	}

	colorsJSON, err := json.Marshal(s.led.Colors())
	if err == nil {
		err = s.st.Set(ctx, store.KeyColors, string(colorsJSON))
	}
	if err != nil {
		s.logger.Warn("保存颜色映射失败，继续以内存状态运行", zap.Error(err))
	}
}

func (s *timetableService) selectionResponse() *dto.SelectionResponse {
	return &dto.SelectionResponse{
		Codes:  s.led.Codes(),
		Colors: s.led.Colors(),
	}
}

// ── 响应转换器 ──

func toCourseResponse(c model.Course, selected bool) dto.CourseResponse {
	sessions := make([]dto.CourseSessionResponse, 0, len(c.Sessions))
	for _, sess := range c.Sessions {
		sessions = append(sessions, dto.CourseSessionResponse{
			DayOfWeek: sess.DayOfWeek,
			StartTime: sess.StartTime,
			EndTime:   sess.EndTime,
			Label:     sess.Label,
			SlotCode:  sess.SlotCode,
		})
	}
	return dto.CourseResponse{
		CourseCode: c.CourseCode,
		CourseName: c.CourseName,
		Classroom:  c.Classroom,
		Sessions:   sessions,
		Selected:   selected,
	}
}

func minutesToTime(min int) string {
	if min < 0 {
		min = 0
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
