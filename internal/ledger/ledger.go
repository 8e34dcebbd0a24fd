// Package ledger 维护已选课程的有序账本与颜色分配。
//
// 颜色状态归账本私有，外部只能通过 ColorOf 与各变更操作访问，
// 不存在包级可变状态。
package ledger

import (
	"sync"

	"timetable-viewer/internal/model"
)

// PaletteSize 调色板大小，颜色下标按此取模循环
const PaletteSize = 10

// Ledger 选课账本 — 按插入顺序维护 courseCode → Course 映射，
// 以及每门已选课程的颜色下标。
//
// 变更操作（Select/Remove/Restore）在互斥锁内完整执行，
// 对外表现为顺序化的、不可交错的状态变更。
type Ledger struct {
	mu      sync.Mutex
	order   []string                // 课程代码的插入顺序
	courses map[string]model.Course // courseCode → Course
	colors  map[string]int          // courseCode → 颜色下标 [0, PaletteSize)
	counter int                     // 单调递增的颜色计数器，移除课程时不回退
}

// New 创建空账本
func New() *Ledger {
	return &Ledger{
		courses: make(map[string]model.Course),
		colors:  make(map[string]int),
	}
}

// Select 选中一门课程并分配颜色。
// 课程已在账本中时为幂等空操作，不改变账本大小与已分配的颜色。
// 返回本次调用是否实际发生了变更。
func (l *Ledger) Select(course model.Course) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.courses[course.CourseCode]; ok {
		return false
	}
	l.courses[course.CourseCode] = course
	l.order = append(l.order, course.CourseCode)
	l.colors[course.CourseCode] = l.counter % PaletteSize
	l.counter++
	return true
}

// Remove 移除课程及其颜色。代码不存在时为无错误的空操作。
// 返回本次调用是否实际发生了变更。
func (l *Ledger) Remove(code string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.courses[code]; !ok {
		return false
	}
	delete(l.courses, code)
	delete(l.colors, code)
	for i, c := range l.order {
		if c == code {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// Restore 以持久化状态重放账本，仅在启动时调用。
// courses 需由调用方按持久化顺序、且仅含目录中仍存在的课程传入；
// colors 原样恢复，颜色计数器重置为 max(已有下标, -1) + 1 ——
// 即使中间某个下标从未被使用过。
func (l *Ledger) Restore(courses []model.Course, colors map[string]int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.order = l.order[:0]
	l.courses = make(map[string]model.Course, len(courses))
	l.colors = make(map[string]int, len(courses))
	l.counter = 0

	maxColor := -1
	for _, c := range courses {
		if _, ok := l.courses[c.CourseCode]; ok {
			continue
		}
		l.courses[c.CourseCode] = c
		l.order = append(l.order, c.CourseCode)
		if idx, ok := colors[c.CourseCode]; ok {
			l.colors[c.CourseCode] = idx
		} else {
			// 持久化颜色缺失时就地补分配
			l.colors[c.CourseCode] = len(l.colors) % PaletteSize
		}
	}
	for _, idx := range colors {
		if idx > maxColor {
			maxColor = idx
		}
	}
	l.counter = maxColor + 1
}

// Courses 按插入顺序返回已选课程快照
func (l *Ledger) Courses() []model.Course {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]model.Course, 0, len(l.order))
	for _, code := range l.order {
		result = append(result, l.courses[code])
	}
	return result
}

// Codes 按插入顺序返回已选课程代码快照
func (l *Ledger) Codes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]string, len(l.order))
	copy(result, l.order)
	return result
}

// Colors 返回颜色映射快照
func (l *Ledger) Colors() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make(map[string]int, len(l.colors))
	for code, idx := range l.colors {
		result[code] = idx
	}
	return result
}

// ColorOf 查询课程的颜色下标，课程未选中时返回 ok=false
func (l *Ledger) ColorOf(code string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx, ok := l.colors[code]
	return idx, ok
}

// Contains 课程是否已选中
func (l *Ledger) Contains(code string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.courses[code]
	return ok
}

// Len 账本中的课程数
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.order)
}
