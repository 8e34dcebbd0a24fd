package schedule

import "timetable-viewer/internal/model"

// DetectConflicts 找出所有同星期且时间区间重叠的时段对。
//
// 算法为朴素的两两扫描 O(n²)，在选课规模（几十个时段）下足够，
// 刻意不做增量索引或按天排序扫描的优化。
//
// 重叠判定采用半开区间 [start, end)：
//
//	startI < endJ && endI > startJ
//
// 首尾相接（一门 10:00 结束、另一门 10:00 开始）不算冲突。
// 返回以 Index 为键的冲突集合（区别于按值比较，字段完全相同的
// 两个时段仍各自独立计入）。
func DetectConflicts(sessions []model.MaterializedSession) map[int]bool {
	conflicts := make(map[int]bool)
	for i := 0; i < len(sessions); i++ {
		for j := i + 1; j < len(sessions); j++ {
			a, b := &sessions[i], &sessions[j]
			if a.DayOfWeek != b.DayOfWeek {
				continue
			}
			if a.StartMinutes < b.EndMinutes && a.EndMinutes > b.StartMinutes {
				conflicts[a.Index] = true
				conflicts[b.Index] = true
			}
		}
	}
	return conflicts
}
