package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Mumei/internal/board"
)

// Repo 通用仓储，各 DAO 内嵌复用
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Create(ctx context.Context, entity *T) error {
	return r.Db.WithContext(ctx).Create(entity).Error
}

func (r *Repo[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	var entity T
	err := r.Db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, board.NewNotFoundError("记录不存在")
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *Repo[T]) IsExist(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var count int64
	err := r.Db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&count).Error
	return count > 0, err
}
