package dao

import (
	"context"

	"gorm.io/gorm"

	"Mumei/models"
)

type History struct {
	Repo[models.History]
}

func NewHistory(db *gorm.DB) *History {
	return &History{Repo: NewRepo[models.History](db)}
}

// ListByTopic 话题的全部版本，新的在前
func (d *History) ListByTopic(ctx context.Context, topicID uint64) ([]*models.History, error) {
	var list []*models.History
	err := d.Db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("date DESC").
		Find(&list).Error
	return list, err
}
