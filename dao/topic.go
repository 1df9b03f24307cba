package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Mumei/models"
)

type Topic struct {
	Repo[models.Topic]
}

func NewTopic(db *gorm.DB) *Topic {
	return &Topic{Repo: NewRepo[models.Topic](db)}
}

// ListByAge 按"最近冒泡"排序取活跃话题，游标是上一页最后一条的 age_update
func (d *Topic) ListByAge(ctx context.Context, cursor int64, limit int) ([]*models.Topic, error) {
	var topics []*models.Topic
	query := d.Db.WithContext(ctx).Where("active = ?", true)

	if cursor > 0 {
		query = query.Where("age_update < ?", time.Unix(0, cursor))
	}

	err := query.
		Order("age_update DESC").
		Limit(limit).
		Find(&topics).Error
	return topics, err
}

// ListByTag 标签过滤(JSON 列包含匹配)
func (d *Topic) ListByTag(ctx context.Context, tag string, limit int) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := d.Db.WithContext(ctx).
		Where("active = ? AND JSON_CONTAINS(tags, JSON_QUOTE(?))", true, tag).
		Order("age_update DESC").
		Limit(limit).
		Find(&topics).Error
	return topics, err
}

// ListForks 某个普通话题下的全部分叉
func (d *Topic) ListForks(ctx context.Context, parentID uint64, limit int) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := d.Db.WithContext(ctx).
		Where("parent = ?", parentID).
		Order("date DESC").
		Limit(limit).
		Find(&topics).Error
	return topics, err
}

// ListIdle 失效扫描：更新时间早于截止线的活跃 one/fork 话题
func (d *Topic) ListIdle(ctx context.Context, before time.Time, limit int) ([]*models.Topic, error) {
	var topics []*models.Topic
	err := d.Db.WithContext(ctx).
		Where("active = ? AND type IN (?, ?) AND update_at < ?", true, "one", "fork", before).
		Limit(limit).
		Find(&topics).Error
	return topics, err
}

// UpdateSnapshot 乐观锁写回，同 dao.User
func (d *Topic) UpdateSnapshot(ctx context.Context, m *models.Topic) (bool, error) {
	result := d.Db.WithContext(ctx).Model(&models.Topic{}).
		Where("id = ? AND version = ?", m.ID, m.Version).
		Updates(map[string]interface{}{
			"title":      m.Title,
			"update_at":  m.Update,
			"age_update": m.AgeUpdate,
			"active":     m.Active,
			"res_count":  m.ResCount,
			"tags":       m.Tags,
			"body":       m.Body,
			"version":    m.Version + 1,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
