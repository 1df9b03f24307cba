package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Mumei/models"
)

type Res struct {
	Repo[models.Res]
}

func NewRes(db *gorm.DB) *Res {
	return &Res{Repo: NewRepo[models.Res](db)}
}

// ListByTopicCursor 话题内按时间倒序翻页
func (d *Res) ListByTopicCursor(ctx context.Context, topicID uint64, cursor int64, limit int) ([]*models.Res, error) {
	var list []*models.Res
	query := d.Db.WithContext(ctx).Where("topic_id = ?", topicID)

	if cursor > 0 {
		query = query.Where("date < ?", time.Unix(0, cursor))
	}

	err := query.
		Order("date DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// CountReplies 回复聚合：有多少帖子的 reply 指向这条
func (d *Res) CountReplies(ctx context.Context, resID uint64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).Model(&models.Res{}).
		Where("reply_res = ?", resID).
		Count(&count).Error
	return count, err
}

// BatchCountReplies 列表页一次取齐回复数，省 N 次 count
func (d *Res) BatchCountReplies(ctx context.Context, resIDs []uint64) (map[uint64]int64, error) {
	if len(resIDs) == 0 {
		return map[uint64]int64{}, nil
	}

	type row struct {
		ReplyRes uint64
		Cnt      int64
	}
	var rows []row
	err := d.Db.WithContext(ctx).Model(&models.Res{}).
		Select("reply_res, COUNT(*) AS cnt").
		Where("reply_res IN ?", resIDs).
		Group("reply_res").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		counts[r.ReplyRes] = r.Cnt
	}
	return counts, nil
}

// CountByTopic 话题内帖子总数(事件推送带上)
func (d *Res) CountByTopic(ctx context.Context, topicID uint64) (int64, error) {
	var count int64
	err := d.Db.WithContext(ctx).Model(&models.Res{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error
	return count, err
}

// UpdateSnapshot 乐观锁写回：投票与删除状态
func (d *Res) UpdateSnapshot(ctx context.Context, m *models.Res) (bool, error) {
	result := d.Db.WithContext(ctx).Model(&models.Res{}).
		Where("id = ? AND version = ?", m.ID, m.Version).
		Updates(map[string]interface{}{
			"votes":       m.Votes,
			"delete_flag": m.DeleteFlag,
			"version":     m.Version + 1,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
