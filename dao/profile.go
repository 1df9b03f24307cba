package dao

import (
	"context"

	"gorm.io/gorm"

	"Mumei/models"
)

type Profile struct {
	Repo[models.Profile]
}

func NewProfile(db *gorm.DB) *Profile {
	return &Profile{Repo: NewRepo[models.Profile](db)}
}

func (d *Profile) ListByUser(ctx context.Context, userID uint64) ([]*models.Profile, error) {
	var list []*models.Profile
	err := d.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (d *Profile) Update(ctx context.Context, m *models.Profile) error {
	return d.Db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"name": m.Name,
			"text": m.Text,
		}).Error
}

func (d *Profile) Delete(ctx context.Context, id uint64) error {
	return d.Db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", id).Error
}
