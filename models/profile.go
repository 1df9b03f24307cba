package models

import (
	"time"

	"Mumei/internal/board"
)

// Profile 用户自述资料表，发帖时可选挂载
type Profile struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	UserID uint64 `gorm:"column:user_id;not null;index" json:"-"`
	Name   string `gorm:"type:varchar(64);not null" json:"name"`
	Text   string `gorm:"type:text" json:"text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) ToDomain() board.Profile {
	return board.Profile{
		ID:   p.ID,
		User: p.UserID,
		Name: p.Name,
		Text: p.Text,
	}
}
