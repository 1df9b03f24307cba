package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"Mumei/internal/board"
)

// History 话题版本快照表，只插入不更新
type History struct {
	ID      uint64         `gorm:"primaryKey;autoIncrement:false" json:"id"`
	TopicID uint64         `gorm:"column:topic_id;not null;index" json:"topic"`
	Title   string         `gorm:"type:varchar(255);not null" json:"title"`
	Tags    datatypes.JSON `gorm:"type:json" json:"tags"`
	Body    string         `gorm:"type:text" json:"body"`
	Date    time.Time      `json:"date"`
	Hash    string         `gorm:"type:varchar(16)" json:"hash"`
	UserID  uint64         `gorm:"column:user_id;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (History) TableName() string {
	return "histories"
}

func (h *History) ToDomain() (board.History, error) {
	var tags []string
	if len(h.Tags) > 0 {
		if err := json.Unmarshal(h.Tags, &tags); err != nil {
			return board.History{}, err
		}
	}
	return board.History{
		ID:    h.ID,
		Topic: h.TopicID,
		Title: h.Title,
		Tags:  tags,
		Body:  h.Body,
		Date:  h.Date,
		Hash:  h.Hash,
		User:  h.UserID,
	}, nil
}

func HistoryFromDomain(s board.History) (*History, error) {
	tags, err := json.Marshal(s.Tags)
	if err != nil {
		return nil, err
	}
	return &History{
		ID:      s.ID,
		TopicID: s.Topic,
		Title:   s.Title,
		Tags:    tags,
		Body:    s.Body,
		Date:    s.Date,
		Hash:    s.Hash,
		UserID:  s.User,
	}, nil
}
