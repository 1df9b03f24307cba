package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"Mumei/internal/board"
)

// Topic 话题表
type Topic struct {
	ID    uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Type  string `gorm:"type:varchar(8);not null;index" json:"type"` // normal/one/fork
	Title string `gorm:"type:varchar(255);not null" json:"title"`

	Update    time.Time `gorm:"column:update_at;index" json:"update"`
	Date      time.Time `gorm:"column:date" json:"date"`
	AgeUpdate time.Time `gorm:"column:age_update;index" json:"age_update"` // "最近冒泡"排序键
	Active    bool      `gorm:"default:true;index" json:"active"`
	ResCount  int       `gorm:"default:0" json:"res_count"`

	// normal/one
	Tags datatypes.JSON `gorm:"type:json" json:"tags"`
	Body string         `gorm:"type:text" json:"body"`

	// fork
	Parent uint64 `gorm:"index;default:0" json:"parent,omitempty"`

	Version uint64 `gorm:"default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Topic) TableName() string {
	return "topics"
}

func (t *Topic) ToDomain() (board.Topic, error) {
	var tags []string
	if len(t.Tags) > 0 {
		if err := json.Unmarshal(t.Tags, &tags); err != nil {
			return board.Topic{}, err
		}
	}
	return board.Topic{
		ID:        t.ID,
		Type:      board.TopicType(t.Type),
		Title:     t.Title,
		Update:    t.Update,
		Date:      t.Date,
		AgeUpdate: t.AgeUpdate,
		Active:    t.Active,
		ResCount:  t.ResCount,
		Tags:      tags,
		Body:      t.Body,
		Parent:    t.Parent,
	}, nil
}

func TopicFromDomain(s board.Topic) (*Topic, error) {
	tags, err := json.Marshal(s.Tags)
	if err != nil {
		return nil, err
	}
	return &Topic{
		ID:        s.ID,
		Type:      string(s.Type),
		Title:     s.Title,
		Update:    s.Update,
		Date:      s.Date,
		AgeUpdate: s.AgeUpdate,
		Active:    s.Active,
		ResCount:  s.ResCount,
		Tags:      tags,
		Body:      s.Body,
		Parent:    s.Parent,
	}, nil
}

// ApplySnapshot 覆盖可变字段(编辑/收帖/失效)，ID 和 Type 创建后不变
func (t *Topic) ApplySnapshot(s board.Topic) error {
	tags, err := json.Marshal(s.Tags)
	if err != nil {
		return err
	}
	t.Title = s.Title
	t.Update = s.Update
	t.AgeUpdate = s.AgeUpdate
	t.Active = s.Active
	t.ResCount = s.ResCount
	t.Tags = tags
	t.Body = s.Body
	return nil
}
