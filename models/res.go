package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"Mumei/internal/board"
)

// Res 帖子表
// 投票列表内嵌为 JSON 列：投票是帖子聚合的一部分，必须随帖子整体做乐观锁写回
type Res struct {
	ID      uint64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	TopicID uint64    `gorm:"column:topic_id;not null;index:idx_res_topic_date" json:"topic"`
	Date    time.Time `gorm:"index:idx_res_topic_date" json:"date"`
	UserID  uint64    `gorm:"column:user_id;not null;index" json:"-"`

	Votes datatypes.JSON `gorm:"type:json" json:"votes"`
	Lv    int            `gorm:"default:0" json:"lv"`
	Hash  string         `gorm:"type:varchar(16);index" json:"hash"`
	Type  string         `gorm:"type:varchar(8);not null" json:"type"` // normal/history/topic/fork

	// normal
	Name       string  `gorm:"type:varchar(64)" json:"name,omitempty"`
	Text       string  `gorm:"type:text" json:"text,omitempty"`
	ReplyRes   *uint64 `gorm:"index:idx_res_reply" json:"reply_res,omitempty"`
	ReplyUser  *uint64 `json:"reply_user,omitempty"`
	DeleteFlag string  `gorm:"type:varchar(8);default:''" json:"delete_flag,omitempty"`
	ProfileID  *uint64 `json:"profile,omitempty"`
	Age        bool    `gorm:"default:false" json:"age"`

	// history
	HistoryID uint64 `gorm:"default:0" json:"history,omitempty"`

	// fork
	ForkID uint64 `gorm:"default:0" json:"fork,omitempty"`

	Version uint64 `gorm:"default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Res) TableName() string {
	return "res"
}

func (r *Res) ToDomain() (board.Res, error) {
	votes := []board.Vote{}
	if len(r.Votes) > 0 {
		if err := json.Unmarshal(r.Votes, &votes); err != nil {
			return board.Res{}, err
		}
	}

	res := board.Res{
		ID:         r.ID,
		Topic:      r.TopicID,
		Date:       r.Date,
		User:       r.UserID,
		Votes:      votes,
		Lv:         r.Lv,
		Hash:       r.Hash,
		Type:       board.ResType(r.Type),
		Name:       r.Name,
		Text:       r.Text,
		DeleteFlag: board.DeleteFlag(r.DeleteFlag),
		Profile:    r.ProfileID,
		Age:        r.Age,
		HistoryID:  r.HistoryID,
		ForkID:     r.ForkID,
	}
	if r.ReplyRes != nil && r.ReplyUser != nil {
		res.Reply = &board.Reply{Res: *r.ReplyRes, User: *r.ReplyUser}
	}
	return res, nil
}

func ResFromDomain(s board.Res) (*Res, error) {
	votes, err := json.Marshal(s.Votes)
	if err != nil {
		return nil, err
	}

	r := &Res{
		ID:         s.ID,
		TopicID:    s.Topic,
		Date:       s.Date,
		UserID:     s.User,
		Votes:      votes,
		Lv:         s.Lv,
		Hash:       s.Hash,
		Type:       string(s.Type),
		Name:       s.Name,
		Text:       s.Text,
		DeleteFlag: string(s.DeleteFlag),
		ProfileID:  s.Profile,
		Age:        s.Age,
		HistoryID:  s.HistoryID,
		ForkID:     s.ForkID,
	}
	if s.Reply != nil {
		res := s.Reply.Res
		user := s.Reply.User
		r.ReplyRes = &res
		r.ReplyUser = &user
	}
	return r, nil
}

// ApplySnapshot 投票/删除状态写回
func (r *Res) ApplySnapshot(s board.Res) error {
	votes, err := json.Marshal(s.Votes)
	if err != nil {
		return err
	}
	r.Votes = votes
	r.DeleteFlag = string(s.DeleteFlag)
	return nil
}
