package types

import "time"

type CreateTopicRequest struct {
	Type   string   `json:"type" binding:"required"` // normal/one/fork
	Title  string   `json:"title" binding:"required"`
	Tags   []string `json:"tags"`
	Body   string   `json:"body"`
	Parent uint64   `json:"parent"` // 仅 fork
}

type EditTopicRequest struct {
	ID    uint64   `json:"id" binding:"required"`
	Title string   `json:"title" binding:"required"`
	Tags  []string `json:"tags"`
	Body  string   `json:"body" binding:"required"`
}

type TopicResponse struct {
	ID        uint64    `json:"id"`
	ShareID   string    `json:"share_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Tags      []string  `json:"tags"`
	Body      string    `json:"body,omitempty"`
	Update    time.Time `json:"update"`
	Date      time.Time `json:"date"`
	AgeUpdate time.Time `json:"age_update"`
	Active    bool      `json:"active"`
	ResCount  int       `json:"res_count"`
	Parent    uint64    `json:"parent,omitempty"`
}

type TopicListResponse struct {
	Topics     []TopicResponse `json:"topics"`
	NextCursor int64           `json:"next_cursor"`
}

type HistoryResponse struct {
	ID    uint64    `json:"id"`
	Topic uint64    `json:"topic"`
	Title string    `json:"title"`
	Tags  []string  `json:"tags"`
	Body  string    `json:"body"`
	Date  time.Time `json:"date"`
	Hash  string    `json:"hash"`
}
