package types

import "Mumei/internal/board"

type CreateResRequest struct {
	Topic   uint64 `json:"topic" binding:"required"`
	Name    string `json:"name"`
	Text    string `json:"text" binding:"required"`
	Reply   uint64 `json:"reply"`   // 可选：回复目标帖 ID
	Profile uint64 `json:"profile"` // 可选：挂载的资料 ID
	Age     bool   `json:"age"`
}

type VoteRequest struct {
	Res  uint64 `json:"res" binding:"required"`
	Kind string `json:"kind" binding:"required"` // uv/dv
}

type ResListResponse struct {
	Res        []board.PublicRes `json:"res"`
	NextCursor int64             `json:"next_cursor"`
}

// ResEvent 新帖事件，redis 频道 res:pub 上的消息体
type ResEvent struct {
	ResID    uint64 `json:"res_id"`
	TopicID  uint64 `json:"topic_id"`
	ResCount int64  `json:"res_count"`
}
