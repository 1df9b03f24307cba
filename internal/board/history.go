package board

import "time"

// History 普通话题的不可变版本快照，每次编辑追加一条，创建时也落初始版
type History struct {
	ID    uint64
	Topic uint64
	Title string
	Tags  []string
	Body  string
	Date  time.Time
	Hash  string
	User  uint64
}

func NewHistory(r Rules, t Topic, u User, now time.Time, gen IDGen) History {
	return History{
		ID:    gen(),
		Topic: t.ID,
		Title: t.Title,
		Tags:  append([]string{}, t.Tags...),
		Body:  t.Body,
		Date:  now,
		Hash:  TopicHash(t, u, now, r.Salt),
		User:  u.ID,
	}
}
