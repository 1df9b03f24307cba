package board

import (
	"testing"
	"time"
)

// 测试公共工具：自增 ID 生成器 + 固定时钟
func seqGen() IDGen {
	var next uint64
	return func() uint64 {
		next++
		return next
	}
}

var t0 = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func testUser(id uint64, lv int) User {
	return User{ID: id, ScreenName: "user", Lv: lv, Point: 0}
}

func mustTopic(t *testing.T, r Rules, u User, now time.Time, gen IDGen) (Topic, User) {
	t.Helper()
	tc, err := NewTopicNormal(r, "测试话题", []string{"test"}, "正文", u, now, gen)
	if err != nil {
		t.Fatalf("create topic: %v", err)
	}
	return tc.Topic, tc.User
}
