package board

import (
	"testing"
	"time"
)

// 1. 同一用户同一天同一话题 -> 同一哈希，与时分秒无关
func TestHashName_SameDay(t *testing.T) {
	morning := time.Date(2026, 8, 1, 0, 0, 1, 0, time.UTC)
	night := time.Date(2026, 8, 1, 23, 59, 59, 0, time.UTC)

	a := HashName(1, 100, morning, "salt")
	b := HashName(1, 100, night, "salt")
	if a != b {
		t.Fatalf("同日哈希应一致: %q vs %q", a, b)
	}
	if len(a) != hashNameLen {
		t.Fatalf("哈希长度=%d, want %d", len(a), hashNameLen)
	}
}

// 2. 用户/话题/日期/盐任一变化 -> 哈希变化
func TestHashName_Distinct(t *testing.T) {
	base := HashName(1, 100, t0, "salt")

	variants := []string{
		HashName(2, 100, t0, "salt"),
		HashName(1, 101, t0, "salt"),
		HashName(1, 100, t0.AddDate(0, 0, 1), "salt"),
		HashName(1, 100, t0, "other"),
	}
	for i, v := range variants {
		if v == base {
			t.Fatalf("变体 %d 与基准哈希相同: %q", i, v)
		}
	}
}

// 3. 拼接字段之间有分隔符，不会因数字拼接产生碰撞
func TestHashName_NoConcatCollision(t *testing.T) {
	// user=12, topic=3 与 user=1, topic=23：若无分隔符两者可能拼出同一串
	a := HashName(12, 3, t0, "salt")
	b := HashName(1, 23, t0, "salt")
	if a == b {
		t.Fatalf("拼接碰撞: %q", a)
	}
}
