package utils

import "testing"

func TestGenHashID(t *testing.T) {
	// 1. 同盐同 ID 稳定
	a := GenHashID("salt", 12345)
	if a != GenHashID("salt", 12345) {
		t.Fatal("同输入应产出同 id")
	}

	// 2. 不同 ID 不碰撞
	if a == GenHashID("salt", 12346) {
		t.Fatal("不同 ID 撞了")
	}

	// 3. 不同盐不碰撞
	if a == GenHashID("salt2", 12345) {
		t.Fatal("不同盐撞了")
	}

	// 4. 最小长度
	if len(a) < 12 {
		t.Fatalf("id 太短: %q", a)
	}
}
