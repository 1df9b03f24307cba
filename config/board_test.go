package config

import (
	"testing"
	"time"

	"Mumei/internal/board"
)

func TestBoardRulesDefaults(t *testing.T) {
	// 1. 空配置全部回落默认值
	var b *Board
	r := b.Rules()
	d := board.DefaultRules()
	if r.Title != d.Title || r.Wait != d.Wait || r.LvMax != d.LvMax {
		t.Fatalf("空配置应等于默认规则: %+v", r)
	}
}

func TestBoardRulesOverride(t *testing.T) {
	b := &Board{
		Title: TextRule{Max: 50},
		Wait:  WaitRule{MinSecond: 10, M10: 3},
		Salt:  "s",
	}
	r := b.Rules()

	// 1. 覆盖的字段生效
	if r.Title.Max != 50 {
		t.Fatalf("title.max = %d", r.Title.Max)
	}
	if r.Wait.MinSecond != 10*time.Second || r.Wait.M10 != 3 {
		t.Fatalf("wait 覆盖失败: %+v", r.Wait)
	}
	if r.Salt != "s" {
		t.Fatalf("salt = %q", r.Salt)
	}

	// 2. 未覆盖的保持默认
	d := board.DefaultRules()
	if r.Title.Min != d.Title.Min || r.Wait.M30 != d.Wait.M30 || r.EditCost != d.EditCost {
		t.Fatalf("未覆盖字段被改动: %+v", r)
	}
}
