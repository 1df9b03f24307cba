package config

import (
	"time"

	"Mumei/internal/board"
)

// Board 领域规则配置，全部可在 yaml 里覆盖，缺省值见 board.DefaultRules
type Board struct {
	Title TextRule `json:"title" yaml:"title"`
	Tags  TagsRule `json:"tags" yaml:"tags"`
	Body  TextRule `json:"body" yaml:"body"`
	Name  TextRule `json:"name" yaml:"name"`
	Text  TextRule `json:"text" yaml:"text"`
	Wait  WaitRule `json:"wait" yaml:"wait"`

	LvMax               int    `json:"lv_max" yaml:"lv_max"`
	TopicCooldownSec    int    `json:"topic_cooldown_sec" yaml:"topic_cooldown_sec"`
	OneTopicCooldownSec int    `json:"one_topic_cooldown_sec" yaml:"one_topic_cooldown_sec"`
	EditCost            int    `json:"edit_cost" yaml:"edit_cost"`
	Salt                string `json:"salt" yaml:"salt"`
}

type TextRule struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

type TagsRule struct {
	Min      int `json:"min" yaml:"min"`
	Max      int `json:"max" yaml:"max"`
	MaxCount int `json:"max_count" yaml:"max_count"`
}

type WaitRule struct {
	MaxLv     float64 `json:"max_lv" yaml:"max_lv"`
	MinSecond int     `json:"min_second" yaml:"min_second"`
	M10       int32   `json:"m10" yaml:"m10"`
	M30       int32   `json:"m30" yaml:"m30"`
	H1        int32   `json:"h1" yaml:"h1"`
	H6        int32   `json:"h6" yaml:"h6"`
	H12       int32   `json:"h12" yaml:"h12"`
	D1        int32   `json:"d1" yaml:"d1"`
}

// Rules 把 yaml 配置折算成领域规则，未配置的字段取默认值
func (b *Board) Rules() board.Rules {
	r := board.DefaultRules()
	if b == nil {
		return r
	}

	applyText := func(dst *board.TextRule, src TextRule) {
		if src.Min > 0 {
			dst.Min = src.Min
		}
		if src.Max > 0 {
			dst.Max = src.Max
		}
	}
	applyText(&r.Title, b.Title)
	applyText(&r.Body, b.Body)
	applyText(&r.Name, b.Name)
	applyText(&r.Text, b.Text)

	if b.Tags.Min > 0 {
		r.Tags.Min = b.Tags.Min
	}
	if b.Tags.Max > 0 {
		r.Tags.Max = b.Tags.Max
	}
	if b.Tags.MaxCount > 0 {
		r.Tags.MaxCount = b.Tags.MaxCount
	}

	if b.Wait.MaxLv > 0 {
		r.Wait.MaxLv = b.Wait.MaxLv
	}
	if b.Wait.MinSecond > 0 {
		r.Wait.MinSecond = time.Duration(b.Wait.MinSecond) * time.Second
	}
	if b.Wait.M10 > 0 {
		r.Wait.M10 = b.Wait.M10
	}
	if b.Wait.M30 > 0 {
		r.Wait.M30 = b.Wait.M30
	}
	if b.Wait.H1 > 0 {
		r.Wait.H1 = b.Wait.H1
	}
	if b.Wait.H6 > 0 {
		r.Wait.H6 = b.Wait.H6
	}
	if b.Wait.H12 > 0 {
		r.Wait.H12 = b.Wait.H12
	}
	if b.Wait.D1 > 0 {
		r.Wait.D1 = b.Wait.D1
	}

	if b.LvMax > 0 {
		r.LvMax = b.LvMax
	}
	if b.TopicCooldownSec > 0 {
		r.TopicCooldown = time.Duration(b.TopicCooldownSec) * time.Second
	}
	if b.OneTopicCooldownSec > 0 {
		r.OneTopicCooldown = time.Duration(b.OneTopicCooldownSec) * time.Second
	}
	if b.EditCost > 0 {
		r.EditCost = b.EditCost
	}
	r.Salt = b.Salt

	return r
}
