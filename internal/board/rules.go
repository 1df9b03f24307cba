package board

import "time"

// TextRule 文本字段的长度规则
type TextRule struct {
	Min int
	Max int
}

// TagsRule 标签规则：单个标签长度 + 总数量上限
type TagsRule struct {
	Min      int
	Max      int
	MaxCount int
}

// WaitRule 六窗口限流规则
// 每个窗口是一个滑动计数器，上限会按用户等级放大(见 ChangeLastRes)
type WaitRule struct {
	MaxLv     float64       // 等级系数上限，lv=lvMax 时窗口上限放大到 limit*MaxLv
	MinSecond time.Duration // 两次发帖的最小间隔
	M10       int32
	M30       int32
	H1        int32
	H6        int32
	H12       int32
	D1        int32
}

// Rules 领域层全部可配置项，由 config 层从 yaml 注入
type Rules struct {
	Title TextRule
	Tags  TagsRule
	Body  TextRule
	Name  TextRule
	Text  TextRule
	Wait  WaitRule

	LvMax            int           // 用户等级上限
	TopicCooldown    time.Duration // 创建普通话题的冷却
	OneTopicCooldown time.Duration // 创建单发/分叉话题的冷却
	EditCost         int           // 编辑话题消耗的点数
	Salt             string        // 匿名哈希盐，部署机密
}

// DefaultRules 默认规则，测试和示例配置共用
func DefaultRules() Rules {
	return Rules{
		Title: TextRule{Min: 1, Max: 100},
		Tags:  TagsRule{Min: 1, Max: 20, MaxCount: 15},
		Body:  TextRule{Min: 1, Max: 10000},
		Name:  TextRule{Min: 1, Max: 50},
		Text:  TextRule{Min: 1, Max: 5000},
		Wait: WaitRule{
			MaxLv:     3,
			MinSecond: 30 * time.Second,
			M10:       5,
			M30:       10,
			H1:        15,
			H6:        20,
			H12:       35,
			D1:        50,
		},
		LvMax:            1000,
		TopicCooldown:    30 * time.Minute,
		OneTopicCooldown: 10 * time.Minute,
		EditCost:         10,
	}
}

// IDGen 由调用方注入的 ID 生成器，领域层内部不产生任何随机性
type IDGen func() uint64
