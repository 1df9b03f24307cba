package board

import (
	"fmt"
	"regexp"
	"time"
)

type TopicType string

const (
	TopicNormal TopicType = "normal" // 常驻话题，可编辑可分叉
	TopicOne    TopicType = "one"    // 单发话题，24 小时无动静自动失效
	TopicFork   TopicType = "fork"   // 从普通话题分出来的子话题，同 24h 失效规则
)

// Topic 话题快照
// Active=false 之后拒绝一切写入；AgeUpdate 只被"会上浮"的普通帖推进
type Topic struct {
	ID        uint64
	Type      TopicType
	Title     string
	Update    time.Time // 最后活动
	Date      time.Time // 创建时间
	AgeUpdate time.Time // 最后上浮时间，决定"最近冒泡"排序
	Active    bool
	ResCount  int

	// normal/one
	Tags []string
	Body string

	// fork
	Parent uint64
}

// TopicCreation 话题创建的全部产物
type TopicCreation struct {
	Topic   Topic
	Res     Res      // 首帖(话题标记)
	User    User     // 过了冷却闸门之后的用户快照
	History *History // 仅 normal：初始版本快照
	// 仅 fork：父话题收下分叉标记帖后的新快照
	ParentTopic *Topic
	ParentRes   *Res
}

var tagRe = regexp.MustCompile(`^\S+$`)

// NewTopicNormal 创建常驻话题
func NewTopicNormal(r Rules, title string, tags []string, body string, u User, now time.Time, gen IDGen) (TopicCreation, error) {
	if err := validateTopicFields(r, title, tags, body); err != nil {
		return TopicCreation{}, err
	}

	u2, err := ChangeLastTopic(r, u, now)
	if err != nil {
		return TopicCreation{}, err
	}

	t := Topic{
		ID:        gen(),
		Type:      TopicNormal,
		Title:     title,
		Update:    now,
		Date:      now,
		AgeUpdate: now,
		Active:    true,
		ResCount:  0,
		Tags:      append([]string{}, tags...),
		Body:      body,
	}

	genesis, err := NewResTopic(r, t, u2, now, gen)
	if err != nil {
		return TopicCreation{}, err
	}

	h := NewHistory(r, genesis.Topic, u2, now, gen)

	return TopicCreation{
		Topic:   genesis.Topic,
		Res:     genesis.Res,
		User:    u2,
		History: &h,
	}, nil
}

// NewTopicOne 创建单发话题
func NewTopicOne(r Rules, title string, tags []string, body string, u User, now time.Time, gen IDGen) (TopicCreation, error) {
	if err := validateTopicFields(r, title, tags, body); err != nil {
		return TopicCreation{}, err
	}

	u2, err := ChangeLastOneTopic(r, u, now)
	if err != nil {
		return TopicCreation{}, err
	}

	t := Topic{
		ID:        gen(),
		Type:      TopicOne,
		Title:     title,
		Update:    now,
		Date:      now,
		AgeUpdate: now,
		Active:    true,
		ResCount:  0,
		Tags:      append([]string{}, tags...),
		Body:      body,
	}

	genesis, err := NewResTopic(r, t, u2, now, gen)
	if err != nil {
		return TopicCreation{}, err
	}

	return TopicCreation{Topic: genesis.Topic, Res: genesis.Res, User: u2}, nil
}

// NewTopicFork 从普通话题分叉
// 父话题必须是 active 的 normal，失败时不产生任何新状态
// 子话题建好后在父话题里落一条分叉标记帖，父话题随之冒泡
func NewTopicFork(r Rules, title string, parent Topic, u User, now time.Time, gen IDGen) (TopicCreation, error) {
	if parent.Type != TopicNormal {
		return TopicCreation{}, NewPrerequisiteError("只有普通话题可以分叉")
	}
	if !parent.Active {
		return TopicCreation{}, NewPrerequisiteError("话题已失效")
	}
	if err := validateText("标题", title, r.Title); err != nil {
		return TopicCreation{}, err
	}

	u2, err := ChangeLastOneTopic(r, u, now)
	if err != nil {
		return TopicCreation{}, err
	}

	t := Topic{
		ID:        gen(),
		Type:      TopicFork,
		Title:     title,
		Update:    now,
		Date:      now,
		AgeUpdate: now,
		Active:    true,
		ResCount:  0,
		Parent:    parent.ID,
	}

	genesis, err := NewResTopic(r, t, u2, now, gen)
	if err != nil {
		return TopicCreation{}, err
	}

	mark, err := NewResFork(r, parent, genesis.Topic, u2, now, gen)
	if err != nil {
		return TopicCreation{}, err
	}

	return TopicCreation{
		Topic:       genesis.Topic,
		Res:         genesis.Res,
		User:        u2,
		ParentTopic: &mark.Topic,
		ParentRes:   &mark.Res,
	}, nil
}

// ResUpdate 话题收帖，唯一会推进活动时间的路径
// 只有 Age=true 的普通帖会推进 AgeUpdate(sage 帖不冒泡)
func ResUpdate(t Topic, res Res) (Topic, error) {
	if !t.Active {
		return t, NewPrerequisiteError("话题已失效")
	}

	t.Update = res.Date
	if res.Type == ResTypeNormal && res.Age {
		t.AgeUpdate = res.Date
	}
	t.ResCount++
	return t, nil
}

// TopicChange 编辑话题的全部产物
type TopicChange struct {
	Topic   Topic
	Res     Res // 编辑标记帖
	User    User
	History History
}

// ChangeData 编辑普通话题
// 消耗点数 → 重新校验 → 替换字段 → 落版本快照和编辑标记帖
func ChangeData(r Rules, t Topic, u User, title string, tags []string, body string, now time.Time, gen IDGen) (TopicChange, error) {
	if t.Type != TopicNormal {
		return TopicChange{}, NewRightError("只有普通话题可以编辑")
	}

	u2, err := UsePoint(u, r.EditCost)
	if err != nil {
		return TopicChange{}, err
	}

	if err := validateTopicFields(r, title, tags, body); err != nil {
		return TopicChange{}, err
	}

	t.Title = title
	t.Tags = append([]string{}, tags...)
	t.Body = body

	h := NewHistory(r, t, u2, now, gen)

	mark, err := NewResHistory(r, t, u2, h.ID, now, gen)
	if err != nil {
		return TopicChange{}, err
	}

	return TopicChange{Topic: mark.Topic, Res: mark.Res, User: u2, History: h}, nil
}

// TopicHash 以话题为作用域的匿名哈希
func TopicHash(t Topic, u User, date time.Time, salt string) string {
	return HashName(u.ID, t.ID, date, salt)
}

// Deactivate 置为失效，周期任务对闲置超过 24h 的 one/fork 话题调用，可重复执行
func Deactivate(t Topic) Topic {
	t.Active = false
	return t
}

func validateTopicFields(r Rules, title string, tags []string, body string) error {
	if err := validateText("标题", title, r.Title); err != nil {
		return err
	}
	if len(tags) > r.Tags.MaxCount {
		return NewValidationError(fmt.Sprintf("标签最多 %d 个", r.Tags.MaxCount))
	}
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		n := len([]rune(tag))
		if n < r.Tags.Min || n > r.Tags.Max || !tagRe.MatchString(tag) {
			return NewValidationError("标签格式不合法: " + tag)
		}
		if _, dup := seen[tag]; dup {
			return NewValidationError("标签重复: " + tag)
		}
		seen[tag] = struct{}{}
	}
	return validateText("正文", body, r.Body)
}

func validateText(field, s string, rule TextRule) error {
	n := len([]rune(s))
	if n < rule.Min || n > rule.Max {
		return NewValidationError(fmt.Sprintf("%s长度需在 %d-%d 字符之间", field, rule.Min, rule.Max))
	}
	return nil
}
