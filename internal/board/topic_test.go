package board

import (
	"strings"
	"testing"
	"time"
)

// 1. 普通话题创建：首帖是话题标记，计数为 1，附带初始版本快照
func TestNewTopicNormal(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()

	tc, err := NewTopicNormal(r, "标题", []string{"a", "b"}, "正文", testUser(1, 1), t0, gen)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tp := tc.Topic
	if tp.Type != TopicNormal || !tp.Active {
		t.Fatalf("topic 状态不对: %+v", tp)
	}
	if !tp.Date.Equal(t0) || !tp.Update.Equal(t0) || !tp.AgeUpdate.Equal(t0) {
		t.Fatalf("时间戳未初始化为 now: %+v", tp)
	}
	if tp.ResCount != 1 {
		t.Fatalf("resCount=%d, want 1", tp.ResCount)
	}
	if tc.Res.Type != ResTypeTopic || tc.Res.Topic != tp.ID {
		t.Fatalf("首帖不是话题标记: %+v", tc.Res)
	}
	if tc.History == nil {
		t.Fatal("普通话题创建应落初始版本快照")
	}
	if tc.History.Title != "标题" || tc.History.Body != "正文" || tc.History.Topic != tp.ID {
		t.Fatalf("初始版本快照内容不对: %+v", tc.History)
	}
}

// 2. 字段校验：标题/标签/正文的长度、重复、空白
func TestNewTopicNormal_Validation(t *testing.T) {
	r := DefaultRules()
	u := testUser(1, 1)

	cases := []struct {
		name  string
		title string
		tags  []string
		body  string
	}{
		{"空标题", "", nil, "正文"},
		{"超长标题", strings.Repeat("あ", 101), nil, "正文"},
		{"空正文", "标题", nil, ""},
		{"超长正文", "标题", nil, strings.Repeat("x", 10001)},
		{"标签过多", "标题", make16tags(), "正文"},
		{"标签重复", "标题", []string{"a", "a"}, "正文"},
		{"标签含空白", "标题", []string{"a b"}, "正文"},
		{"标签超长", "标题", []string{strings.Repeat("t", 21)}, "正文"},
	}

	for _, c := range cases {
		_, err := NewTopicNormal(r, c.title, c.tags, c.body, u, t0, seqGen())
		if err == nil {
			t.Fatalf("%s: 应被拒绝", c.name)
		}
		if kind, _ := KindOf(err); kind != KindValidation {
			t.Fatalf("%s: 错误分类应为 validation, got %v", c.name, kind)
		}
	}
}

func make16tags() []string {
	tags := make([]string, 16)
	for i := range tags {
		tags[i] = "t" + strings.Repeat("a", i+1)
	}
	return tags
}

// 3. 收帖：update 总是推进，ageUpdate 只被 age=true 的普通帖推进
func TestResUpdate_AgeSemantics(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 1), t0, gen)

	// sage 帖：update 动，ageUpdate 不动
	later := t0.Add(time.Hour)
	sage := Res{ID: gen(), Topic: tp.ID, Date: later, User: u.ID, Type: ResTypeNormal, Age: false}
	tp2, err := ResUpdate(tp, sage)
	if err != nil {
		t.Fatalf("resUpdate: %v", err)
	}
	if !tp2.Update.Equal(later) {
		t.Fatalf("update 未推进: %v", tp2.Update)
	}
	if !tp2.AgeUpdate.Equal(t0) {
		t.Fatalf("sage 帖不应推进 ageUpdate: %v", tp2.AgeUpdate)
	}

	// age 帖：两者都动
	latest := later.Add(time.Hour)
	age := Res{ID: gen(), Topic: tp.ID, Date: latest, User: u.ID, Type: ResTypeNormal, Age: true}
	tp3, err := ResUpdate(tp2, age)
	if err != nil {
		t.Fatalf("resUpdate: %v", err)
	}
	if !tp3.AgeUpdate.Equal(latest) {
		t.Fatalf("age 帖应推进 ageUpdate: %v", tp3.AgeUpdate)
	}
	if tp3.ResCount != tp.ResCount+2 {
		t.Fatalf("resCount=%d, want %d", tp3.ResCount, tp.ResCount+2)
	}
}

// 4. 失效话题拒绝一切收帖，错误分类恒定
func TestResUpdate_InactiveTopic(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 1), t0, gen)
	tp = Deactivate(tp)

	payloads := []Res{
		{ID: gen(), Topic: tp.ID, Date: t0, User: u.ID, Type: ResTypeNormal, Age: true},
		{ID: gen(), Topic: tp.ID, Date: t0, User: u.ID, Type: ResTypeHistory},
		{ID: gen(), Topic: tp.ID, Date: t0, User: u.ID, Type: ResTypeTopic},
		{ID: gen(), Topic: tp.ID, Date: t0, User: u.ID, Type: ResTypeFork},
	}
	for _, res := range payloads {
		_, err := ResUpdate(tp, res)
		if err == nil {
			t.Fatalf("失效话题应拒绝收帖: %+v", res)
		}
		if kind, _ := KindOf(err); kind != KindPrerequisite {
			t.Fatalf("错误分类应为 prerequisite: %v", kind)
		}
	}
}

// 5. 分叉：父话题必须是普通话题，父话题收下分叉标记帖
func TestNewTopicFork(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	parent, u := mustTopic(t, r, testUser(1, 1), t0, gen)

	tc, err := NewTopicFork(r, "分叉", parent, u, t0.Add(time.Hour), gen)
	if err != nil {
		t.Fatalf("fork: %v", err)
	}
	if tc.Topic.Type != TopicFork || tc.Topic.Parent != parent.ID {
		t.Fatalf("fork topic 不对: %+v", tc.Topic)
	}
	if tc.ParentRes == nil || tc.ParentRes.Type != ResTypeFork || tc.ParentRes.ForkID != tc.Topic.ID {
		t.Fatalf("父话题分叉标记不对: %+v", tc.ParentRes)
	}
	if tc.ParentTopic == nil || tc.ParentTopic.ResCount != parent.ResCount+1 {
		t.Fatalf("父话题未收帖: %+v", tc.ParentTopic)
	}

	// one / fork 话题不可再分叉，且失败前不产生任何状态
	one, err := NewTopicOne(r, "单发", nil, "正文", testUser(2, 1), t0, gen)
	if err != nil {
		t.Fatalf("create one: %v", err)
	}
	if _, err := NewTopicFork(r, "再分叉", one.Topic, testUser(3, 1), t0, gen); err == nil {
		t.Fatal("one 话题不可分叉")
	}
	if _, err := NewTopicFork(r, "再分叉", tc.Topic, testUser(3, 1), t0, gen); err == nil {
		t.Fatal("fork 话题不可分叉")
	}
}

// 6. 编辑话题：花 10 点，替换字段，落版本快照和编辑标记帖
func TestChangeData(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 100), t0, gen)

	later := t0.Add(time.Hour)
	change, err := ChangeData(r, tp, u, "新标题", []string{"new"}, "新正文", later, gen)
	if err != nil {
		t.Fatalf("changeData: %v", err)
	}
	if change.Topic.Title != "新标题" || change.Topic.Body != "新正文" {
		t.Fatalf("字段未替换: %+v", change.Topic)
	}
	if change.User.Point != r.EditCost {
		t.Fatalf("point=%d, want %d", change.User.Point, r.EditCost)
	}
	if change.History.Title != "新标题" || change.History.Topic != tp.ID {
		t.Fatalf("版本快照不对: %+v", change.History)
	}
	if change.Res.Type != ResTypeHistory || change.Res.HistoryID != change.History.ID {
		t.Fatalf("编辑标记帖不对: %+v", change.Res)
	}
	// 编辑不冒泡
	if !change.Topic.AgeUpdate.Equal(tp.AgeUpdate) {
		t.Fatalf("编辑不应推进 ageUpdate: %v", change.Topic.AgeUpdate)
	}

	// 等级不足以支付点数时拒绝
	poor := testUser(2, 5)
	if _, err := ChangeData(r, tp, poor, "t", nil, "b", later, gen); err == nil {
		t.Fatal("点数不足应拒绝")
	}

	// 非普通话题不可编辑
	one, _ := NewTopicOne(r, "单发", nil, "正文", testUser(3, 100), t0, gen)
	if _, err := ChangeData(r, one.Topic, testUser(3, 100), "t", nil, "b", later, gen); err == nil {
		t.Fatal("one 话题不可编辑")
	}
}

// 7. Deactivate 幂等
func TestDeactivate_Idempotent(t *testing.T) {
	r := DefaultRules()
	tp, _ := mustTopic(t, r, testUser(1, 1), t0, seqGen())

	tp = Deactivate(tp)
	tp = Deactivate(tp)
	if tp.Active {
		t.Fatal("话题应失效")
	}
}
