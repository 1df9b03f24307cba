package board

import (
	"strings"
	"testing"
	"time"
)

// 1. 场景 A：lv=1 用户以 age=true 发帖，帖子自重 5，话题冒泡到 t0
func TestNewResNormal_BumpsTopicAge(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 1), t0.Add(-time.Hour), gen)

	rc, err := NewResNormal(r, tp, u, "", "hello", nil, nil, true, t0, gen)
	if err != nil {
		t.Fatalf("create res: %v", err)
	}
	if rc.Res.Lv != 5 {
		t.Fatalf("res.lv=%d, want 5", rc.Res.Lv)
	}
	if rc.Res.DeleteFlag != DeleteFlagActive {
		t.Fatalf("deleteFlag=%s, want active", rc.Res.DeleteFlag)
	}
	if !rc.Topic.AgeUpdate.Equal(t0) {
		t.Fatalf("ageUpdate=%v, want %v", rc.Topic.AgeUpdate, t0)
	}
	if rc.Res.Hash == "" || rc.Res.Hash != HashName(u.ID, tp.ID, t0, r.Salt) {
		t.Fatalf("匿名哈希不对: %q", rc.Res.Hash)
	}
	// 限流计数器已推进
	if rc.User.ResWait.M10 != 1 {
		t.Fatalf("发帖后计数器未推进: %+v", rc.User.ResWait)
	}
}

// 2. 文本与署名校验
func TestNewResNormal_Validation(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 1), t0.Add(-time.Hour), gen)

	if _, err := NewResNormal(r, tp, u, "", "", nil, nil, true, t0, gen); err == nil {
		t.Fatal("空正文应被拒绝")
	}
	if _, err := NewResNormal(r, tp, u, "", strings.Repeat("x", 5001), nil, nil, true, t0, gen); err == nil {
		t.Fatal("超长正文应被拒绝")
	}
	if _, err := NewResNormal(r, tp, u, strings.Repeat("n", 51), "hello", nil, nil, true, t0, gen); err == nil {
		t.Fatal("超长署名应被拒绝")
	}
}

// 3. 他人资料拒绝、跨话题回复拒绝
func TestNewResNormal_ProfileAndReply(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 1), t0.Add(-time.Hour), gen)

	foreign := &Profile{ID: 99, User: 2}
	_, err := NewResNormal(r, tp, u, "", "hello", nil, foreign, true, t0, gen)
	if kind, _ := KindOf(err); kind != KindRight {
		t.Fatalf("他人资料应报 right 错误: %v", err)
	}

	// 自己的资料放行，且记到帖子上
	own := &Profile{ID: 7, User: u.ID}
	rc, err := NewResNormal(r, tp, u, "", "hello", nil, own, true, t0, gen)
	if err != nil {
		t.Fatalf("本人资料应放行: %v", err)
	}
	if rc.Res.Profile == nil || *rc.Res.Profile != 7 {
		t.Fatalf("资料未附上: %+v", rc.Res.Profile)
	}

	// 回复目标在另一个话题里
	other := Res{ID: gen(), Topic: tp.ID + 1000, User: 2, Type: ResTypeNormal}
	_, err = NewResNormal(r, tp, rc.User, "", "hello", &other, nil, true, t0.Add(time.Minute), gen)
	if kind, _ := KindOf(err); kind != KindPrerequisite {
		t.Fatalf("跨话题回复应报 prerequisite 错误: %v", err)
	}

	// 同话题回复放行，记录目标帖与其作者
	target := Res{ID: gen(), Topic: tp.ID, User: 2, Type: ResTypeNormal}
	rc2, err := NewResNormal(r, tp, rc.User, "", "hello", &target, nil, true, t0.Add(time.Minute), gen)
	if err != nil {
		t.Fatalf("同话题回复应放行: %v", err)
	}
	if rc2.Res.Reply == nil || rc2.Res.Reply.Res != target.ID || rc2.Res.Reply.User != 2 {
		t.Fatalf("回复指向不对: %+v", rc2.Res.Reply)
	}
}

// 4. 自删：仅作者、仅一次，作者等级 -1
func TestDeleteRes(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 10), t0.Add(-time.Hour), gen)

	rc, err := NewResNormal(r, tp, u, "", "hello", nil, nil, true, t0, gen)
	if err != nil {
		t.Fatalf("create res: %v", err)
	}

	// 其他人删不动
	_, _, err = DeleteRes(r, rc.Res, rc.User, 999)
	if kind, _ := KindOf(err); kind != KindRight {
		t.Fatalf("他人删帖应报 right 错误: %v", err)
	}

	res2, owner2, err := DeleteRes(r, rc.Res, rc.User, u.ID)
	if err != nil {
		t.Fatalf("作者自删应成功: %v", err)
	}
	if res2.DeleteFlag != DeleteFlagSelf {
		t.Fatalf("deleteFlag=%s, want self", res2.DeleteFlag)
	}
	if owner2.Lv != rc.User.Lv-1 {
		t.Fatalf("lv=%d, want %d", owner2.Lv, rc.User.Lv-1)
	}

	// 已删除的帖子不能再删
	_, _, err = DeleteRes(r, res2, owner2, u.ID)
	if kind, _ := KindOf(err); kind != KindPrerequisite {
		t.Fatalf("重复删除应报 prerequisite 错误: %v", err)
	}

	// 标记帖没有删除语义
	marker := Res{ID: gen(), Topic: tp.ID, User: u.ID, Type: ResTypeTopic}
	if _, _, err := DeleteRes(r, marker, rc.User, u.ID); err == nil {
		t.Fatal("标记帖不可删除")
	}
}

// 5. 冻结走同一个状态位
func TestFreezeRes(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 10), t0.Add(-time.Hour), gen)
	rc, _ := NewResNormal(r, tp, u, "", "hello", nil, nil, true, t0, gen)

	frozen, err := FreezeRes(rc.Res)
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if frozen.DeleteFlag != DeleteFlagFreeze {
		t.Fatalf("deleteFlag=%s, want freeze", frozen.DeleteFlag)
	}
	if _, err := FreezeRes(frozen); err == nil {
		t.Fatal("重复冻结应报错")
	}
}

// 6. 已删除帖子的对外视图只剩骨架，任何查看者(含作者)都一样
func TestToPublicView_Deleted(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 10), t0.Add(-time.Hour), gen)

	target := Res{ID: gen(), Topic: tp.ID, User: 2, Type: ResTypeNormal}
	profile := &Profile{ID: 7, User: u.ID}
	rc, err := NewResNormal(r, tp, u, "名前", "秘密内容", &target, profile, true, t0, gen)
	if err != nil {
		t.Fatalf("create res: %v", err)
	}

	for _, flag := range []DeleteFlag{DeleteFlagSelf, DeleteFlagFreeze} {
		res := rc.Res
		res.DeleteFlag = flag

		author := u.ID
		for _, viewer := range []*uint64{nil, &author} {
			p := ToPublicView(res, viewer, 3)
			if p.Text != "" || p.Name != "" || p.Reply != nil || p.Profile != nil {
				t.Fatalf("flag=%s: 已删除帖子泄露了内容: %+v", flag, p)
			}
			if p.Hash != res.Hash || p.ID != res.ID || p.DeleteFlag != flag {
				t.Fatalf("flag=%s: 骨架字段缺失: %+v", flag, p)
			}
		}
	}
}

// 7. 活跃帖子的对外视图带回复数和查看者的投票状态
func TestToPublicView_Active(t *testing.T) {
	r := DefaultRules()
	gen := seqGen()
	tp, u := mustTopic(t, r, testUser(1, 10), t0.Add(-time.Hour), gen)
	rc, _ := NewResNormal(r, tp, u, "名前", "内容", nil, nil, true, t0, gen)

	voter := testUser(2, 150)
	res, _, err := VoteRes(r, rc.Res, rc.User, voter, VoteUV)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}

	p := ToPublicView(res, &voter.ID, 4)
	if p.Text != "内容" || p.Name != "名前" {
		t.Fatalf("内容缺失: %+v", p)
	}
	if p.ReplyCount != 4 {
		t.Fatalf("replyCount=%d, want 4", p.ReplyCount)
	}
	if p.UV != 1 || p.DV != 0 {
		t.Fatalf("票数不对: uv=%d dv=%d", p.UV, p.DV)
	}
	if p.VoteFlag != VoteFlagUV {
		t.Fatalf("voteFlag=%s, want uv", p.VoteFlag)
	}

	stranger := uint64(999)
	if got := ToPublicView(res, &stranger, 0).VoteFlag; got != VoteFlagNot {
		t.Fatalf("旁观者 voteFlag=%s, want not", got)
	}
}
