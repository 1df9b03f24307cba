package board

import (
	"testing"
	"time"
)

func voteFixture(t *testing.T, ownerLv, resLv int) (Rules, Res, User) {
	t.Helper()
	r := DefaultRules()
	gen := seqGen()
	tp, _ := mustTopic(t, r, testUser(1, 10), t0.Add(-time.Hour), gen)

	owner := testUser(1, ownerLv)
	res := Res{
		ID: gen(), Topic: tp.ID, Date: t0, User: owner.ID,
		Votes: []Vote{}, Lv: resLv, Type: ResTypeNormal, DeleteFlag: DeleteFlagActive,
	}
	return r, res, owner
}

// 1. 场景 B：lv=150 的投票人给 lv=30 的帖子点赞
// 票面值 = floor(150/100)+1 = 2，作者 10 -> 12
func TestVoteRes_UpvoteWeight(t *testing.T) {
	r, res, owner := voteFixture(t, 10, 30)
	voter := testUser(2, 150)

	res2, owner2, err := VoteRes(r, res, owner, voter, VoteUV)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	if len(res2.Votes) != 1 || res2.Votes[0].Value != 2 {
		t.Fatalf("票面值不对: %+v", res2.Votes)
	}
	if owner2.Lv != 12 {
		t.Fatalf("owner.lv=%d, want 12", owner2.Lv)
	}
}

// 2. 场景 C：同一投票人反向改投
// 先内部取消(作者回到 10)，再落踩票：票面值 -min(150, ceil(30/3)) = -10，作者 10-2 = 8
func TestVoteRes_OppositeVoteFlips(t *testing.T) {
	r, res, owner := voteFixture(t, 10, 30)
	voter := testUser(2, 150)

	res, owner, err := VoteRes(r, res, owner, voter, VoteUV)
	if err != nil {
		t.Fatalf("uv: %v", err)
	}

	res, owner, err = VoteRes(r, res, owner, voter, VoteDV)
	if err != nil {
		t.Fatalf("flip dv: %v", err)
	}
	if len(res.Votes) != 1 {
		t.Fatalf("改投后应只剩一条记录: %+v", res.Votes)
	}
	if res.Votes[0].Value != -10 {
		t.Fatalf("踩票票面值=%d, want -10", res.Votes[0].Value)
	}
	if owner.Lv != 8 {
		t.Fatalf("owner.lv=%d, want 8", owner.Lv)
	}
}

// 3. 投票+取消严格回到原点
func TestVoteRes_CancelRoundTrip(t *testing.T) {
	for _, kind := range []VoteKind{VoteUV, VoteDV} {
		r, res, owner := voteFixture(t, 100, 30)
		voter := testUser(2, 250)
		before := owner.Lv

		res2, owner2, err := VoteRes(r, res, owner, voter, kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		res3, owner3, err := CancelVoteRes(r, res2, owner2, voter.ID)
		if err != nil {
			t.Fatalf("%s cancel: %v", kind, err)
		}
		if owner3.Lv != before {
			t.Fatalf("%s: 取消后 lv=%d, want %d", kind, owner3.Lv, before)
		}
		if len(res3.Votes) != 0 {
			t.Fatalf("%s: 取消后仍有投票记录: %+v", kind, res3.Votes)
		}
	}
}

// 4. 同一用户任何操作序列后至多一条投票记录
func TestVoteRes_SingleEntryInvariant(t *testing.T) {
	r, res, owner := voteFixture(t, 100, 30)
	voter := testUser(2, 50)

	steps := []VoteKind{VoteUV, VoteDV, VoteUV, VoteDV}
	for _, kind := range steps {
		var err error
		res, owner, err = VoteRes(r, res, owner, voter, kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		n := 0
		for _, v := range res.Votes {
			if v.User == voter.ID {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("投票记录 %d 条, want 1: %+v", n, res.Votes)
		}
	}
}

// 5. 自投拒绝、同向重投拒绝、未投取消拒绝
func TestVoteRes_Rejections(t *testing.T) {
	r, res, owner := voteFixture(t, 100, 30)

	// 自投
	self := owner
	_, _, err := VoteRes(r, res, owner, self, VoteUV)
	if kind, _ := KindOf(err); kind != KindRight {
		t.Fatalf("自投应报 right 错误: %v", err)
	}

	// 同向重投
	voter := testUser(2, 50)
	res2, owner2, err := VoteRes(r, res, owner, voter, VoteUV)
	if err != nil {
		t.Fatalf("vote: %v", err)
	}
	_, _, err = VoteRes(r, res2, owner2, voter, VoteUV)
	if kind, _ := KindOf(err); kind != KindPrerequisite {
		t.Fatalf("同向重投应报 prerequisite 错误: %v", err)
	}

	// 未投而取消
	_, _, err = CancelVoteRes(r, res, owner, 999)
	if kind, _ := KindOf(err); kind != KindPrerequisite {
		t.Fatalf("未投取消应报 prerequisite 错误: %v", err)
	}
}

// 6. 踩票的票面值受帖子自重封顶，低等级投票人受自身等级封顶
func TestVoteRes_DownvoteCaps(t *testing.T) {
	// ceil(100/3)=34 < voterLv=200 -> 票面值 -34
	r, res, owner := voteFixture(t, 100, 100)
	voter := testUser(2, 200)
	res2, _, err := VoteRes(r, res, owner, voter, VoteDV)
	if err != nil {
		t.Fatalf("dv: %v", err)
	}
	if res2.Votes[0].Value != -34 {
		t.Fatalf("value=%d, want -34", res2.Votes[0].Value)
	}

	// voterLv=3 < ceil(100/3) -> 票面值 -3
	r2, resB, ownerB := voteFixture(t, 100, 100)
	weak := testUser(3, 3)
	resB2, _, err := VoteRes(r2, resB, ownerB, weak, VoteDV)
	if err != nil {
		t.Fatalf("dv: %v", err)
	}
	if resB2.Votes[0].Value != -3 {
		t.Fatalf("value=%d, want -3", resB2.Votes[0].Value)
	}
}
