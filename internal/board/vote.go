package board

type VoteKind string

const (
	VoteUV VoteKind = "uv"
	VoteDV VoteKind = "dv"
)

// Vote 投票记录，每个用户对同一帖子至多一条
// Value 是对外展示/分类用的票面值；Delta 是当时落到作者等级上的增减，
// 取消投票时精确回退 Delta(两者在 dv 场景下刻意不相等)
type Vote struct {
	User  uint64 `json:"user"`
	Value int    `json:"value"`
	Delta int    `json:"delta"`
}

// VoteRes 投票
// 反向重投会先内部取消旧票再落新票，同向重投报错，自投禁止
//
// uv: 票面值 = floor(voterLv/100)+1，作者等级 +票面值
// dv: 票面值 = -min(voterLv, ceil(resLv/3))，作者等级 -(floor(voterLv/100)+1)
// 票面值反映"投票人影响力但受帖子自重封顶"，等级增减是平坦的段位奖惩，
// 二者刻意分开计算，不要合并
func VoteRes(r Rules, res Res, resOwner User, voter User, kind VoteKind) (Res, User, error) {
	if res.User == voter.ID {
		return res, resOwner, NewRightError("不能给自己的帖子投票")
	}

	if prev := findVote(res.Votes, voter.ID); prev != nil {
		same := (prev.Value > 0) == (kind == VoteUV)
		if same {
			return res, resOwner, NewPrerequisiteError("已经投过票了")
		}
		var err error
		res, resOwner, err = CancelVoteRes(r, res, resOwner, voter.ID)
		if err != nil {
			return res, resOwner, err
		}
	}

	tier := voter.Lv/100 + 1

	var value, delta int
	switch kind {
	case VoteUV:
		value = tier
		delta = tier
	case VoteDV:
		mag := ceilDiv(res.Lv, 3)
		if voter.Lv < mag {
			mag = voter.Lv
		}
		value = -mag
		delta = -tier
	default:
		return res, resOwner, NewValidationError("未知的投票类型: " + string(kind))
	}

	votes := make([]Vote, len(res.Votes), len(res.Votes)+1)
	copy(votes, res.Votes)
	res.Votes = append(votes, Vote{User: voter.ID, Value: value, Delta: delta})

	resOwner = ChangeLv(r, resOwner, delta)
	return res, resOwner, nil
}

// CancelVoteRes 取消投票，精确回退当时落在作者等级上的 Delta
func CancelVoteRes(r Rules, res Res, resOwner User, voterID uint64) (Res, User, error) {
	idx := -1
	for i := range res.Votes {
		if res.Votes[i].User == voterID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return res, resOwner, NewPrerequisiteError("尚未投票")
	}

	removed := res.Votes[idx]
	votes := make([]Vote, 0, len(res.Votes)-1)
	votes = append(votes, res.Votes[:idx]...)
	votes = append(votes, res.Votes[idx+1:]...)
	res.Votes = votes

	resOwner = ChangeLv(r, resOwner, -removed.Delta)
	return res, resOwner, nil
}

// TallyVotes 统计赞/踩条数
func TallyVotes(votes []Vote) (uv, dv int) {
	for _, v := range votes {
		if v.Value > 0 {
			uv++
		} else {
			dv++
		}
	}
	return uv, dv
}

func findVote(votes []Vote, userID uint64) *Vote {
	for i := range votes {
		if votes[i].User == userID {
			return &votes[i]
		}
	}
	return nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
