package board

import "time"

type ResType string

const (
	ResTypeNormal  ResType = "normal"  // 普通发帖
	ResTypeHistory ResType = "history" // 话题编辑记录标记
	ResTypeTopic   ResType = "topic"   // 话题创建标记(首帖)
	ResTypeFork    ResType = "fork"    // 分叉标记(留在父话题里)
)

type DeleteFlag string

const (
	DeleteFlagActive DeleteFlag = "active"
	DeleteFlagSelf   DeleteFlag = "self"   // 作者自删
	DeleteFlagFreeze DeleteFlag = "freeze" // 管理员冻结
)

// Reply 回复指向：同话题内的另一条帖子及其作者
type Reply struct {
	Res  uint64 `json:"res"`
	User uint64 `json:"user"`
}

// Profile 用户自述资料，可附在帖子上
type Profile struct {
	ID   uint64
	User uint64
	Name string
	Text string
}

// Res 帖子快照
// Topic 创建后不可变；变体专属字段只在对应 Type 下有意义
type Res struct {
	ID    uint64
	Topic uint64
	Date  time.Time
	User  uint64
	Votes []Vote
	Lv    int // 帖子自重，创建时固定为作者 lv*5
	Hash  string
	Type  ResType

	// normal
	Name       string
	Text       string
	Reply      *Reply
	DeleteFlag DeleteFlag
	Profile    *uint64
	Age        bool

	// history
	HistoryID uint64

	// fork
	ForkID uint64
}

// ResCreation 发帖产生的三个新快照，由调用方各自持久化
type ResCreation struct {
	Res   Res
	User  User
	Topic Topic
}

func newResBase(r Rules, t Topic, u User, now time.Time, gen IDGen) Res {
	return Res{
		ID:    gen(),
		Topic: t.ID,
		Date:  now,
		User:  u.ID,
		Votes: []Vote{},
		Lv:    u.Lv * 5,
		Hash:  TopicHash(t, u, now, r.Salt),
	}
}

// NewResNormal 用户发帖
// 校验文本与署名 → 资料归属 → 回复目标同话题 → 限流闸门 → 话题收帖
func NewResNormal(r Rules, t Topic, u User, name, text string, reply *Res, profile *Profile, age bool, now time.Time, gen IDGen) (ResCreation, error) {
	if err := validateText("正文", text, r.Text); err != nil {
		return ResCreation{}, err
	}
	if name != "" {
		if err := validateText("署名", name, r.Name); err != nil {
			return ResCreation{}, err
		}
	}
	if profile != nil && profile.User != u.ID {
		return ResCreation{}, NewRightError("不能使用他人的资料")
	}
	if reply != nil && reply.Topic != t.ID {
		return ResCreation{}, NewPrerequisiteError("回复的帖子不在当前话题内")
	}

	u2, err := ChangeLastRes(r, u, now)
	if err != nil {
		return ResCreation{}, err
	}

	res := newResBase(r, t, u2, now, gen)
	res.Type = ResTypeNormal
	res.Name = name
	res.Text = text
	res.DeleteFlag = DeleteFlagActive
	res.Age = age
	if reply != nil {
		res.Reply = &Reply{Res: reply.ID, User: reply.User}
	}
	if profile != nil {
		id := profile.ID
		res.Profile = &id
	}

	t2, err := ResUpdate(t, res)
	if err != nil {
		return ResCreation{}, err
	}

	return ResCreation{Res: res, User: u2, Topic: t2}, nil
}

// NewResHistory 编辑标记帖，由 ChangeData 内部使用
func NewResHistory(r Rules, t Topic, u User, historyID uint64, now time.Time, gen IDGen) (ResCreation, error) {
	res := newResBase(r, t, u, now, gen)
	res.Type = ResTypeHistory
	res.HistoryID = historyID

	t2, err := ResUpdate(t, res)
	if err != nil {
		return ResCreation{}, err
	}
	return ResCreation{Res: res, User: u, Topic: t2}, nil
}

// NewResTopic 话题创建标记帖(首帖)，由话题创建流程内部使用
func NewResTopic(r Rules, t Topic, u User, now time.Time, gen IDGen) (ResCreation, error) {
	res := newResBase(r, t, u, now, gen)
	res.Type = ResTypeTopic

	t2, err := ResUpdate(t, res)
	if err != nil {
		return ResCreation{}, err
	}
	return ResCreation{Res: res, User: u, Topic: t2}, nil
}

// NewResFork 分叉标记帖，落在父话题里指向子话题
func NewResFork(r Rules, parent Topic, fork Topic, u User, now time.Time, gen IDGen) (ResCreation, error) {
	res := newResBase(r, parent, u, now, gen)
	res.Type = ResTypeFork
	res.ForkID = fork.ID

	t2, err := ResUpdate(parent, res)
	if err != nil {
		return ResCreation{}, err
	}
	return ResCreation{Res: res, User: u, Topic: t2}, nil
}

// DeleteRes 作者自删
// 只有作者本人能删，且只能从 active 态删一次；作者等级 -1
func DeleteRes(r Rules, res Res, resOwner User, actor uint64) (Res, User, error) {
	if res.Type != ResTypeNormal {
		return res, resOwner, NewPrerequisiteError("该帖子不可删除")
	}
	if res.User != actor {
		return res, resOwner, NewRightError("不能删除他人的帖子")
	}
	if res.DeleteFlag != DeleteFlagActive {
		return res, resOwner, NewPrerequisiteError("帖子已被删除")
	}

	res.DeleteFlag = DeleteFlagSelf
	resOwner = ChangeLv(r, resOwner, -1)
	return res, resOwner, nil
}

// FreezeRes 管理员冻结，状态迁移与自删相同，不扣作者等级
func FreezeRes(res Res) (Res, error) {
	if res.Type != ResTypeNormal {
		return res, NewPrerequisiteError("该帖子不可冻结")
	}
	if res.DeleteFlag != DeleteFlagActive {
		return res, NewPrerequisiteError("帖子已被删除")
	}
	res.DeleteFlag = DeleteFlagFreeze
	return res, nil
}

type VoteFlag string

const (
	VoteFlagUV  VoteFlag = "uv"
	VoteFlagDV  VoteFlag = "dv"
	VoteFlagNot VoteFlag = "not"
)

// PublicRes 对外可见的帖子形态
// 已删除的帖子只保留骨架，正文/署名/回复/资料一律不输出
type PublicRes struct {
	ID         uint64     `json:"id"`
	Topic      uint64     `json:"topic"`
	Date       time.Time  `json:"date"`
	Hash       string     `json:"hash"`
	Type       ResType    `json:"type"`
	UV         int        `json:"uv"`
	DV         int        `json:"dv"`
	DeleteFlag DeleteFlag `json:"delete_flag,omitempty"`

	Name       string   `json:"name,omitempty"`
	Text       string   `json:"text,omitempty"`
	Reply      *Reply   `json:"reply,omitempty"`
	Profile    *uint64  `json:"profile,omitempty"`
	Age        bool     `json:"age,omitempty"`
	ReplyCount int      `json:"reply_count"`
	VoteFlag   VoteFlag `json:"vote_flag,omitempty"`

	HistoryID uint64 `json:"history,omitempty"`
	ForkID    uint64 `json:"fork,omitempty"`
}

// ToPublicView 生成对外视图
// replyCount 是外部聚合好的"回复了这条帖子的数量"；viewer 为空表示未登录
func ToPublicView(res Res, viewer *uint64, replyCount int) PublicRes {
	uv, dv := TallyVotes(res.Votes)

	p := PublicRes{
		ID:    res.ID,
		Topic: res.Topic,
		Date:  res.Date,
		Hash:  res.Hash,
		Type:  res.Type,
		UV:    uv,
		DV:    dv,
	}

	switch res.Type {
	case ResTypeNormal:
		p.DeleteFlag = res.DeleteFlag
		// 已删除：对任何查看者(包括作者)都不再暴露内容
		if res.DeleteFlag != DeleteFlagActive {
			return p
		}
		p.Name = res.Name
		p.Text = res.Text
		p.Reply = res.Reply
		p.Profile = res.Profile
		p.Age = res.Age
		p.ReplyCount = replyCount
		if viewer != nil {
			p.VoteFlag = voteFlagOf(res.Votes, *viewer)
		}
	case ResTypeHistory:
		p.HistoryID = res.HistoryID
	case ResTypeFork:
		p.ForkID = res.ForkID
	}

	return p
}

func voteFlagOf(votes []Vote, viewer uint64) VoteFlag {
	for _, v := range votes {
		if v.User == viewer {
			if v.Value > 0 {
				return VoteFlagUV
			}
			return VoteFlagDV
		}
	}
	return VoteFlagNot
}
