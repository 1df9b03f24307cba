package board

import "time"

// ResWait 六窗口发帖计数器
// 六个计数器要么一起推进要么都不动，由周期任务按窗口各自清零
type ResWait struct {
	Last time.Time
	M10  int32
	M30  int32
	H1   int32
	H6   int32
	H12  int32
	D1   int32
}

// User 用户快照
// 领域层只做纯变换，持久化时整体替换为最新快照
type User struct {
	ID           uint64
	ScreenName   string
	Lv           int
	Point        int
	ResWait      ResWait
	LastTopic    time.Time
	LastOneTopic time.Time
	Moderator    bool
}

// ChangeLastRes 发帖闸门
// coe = (lv/lvMax)*(maxLv-1)+1，等级越高窗口上限越宽
// 所有窗口都未达上限且距上次发帖超过 MinSecond 才放行，全部 +1，否则原样返回错误
func ChangeLastRes(r Rules, u User, now time.Time) (User, error) {
	coe := float64(u.Lv)/float64(r.LvMax)*(r.Wait.MaxLv-1) + 1

	ok := float64(u.ResWait.M10) < float64(r.Wait.M10)*coe &&
		float64(u.ResWait.M30) < float64(r.Wait.M30)*coe &&
		float64(u.ResWait.H1) < float64(r.Wait.H1)*coe &&
		float64(u.ResWait.H6) < float64(r.Wait.H6)*coe &&
		float64(u.ResWait.H12) < float64(r.Wait.H12)*coe &&
		float64(u.ResWait.D1) < float64(r.Wait.D1)*coe &&
		now.Sub(u.ResWait.Last) >= r.Wait.MinSecond

	if !ok {
		return u, NewPrerequisiteError("发帖过于频繁，请稍后再试")
	}

	u.ResWait.M10++
	u.ResWait.M30++
	u.ResWait.H1++
	u.ResWait.H6++
	u.ResWait.H12++
	u.ResWait.D1++
	u.ResWait.Last = now
	return u, nil
}

// ChangeLastTopic 创建普通话题的冷却闸门
func ChangeLastTopic(r Rules, u User, now time.Time) (User, error) {
	if now.Sub(u.LastTopic) < r.TopicCooldown {
		return u, NewPrerequisiteError("话题创建过于频繁，请稍后再试")
	}
	u.LastTopic = now
	return u, nil
}

// ChangeLastOneTopic 创建单发/分叉话题的冷却闸门
func ChangeLastOneTopic(r Rules, u User, now time.Time) (User, error) {
	if now.Sub(u.LastOneTopic) < r.OneTopicCooldown {
		return u, NewPrerequisiteError("话题创建过于频繁，请稍后再试")
	}
	u.LastOneTopic = now
	return u, nil
}

// ChangeLv 调整等级并收敛到 [1, LvMax]，任何输入都不会失败
func ChangeLv(r Rules, u User, delta int) User {
	lv := u.Lv + delta
	if lv < 1 {
		lv = 1
	}
	if lv > r.LvMax {
		lv = r.LvMax
	}
	u.Lv = lv
	return u
}

// UsePoint 消耗点数
// 点数预算与等级挂钩：累计使用量不能超过当前等级
func UsePoint(u User, amount int) (User, error) {
	if u.Lv < u.Point+amount {
		return u, NewPrerequisiteError("等级不足，点数已用完")
	}
	u.Point += amount
	return u, nil
}

// 计数器字段名，周期任务按名清零
const (
	CounterM10   = "m10"
	CounterM30   = "m30"
	CounterH1    = "h1"
	CounterH6    = "h6"
	CounterH12   = "h12"
	CounterD1    = "d1"
	CounterPoint = "point"
)

// ResetCounter 清零单个窗口计数器(纯变换，全量清零由 DAO 批量执行)
func ResetCounter(u User, name string) (User, error) {
	switch name {
	case CounterM10:
		u.ResWait.M10 = 0
	case CounterM30:
		u.ResWait.M30 = 0
	case CounterH1:
		u.ResWait.H1 = 0
	case CounterH6:
		u.ResWait.H6 = 0
	case CounterH12:
		u.ResWait.H12 = 0
	case CounterD1:
		u.ResWait.D1 = 0
	case CounterPoint:
		u.Point = 0
	default:
		return u, NewValidationError("未知的计数器: " + name)
	}
	return u, nil
}
