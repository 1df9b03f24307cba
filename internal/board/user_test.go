package board

import (
	"testing"
	"time"
)

// 1. 等级收敛：任意幅度的增减之后 lv 都落在 [1, LvMax] 内
func TestChangeLv_Clamp(t *testing.T) {
	r := DefaultRules()
	u := testUser(1, 500)

	for _, delta := range []int{0, 1, -1, 100, -100, 10000, -10000, r.LvMax * 2} {
		got := ChangeLv(r, u, delta)
		if got.Lv < 1 || got.Lv > r.LvMax {
			t.Fatalf("delta=%d: lv=%d 超出 [1,%d]", delta, got.Lv, r.LvMax)
		}
	}

	if got := ChangeLv(r, testUser(1, 1), -10); got.Lv != 1 {
		t.Fatalf("下界收敛失败: lv=%d", got.Lv)
	}
	if got := ChangeLv(r, testUser(1, r.LvMax), 10); got.Lv != r.LvMax {
		t.Fatalf("上界收敛失败: lv=%d", got.Lv)
	}
}

// 2. 发帖闸门要么六个计数器全部 +1，要么全部原样
func TestChangeLastRes_AllOrNothing(t *testing.T) {
	r := DefaultRules()
	u := testUser(1, 1)

	// 放行：六个计数器同时推进，Last 更新
	u2, err := ChangeLastRes(r, u, t0)
	if err != nil {
		t.Fatalf("首次发帖应放行: %v", err)
	}
	w := u2.ResWait
	if w.M10 != 1 || w.M30 != 1 || w.H1 != 1 || w.H6 != 1 || w.H12 != 1 || w.D1 != 1 {
		t.Fatalf("计数器未全部推进: %+v", w)
	}
	if !w.Last.Equal(t0) {
		t.Fatalf("Last 未更新: %v", w.Last)
	}

	// 间隔不足：拒绝且快照完全不变
	u3, err := ChangeLastRes(r, u2, t0.Add(r.Wait.MinSecond-time.Second))
	if err == nil {
		t.Fatal("间隔不足应拒绝")
	}
	if kind, _ := KindOf(err); kind != KindPrerequisite {
		t.Fatalf("错误分类应为 prerequisite: %v", kind)
	}
	if u3.ResWait != u2.ResWait {
		t.Fatalf("拒绝时计数器被部分推进: %+v vs %+v", u3.ResWait, u2.ResWait)
	}
}

// 3. 场景 D：m10 上限为 3 时第 4 帖被拒，窗口清零后恢复
func TestChangeLastRes_WindowLimitAndReset(t *testing.T) {
	r := DefaultRules()
	r.Wait.MaxLv = 1 // coe 恒为 1，窗口上限即配置值
	r.Wait.M10 = 3

	u := testUser(1, 1)
	now := t0

	for i := 0; i < 3; i++ {
		var err error
		u, err = ChangeLastRes(r, u, now)
		if err != nil {
			t.Fatalf("第 %d 帖应放行: %v", i+1, err)
		}
		now = now.Add(r.Wait.MinSecond)
	}

	if _, err := ChangeLastRes(r, u, now); err == nil {
		t.Fatal("第 4 帖应被限流")
	}

	// 外部周期任务清零 m10 之后恢复发帖
	u, err := ResetCounter(u, CounterM10)
	if err != nil {
		t.Fatalf("reset m10: %v", err)
	}
	if _, err := ChangeLastRes(r, u, now); err != nil {
		t.Fatalf("清零后应放行: %v", err)
	}
}

// 4. 等级系数：高等级用户窗口上限按 coe 放大
func TestChangeLastRes_LevelCoefficient(t *testing.T) {
	r := DefaultRules()
	r.Wait.M10 = 2

	// lv = lvMax 时 coe = maxLv = 3，上限 2*3 = 6
	u := testUser(1, r.LvMax)
	now := t0
	for i := 0; i < 5; i++ {
		var err error
		u, err = ChangeLastRes(r, u, now)
		if err != nil {
			t.Fatalf("第 %d 帖应放行(coe 放大): %v", i+1, err)
		}
		now = now.Add(r.Wait.MinSecond)
	}
}

// 5. 话题冷却闸门
func TestChangeLastTopic_Cooldown(t *testing.T) {
	r := DefaultRules()
	u := testUser(1, 1)

	u2, err := ChangeLastTopic(r, u, t0)
	if err != nil {
		t.Fatalf("首次创建应放行: %v", err)
	}
	if _, err := ChangeLastTopic(r, u2, t0.Add(time.Minute)); err == nil {
		t.Fatal("冷却期内应拒绝")
	}
	if _, err := ChangeLastTopic(r, u2, t0.Add(r.TopicCooldown)); err != nil {
		t.Fatalf("冷却结束应放行: %v", err)
	}

	u3, err := ChangeLastOneTopic(r, u, t0)
	if err != nil {
		t.Fatalf("首次创建应放行: %v", err)
	}
	if _, err := ChangeLastOneTopic(r, u3, t0.Add(time.Minute)); err == nil {
		t.Fatal("冷却期内应拒绝")
	}
}

// 6. 点数预算与等级挂钩
func TestUsePoint(t *testing.T) {
	u := testUser(1, 15)

	u2, err := UsePoint(u, 10)
	if err != nil {
		t.Fatalf("lv=15 消耗 10 点应成功: %v", err)
	}
	if u2.Point != 10 {
		t.Fatalf("point=%d, want 10", u2.Point)
	}

	// 累计 10+10 > lv=15，拒绝
	if _, err := UsePoint(u2, 10); err == nil {
		t.Fatal("超出预算应拒绝")
	}

	// 点数清零后恢复
	u3, err := ResetCounter(u2, CounterPoint)
	if err != nil {
		t.Fatalf("reset point: %v", err)
	}
	if _, err := UsePoint(u3, 10); err != nil {
		t.Fatalf("清零后应成功: %v", err)
	}
}

// 7. 未知计数器名报校验错误
func TestResetCounter_Unknown(t *testing.T) {
	_, err := ResetCounter(testUser(1, 1), "m99")
	if err == nil {
		t.Fatal("未知计数器应报错")
	}
	if kind, _ := KindOf(err); kind != KindValidation {
		t.Fatalf("错误分类应为 validation: %v", kind)
	}
}
