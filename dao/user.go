package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Mumei/internal/board"
	"Mumei/models"
)

type User struct {
	Repo[models.User]
}

func NewUser(db *gorm.DB) *User {
	return &User{Repo: NewRepo[models.User](db)}
}

// GetByScreenName 登录/查重用
func (d *User) GetByScreenName(ctx context.Context, screenName string) (*models.User, error) {
	var user models.User
	err := d.Db.WithContext(ctx).Where("screen_name = ?", screenName).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, board.NewNotFoundError("用户不存在")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateSnapshot 乐观锁写回：只有版本没变才落盘，返回是否写成功
// 写失败意味着有并发写入，调用方需要整轮重试(重新加载-变换-写回)
func (d *User) UpdateSnapshot(ctx context.Context, m *models.User) (bool, error) {
	result := d.Db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND version = ?", m.ID, m.Version).
		Updates(map[string]interface{}{
			"lv":             m.Lv,
			"point":          m.Point,
			"res_wait_last":  m.ResWaitLast,
			"res_wait_m10":   m.ResWaitM10,
			"res_wait_m30":   m.ResWaitM30,
			"res_wait_h1":    m.ResWaitH1,
			"res_wait_h6":    m.ResWaitH6,
			"res_wait_h12":   m.ResWaitH12,
			"res_wait_d1":    m.ResWaitD1,
			"last_topic":     m.LastTopic,
			"last_one_topic": m.LastOneTopic,
			"version":        m.Version + 1,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// 计数器字段名 -> 列名，周期清零只允许白名单内的列
var counterColumns = map[string]string{
	board.CounterM10:   "res_wait_m10",
	board.CounterM30:   "res_wait_m30",
	board.CounterH1:    "res_wait_h1",
	board.CounterH6:    "res_wait_h6",
	board.CounterH12:   "res_wait_h12",
	board.CounterD1:    "res_wait_d1",
	board.CounterPoint: "point",
}

// ResetCounterAll 全量清零单个窗口计数器(或点数)
// 绝对置零天然幂等，调度器重复触发无副作用
func (d *User) ResetCounterAll(ctx context.Context, counter string) error {
	column, ok := counterColumns[counter]
	if !ok {
		return board.NewValidationError("未知的计数器: " + counter)
	}
	return d.Db.WithContext(ctx).Model(&models.User{}).
		Where("1 = 1").
		Update(column, 0).Error
}
