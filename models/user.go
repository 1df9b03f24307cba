package models

import (
	"time"

	"Mumei/internal/board"
)

// User 用户表
type User struct {
	// 显式关闭自增，配合手动生成的雪花 ID
	ID         uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ScreenName string `gorm:"type:varchar(32);uniqueIndex:idx_users_screen_name;not null" json:"screen_name"`
	Password   string `gorm:"type:varchar(128);not null" json:"-"` // bcrypt

	Lv    int `gorm:"default:1" json:"lv"`
	Point int `gorm:"default:0" json:"point"`

	// 六窗口限流计数器，列级清零由周期任务批量执行
	ResWaitLast time.Time `gorm:"column:res_wait_last" json:"-"`
	ResWaitM10  int32     `gorm:"column:res_wait_m10;default:0" json:"-"`
	ResWaitM30  int32     `gorm:"column:res_wait_m30;default:0" json:"-"`
	ResWaitH1   int32     `gorm:"column:res_wait_h1;default:0" json:"-"`
	ResWaitH6   int32     `gorm:"column:res_wait_h6;default:0" json:"-"`
	ResWaitH12  int32     `gorm:"column:res_wait_h12;default:0" json:"-"`
	ResWaitD1   int32     `gorm:"column:res_wait_d1;default:0" json:"-"`

	LastTopic    time.Time `json:"-"`
	LastOneTopic time.Time `json:"-"`

	Moderator bool `gorm:"default:false" json:"moderator"`

	// 乐观锁版本号，写回必须带版本条件
	Version uint64 `gorm:"default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ToDomain() board.User {
	return board.User{
		ID:         u.ID,
		ScreenName: u.ScreenName,
		Lv:         u.Lv,
		Point:      u.Point,
		ResWait: board.ResWait{
			Last: u.ResWaitLast,
			M10:  u.ResWaitM10,
			M30:  u.ResWaitM30,
			H1:   u.ResWaitH1,
			H6:   u.ResWaitH6,
			H12:  u.ResWaitH12,
			D1:   u.ResWaitD1,
		},
		LastTopic:    u.LastTopic,
		LastOneTopic: u.LastOneTopic,
		Moderator:    u.Moderator,
	}
}

// ApplySnapshot 用最新领域快照覆盖可变字段，版本号由 DAO 在写回时推进
func (u *User) ApplySnapshot(s board.User) {
	u.Lv = s.Lv
	u.Point = s.Point
	u.ResWaitLast = s.ResWait.Last
	u.ResWaitM10 = s.ResWait.M10
	u.ResWaitM30 = s.ResWait.M30
	u.ResWaitH1 = s.ResWait.H1
	u.ResWaitH6 = s.ResWait.H6
	u.ResWaitH12 = s.ResWait.H12
	u.ResWaitD1 = s.ResWait.D1
	u.LastTopic = s.LastTopic
	u.LastOneTopic = s.LastOneTopic
}
