package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"Mumei/config"
	"Mumei/dao"
	"Mumei/internal/board"
	"Mumei/models"
	"Mumei/pkg/jwt"
	"Mumei/pkg/snowflake"
	"Mumei/types"
)

var screenNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.TokenResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.TokenResponse, error)
	Get(ctx context.Context, id uint64) (*types.UserResponse, error)
}

type UserService struct {
	Config  *config.Config
	UserDAO *dao.User
}

// Register 注册用户
// 用户名全局唯一，密码 bcrypt 落库，注册成功直接发 token
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.TokenResponse, error) {
	if !screenNameRe.MatchString(req.ScreenName) {
		return nil, board.NewValidationError("用户名只能是 3~20 位字母数字下划线")
	}
	if len(req.Password) < 6 {
		return nil, board.NewValidationError("密码至少 6 位")
	}

	exists, err := s.UserDAO.IsExist(ctx, "screen_name = ?", req.ScreenName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, board.NewConflictError("用户名已被占用")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:         snowflake.GenUint64(),
		ScreenName: req.ScreenName,
		Password:   string(hashed),
		Lv:         1,
	}
	if err := s.UserDAO.Create(ctx, user); err != nil {
		// 并发注册撞上唯一索引
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, board.NewConflictError("用户名已被占用")
		}
		return nil, err
	}

	return s.issueToken(user)
}

// Login 登录处理
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.TokenResponse, error) {
	user, err := s.UserDAO.GetByScreenName(ctx, req.ScreenName)
	if err != nil {
		if _, ok := board.KindOf(err); ok {
			return nil, board.NewRightError("用户名或密码错误")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, board.NewRightError("用户名或密码错误")
	}

	return s.issueToken(user)
}

func (s *UserService) Get(ctx context.Context, id uint64) (*types.UserResponse, error) {
	user, err := s.UserDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := UserToResponse(user)
	return &resp, nil
}

func (s *UserService) issueToken(user *models.User) (*types.TokenResponse, error) {
	expire := time.Duration(s.Config.Jwt.ExpiresTime) * time.Second
	token, err := jwt.GenerateToken([]byte(s.Config.Jwt.Secret),
		user.ID, user.ScreenName, user.Moderator, "access", expire)
	if err != nil {
		return nil, err
	}
	return &types.TokenResponse{
		Token: token,
		User:  UserToResponse(user),
	}, nil
}

func UserToResponse(user *models.User) types.UserResponse {
	return types.UserResponse{
		ID:         user.ID,
		ScreenName: user.ScreenName,
		Lv:         user.Lv,
		Point:      user.Point,
		Moderator:  user.Moderator,
	}
}
