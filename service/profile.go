package service

import (
	"context"

	"Mumei/dao"
	"Mumei/internal/board"
	"Mumei/models"
	"Mumei/pkg/snowflake"
	"Mumei/types"
)

var _ IProfileService = (*ProfileService)(nil)

type IProfileService interface {
	Create(ctx context.Context, userID uint64, req *types.ProfileRequest) (*types.ProfileResponse, error)
	Update(ctx context.Context, userID, profileID uint64, req *types.ProfileRequest) (*types.ProfileResponse, error)
	Delete(ctx context.Context, userID, profileID uint64) error
	List(ctx context.Context, userID uint64) ([]types.ProfileResponse, error)
}

// ProfileService 用户自述资料，发帖时可选挂载
type ProfileService struct {
	ProfileDAO *dao.Profile
}

func (s *ProfileService) Create(ctx context.Context, userID uint64, req *types.ProfileRequest) (*types.ProfileResponse, error) {
	if req.Name == "" {
		return nil, board.NewValidationError("资料名不能为空")
	}
	m := &models.Profile{
		ID:     snowflake.GenUint64(),
		UserID: userID,
		Name:   req.Name,
		Text:   req.Text,
	}
	if err := s.ProfileDAO.Create(ctx, m); err != nil {
		return nil, err
	}
	return profileToResponse(m), nil
}

func (s *ProfileService) Update(ctx context.Context, userID, profileID uint64, req *types.ProfileRequest) (*types.ProfileResponse, error) {
	m, err := s.ProfileDAO.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, board.NewRightError("只能修改自己的资料")
	}
	if req.Name == "" {
		return nil, board.NewValidationError("资料名不能为空")
	}
	m.Name = req.Name
	m.Text = req.Text
	if err := s.ProfileDAO.Update(ctx, m); err != nil {
		return nil, err
	}
	return profileToResponse(m), nil
}

func (s *ProfileService) Delete(ctx context.Context, userID, profileID uint64) error {
	m, err := s.ProfileDAO.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	if m.UserID != userID {
		return board.NewRightError("只能删除自己的资料")
	}
	return s.ProfileDAO.Delete(ctx, profileID)
}

func (s *ProfileService) List(ctx context.Context, userID uint64) ([]types.ProfileResponse, error) {
	list, err := s.ProfileDAO.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]types.ProfileResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *profileToResponse(m))
	}
	return out, nil
}

func profileToResponse(m *models.Profile) *types.ProfileResponse {
	return &types.ProfileResponse{
		ID:   m.ID,
		Name: m.Name,
		Text: m.Text,
	}
}
