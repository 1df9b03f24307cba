package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"Mumei/config"
	"Mumei/dao"
	"Mumei/internal/board"
	"Mumei/models"
	"Mumei/pkg/log"
	"Mumei/pkg/snowflake"
	"Mumei/types"
)

// 新帖事件发布的 redis 频道，conn-server 订阅后按话题分发
const channelResPub = "res:pub"

var _ IResService = (*ResService)(nil)

type IResService interface {
	Create(ctx context.Context, userID uint64, req *types.CreateResRequest) (*board.PublicRes, error)
	Get(ctx context.Context, resID uint64, viewer *uint64) (*board.PublicRes, error)
	List(ctx context.Context, topicID uint64, viewer *uint64, cursor int64, limit int) (*types.ResListResponse, error)
	Vote(ctx context.Context, voterID uint64, req *types.VoteRequest) (*board.PublicRes, error)
	CancelVote(ctx context.Context, voterID uint64, resID uint64) (*board.PublicRes, error)
	Delete(ctx context.Context, actorID uint64, resID uint64) (*board.PublicRes, error)
	Freeze(ctx context.Context, resID uint64) (*board.PublicRes, error)
}

type ResService struct {
	Config       *config.Config
	Redis        *redis.Client
	UserDAO      *dao.User
	TopicDAO     *dao.Topic
	ResDAO       *dao.Res
	ProfileDAO   *dao.Profile
	TopicService ITopicService
}

// Create 发帖
// 限流闸门落在用户快照上，闸门提交成功后帖子落库、话题快照重放、事件广播
func (s *ResService) Create(ctx context.Context, userID uint64, req *types.CreateResRequest) (*board.PublicRes, error) {
	rules := s.Config.Board.Rules()

	tm, err := s.TopicDAO.FindByID(ctx, req.Topic)
	if err != nil {
		return nil, err
	}

	var reply *board.Res
	if req.Reply > 0 {
		rm, err := s.ResDAO.FindByID(ctx, req.Reply)
		if err != nil {
			return nil, err
		}
		rd, err := rm.ToDomain()
		if err != nil {
			return nil, err
		}
		reply = &rd
	}

	var profile *board.Profile
	if req.Profile > 0 {
		pm, err := s.ProfileDAO.FindByID(ctx, req.Profile)
		if err != nil {
			return nil, err
		}
		pd := pm.ToDomain()
		profile = &pd
	}

	for attempt := 0; attempt < maxRetry; attempt++ {
		um, err := s.UserDAO.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		t, err := tm.ToDomain()
		if err != nil {
			return nil, err
		}

		creation, err := board.NewResNormal(rules, t, um.ToDomain(),
			req.Name, req.Text, reply, profile, req.Age, time.Now(), snowflake.GenUint64)
		if err != nil {
			return nil, err
		}

		um.ApplySnapshot(creation.User)
		ok, err := s.UserDAO.UpdateSnapshot(ctx, um)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		rm, err := models.ResFromDomain(creation.Res)
		if err != nil {
			return nil, err
		}
		if err := s.ResDAO.Create(ctx, rm); err != nil {
			return nil, err
		}

		// 话题快照重放和事件广播互不依赖，并行收尾
		var wg conc.WaitGroup
		wg.Go(func() {
			if err := s.TopicService.ApplyRes(ctx, creation.Res); err != nil {
				log.L.Warn("topic replay failed",
					zap.Uint64("topic", creation.Res.Topic), zap.Error(err))
			}
		})
		wg.Go(func() {
			s.publish(ctx, creation)
		})
		wg.Wait()

		view := board.ToPublicView(creation.Res, &userID, 0)
		return &view, nil
	}

	return nil, board.NewConflictError("操作冲突，请稍后重试")
}

// publish 新帖事件，尽力而为，失败不影响发帖结果
func (s *ResService) publish(ctx context.Context, creation board.ResCreation) {
	payload, err := json.Marshal(types.ResEvent{
		ResID:    creation.Res.ID,
		TopicID:  creation.Res.Topic,
		ResCount: int64(creation.Topic.ResCount),
	})
	if err != nil {
		return
	}
	if err := s.Redis.Publish(ctx, channelResPub, payload).Err(); err != nil {
		log.L.Warn("res event publish failed",
			zap.Uint64("res", creation.Res.ID), zap.Error(err))
	}
}

func (s *ResService) Get(ctx context.Context, resID uint64, viewer *uint64) (*board.PublicRes, error) {
	rm, err := s.ResDAO.FindByID(ctx, resID)
	if err != nil {
		return nil, err
	}
	rd, err := rm.ToDomain()
	if err != nil {
		return nil, err
	}
	replies, err := s.ResDAO.CountReplies(ctx, resID)
	if err != nil {
		return nil, err
	}
	view := board.ToPublicView(rd, viewer, int(replies))
	return &view, nil
}

// List 话题帖子列表，date 倒序游标分页
func (s *ResService) List(ctx context.Context, topicID uint64, viewer *uint64, cursor int64, limit int) (*types.ResListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	list, err := s.ResDAO.ListByTopicCursor(ctx, topicID, cursor, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(list))
	for _, rm := range list {
		ids = append(ids, rm.ID)
	}
	replyCounts, err := s.ResDAO.BatchCountReplies(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := &types.ResListResponse{Res: make([]board.PublicRes, 0, len(list))}
	for _, rm := range list {
		rd, err := rm.ToDomain()
		if err != nil {
			return nil, err
		}
		resp.Res = append(resp.Res, board.ToPublicView(rd, viewer, int(replyCounts[rm.ID])))
	}
	if len(list) == limit {
		resp.NextCursor = list[len(list)-1].Date.UnixNano()
	}
	return resp, nil
}

// Vote 投票：同向重复报错，反向自动先取消再投
func (s *ResService) Vote(ctx context.Context, voterID uint64, req *types.VoteRequest) (*board.PublicRes, error) {
	kind := board.VoteKind(req.Kind)
	if kind != board.VoteUV && kind != board.VoteDV {
		return nil, board.NewValidationError("kind 只能是 uv 或 dv")
	}

	return s.mutateVotes(ctx, req.Res, voterID, func(rules board.Rules, res board.Res, owner, voter board.User) (board.Res, board.User, error) {
		return board.VoteRes(rules, res, owner, voter, kind)
	})
}

func (s *ResService) CancelVote(ctx context.Context, voterID uint64, resID uint64) (*board.PublicRes, error) {
	return s.mutateVotes(ctx, resID, voterID, func(rules board.Rules, res board.Res, owner, voter board.User) (board.Res, board.User, error) {
		return board.CancelVoteRes(rules, res, owner, voter.ID)
	})
}

func (s *ResService) mutateVotes(ctx context.Context, resID, voterID uint64,
	mutate func(board.Rules, board.Res, board.User, board.User) (board.Res, board.User, error)) (*board.PublicRes, error) {

	rules := s.Config.Board.Rules()

	for attempt := 0; attempt < maxRetry; attempt++ {
		rm, err := s.ResDAO.FindByID(ctx, resID)
		if err != nil {
			return nil, err
		}
		rd, err := rm.ToDomain()
		if err != nil {
			return nil, err
		}
		om, err := s.UserDAO.FindByID(ctx, rd.User)
		if err != nil {
			return nil, err
		}
		vm, err := s.UserDAO.FindByID(ctx, voterID)
		if err != nil {
			return nil, err
		}

		owner := om.ToDomain()
		newRes, newOwner, err := mutate(rules, rd, owner, vm.ToDomain())
		if err != nil {
			return nil, err
		}

		// 票面先落到帖子上(单聚合乐观锁)，作者等级随后按差值结算
		if err := rm.ApplySnapshot(newRes); err != nil {
			return nil, err
		}
		ok, err := s.ResDAO.UpdateSnapshot(ctx, rm)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if err := s.settleOwnerLv(ctx, rd.User, newOwner.Lv-owner.Lv); err != nil {
			return nil, err
		}

		view := board.ToPublicView(newRes, &voterID, 0)
		return &view, nil
	}

	return nil, board.NewConflictError("操作冲突，请稍后重试")
}

// settleOwnerLv 投票/删帖对作者等级的增减
// 帖子聚合已经提交，这里只结算差值，冲突时在新鲜快照上重放
func (s *ResService) settleOwnerLv(ctx context.Context, ownerID uint64, delta int) error {
	if delta == 0 {
		return nil
	}
	rules := s.Config.Board.Rules()

	for attempt := 0; attempt < maxRetry; attempt++ {
		om, err := s.UserDAO.FindByID(ctx, ownerID)
		if err != nil {
			return err
		}
		om.ApplySnapshot(board.ChangeLv(rules, om.ToDomain(), delta))
		ok, err := s.UserDAO.UpdateSnapshot(ctx, om)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return board.NewConflictError("作者等级结算冲突")
}

// Delete 作者自删，帖子进入墓碑态，作者等级 -1
func (s *ResService) Delete(ctx context.Context, actorID uint64, resID uint64) (*board.PublicRes, error) {
	rules := s.Config.Board.Rules()

	for attempt := 0; attempt < maxRetry; attempt++ {
		rm, err := s.ResDAO.FindByID(ctx, resID)
		if err != nil {
			return nil, err
		}
		rd, err := rm.ToDomain()
		if err != nil {
			return nil, err
		}
		om, err := s.UserDAO.FindByID(ctx, rd.User)
		if err != nil {
			return nil, err
		}

		owner := om.ToDomain()
		newRes, newOwner, err := board.DeleteRes(rules, rd, owner, actorID)
		if err != nil {
			return nil, err
		}

		if err := rm.ApplySnapshot(newRes); err != nil {
			return nil, err
		}
		ok, err := s.ResDAO.UpdateSnapshot(ctx, rm)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if err := s.settleOwnerLv(ctx, rd.User, newOwner.Lv-owner.Lv); err != nil {
			return nil, err
		}

		view := board.ToPublicView(newRes, &actorID, 0)
		return &view, nil
	}

	return nil, board.NewConflictError("操作冲突，请稍后重试")
}

// Freeze 管理员冻结，权限在路由层校验
func (s *ResService) Freeze(ctx context.Context, resID uint64) (*board.PublicRes, error) {
	for attempt := 0; attempt < maxRetry; attempt++ {
		rm, err := s.ResDAO.FindByID(ctx, resID)
		if err != nil {
			return nil, err
		}
		rd, err := rm.ToDomain()
		if err != nil {
			return nil, err
		}

		newRes, err := board.FreezeRes(rd)
		if err != nil {
			return nil, err
		}

		if err := rm.ApplySnapshot(newRes); err != nil {
			return nil, err
		}
		ok, err := s.ResDAO.UpdateSnapshot(ctx, rm)
		if err != nil {
			return nil, err
		}
		if ok {
			view := board.ToPublicView(newRes, nil, 0)
			return &view, nil
		}
	}

	return nil, board.NewConflictError("操作冲突，请稍后重试")
}
