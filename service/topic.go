package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Mumei/config"
	"Mumei/dao"
	"Mumei/internal/board"
	"Mumei/models"
	"Mumei/pkg/log"
	"Mumei/pkg/snowflake"
	"Mumei/pkg/utils"
	"Mumei/types"
)

const (
	// 乐观锁写回失败时整轮重做(重新加载-变换-写回)的次数上限
	maxRetry = 3

	// 按最近冒泡排序的话题榜，score = age_update 的纳秒时间戳
	keyTopicAge = "topic:age"
)

var _ ITopicService = (*TopicService)(nil)

type ITopicService interface {
	Create(ctx context.Context, userID uint64, req *types.CreateTopicRequest) (*types.TopicResponse, error)
	Edit(ctx context.Context, userID uint64, req *types.EditTopicRequest) (*types.TopicResponse, error)
	Get(ctx context.Context, id uint64) (*types.TopicResponse, error)
	List(ctx context.Context, cursor int64, limit int) (*types.TopicListResponse, error)
	ListByTag(ctx context.Context, tag string, limit int) ([]types.TopicResponse, error)
	ListForks(ctx context.Context, parentID uint64, limit int) ([]types.TopicResponse, error)
	ListHistory(ctx context.Context, topicID uint64) ([]types.HistoryResponse, error)
	ApplyRes(ctx context.Context, res board.Res) error
	Deactivate(ctx context.Context, topicID uint64) error
}

type TopicService struct {
	Config     *config.Config
	Redis      *redis.Client
	UserDAO    *dao.User
	TopicDAO   *dao.Topic
	ResDAO     *dao.Res
	HistoryDAO *dao.History
}

// Create 创建话题
// 用户冷却闸门走乐观锁，闸门提交成功后新建的聚合(话题/首帖/历史)各自落库
func (s *TopicService) Create(ctx context.Context, userID uint64, req *types.CreateTopicRequest) (*types.TopicResponse, error) {
	rules := s.Config.Board.Rules()

	var parent *models.Topic
	if board.TopicType(req.Type) == board.TopicFork {
		var err error
		parent, err = s.TopicDAO.FindByID(ctx, req.Parent)
		if err != nil {
			return nil, err
		}
	}

	for attempt := 0; attempt < maxRetry; attempt++ {
		um, err := s.UserDAO.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		u := um.ToDomain()
		now := time.Now()

		var creation board.TopicCreation
		switch board.TopicType(req.Type) {
		case board.TopicNormal:
			creation, err = board.NewTopicNormal(rules, req.Title, req.Tags, req.Body, u, now, snowflake.GenUint64)
		case board.TopicOne:
			creation, err = board.NewTopicOne(rules, req.Title, req.Tags, req.Body, u, now, snowflake.GenUint64)
		case board.TopicFork:
			var pd board.Topic
			pd, err = parent.ToDomain()
			if err != nil {
				return nil, err
			}
			creation, err = board.NewTopicFork(rules, req.Title, pd, u, now, snowflake.GenUint64)
		default:
			return nil, board.NewValidationError("未知的话题类型")
		}
		if err != nil {
			return nil, err
		}

		// 先提交用户冷却闸门，失败说明并发写入，整轮重做
		um.ApplySnapshot(creation.User)
		ok, err := s.UserDAO.UpdateSnapshot(ctx, um)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		return s.persistCreation(ctx, creation)
	}

	return nil, board.NewConflictError("操作冲突，请稍后重试")
}

func (s *TopicService) persistCreation(ctx context.Context, creation board.TopicCreation) (*types.TopicResponse, error) {
	tm, err := models.TopicFromDomain(creation.Topic)
	if err != nil {
		return nil, err
	}
	if err := s.TopicDAO.Create(ctx, tm); err != nil {
		return nil, err
	}

	rm, err := models.ResFromDomain(creation.Res)
	if err != nil {
		return nil, err
	}
	if err := s.ResDAO.Create(ctx, rm); err != nil {
		return nil, err
	}

	if creation.History != nil {
		hm, err := models.HistoryFromDomain(*creation.History)
		if err != nil {
			return nil, err
		}
		if err := s.HistoryDAO.Create(ctx, hm); err != nil {
			return nil, err
		}
	}

	// 分叉：父话题收下分叉标记帖
	if creation.ParentTopic != nil {
		prm, err := models.ResFromDomain(*creation.ParentRes)
		if err != nil {
			return nil, err
		}
		if err := s.ResDAO.Create(ctx, prm); err != nil {
			return nil, err
		}
		if err := s.ApplyRes(ctx, *creation.ParentRes); err != nil {
			log.L.Warn("fork parent topic update failed",
				zap.Uint64("parent", creation.ParentTopic.ID), zap.Error(err))
		}
	}

	s.touchAgeRank(ctx, creation.Topic.ID, creation.Topic.AgeUpdate)

	resp := s.topicToResponse(tm)
	return &resp, nil
}

// ApplyRes 把一条新帖落到话题快照上，乐观锁冲突时重新加载重放
func (s *TopicService) ApplyRes(ctx context.Context, res board.Res) error {
	for attempt := 0; attempt < maxRetry; attempt++ {
		tm, err := s.TopicDAO.FindByID(ctx, res.Topic)
		if err != nil {
			return err
		}
		t, err := tm.ToDomain()
		if err != nil {
			return err
		}
		t, err = board.ResUpdate(t, res)
		if err != nil {
			return err
		}
		if err := tm.ApplySnapshot(t); err != nil {
			return err
		}
		ok, err := s.TopicDAO.UpdateSnapshot(ctx, tm)
		if err != nil {
			return err
		}
		if ok {
			s.touchAgeRank(ctx, t.ID, t.AgeUpdate)
			return nil
		}
	}
	return board.NewConflictError("话题更新冲突")
}

// Edit 编辑普通话题，消耗点数并留版本快照
func (s *TopicService) Edit(ctx context.Context, userID uint64, req *types.EditTopicRequest) (*types.TopicResponse, error) {
	rules := s.Config.Board.Rules()

	for attempt := 0; attempt < maxRetry; attempt++ {
		um, err := s.UserDAO.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		tm, err := s.TopicDAO.FindByID(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		t, err := tm.ToDomain()
		if err != nil {
			return nil, err
		}

		change, err := board.ChangeData(rules, t, um.ToDomain(), req.Title, req.Tags, req.Body, time.Now(), snowflake.GenUint64)
		if err != nil {
			return nil, err
		}

		// 话题快照先行，冲突时整轮重做还没产生任何写入
		if err := tm.ApplySnapshot(change.Topic); err != nil {
			return nil, err
		}
		ok, err := s.TopicDAO.UpdateSnapshot(ctx, tm)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		// 编辑已生效，点数扣费随后结算
		if err := s.chargeEdit(ctx, userID, um); err != nil {
			return nil, err
		}

		hm, err := models.HistoryFromDomain(change.History)
		if err != nil {
			return nil, err
		}
		if err := s.HistoryDAO.Create(ctx, hm); err != nil {
			return nil, err
		}
		rm, err := models.ResFromDomain(change.Res)
		if err != nil {
			return nil, err
		}
		if err := s.ResDAO.Create(ctx, rm); err != nil {
			return nil, err
		}

		s.touchAgeRank(ctx, change.Topic.ID, change.Topic.AgeUpdate)

		resp := s.topicToResponse(tm)
		return &resp, nil
	}

	return nil, board.NewConflictError("操作冲突，请稍后重试")
}

// chargeEdit 编辑扣费，用户快照冲突时在新鲜快照上重扣
func (s *TopicService) chargeEdit(ctx context.Context, userID uint64, um *models.User) error {
	rules := s.Config.Board.Rules()

	for attempt := 0; attempt < maxRetry; attempt++ {
		u, err := board.UsePoint(um.ToDomain(), rules.EditCost)
		if err != nil {
			return err
		}
		um.ApplySnapshot(u)
		ok, err := s.UserDAO.UpdateSnapshot(ctx, um)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		um, err = s.UserDAO.FindByID(ctx, userID)
		if err != nil {
			return err
		}
	}
	return board.NewConflictError("扣费冲突")
}

func (s *TopicService) Get(ctx context.Context, id uint64) (*types.TopicResponse, error) {
	tm, err := s.TopicDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.topicToResponse(tm)
	return &resp, nil
}

// List 最近冒泡排序的话题列表，优先走 redis 榜单，miss 或出错时回源 DB
func (s *TopicService) List(ctx context.Context, cursor int64, limit int) (*types.TopicListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	topics, err := s.listFromRank(ctx, cursor, limit)
	if err != nil {
		log.L.Warn("topic rank unavailable, falling back to db", zap.Error(err))
		topics, err = s.TopicDAO.ListByAge(ctx, cursor, limit)
		if err != nil {
			return nil, err
		}
	}

	resp := &types.TopicListResponse{Topics: make([]types.TopicResponse, 0, len(topics))}
	for _, tm := range topics {
		resp.Topics = append(resp.Topics, s.topicToResponse(tm))
	}
	if len(topics) == limit {
		resp.NextCursor = topics[len(topics)-1].AgeUpdate.UnixNano()
	}
	return resp, nil
}

func (s *TopicService) listFromRank(ctx context.Context, cursor int64, limit int) ([]*models.Topic, error) {
	n, err := s.Redis.ZCard(ctx, keyTopicAge).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if err := s.rebuildRank(ctx); err != nil {
			return nil, err
		}
	}

	max := "+inf"
	if cursor > 0 {
		max = "(" + strconv.FormatInt(cursor, 10)
	}
	ids, err := s.Redis.ZRevRangeByScore(ctx, keyTopicAge, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   max,
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, err
	}

	topics := make([]*models.Topic, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			continue
		}
		tm, err := s.TopicDAO.FindByID(ctx, id)
		if err != nil {
			// 榜单残留已下沉的话题，顺手清掉
			s.Redis.ZRem(ctx, keyTopicAge, raw)
			continue
		}
		if !tm.Active {
			s.Redis.ZRem(ctx, keyTopicAge, raw)
			continue
		}
		topics = append(topics, tm)
	}
	return topics, nil
}

// rebuildRank 榜单为空时从 DB 全量重建
func (s *TopicService) rebuildRank(ctx context.Context) error {
	topics, err := s.TopicDAO.ListByAge(ctx, 0, 1000)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		return nil
	}
	members := make([]redis.Z, 0, len(topics))
	for _, tm := range topics {
		members = append(members, redis.Z{
			Score:  float64(tm.AgeUpdate.UnixNano()),
			Member: strconv.FormatUint(tm.ID, 10),
		})
	}
	return s.Redis.ZAdd(ctx, keyTopicAge, members...).Err()
}

// touchAgeRank 冒泡榜写入是尽力而为的，失败只记日志，下次 miss 会重建
func (s *TopicService) touchAgeRank(ctx context.Context, topicID uint64, ageUpdate time.Time) {
	err := s.Redis.ZAdd(ctx, keyTopicAge, redis.Z{
		Score:  float64(ageUpdate.UnixNano()),
		Member: strconv.FormatUint(topicID, 10),
	}).Err()
	if err != nil {
		log.L.Warn("topic rank update failed", zap.Uint64("topic", topicID), zap.Error(err))
	}
}

func (s *TopicService) ListByTag(ctx context.Context, tag string, limit int) ([]types.TopicResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	topics, err := s.TopicDAO.ListByTag(ctx, tag, limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.TopicResponse, 0, len(topics))
	for _, tm := range topics {
		out = append(out, s.topicToResponse(tm))
	}
	return out, nil
}

func (s *TopicService) ListForks(ctx context.Context, parentID uint64, limit int) ([]types.TopicResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	topics, err := s.TopicDAO.ListForks(ctx, parentID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.TopicResponse, 0, len(topics))
	for _, tm := range topics {
		out = append(out, s.topicToResponse(tm))
	}
	return out, nil
}

func (s *TopicService) ListHistory(ctx context.Context, topicID uint64) ([]types.HistoryResponse, error) {
	list, err := s.HistoryDAO.ListByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	out := make([]types.HistoryResponse, 0, len(list))
	for _, hm := range list {
		h, err := hm.ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, types.HistoryResponse{
			ID:    h.ID,
			Topic: h.Topic,
			Title: h.Title,
			Tags:  h.Tags,
			Body:  h.Body,
			Date:  h.Date,
			Hash:  h.Hash,
		})
	}
	return out, nil
}

// Deactivate 把闲置话题沉底，幂等
func (s *TopicService) Deactivate(ctx context.Context, topicID uint64) error {
	for attempt := 0; attempt < maxRetry; attempt++ {
		tm, err := s.TopicDAO.FindByID(ctx, topicID)
		if err != nil {
			return err
		}
		t, err := tm.ToDomain()
		if err != nil {
			return err
		}
		if !t.Active {
			return nil
		}
		if err := tm.ApplySnapshot(board.Deactivate(t)); err != nil {
			return err
		}
		ok, err := s.TopicDAO.UpdateSnapshot(ctx, tm)
		if err != nil {
			return err
		}
		if ok {
			s.Redis.ZRem(ctx, keyTopicAge, strconv.FormatUint(topicID, 10))
			return nil
		}
	}
	return board.NewConflictError("话题更新冲突")
}

func (s *TopicService) topicToResponse(tm *models.Topic) types.TopicResponse {
	t, err := tm.ToDomain()
	if err != nil {
		log.L.Warn("bad topic row", zap.Uint64("topic", tm.ID), zap.Error(err))
	}
	return types.TopicResponse{
		ID:        t.ID,
		ShareID:   utils.GenHashID(s.Config.Board.Salt, t.ID),
		Type:      string(t.Type),
		Title:     t.Title,
		Tags:      t.Tags,
		Body:      t.Body,
		Update:    t.Update,
		Date:      t.Date,
		AgeUpdate: t.AgeUpdate,
		Active:    t.Active,
		ResCount:  t.ResCount,
		Parent:    t.Parent,
	}
}
