package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"Mumei/dao"
	"Mumei/internal/board"
	"Mumei/pkg/log"
	"Mumei/pkg/timewheel"
)

// 单发/分叉话题闲置超过这个时长就沉底
const idleTopicAfter = 24 * time.Hour

// CronService 周期任务：限流窗口清零、每日点数清零、闲置话题下沉
type CronService struct {
	UserDAO      *dao.User
	TopicDAO     *dao.Topic
	TopicService ITopicService
}

type cronWindow struct {
	counter string
	every   time.Duration
}

var cronWindows = []cronWindow{
	{board.CounterM10, 10 * time.Minute},
	{board.CounterM30, 30 * time.Minute},
	{board.CounterH1, time.Hour},
	{board.CounterH6, 6 * time.Hour},
	{board.CounterH12, 12 * time.Hour},
	{board.CounterD1, 24 * time.Hour},
	{board.CounterPoint, 24 * time.Hour},
}

// Start 注册全部周期任务，随 errgroup 生命周期退出
func (s *CronService) Start(eg *errgroup.Group, ctx context.Context) {
	for _, w := range cronWindows {
		window := w
		eg.Go(func() error {
			ticker := time.NewTicker(window.every)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := s.UserDAO.ResetCounterAll(ctx, window.counter); err != nil {
						log.L.Error("counter reset failed",
							zap.String("counter", window.counter), zap.Error(err))
					}
				}
			}
		})
	}

	// 下沉动作摊到时间轮上，避免整点一波写库
	wheel := timewheel.NewSimpleTimeWheel[uint64](time.Second, 60,
		func(_ *timewheel.SimpleTimeWheel[uint64], _ string, topicID uint64) {
			if err := s.TopicService.Deactivate(ctx, topicID); err != nil {
				log.L.Error("topic deactivate failed",
					zap.Uint64("topic", topicID), zap.Error(err))
			}
		})
	go wheel.Start()

	eg.Go(func() error {
		defer wheel.Stop()
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				s.sweepIdle(ctx, wheel)
			}
		}
	})
}

// sweepIdle 捞出闲置的单发/分叉话题，排上时间轮逐个下沉
func (s *CronService) sweepIdle(ctx context.Context, wheel *timewheel.SimpleTimeWheel[uint64]) {
	topics, err := s.TopicDAO.ListIdle(ctx, time.Now().Add(-idleTopicAfter), 500)
	if err != nil {
		log.L.Error("idle sweep query failed", zap.Error(err))
		return
	}
	for i, tm := range topics {
		wheel.Add(strconv.FormatUint(tm.ID, 10), tm.ID, time.Duration(i)*time.Second)
	}
	if len(topics) > 0 {
		log.L.Info("idle sweep scheduled", zap.Int("count", len(topics)))
	}
}
