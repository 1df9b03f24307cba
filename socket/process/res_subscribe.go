package process

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"Mumei/pkg/log"
	"Mumei/pkg/socket"
)

// 新帖事件频道，api-server 在发帖成功后发布
const channelResPub = "res:pub"

// ResSubscribe 订阅新帖事件并按话题分发到在线连接
type ResSubscribe struct {
	Redis    *redis.Client
	Registry *socket.Registry
}

func (s *ResSubscribe) Setup(ctx context.Context) error {
	sub := s.Redis.Subscribe(ctx, channelResPub)
	defer sub.Close()

	log.L.Info("subscribed", zap.String("channel", channelResPub))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.dispatch(msg.Payload)
		}
	}
}

func (s *ResSubscribe) dispatch(payload string) {
	topicID := gjson.Get(payload, "topic_id")
	if !topicID.Exists() {
		log.L.Warn("event without topic_id", zap.String("payload", payload))
		return
	}
	s.Registry.Broadcast(topicID.String(), []byte(payload))
}
