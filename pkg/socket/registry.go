package socket

import (
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"

	"Mumei/pkg/log"
	"Mumei/pkg/timewheel"
)

// 收不到任何帧这么久的连接视为死连接
const heartbeatTimeout = 75 * time.Second

// Registry 在线连接表，广播按话题订阅过滤
// 心跳走时间轮：每收到一帧就把连接重新排到超时槽，到点没动静就踢
type Registry struct {
	clients cmap.ConcurrentMap[string, *Client]
	wheel   *timewheel.SimpleTimeWheel[string]
}

func NewRegistry() *Registry {
	r := &Registry{
		clients: cmap.New[*Client](),
	}
	r.wheel = timewheel.NewSimpleTimeWheel[string](time.Second, 90,
		func(_ *timewheel.SimpleTimeWheel[string], _ string, clientID string) {
			if c, ok := r.clients.Get(clientID); ok {
				log.L.Info("client heartbeat timeout", zap.String("client", clientID))
				r.Remove(c)
			}
		})
	go r.wheel.Start()
	return r
}

func (r *Registry) Add(c *Client) {
	r.clients.Set(c.ID, c)
	r.Touch(c)
}

func (r *Registry) Remove(c *Client) {
	r.clients.Remove(c.ID)
	r.wheel.Remove(c.ID)
	c.Close()
}

// Touch 收到帧后续命
func (r *Registry) Touch(c *Client) {
	r.wheel.Remove(c.ID)
	r.wheel.Add(c.ID, c.ID, heartbeatTimeout)
}

func (r *Registry) Count() int {
	return r.clients.Count()
}

// Broadcast 推给所有订阅了该话题的连接，写失败的连接当场摘掉
func (r *Registry) Broadcast(topic string, payload []byte) {
	for item := range r.clients.IterBuffered() {
		c := item.Val
		if !c.Subscribed(topic) {
			continue
		}
		if err := c.Write(payload); err != nil {
			log.L.Warn("client write failed, dropping",
				zap.String("client", c.ID), zap.Error(err))
			r.Remove(c)
		}
	}
}
