package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"Mumei/pkg/log"
	"Mumei/pkg/socket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// BoardChannel 话题订阅通道
// 入站帧：{"event":"subscribe","topic":"<id>"} / unsubscribe / ping
type BoardChannel struct {
	Registry *socket.Registry
}

// Conn 升级连接并进入读循环
func (ch *BoardChannel) Conn(c *gin.Context) error {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.L.Error("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := socket.NewClient(uuid.NewString(), conn)
	ch.Registry.Add(client)
	log.L.Info("client connected",
		zap.String("client", client.ID), zap.Int("online", ch.Registry.Count()))

	go ch.readLoop(client)
	return nil
}

func (ch *BoardChannel) readLoop(client *socket.Client) {
	defer func() {
		ch.Registry.Remove(client)
		log.L.Info("client disconnected", zap.String("client", client.ID))
	}()

	for {
		_, frame, err := client.ReadMessage()
		if err != nil {
			return
		}
		ch.Registry.Touch(client)
		ch.handleFrame(client, frame)
	}
}

func (ch *BoardChannel) handleFrame(client *socket.Client, frame []byte) {
	event := gjson.GetBytes(frame, "event").String()
	topic := gjson.GetBytes(frame, "topic").String()

	switch event {
	case "subscribe":
		if !validTopicID(topic) {
			_ = client.Write([]byte(`{"event":"error","msg":"topic 不合法"}`))
			return
		}
		client.Subscribe(topic)
		_ = client.Write([]byte(`{"event":"subscribed","topic":"` + topic + `"}`))
	case "unsubscribe":
		client.Unsubscribe(topic)
	case "ping":
		_ = client.Write([]byte(`{"event":"pong"}`))
	default:
		log.L.Warn("unknown frame event",
			zap.String("client", client.ID), zap.String("event", event))
	}
}

func validTopicID(topic string) bool {
	_, err := strconv.ParseUint(topic, 10, 64)
	return err == nil
}
