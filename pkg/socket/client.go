package socket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// Client 一条 websocket 连接及其订阅的话题集合
type Client struct {
	ID     string
	conn   *websocket.Conn
	topics cmap.ConcurrentMap[string, struct{}]

	mu     sync.Mutex // 串行化写帧
	closed bool
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:     id,
		conn:   conn,
		topics: cmap.New[struct{}](),
	}
}

func (c *Client) Subscribe(topic string) {
	c.topics.Set(topic, struct{}{})
}

func (c *Client) Unsubscribe(topic string) {
	c.topics.Remove(topic)
}

func (c *Client) Subscribed(topic string) bool {
	return c.topics.Has(topic)
}

func (c *Client) ReadMessage() (int, []byte, error) {
	_ = c.conn.SetReadDeadline(time.Now().Add(heartbeatTimeout))
	return c.conn.ReadMessage()
}

func (c *Client) Write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.conn.Close()
}
