package websocket

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait - таймаут записи одного сообщения
	writeWait = 10 * time.Second
	// pongWait - сколько ждем pong от клиента
	pongWait = 60 * time.Second
	// pingPeriod - период отправки ping (меньше pongWait)
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize - входящие сообщения нам не нужны, лимит минимальный
	maxMessageSize = 512
)

// Client - одно WebSocket-подключение, подписанное на события сессии
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
}

// NewClient регистрирует подключение в хабе и запускает его горутины
func NewClient(hub *Hub, conn *websocket.Conn, sessionID string) *Client {
	client := &Client{
		hub:       hub,
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, 64),
	}
	if !hub.add(client) {
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()
	return client
}

// readPump читает входящие фреймы только ради keepalive и closing
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WSClient] Сессия %s: ошибка чтения: %v", c.sessionID, err)
			}
			return
		}
	}
}

// writePump пишет события сессии и пинги в подключение
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// хаб закрыл канал
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
