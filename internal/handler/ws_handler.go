package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service/session"
	ws "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/websocket"
)

// WSHandler апгрейдит подключения для ленты событий сессии
type WSHandler struct {
	hub     *ws.Hub
	manager *session.Manager

	upgrader gorillaws.Upgrader
}

// NewWSHandler создает новый обработчик WebSocket-подключений
func NewWSHandler(hub *ws.Hub, manager *session.Manager) *WSHandler {
	return &WSHandler{
		hub:     hub,
		manager: manager,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// фильтрация origin - забота обратного прокси
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe подключает клиента к ленте событий его сессии
// GET /ws/sessions/:id
func (h *WSHandler) Subscribe(c *gin.Context) {
	sessionID := c.Param("id")
	if _, err := h.manager.Get(sessionID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WSHandler] Ошибка апгрейда подключения: %v", err)
		return
	}

	ws.NewClient(h.hub, conn, sessionID)
}
