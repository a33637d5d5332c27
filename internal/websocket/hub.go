package websocket

import (
	"encoding/json"
	"log"
)

// Hub раздает события сессий подключенным клиентам. Клиенты
// группируются по ID сессии: каждый получает только события своей игры.
type Hub struct {
	// sessions хранит подписчиков по ID сессии
	sessions map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *sessionMessage
	done       chan struct{}
}

type sessionMessage struct {
	sessionID string
	data      []byte
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *sessionMessage, 256),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает подписки и рассылку. Запускается одной горутиной.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			clients, ok := h.sessions[client.sessionID]
			if !ok {
				clients = make(map[*Client]bool)
				h.sessions[client.sessionID] = clients
			}
			clients[client] = true
			log.Printf("[WSHub] Клиент подключен к сессии %s (всего %d)",
				client.sessionID, len(clients))

		case client := <-h.unregister:
			if clients, ok := h.sessions[client.sessionID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.sessions, client.sessionID)
					}
				}
			}

		case msg := <-h.broadcast:
			for client := range h.sessions[msg.sessionID] {
				select {
				case client.send <- msg.data:
				default:
					// медленный клиент отключается, не блокируя остальных
					close(client.send)
					delete(h.sessions[msg.sessionID], client)
				}
			}

		case <-h.done:
			for _, clients := range h.sessions {
				for client := range clients {
					close(client.send)
				}
			}
			h.sessions = make(map[string]map[*Client]bool)
			return
		}
	}
}

// add регистрирует клиента. Возвращает false, если хаб уже остановлен.
func (h *Hub) add(client *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// remove снимает подписку клиента. После остановки хаба выходит сразу:
// каналы send уже закрыты циклом Run.
func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish отправляет событие всем подписчикам сессии.
// Событие сериализуется в JSON один раз на всех получателей.
func (h *Hub) Publish(sessionID string, event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WSHub] Ошибка сериализации события сессии %s: %v", sessionID, err)
		return
	}
	select {
	case h.broadcast <- &sessionMessage{sessionID: sessionID, data: data}:
	case <-h.done:
	}
}

// Shutdown останавливает хаб и закрывает все подключения
func (h *Hub) Shutdown() {
	close(h.done)
}
