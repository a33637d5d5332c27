package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/handler/dto"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service/session"
)

// SessionHandler обрабатывает серверные игровые сессии
type SessionHandler struct {
	manager *session.Manager
}

// NewSessionHandler создает новый обработчик сессий
func NewSessionHandler(manager *session.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

// Play стартует сессию прохождения викторины
// POST /api/quizzes/:id/play
func (h *SessionHandler) Play(c *gin.Context) {
	quizID := c.GetUint("quizID")

	var req dto.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sess, err := h.manager.Start(c.Request.Context(), quizID, req.PlayerName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sess.State())
}

// Answer принимает ответ на текущий вопрос сессии
// POST /api/sessions/:id/answer
func (h *SessionHandler) Answer(c *gin.Context) {
	var req dto.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.manager.Answer(c.Param("id"), req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// State возвращает текущее состояние сессии (поллинг-альтернатива WS)
// GET /api/sessions/:id
func (h *SessionHandler) State(c *gin.Context) {
	snap, err := h.manager.State(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snap)
}
