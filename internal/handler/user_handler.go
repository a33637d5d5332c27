package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/handler/dto"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service"
)

// UserHandler обрабатывает запросы регистрации и статистики игроков
type UserHandler struct {
	userService *service.UserService
	stats       *service.StatsService
}

// NewUserHandler создает новый обработчик пользователей
func NewUserHandler(userService *service.UserService, stats *service.StatsService) *UserHandler {
	return &UserHandler{
		userService: userService,
		stats:       stats,
	}
}

// Register обрабатывает регистрацию игрока
// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.Register(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetStats возвращает агрегаты игрока и его статистику по викторинам
// GET /api/users/:name/stats
func (h *UserHandler) GetStats(c *gin.Context) {
	user, err := h.userService.GetStats(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":         user.Name,
		"totalScore":   user.TotalScore,
		"gamesPlayed":  user.GamesPlayed,
		"averageScore": user.AverageScore(),
		"quizStats":    user.QuizStats,
	})
}

// DirectScore прямо обновляет агрегаты игрока готовым счетом
// POST /api/users/:name/score
func (h *UserHandler) DirectScore(c *gin.Context) {
	var req dto.DirectScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.stats.SubmitDirectScore(c.Request.Context(), c.Param("name"), req.QuizID, *req.Score); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.userService.GetStats(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
