package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service"
)

// LeaderboardHandler обрабатывает запросы лидербордов
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler создает новый обработчик лидербордов
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Get возвращает глобальный лидерборд или лидерборд викторины
// GET /api/leaderboard[?quizId=N]
func (h *LeaderboardHandler) Get(c *gin.Context) {
	if raw := c.Query("quizId"); raw != "" {
		quizID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || quizID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quizId parameter"})
			return
		}

		entries, err := h.leaderboardService.ForQuiz(c.Request.Context(), uint(quizID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"quizId": quizID, "leaderboard": entries})
		return
	}

	entries, err := h.leaderboardService.Global(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
