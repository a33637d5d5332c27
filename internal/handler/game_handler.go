package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/handler/dto"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service"
)

// GameHandler обрабатывает запросы игр
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler создает новый обработчик игр
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// Create создает активную игру по викторине
// POST /api/games
func (h *GameHandler) Create(c *gin.Context) {
	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	game, err := h.gameService.Create(req.QuizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, game)
}

// Get возвращает игру с результатами игроков
// GET /api/games/:id
func (h *GameHandler) Get(c *gin.Context) {
	gameID := c.GetUint("gameID")

	game, err := h.gameService.Get(gameID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}

// Submit принимает готовый счет игрока по игре
// POST /api/games/:id/submit
func (h *GameHandler) Submit(c *gin.Context) {
	gameID := c.GetUint("gameID")

	var req dto.SubmitGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	game, err := h.gameService.Submit(c.Request.Context(), gameID, req.PlayerName, *req.Score)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, game)
}
