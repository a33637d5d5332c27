package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/handler/dto"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service"
)

// QuizHandler обрабатывает запросы управления викторинами
type QuizHandler struct {
	quizService *service.QuizService
	gameService *service.GameService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, gameService *service.GameService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		gameService: gameService,
	}
}

// Create обрабатывает создание викторины
// POST /api/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	var req dto.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	quiz, err := h.quizService.Create(quizFromRequest(req.Title, req.Description, req.Creator, req.IsPublic, req.Questions))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// List возвращает страницу публичных викторин
// GET /api/quizzes?limit=20&offset=0
func (h *QuizHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	quizzes, total, err := h.quizService.List(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuizListResponse{
		Quizzes: quizzes,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// Get возвращает викторину с вопросами.
// Правильные ответы уходят клиенту: проверка ответов в прямом маршруте
// доверена клиентской стороне.
// GET /api/quizzes/:id
func (h *QuizHandler) Get(c *gin.Context) {
	quizID := c.GetUint("quizID")

	quiz, err := h.quizService.Get(quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ListByCreator возвращает викторины автора
// GET /api/quizzes/creator/:name
func (h *QuizHandler) ListByCreator(c *gin.Context) {
	quizzes, err := h.quizService.ListByCreator(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

// Update обрабатывает обновление викторины автором
// PUT /api/quizzes/:id
func (h *QuizHandler) Update(c *gin.Context) {
	quizID := c.GetUint("quizID")

	var req dto.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	quiz, err := h.quizService.Update(quizID, req.Creator,
		quizFromRequest(req.Title, req.Description, req.Creator, req.IsPublic, req.Questions))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// Delete обрабатывает удаление викторины автором
// DELETE /api/quizzes/:id
func (h *QuizHandler) Delete(c *gin.Context) {
	quizID := c.GetUint("quizID")

	var req dto.DeleteQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.quizService.Delete(quizID, req.Creator); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted"})
}

// ExportGames выгружает результаты завершенных игр викторины
// GET /api/quizzes/:id/games/export?format=csv|xlsx
func (h *QuizHandler) ExportGames(c *gin.Context) {
	quizID := c.GetUint("quizID")

	games, err := h.gameService.CompletedByQuiz(quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	switch format {
	case "csv":
		h.exportCSV(c, quizID, games)
	case "xlsx":
		h.exportXLSX(c, quizID, games)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported format: " + format})
	}
}

var exportHeader = []string{"Game ID", "Player", "Score", "Correct Answers", "Started At", "Ended At"}

func exportRow(game *entity.Game, player *entity.GamePlayer) []string {
	correct := 0
	for _, a := range player.Answers {
		if a.Correct {
			correct++
		}
	}
	endedAt := ""
	if game.EndedAt != nil {
		endedAt = game.EndedAt.Format(time.RFC3339)
	}
	return []string{
		strconv.FormatUint(uint64(game.ID), 10),
		player.Name,
		strconv.FormatInt(player.Score, 10),
		strconv.Itoa(correct),
		game.StartedAt.Format(time.RFC3339),
		endedAt,
	}
}

func (h *QuizHandler) exportCSV(c *gin.Context, quizID uint, games []entity.Game) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=quiz_%d_games.csv", quizID))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write(exportHeader); err != nil {
		return
	}
	for i := range games {
		for j := range games[i].Players {
			if err := writer.Write(exportRow(&games[i], &games[i].Players[j])); err != nil {
				return
			}
		}
	}
}

func (h *QuizHandler) exportXLSX(c *gin.Context, quizID uint, games []entity.Game) {
	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Games"
	file.SetSheetName("Sheet1", sheet)

	sw, err := file.NewStreamWriter(sheet)
	if err != nil {
		respondError(c, err)
		return
	}

	header := make([]interface{}, len(exportHeader))
	for i, v := range exportHeader {
		header[i] = v
	}
	if err := sw.SetRow("A1", header); err != nil {
		respondError(c, err)
		return
	}

	rowNum := 2
	for i := range games {
		for j := range games[i].Players {
			values := exportRow(&games[i], &games[i].Players[j])
			row := make([]interface{}, len(values))
			for k, v := range values {
				row[k] = v
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := sw.SetRow(cell, row); err != nil {
				respondError(c, err)
				return
			}
			rowNum++
		}
	}

	if err := sw.Flush(); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=quiz_%d_games.xlsx", quizID))

	if err := file.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

// quizFromRequest собирает сущность викторины из тела запроса
func quizFromRequest(title, description, creator string, isPublic *bool, questions []dto.QuestionDTO) *entity.Quiz {
	public := true
	if isPublic != nil {
		public = *isPublic
	}

	quiz := &entity.Quiz{
		Title:       title,
		Description: description,
		Creator:     creator,
		IsPublic:    public,
	}
	for _, q := range questions {
		quiz.Questions = append(quiz.Questions, entity.Question{
			Text:          q.Text,
			Options:       entity.StringArray(q.Options),
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return quiz
}
