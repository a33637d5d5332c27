package dto

// RegisterRequest - запрос регистрации игрока
type RegisterRequest struct {
	Name string `json:"name" binding:"required"`
}

// DirectScoreRequest - прямое обновление агрегатов игрока
// (сохраненный маршрут исходного клиентского потока)
type DirectScoreRequest struct {
	QuizID uint `json:"quizId" binding:"required"`
	Score  *int `json:"score" binding:"required"`
}
