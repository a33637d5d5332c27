package dto

// CreateGameRequest - запрос на создание игры
type CreateGameRequest struct {
	QuizID uint `json:"quizId" binding:"required"`
}

// SubmitGameRequest - отправка готового счета по игре.
// Счет приходит от клиента как есть и серверно не пересчитывается.
type SubmitGameRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
	Score      *int   `json:"score" binding:"required"`
}

// PlayRequest - запрос на старт серверной игровой сессии
type PlayRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
}

// AnswerRequest - ответ игрока на текущий вопрос сессии
type AnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}
