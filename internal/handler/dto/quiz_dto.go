package dto

// QuestionDTO - вопрос в теле запроса создания/обновления викторины
type QuestionDTO struct {
	Text          string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

// CreateQuizRequest - запрос на создание викторины
type CreateQuizRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Creator     string        `json:"creator" binding:"required"`
	IsPublic    *bool         `json:"isPublic"`
	Questions   []QuestionDTO `json:"questions" binding:"required"`
}

// UpdateQuizRequest - запрос на обновление викторины.
// Поле creator подтверждает авторство (аутентификации в API нет).
type UpdateQuizRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description"`
	Creator     string        `json:"creator" binding:"required"`
	IsPublic    *bool         `json:"isPublic"`
	Questions   []QuestionDTO `json:"questions" binding:"required"`
}

// DeleteQuizRequest - подтверждение авторства при удалении
type DeleteQuizRequest struct {
	Creator string `json:"creator" binding:"required"`
}

// QuizListResponse - страница викторин
type QuizListResponse struct {
	Quizzes interface{} `json:"quizzes"`
	Total   int64       `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}
