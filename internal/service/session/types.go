package session

import (
	"context"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/repository"
)

// Config содержит настройки игровых сессий
type Config struct {
	// QuestionTimeLimitMs - время на ответ на один вопрос (мс)
	QuestionTimeLimitMs int64
	// FeedbackDelayMs - пауза между фиксацией ответа и следующим вопросом (мс)
	FeedbackDelayMs int64
	// SubmittedKeyTTLSeconds - TTL ключа защиты от повторной отправки результата
	SubmittedKeyTTLSeconds int
	// CompletedRetentionSeconds - сколько держать завершенную сессию в памяти
	CompletedRetentionSeconds int
}

// DefaultConfig возвращает настройки сессий по умолчанию
func DefaultConfig() *Config {
	return &Config{
		QuestionTimeLimitMs:       30000,
		FeedbackDelayMs:           2000,
		SubmittedKeyTTLSeconds:    3600,
		CompletedRetentionSeconds: 300,
	}
}

// ScoreSubmitter принимает итоговый результат завершенной сессии
type ScoreSubmitter interface {
	SubmitScore(ctx context.Context, playerName string, quizID uint, gameID uint, score int, answers []entity.PlayerAnswer) error
}

// EventFunc вызывается при каждом событии сессии (вопрос, результат
// ответа, завершение). Используется для push-уведомлений по WebSocket.
type EventFunc func(sessionID string, event *Event)

// Dependencies содержит зависимости менеджера сессий
type Dependencies struct {
	QuizRepo  repository.QuizRepository
	GameRepo  repository.GameRepository
	CacheRepo repository.CacheRepository
	Submitter ScoreSubmitter
	OnEvent   EventFunc
}

// Типы событий сессии
const (
	EventQuestion  = "question"
	EventAnswer    = "answer_result"
	EventCompleted = "completed"
)

// Event - событие сессии, отправляемое клиенту
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// QuestionPayload - очередной вопрос без правильного ответа
type QuestionPayload struct {
	Index          int      `json:"index"`
	Total          int      `json:"total"`
	Text           string   `json:"question"`
	Options        []string `json:"options"`
	TimeLimitMs    int64    `json:"timeLimitMs"`
	CurrentScore   int      `json:"currentScore"`
	CurrentStreak  int      `json:"currentStreak"`
}

// AnswerPayload - результат ответа на вопрос
type AnswerPayload struct {
	Index         int    `json:"index"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Points        int    `json:"points"`
	Streak        int    `json:"streak"`
	TotalScore    int    `json:"totalScore"`
	TimedOut      bool   `json:"timedOut"`
}

// CompletedPayload - итог завершенной сессии
type CompletedPayload struct {
	TotalScore   int `json:"totalScore"`
	CorrectCount int `json:"correctCount"`
	Questions    int `json:"questions"`
}
