package repository

import (
	"time"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
)

// QuizRanking - строка лидерборда одной викторины (join quiz_stats + users)
type QuizRanking struct {
	Name         string
	HighestScore int64
	TotalScore   int64
	Attempts     int64
	LastPlayed   *time.Time
}

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create создает нового пользователя. Возвращает ErrConflict при занятом имени.
	Create(user *entity.User) error
	GetByName(name string) (*entity.User, error)
	// GetByNameWithStats возвращает пользователя вместе с его quiz_stats
	GetByNameWithStats(name string) (*entity.User, error)
	// RecordScore применяет результат игры к агрегатам пользователя в одной
	// транзакции: находит или создает пользователя, обновляет quiz_stat по
	// викторине и инкрементирует общие счетчики. Каждый вызов прибавляет
	// очки безусловно.
	RecordScore(name string, quizID uint, score int) (*entity.User, error)
	// GetLeaderboard возвращает пользователей, отсортированных по total_score DESC
	GetLeaderboard(limit int) ([]entity.User, error)
	// GetQuizLeaderboard возвращает строки лидерборда конкретной викторины,
	// отсортированные по highest_score DESC
	GetQuizLeaderboard(quizID uint, limit int) ([]QuizRanking, error)
}
