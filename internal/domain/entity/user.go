package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// Лимиты длины имени игрока (в рунах, серверный контракт)
const (
	MinNameLength = 2
	MaxNameLength = 30
)

// User представляет игрока. Агрегаты TotalScore и GamesPlayed денормализованы:
// после каждой завершенной игры должно выполняться
// TotalScore == Σ QuizStats[*].TotalScore и GamesPlayed == Σ QuizStats[*].Attempts.
// За поддержание инварианта отвечает StatsService, хранилище его не проверяет.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	Name        string     `gorm:"size:30;not null;uniqueIndex" json:"name"`
	TotalScore  int64      `gorm:"not null;default:0;index:idx_users_total_score" json:"totalScore"`
	GamesPlayed int64      `gorm:"not null;default:0" json:"gamesPlayed"`
	QuizStats   []QuizStat `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"quizStats,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"-"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// QuizStat представляет накопленную статистику пользователя по одной викторине
type QuizStat struct {
	ID           uint       `gorm:"primaryKey" json:"-"`
	UserID       uint       `gorm:"not null;uniqueIndex:idx_quiz_stats_user_quiz" json:"-"`
	QuizID       uint       `gorm:"not null;uniqueIndex:idx_quiz_stats_user_quiz;index" json:"quizId"`
	HighestScore int64      `gorm:"not null;default:0" json:"highestScore"`
	TotalScore   int64      `gorm:"not null;default:0" json:"totalScore"`
	Attempts     int64      `gorm:"not null;default:0" json:"attempts"`
	LastPlayed   *time.Time `json:"lastPlayed,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (QuizStat) TableName() string {
	return "quiz_stats"
}

// AverageScore возвращает округленный средний счет по викторине.
// При нуле попыток возвращает 0, деления на ноль не происходит.
func (s *QuizStat) AverageScore() int64 {
	if s.Attempts == 0 {
		return 0
	}
	return roundDiv(s.TotalScore, s.Attempts)
}

// AverageScore возвращает округленный средний счет пользователя за игру
func (u *User) AverageScore() int64 {
	if u.GamesPlayed == 0 {
		return 0
	}
	return roundDiv(u.TotalScore, u.GamesPlayed)
}

// roundDiv - целочисленное деление с округлением до ближайшего
// (счета неотрицательны, поэтому достаточно +b/2)
func roundDiv(a, b int64) int64 {
	return (a + b/2) / b
}

// NormalizeName обрезает пробелы по краям имени игрока
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// ValidateName проверяет серверные лимиты имени игрока (2-30 символов)
func ValidateName(name string) error {
	length := utf8.RuneCountInString(name)
	if length < MinNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", apperrors.ErrValidation, MinNameLength)
	}
	if length > MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", apperrors.ErrValidation, MaxNameLength)
	}
	return nil
}
