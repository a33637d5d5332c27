package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Константы статусов игры
const (
	GameStatusActive    = "active"
	GameStatusCompleted = "completed"
)

// Game представляет одно прохождение викторины.
// После перехода в статус completed записи игроков и EndedAt заморожены.
type Game struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	QuizID    uint         `gorm:"not null;index" json:"quizId"`
	Status    string       `gorm:"size:20;not null;default:'active';index" json:"status"`
	StartedAt time.Time    `gorm:"not null" json:"startedAt"`
	EndedAt   *time.Time   `json:"endedAt,omitempty"`
	Players   []GamePlayer `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"players"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}

// TableName определяет имя таблицы для GORM
func (Game) TableName() string {
	return "games"
}

// IsCompleted проверяет, завершена ли игра
func (g *Game) IsCompleted() bool {
	return g.Status == GameStatusCompleted
}

// PlayerAnswer - запись об ответе игрока на один вопрос
type PlayerAnswer struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
	Correct       bool   `json:"correct"`
	TimeSpentMs   int64  `json:"timeSpent"`
	Score         int    `json:"score"`
}

// AnswerLog - пользовательский тип для хранения лога ответов игрока в JSONB
type AnswerLog []PlayerAnswer

// Scan реализует интерфейс sql.Scanner для AnswerLog
func (a *AnswerLog) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerLog{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}
	if len(bytes) == 0 {
		*a = AnswerLog{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Value реализует интерфейс driver.Valuer для AnswerLog
func (a AnswerLog) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// GamePlayer представляет участие одного игрока в игре
// (в наблюдаемой модели игра одиночная, но запись хранится списком)
type GamePlayer struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	GameID      uint       `gorm:"not null;index" json:"-"`
	Name        string     `gorm:"size:30;not null;index" json:"name"`
	Score       int64      `gorm:"not null;default:0" json:"score"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Answers     AnswerLog  `gorm:"type:jsonb;not null;default:'[]'" json:"answers"`
	JoinedAt    time.Time  `gorm:"not null" json:"joinedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (GamePlayer) TableName() string {
	return "game_players"
}
