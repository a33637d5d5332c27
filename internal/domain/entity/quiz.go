package entity

import (
	"fmt"
	"time"

	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// Quiz представляет викторину. После создания викторина в игровом потоке
// не мутирует; update/delete доступны только создателю.
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"size:500;not null" json:"description"`
	Creator     string     `gorm:"size:30;not null;index" json:"creator"`
	IsPublic    bool       `gorm:"not null;default:true" json:"isPublic"`
	Questions   []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// Validate выполняет полную проверку викторины до любой записи в БД.
// Ошибки валидации сообщаются раньше, чем произойдет любая мутация.
func (q *Quiz) Validate() error {
	if q.Title == "" || q.Description == "" || q.Creator == "" {
		return fmt.Errorf("%w: title, description and creator are required", apperrors.ErrValidation)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: quiz must have at least one question", apperrors.ErrValidation)
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return fmt.Errorf("question #%d: %w", i+1, err)
		}
	}
	return nil
}

// QuestionCount возвращает количество вопросов викторины
func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}
