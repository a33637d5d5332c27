package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос в викторине.
// Правильный ответ отдается клиенту вместе с вопросом: проверка ответа
// в режиме прямой игры выполняется на клиенте (см. игровую сессию для
// серверного подсчета).
type Question struct {
	ID            uint        `gorm:"primaryKey" json:"-"`
	QuizID        uint        `gorm:"not null;index" json:"-"`
	Position      int         `gorm:"not null;default:0" json:"-"`
	Text          string      `gorm:"size:500;not null" json:"question"`
	Options       StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer string      `gorm:"size:255;not null" json:"correctAnswer"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Validate проверяет инвариант вопроса до сохранения:
// непустой текст, минимум два варианта и correctAnswer ∈ options.
func (q *Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: each question must have at least 2 options", apperrors.ErrValidation)
	}
	if q.CorrectAnswer == "" {
		return fmt.Errorf("%w: correct answer is required", apperrors.ErrValidation)
	}
	if !q.HasOption(q.CorrectAnswer) {
		return fmt.Errorf("%w: correct answer must be one of the options", apperrors.ErrValidation)
	}
	return nil
}

// HasOption проверяет, входит ли вариант в список вариантов вопроса
func (q *Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(answer string) bool {
	return answer != "" && answer == q.CorrectAnswer
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}
