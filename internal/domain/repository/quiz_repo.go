package repository

import (
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// GetWithQuestions возвращает викторину с вопросами в исходном порядке
	GetWithQuestions(id uint) (*entity.Quiz, error)
	// List возвращает викторины, отсортированные по дате создания (новые первыми)
	List(limit, offset int) ([]entity.Quiz, int64, error)
	ListByCreator(creator string) ([]entity.Quiz, error)
	Update(quiz *entity.Quiz) error
	Delete(id uint) error
}
