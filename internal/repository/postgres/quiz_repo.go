package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину вместе с вопросами (gorm каскадно
// вставляет ассоциацию Questions)
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает викторину без вопросов
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину с вопросами в порядке position
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position ASC, questions.id ASC")
	}).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List возвращает страницу публичных викторин и общее количество
func (r *QuizRepo) List(limit, offset int) ([]entity.Quiz, int64, error) {
	var quizzes []entity.Quiz
	var total int64

	if err := r.db.Model(&entity.Quiz{}).Where("is_public = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Where("is_public = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&quizzes).Error
	if err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

// ListByCreator возвращает все викторины указанного автора,
// включая непубличные
func (r *QuizRepo) ListByCreator(creator string) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.
		Where("creator = ?", creator).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// Update обновляет викторину. Вопросы перезаписываются целиком:
// старые удаляются, новые вставляются в одной транзакции.
func (r *QuizRepo) Update(quiz *entity.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&entity.Question{}).Error; err != nil {
			return err
		}
		return tx.Save(quiz).Error
	})
}

// Delete удаляет викторину. Вопросы удаляются каскадно по FK.
func (r *QuizRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Quiz{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
