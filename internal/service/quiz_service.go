package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/repository"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// QuizService предоставляет управление викторинами
type QuizService struct {
	quizRepo repository.QuizRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(quizRepo repository.QuizRepository) *QuizService {
	return &QuizService{quizRepo: quizRepo}
}

// Create создает викторину с вопросами. Все вопросы валидируются ДО
// записи: либо сохраняется вся викторина, либо ничего.
func (s *QuizService) Create(quiz *entity.Quiz) (*entity.Quiz, error) {
	quiz.Title = strings.TrimSpace(quiz.Title)
	quiz.Creator = strings.TrimSpace(quiz.Creator)
	for i := range quiz.Questions {
		quiz.Questions[i].Position = i
	}

	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("ошибка создания викторины: %w", err)
	}

	log.Printf("[QuizService] Викторина '%s' создана (ID: %d, вопросов: %d)",
		quiz.Title, quiz.ID, quiz.QuestionCount())
	return quiz, nil
}

// Get возвращает викторину с вопросами
func (s *QuizService) Get(id uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(id)
}

// List возвращает страницу публичных викторин
func (s *QuizService) List(limit, offset int) ([]entity.Quiz, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.quizRepo.List(limit, offset)
}

// ListByCreator возвращает викторины автора
func (s *QuizService) ListByCreator(creator string) ([]entity.Quiz, error) {
	return s.quizRepo.ListByCreator(strings.TrimSpace(creator))
}

// Update обновляет викторину. Разрешено только автору.
func (s *QuizService) Update(id uint, requester string, updated *entity.Quiz) (*entity.Quiz, error) {
	existing, err := s.quizRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing.Creator != requester {
		return nil, fmt.Errorf("викторину может изменять только автор: %w", apperrors.ErrForbidden)
	}

	updated.ID = existing.ID
	updated.Creator = existing.Creator
	updated.CreatedAt = existing.CreatedAt
	for i := range updated.Questions {
		updated.Questions[i].ID = 0
		updated.Questions[i].QuizID = existing.ID
		updated.Questions[i].Position = i
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if err := s.quizRepo.Update(updated); err != nil {
		return nil, fmt.Errorf("ошибка обновления викторины %d: %w", id, err)
	}

	log.Printf("[QuizService] Викторина %d обновлена автором '%s'", id, requester)
	return updated, nil
}

// Delete удаляет викторину. Разрешено только автору.
func (s *QuizService) Delete(id uint, requester string) error {
	existing, err := s.quizRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.Creator != requester {
		return fmt.Errorf("викторину может удалять только автор: %w", apperrors.ErrForbidden)
	}

	if err := s.quizRepo.Delete(id); err != nil {
		return fmt.Errorf("ошибка удаления викторины %d: %w", id, err)
	}

	log.Printf("[QuizService] Викторина %d удалена автором '%s'", id, requester)
	return nil
}
