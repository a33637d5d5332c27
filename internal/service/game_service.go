package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/repository"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// GameService управляет играми и прямой отправкой результатов
type GameService struct {
	gameRepo repository.GameRepository
	quizRepo repository.QuizRepository
	stats    *StatsService
}

// NewGameService создает новый сервис игр
func NewGameService(
	gameRepo repository.GameRepository,
	quizRepo repository.QuizRepository,
	stats *StatsService,
) *GameService {
	return &GameService{
		gameRepo: gameRepo,
		quizRepo: quizRepo,
		stats:    stats,
	}
}

// Create создает активную игру по викторине
func (s *GameService) Create(quizID uint) (*entity.Game, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}

	game := &entity.Game{
		QuizID:    quizID,
		Status:    entity.GameStatusActive,
		StartedAt: time.Now(),
	}
	if err := s.gameRepo.Create(game); err != nil {
		return nil, fmt.Errorf("ошибка создания игры: %w", err)
	}

	log.Printf("[GameService] Игра %d создана (викторина %d)", game.ID, game.QuizID)
	return game, nil
}

// Get возвращает игру с игроками
func (s *GameService) Get(id uint) (*entity.Game, error) {
	return s.gameRepo.GetByID(id)
}

// Submit принимает готовый счет от клиента и проводит его через
// агрегатор статистики. Счет серверно не пересчитывается: маршрут
// сохранен из исходного клиентского потока. Повторная отправка по
// завершенной игре отклоняется репозиторием как ErrConflict.
func (s *GameService) Submit(ctx context.Context, gameID uint, playerName string, score int) (*entity.Game, error) {
	if score < 0 {
		return nil, fmt.Errorf("счет не может быть отрицательным: %w", apperrors.ErrValidation)
	}

	game, err := s.gameRepo.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	if game.IsCompleted() {
		return nil, fmt.Errorf("игра %d уже завершена: %w", gameID, apperrors.ErrConflict)
	}

	if err := s.stats.SubmitScore(ctx, playerName, game.QuizID, gameID, score, nil); err != nil {
		return nil, err
	}

	return s.gameRepo.GetByID(gameID)
}

// CompletedByQuiz возвращает завершенные игры викторины для экспорта
func (s *GameService) CompletedByQuiz(quizID uint) ([]entity.Game, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}
	return s.gameRepo.GetCompletedByQuizID(quizID)
}
