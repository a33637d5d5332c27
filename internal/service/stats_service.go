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

// StatsService агрегирует результаты завершенных игр в статистику
// пользователей
type StatsService struct {
	userRepo  repository.UserRepository
	gameRepo  repository.GameRepository
	cacheRepo repository.CacheRepository
}

// NewStatsService создает новый сервис статистики
func NewStatsService(
	userRepo repository.UserRepository,
	gameRepo repository.GameRepository,
	cacheRepo repository.CacheRepository,
) *StatsService {
	return &StatsService{
		userRepo:  userRepo,
		gameRepo:  gameRepo,
		cacheRepo: cacheRepo,
	}
}

// SubmitScore записывает итог игры: сначала агрегаты пользователя
// (одна транзакция в репозитории), затем отдельной записью - результат
// игрока в игре. Записи не атомарны между собой: если вторая падает,
// агрегаты пользователя уже применены и не откатываются.
//
// Сервис прибавляет очки безусловно: защита от повторной отправки
// лежит на вызывающей стороне.
func (s *StatsService) SubmitScore(ctx context.Context, playerName string, quizID uint, gameID uint, score int, answers []entity.PlayerAnswer) error {
	playerName = entity.NormalizeName(playerName)
	if err := entity.ValidateName(playerName); err != nil {
		return err
	}

	user, err := s.userRepo.RecordScore(playerName, quizID, score)
	if err != nil {
		return fmt.Errorf("ошибка обновления статистики игрока '%s': %w", playerName, err)
	}

	log.Printf("[StatsService] Игрок '%s': +%d очков по викторине %d (всего %d, игр %d)",
		playerName, score, quizID, user.TotalScore, user.GamesPlayed)

	s.invalidateLeaderboards(ctx, quizID)

	now := time.Now()
	player := &entity.GamePlayer{
		Name:        playerName,
		Score:       int64(score),
		Completed:   true,
		Answers:     answers,
		JoinedAt:    now,
		CompletedAt: &now,
	}
	if _, err := s.gameRepo.CompleteWithPlayer(gameID, player); err != nil {
		// агрегаты пользователя уже записаны, компенсации нет
		return fmt.Errorf("ошибка записи результата игры %d: %w", gameID, err)
	}

	return nil
}

// SubmitDirectScore применяет готовый счет к агрегатам игрока без
// привязки к игре. Обслуживает прямой маршрут обновления счета.
func (s *StatsService) SubmitDirectScore(ctx context.Context, playerName string, quizID uint, score int) error {
	playerName = entity.NormalizeName(playerName)
	if err := entity.ValidateName(playerName); err != nil {
		return err
	}
	if score < 0 {
		return fmt.Errorf("счет не может быть отрицательным: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.RecordScore(playerName, quizID, score)
	if err != nil {
		return fmt.Errorf("ошибка обновления статистики игрока '%s': %w", playerName, err)
	}

	log.Printf("[StatsService] Игрок '%s': прямое начисление +%d по викторине %d (всего %d)",
		playerName, score, quizID, user.TotalScore)

	s.invalidateLeaderboards(ctx, quizID)
	return nil
}

// invalidateLeaderboards сбрасывает кеш затронутых лидербордов
func (s *StatsService) invalidateLeaderboards(ctx context.Context, quizID uint) {
	if s.cacheRepo == nil {
		return
	}
	for _, key := range []string{globalLeaderboardKey(), quizLeaderboardKey(quizID)} {
		if err := s.cacheRepo.Delete(ctx, key); err != nil {
			log.Printf("[StatsService] Ошибка сброса кеша %s: %v", key, err)
		}
	}
}
