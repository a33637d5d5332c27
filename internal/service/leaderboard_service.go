package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/repository"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// MaxLeaderboardSize - максимальное число строк в лидерборде
const MaxLeaderboardSize = 100

// LeaderboardEntry - одна строка лидерборда в wire-формате
type LeaderboardEntry struct {
	Rank         int        `json:"rank"`
	PlayerName   string     `json:"playerName"`
	TotalScore   int64      `json:"totalScore,omitempty"`
	HighestScore int64      `json:"highestScore,omitempty"`
	GamesPlayed  int64      `json:"gamesPlayed"`
	AverageScore int64      `json:"averageScore"`
	LastPlayed   *time.Time `json:"lastPlayed,omitempty"`
}

// LeaderboardService строит глобальный и поквизовый лидерборды
type LeaderboardService struct {
	userRepo  repository.UserRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
}

// NewLeaderboardService создает новый сервис лидербордов
func NewLeaderboardService(
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *LeaderboardService {
	return &LeaderboardService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

// Global возвращает глобальный лидерборд: игроки по суммарным очкам.
// Результат кешируется в Redis до ближайшей записи результата.
func (s *LeaderboardService) Global(ctx context.Context) ([]LeaderboardEntry, error) {
	key := globalLeaderboardKey()
	if entries, ok := s.fromCache(ctx, key); ok {
		return entries, nil
	}

	users, err := s.userRepo.GetLeaderboard(MaxLeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка построения глобального лидерборда: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:         i + 1,
			PlayerName:   u.Name,
			TotalScore:   u.TotalScore,
			GamesPlayed:  u.GamesPlayed,
			AverageScore: u.AverageScore(),
		})
	}

	s.toCache(ctx, key, entries)
	return entries, nil
}

// ForQuiz возвращает лидерборд одной викторины: игроки по лучшему
// результату в ней
func (s *LeaderboardService) ForQuiz(ctx context.Context, quizID uint) ([]LeaderboardEntry, error) {
	key := quizLeaderboardKey(quizID)
	if entries, ok := s.fromCache(ctx, key); ok {
		return entries, nil
	}

	rankings, err := s.userRepo.GetQuizLeaderboard(quizID, MaxLeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка построения лидерборда викторины %d: %w", quizID, err)
	}

	entries := make([]LeaderboardEntry, 0, len(rankings))
	for i, r := range rankings {
		avg := int64(0)
		if r.Attempts > 0 {
			avg = (r.TotalScore + r.Attempts/2) / r.Attempts
		}
		entries = append(entries, LeaderboardEntry{
			Rank:         i + 1,
			PlayerName:   r.Name,
			HighestScore: r.HighestScore,
			TotalScore:   r.TotalScore,
			GamesPlayed:  r.Attempts,
			AverageScore: avg,
			LastPlayed:   r.LastPlayed,
		})
	}

	s.toCache(ctx, key, entries)
	return entries, nil
}

// fromCache пробует достать лидерборд из Redis. Ошибки кеша не
// фатальны: при недоступном Redis идем в БД.
func (s *LeaderboardService) fromCache(ctx context.Context, key string) ([]LeaderboardEntry, bool) {
	if s.cacheRepo == nil {
		return nil, false
	}
	var entries []LeaderboardEntry
	err := s.cacheRepo.GetJSON(ctx, key, &entries)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[LeaderboardService] Ошибка чтения кеша %s: %v", key, err)
		}
		return nil, false
	}
	return entries, true
}

func (s *LeaderboardService) toCache(ctx context.Context, key string, entries []LeaderboardEntry) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.SetJSON(ctx, key, entries, s.cacheTTL); err != nil {
		log.Printf("[LeaderboardService] Ошибка записи кеша %s: %v", key, err)
	}
}

func globalLeaderboardKey() string {
	return "leaderboard:global"
}

func quizLeaderboardKey(quizID uint) string {
	return fmt.Sprintf("leaderboard:quiz:%d", quizID)
}
