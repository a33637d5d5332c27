package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

func statsFixture() (*StatsService, *MockUserRepo, *MockGameRepo, *MockCacheRepo) {
	userRepo := new(MockUserRepo)
	gameRepo := new(MockGameRepo)
	cacheRepo := new(MockCacheRepo)
	return NewStatsService(userRepo, gameRepo, cacheRepo), userRepo, gameRepo, cacheRepo
}

func TestStatsService_SubmitScore(t *testing.T) {
	// Arrange
	svc, userRepo, gameRepo, cacheRepo := statsFixture()
	userRepo.On("RecordScore", "Алиса", uint(1), 38).
		Return(&entity.User{Name: "Алиса", TotalScore: 38, GamesPlayed: 1}, nil)
	cacheRepo.On("Delete", mock.Anything, "leaderboard:global").Return(nil)
	cacheRepo.On("Delete", mock.Anything, "leaderboard:quiz:1").Return(nil)
	gameRepo.On("CompleteWithPlayer", uint(5), mock.AnythingOfType("*entity.GamePlayer")).
		Return(&entity.Game{ID: 5, Status: entity.GameStatusCompleted}, nil)

	// Act
	err := svc.SubmitScore(context.Background(), "Алиса", 1, 5, 38, nil)

	// Assert
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
	gameRepo.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)

	player := gameRepo.Calls[0].Arguments.Get(1).(*entity.GamePlayer)
	assert.Equal(t, "Алиса", player.Name)
	assert.Equal(t, int64(38), player.Score)
	assert.True(t, player.Completed)
}

func TestStatsService_SubmitScoreInvalidName(t *testing.T) {
	svc, userRepo, _, _ := statsFixture()

	err := svc.SubmitScore(context.Background(), "x", 1, 5, 10, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	userRepo.AssertNotCalled(t, "RecordScore", mock.Anything, mock.Anything, mock.Anything)
}

func TestStatsService_GameWriteFailureKeepsUserAggregates(t *testing.T) {
	// Записи пользователя и игры не атомарны между собой: падение
	// записи игры возвращает ошибку, но агрегаты пользователя уже
	// применены и не откатываются.
	svc, userRepo, gameRepo, cacheRepo := statsFixture()
	userRepo.On("RecordScore", "Алиса", uint(1), 20).
		Return(&entity.User{Name: "Алиса", TotalScore: 20, GamesPlayed: 1}, nil)
	cacheRepo.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)
	gameRepo.On("CompleteWithPlayer", uint(5), mock.Anything).
		Return(nil, errors.New("база недоступна"))

	err := svc.SubmitScore(context.Background(), "Алиса", 1, 5, 20, nil)

	require.Error(t, err)
	// агрегаты пользователя были записаны до ошибки
	userRepo.AssertCalled(t, "RecordScore", "Алиса", uint(1), 20)
}

func TestStatsService_DuplicateSubmissionDoubleCounts(t *testing.T) {
	// Агрегатор прибавляет очки безусловно: два вызова по одному и
	// тому же завершению удваивают счет. Дедупликация - обязанность
	// вызывающей стороны (SetNX в менеджере сессий).
	svc, userRepo, gameRepo, cacheRepo := statsFixture()
	userRepo.On("RecordScore", "Алиса", uint(1), 19).
		Return(&entity.User{Name: "Алиса"}, nil).Twice()
	cacheRepo.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil)
	gameRepo.On("CompleteWithPlayer", uint(5), mock.Anything).
		Return(&entity.Game{ID: 5, Status: entity.GameStatusCompleted}, nil).Once()
	// вторая запись игры отклоняется заморозкой, но очки уже прибавлены
	gameRepo.On("CompleteWithPlayer", uint(5), mock.Anything).
		Return(nil, apperrors.ErrConflict).Once()

	err1 := svc.SubmitScore(context.Background(), "Алиса", 1, 5, 19, nil)
	err2 := svc.SubmitScore(context.Background(), "Алиса", 1, 5, 19, nil)

	require.NoError(t, err1)
	require.Error(t, err2)
	userRepo.AssertNumberOfCalls(t, "RecordScore", 2)
}

func TestStatsService_CacheFailureNotFatal(t *testing.T) {
	svc, userRepo, gameRepo, cacheRepo := statsFixture()
	userRepo.On("RecordScore", "Алиса", uint(1), 10).
		Return(&entity.User{Name: "Алиса"}, nil)
	cacheRepo.On("Delete", mock.Anything, mock.AnythingOfType("string")).
		Return(errors.New("redis недоступен"))
	gameRepo.On("CompleteWithPlayer", uint(5), mock.Anything).
		Return(&entity.Game{ID: 5}, nil)

	err := svc.SubmitScore(context.Background(), "Алиса", 1, 5, 10, nil)

	require.NoError(t, err)
}
