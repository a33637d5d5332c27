package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// MockQuizRepo - мок репозитория викторин
type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) List(limit, offset int) ([]entity.Quiz, int64, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]entity.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepo) ListByCreator(creator string) ([]entity.Quiz, error) {
	args := m.Called(creator)
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) Update(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockGameRepo - мок репозитория игр
type MockGameRepo struct {
	mock.Mock
}

func (m *MockGameRepo) Create(game *entity.Game) error {
	args := m.Called(game)
	game.ID = 42
	return args.Error(0)
}

func (m *MockGameRepo) GetByID(id uint) (*entity.Game, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepo) CompleteWithPlayer(gameID uint, player *entity.GamePlayer) (*entity.Game, error) {
	args := m.Called(gameID, player)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (m *MockGameRepo) GetCompletedByQuizID(quizID uint) ([]entity.Game, error) {
	args := m.Called(quizID)
	return args.Get(0).([]entity.Game), args.Error(1)
}

// MockCacheRepo - мок репозитория кеша
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepo) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepo) SetNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, expiration)
	return args.Bool(0), args.Error(1)
}

// MockSubmitter - мок приемника результатов
type MockSubmitter struct {
	mock.Mock
	done chan struct{}
}

func (m *MockSubmitter) SubmitScore(ctx context.Context, playerName string, quizID uint, gameID uint, score int, answers []entity.PlayerAnswer) error {
	args := m.Called(ctx, playerName, quizID, gameID, score, answers)
	if m.done != nil {
		close(m.done)
	}
	return args.Error(0)
}

func TestManager_StartCreatesGameAndShowsFirstQuestion(t *testing.T) {
	quizRepo := new(MockQuizRepo)
	gameRepo := new(MockGameRepo)
	quiz := testQuiz(2)
	quizRepo.On("GetWithQuestions", uint(1)).Return(quiz, nil)
	gameRepo.On("Create", mock.AnythingOfType("*entity.Game")).Return(nil)

	manager := NewManager(testConfig(), &Dependencies{
		QuizRepo: quizRepo,
		GameRepo: gameRepo,
	})
	defer manager.Shutdown()

	sess, err := manager.Start(context.Background(), 1, "  Игрок  ")

	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	// имя нормализуется при старте
	assert.Equal(t, "Игрок", sess.PlayerName)
	assert.Equal(t, uint(42), sess.GameID)

	snap := sess.State()
	assert.Equal(t, StateAwaitingAnswer, snap.State)
	assert.Equal(t, 0, snap.QuestionIndex)
	require.NotNil(t, snap.Question)
	assert.Equal(t, []string{"A", "B", "C"}, snap.Question.Options)

	quizRepo.AssertExpectations(t)
	gameRepo.AssertExpectations(t)
}

func TestManager_StartRejectsInvalidName(t *testing.T) {
	manager := NewManager(testConfig(), &Dependencies{})

	_, err := manager.Start(context.Background(), 1, "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestManager_StartUnknownQuiz(t *testing.T) {
	quizRepo := new(MockQuizRepo)
	quizRepo.On("GetWithQuestions", uint(99)).Return(nil, apperrors.ErrNotFound)

	manager := NewManager(testConfig(), &Dependencies{QuizRepo: quizRepo})

	_, err := manager.Start(context.Background(), 99, "Игрок")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestManager_AnswerUnknownSession(t *testing.T) {
	manager := NewManager(testConfig(), &Dependencies{})

	_, err := manager.Answer("нет-такой-сессии", "A")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestManager_CompletedSessionSubmitsScoreOnce(t *testing.T) {
	quizRepo := new(MockQuizRepo)
	gameRepo := new(MockGameRepo)
	cacheRepo := new(MockCacheRepo)
	submitter := &MockSubmitter{done: make(chan struct{})}

	quiz := testQuiz(1)
	quizRepo.On("GetWithQuestions", uint(1)).Return(quiz, nil)
	gameRepo.On("Create", mock.AnythingOfType("*entity.Game")).Return(nil)
	cacheRepo.On("SetNX", mock.Anything, mock.AnythingOfType("string"), "1", mock.Anything).
		Return(true, nil).Once()
	submitter.On("SubmitScore", mock.Anything, "Игрок", uint(1), uint(42), mock.AnythingOfType("int"), mock.Anything).
		Return(nil).Once()

	manager := NewManager(testConfig(), &Dependencies{
		QuizRepo:  quizRepo,
		GameRepo:  gameRepo,
		CacheRepo: cacheRepo,
		Submitter: submitter,
	})
	defer manager.Shutdown()

	sess, err := manager.Start(context.Background(), 1, "Игрок")
	require.NoError(t, err)

	_, err = manager.Answer(sess.ID, "A")
	require.NoError(t, err)

	select {
	case <-submitter.done:
	case <-time.After(time.Second):
		t.Fatal("результат не был отправлен")
	}

	submitter.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)
}
