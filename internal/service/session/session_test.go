package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// testConfig возвращает конфигурацию с короткими таймерами для тестов
func testConfig() *Config {
	return &Config{
		QuestionTimeLimitMs:       30000,
		FeedbackDelayMs:           10,
		SubmittedKeyTTLSeconds:    60,
		CompletedRetentionSeconds: 60,
	}
}

func testQuiz(questions int) *entity.Quiz {
	quiz := &entity.Quiz{
		ID:      1,
		Title:   "Тестовая викторина",
		Creator: "author",
	}
	for i := 0; i < questions; i++ {
		quiz.Questions = append(quiz.Questions, entity.Question{
			ID:            uint(i + 1),
			QuizID:        1,
			Position:      i,
			Text:          "Вопрос",
			Options:       entity.StringArray{"A", "B", "C"},
			CorrectAnswer: "A",
		})
	}
	return quiz
}

// eventCollector собирает события сессии потокобезопасно
type eventCollector struct {
	mu     sync.Mutex
	events []*Event
}

func (c *eventCollector) collect(_ string, e *Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *eventCollector) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	types := make([]string, len(c.events))
	for i, e := range c.events {
		types[i] = e.Type
	}
	return types
}

func TestSession_CorrectAnswerScoresAndAdvances(t *testing.T) {
	collector := &eventCollector{}
	sess := newSession("s1", "Игрок", testQuiz(2), 1, testConfig(), collector.collect, nil)
	sess.start()

	payload, err := sess.SubmitAnswer("A")

	require.NoError(t, err)
	assert.True(t, payload.Correct)
	assert.Equal(t, "A", payload.CorrectAnswer)
	assert.Equal(t, 1, payload.Streak)
	// время меряет сервер, поэтому точное значение бонуса за скорость
	// зависит от прошедших миллисекунд; быстрый ответ дает 19-20 очков
	assert.GreaterOrEqual(t, payload.Points, 19)
	assert.LessOrEqual(t, payload.Points, 20)
	assert.Equal(t, payload.Points, payload.TotalScore)

	// после паузы сессия переходит ко второму вопросу
	assert.Eventually(t, func() bool {
		return sess.State().QuestionIndex == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, StateAwaitingAnswer, sess.State().State)
}

func TestSession_WrongAnswerResetsStreak(t *testing.T) {
	sess := newSession("s1", "Игрок", testQuiz(3), 1, testConfig(), nil, nil)
	sess.start()

	first, err := sess.SubmitAnswer("A")
	require.NoError(t, err)
	require.True(t, first.Correct)
	require.Equal(t, 1, first.Streak)

	require.Eventually(t, func() bool {
		return sess.State().QuestionIndex == 1
	}, time.Second, 5*time.Millisecond)

	second, err := sess.SubmitAnswer("B")
	require.NoError(t, err)
	assert.False(t, second.Correct)
	assert.Equal(t, 0, second.Points)
	assert.Equal(t, 0, second.Streak)

	require.Eventually(t, func() bool {
		return sess.State().QuestionIndex == 2
	}, time.Second, 5*time.Millisecond)

	// серия после неправильного ответа начинается заново:
	// бонуса за серию нет, только база и бонус за скорость
	third, err := sess.SubmitAnswer("A")
	require.NoError(t, err)
	assert.True(t, third.Correct)
	assert.Equal(t, 1, third.Streak)
	assert.GreaterOrEqual(t, third.Points, 19)
	assert.LessOrEqual(t, third.Points, 20)
}

func TestSession_SecondAnswerRejected(t *testing.T) {
	sess := newSession("s1", "Игрок", testQuiz(2), 1, testConfig(), nil, nil)
	sess.start()

	_, err := sess.SubmitAnswer("A")
	require.NoError(t, err)

	// повторный ответ до перехода к следующему вопросу отклоняется
	_, err = sess.SubmitAnswer("B")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSession_UnknownOptionRejected(t *testing.T) {
	sess := newSession("s1", "Игрок", testQuiz(1), 1, testConfig(), nil, nil)
	sess.start()

	_, err := sess.SubmitAnswer("нет такого варианта")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	// невалидный ответ не фиксирует вопрос
	assert.Equal(t, StateAwaitingAnswer, sess.State().State)
}

func TestSession_TimeoutScoresZeroAndResetsStreak(t *testing.T) {
	cfg := testConfig()
	cfg.QuestionTimeLimitMs = 30 // короткий лимит для теста
	sess := newSession("s1", "Игрок", testQuiz(2), 1, cfg, nil, nil)
	sess.start()

	// не отвечаем - таймер фиксирует пропуск и двигает сессию дальше
	require.Eventually(t, func() bool {
		return sess.State().QuestionIndex == 1
	}, time.Second, 5*time.Millisecond)

	snap := sess.State()
	assert.Equal(t, 0, snap.TotalScore)
	assert.Equal(t, 0, snap.Streak)
}

func TestSession_CompletesAfterLastQuestion(t *testing.T) {
	collector := &eventCollector{}
	done := make(chan *Session, 1)
	sess := newSession("s1", "Игрок", testQuiz(2), 1, testConfig(), collector.collect,
		func(s *Session) { done <- s })
	sess.start()

	_, err := sess.SubmitAnswer("A")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return sess.State().QuestionIndex == 1
	}, time.Second, 5*time.Millisecond)
	_, err = sess.SubmitAnswer("A")
	require.NoError(t, err)

	select {
	case completed := <-done:
		score, answers, _ := completed.Result()
		require.Len(t, answers, 2)
		// итог равен сумме очков по ответам; второй ответ несет
		// бонус за серию длиной 1
		sum := 0
		for _, a := range answers {
			sum += a.Score
		}
		assert.Equal(t, sum, score)
		assert.GreaterOrEqual(t, answers[0].Score, 19)
		assert.LessOrEqual(t, answers[0].Score, 20)
		assert.GreaterOrEqual(t, answers[1].Score, 20)
		assert.LessOrEqual(t, answers[1].Score, 21)
	case <-time.After(time.Second):
		t.Fatal("сессия не завершилась")
	}

	snap := sess.State()
	assert.Equal(t, StateCompleted, snap.State)
	assert.Len(t, snap.Answers, 2)

	// события: вопрос, результат, вопрос, результат, завершение
	assert.Equal(t,
		[]string{EventQuestion, EventAnswer, EventQuestion, EventAnswer, EventCompleted},
		collector.types())
}

func TestSession_AnswerAfterCompletionRejected(t *testing.T) {
	sess := newSession("s1", "Игрок", testQuiz(1), 1, testConfig(), nil, nil)
	sess.start()

	_, err := sess.SubmitAnswer("A")
	require.NoError(t, err)
	require.Equal(t, StateCompleted, sess.State().State)

	_, err = sess.SubmitAnswer("A")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSession_LateTimerDoesNotOverrideAnswer(t *testing.T) {
	sess := newSession("s1", "Игрок", testQuiz(2), 1, testConfig(), nil, nil)
	sess.start()

	payload, err := sess.SubmitAnswer("A")
	require.NoError(t, err)
	require.True(t, payload.Correct)

	// опоздавший таймаут того же вопроса игнорируется
	sess.timeout(0)

	snap := sess.State()
	assert.Equal(t, payload.TotalScore, snap.TotalScore)
	assert.Equal(t, 1, snap.Streak)
}
