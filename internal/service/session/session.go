package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// Состояния сессии
const (
	// StateAwaitingAnswer - вопрос показан, ответ еще не получен
	StateAwaitingAnswer = "awaiting_answer"
	// StateAnswerLocked - ответ зафиксирован, идет пауза перед следующим вопросом
	StateAnswerLocked = "answer_locked"
	// StateCompleted - все вопросы пройдены
	StateCompleted = "completed"
)

// Session - одиночное прохождение викторины одним игроком.
// Все переходы состояния выполняются под мьютексом; таймеры
// перепроверяют номер вопроса, поэтому опоздавший таймер ничего
// не ломает.
type Session struct {
	ID         string
	PlayerName string
	Quiz       *entity.Quiz
	GameID     uint

	mu           sync.Mutex
	state        string
	current      int // индекс текущего вопроса
	streak       int
	totalScore   int
	correctCount int
	answers      []entity.PlayerAnswer
	questionAt   time.Time // момент показа текущего вопроса
	startedAt    time.Time
	completedAt  time.Time

	questionTimer *time.Timer
	advanceTimer  *time.Timer

	cfg        *Config
	emit       EventFunc
	onComplete func(s *Session)
}

// Snapshot - неизменяемый срез состояния сессии для опроса по HTTP
type Snapshot struct {
	ID            string                `json:"sessionId"`
	PlayerName    string                `json:"playerName"`
	QuizID        uint                  `json:"quizId"`
	State         string                `json:"state"`
	QuestionIndex int                   `json:"questionIndex"`
	QuestionCount int                   `json:"questionCount"`
	TotalScore    int                   `json:"totalScore"`
	Streak        int                   `json:"streak"`
	CorrectCount  int                   `json:"correctCount"`
	Question      *QuestionPayload      `json:"question,omitempty"`
	Answers       []entity.PlayerAnswer `json:"answers,omitempty"`
}

func newSession(id string, playerName string, quiz *entity.Quiz, gameID uint,
	cfg *Config, emit EventFunc, onComplete func(s *Session)) *Session {
	if emit == nil {
		emit = func(string, *Event) {}
	}
	return &Session{
		ID:         id,
		PlayerName: playerName,
		Quiz:       quiz,
		GameID:     gameID,
		state:      StateAwaitingAnswer,
		answers:    make([]entity.PlayerAnswer, 0, len(quiz.Questions)),
		startedAt:  time.Now(),
		cfg:        cfg,
		emit:       emit,
		onComplete: onComplete,
	}
}

// start показывает первый вопрос и взводит таймер
func (s *Session) start() {
	s.mu.Lock()
	s.armQuestionLocked()
	event := s.questionEventLocked()
	s.mu.Unlock()

	s.emit(s.ID, event)
}

// armQuestionLocked отмечает момент показа вопроса и взводит таймер
// таймаута. Вызывается только под мьютексом.
func (s *Session) armQuestionLocked() {
	idx := s.current
	s.questionAt = time.Now()
	s.questionTimer = time.AfterFunc(
		time.Duration(s.cfg.QuestionTimeLimitMs)*time.Millisecond,
		func() { s.timeout(idx) },
	)
}

func (s *Session) questionEventLocked() *Event {
	q := s.Quiz.Questions[s.current]
	return &Event{
		Type: EventQuestion,
		Payload: &QuestionPayload{
			Index:         s.current,
			Total:         len(s.Quiz.Questions),
			Text:          q.Text,
			Options:       q.Options,
			TimeLimitMs:   s.cfg.QuestionTimeLimitMs,
			CurrentScore:  s.totalScore,
			CurrentStreak: s.streak,
		},
	}
}

// SubmitAnswer принимает ответ на текущий вопрос. Засчитывается только
// первый ответ: повторный вызов в том же вопросе возвращает ErrConflict.
// Время ответа измеряется сервером от момента показа вопроса.
func (s *Session) SubmitAnswer(answer string) (*AnswerPayload, error) {
	s.mu.Lock()

	if s.state == StateCompleted {
		s.mu.Unlock()
		return nil, fmt.Errorf("сессия уже завершена: %w", apperrors.ErrConflict)
	}
	if s.state != StateAwaitingAnswer {
		s.mu.Unlock()
		return nil, fmt.Errorf("ответ на вопрос уже зафиксирован: %w", apperrors.ErrConflict)
	}

	question := s.Quiz.Questions[s.current]
	if !question.HasOption(answer) {
		s.mu.Unlock()
		return nil, fmt.Errorf("вариант ответа не из списка вопроса: %w", apperrors.ErrValidation)
	}

	// ответ пришел раньше таймаута - таймер больше не нужен
	if s.questionTimer != nil {
		s.questionTimer.Stop()
	}

	timeSpent := time.Since(s.questionAt).Milliseconds()
	payload := s.lockAnswerLocked(answer, timeSpent, false)
	events := s.afterLockLocked(payload)
	s.mu.Unlock()

	for _, e := range events {
		s.emit(s.ID, e)
	}
	return payload, nil
}

// timeout фиксирует отсутствие ответа на вопрос idx. Если игрок успел
// ответить (состояние уже не AwaitingAnswer или вопрос сменился),
// таймаут игнорируется: при одновременном приходе ответ выигрывает.
func (s *Session) timeout(idx int) {
	s.mu.Lock()
	if s.state != StateAwaitingAnswer || s.current != idx {
		s.mu.Unlock()
		return
	}

	payload := s.lockAnswerLocked("", s.cfg.QuestionTimeLimitMs, true)
	events := s.afterLockLocked(payload)
	s.mu.Unlock()

	for _, e := range events {
		s.emit(s.ID, e)
	}
}

// lockAnswerLocked записывает ответ, начисляет очки и обновляет серию.
// Вызывается только под мьютексом в состоянии AwaitingAnswer.
func (s *Session) lockAnswerLocked(answer string, timeSpentMs int64, timedOut bool) *AnswerPayload {
	question := s.Quiz.Questions[s.current]
	correct := !timedOut && question.IsCorrect(answer)

	points := CalculateScore(correct, timeSpentMs, s.cfg.QuestionTimeLimitMs, s.streak)
	s.totalScore += points

	if correct {
		s.streak++
		s.correctCount++
	} else {
		s.streak = 0
	}

	s.answers = append(s.answers, entity.PlayerAnswer{
		QuestionIndex: s.current,
		Answer:        answer,
		Correct:       correct,
		TimeSpentMs:   timeSpentMs,
		Score:         points,
	})

	s.state = StateAnswerLocked

	return &AnswerPayload{
		Index:         s.current,
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		Points:        points,
		Streak:        s.streak,
		TotalScore:    s.totalScore,
		TimedOut:      timedOut,
	}
}

// afterLockLocked решает, что происходит после фиксации ответа:
// пауза перед следующим вопросом либо завершение сессии.
// Возвращает события для отправки после снятия мьютекса.
func (s *Session) afterLockLocked(payload *AnswerPayload) []*Event {
	events := []*Event{{Type: EventAnswer, Payload: payload}}

	if s.current+1 >= len(s.Quiz.Questions) {
		s.state = StateCompleted
		s.completedAt = time.Now()
		events = append(events, &Event{
			Type: EventCompleted,
			Payload: &CompletedPayload{
				TotalScore:   s.totalScore,
				CorrectCount: s.correctCount,
				Questions:    len(s.Quiz.Questions),
			},
		})
		if s.onComplete != nil {
			// отправка результата не должна держать мьютекс сессии
			go s.onComplete(s)
		}
		return events
	}

	s.advanceTimer = time.AfterFunc(
		time.Duration(s.cfg.FeedbackDelayMs)*time.Millisecond,
		s.advance,
	)
	return events
}

// advance переходит к следующему вопросу после паузы
func (s *Session) advance() {
	s.mu.Lock()
	if s.state != StateAnswerLocked {
		s.mu.Unlock()
		return
	}
	s.current++
	s.state = StateAwaitingAnswer
	s.armQuestionLocked()
	event := s.questionEventLocked()
	s.mu.Unlock()

	s.emit(s.ID, event)
}

// State возвращает срез текущего состояния сессии
func (s *Session) State() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		ID:            s.ID,
		PlayerName:    s.PlayerName,
		QuizID:        s.Quiz.ID,
		State:         s.state,
		QuestionIndex: s.current,
		QuestionCount: len(s.Quiz.Questions),
		TotalScore:    s.totalScore,
		Streak:        s.streak,
		CorrectCount:  s.correctCount,
	}

	if s.state == StateAwaitingAnswer {
		snap.Question = s.questionEventLocked().Payload.(*QuestionPayload)
	}
	if s.state == StateCompleted {
		answers := make([]entity.PlayerAnswer, len(s.answers))
		copy(answers, s.answers)
		snap.Answers = answers
	}
	return snap
}

// Result возвращает итог завершенной сессии для записи в статистику
func (s *Session) Result() (score int, answers []entity.PlayerAnswer, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers = make([]entity.PlayerAnswer, len(s.answers))
	copy(answers, s.answers)
	return s.totalScore, answers, s.completedAt.Sub(s.startedAt)
}

// stop гасит таймеры сессии при принудительном удалении
func (s *Session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.questionTimer != nil {
		s.questionTimer.Stop()
	}
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
	}
	s.state = StateCompleted
}
