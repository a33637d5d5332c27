package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// Manager управляет активными игровыми сессиями в памяти процесса
type Manager struct {
	config *Config
	deps   *Dependencies

	// sessions хранит map[string]*Session по ID сессии
	sessions sync.Map
}

// NewManager создает новый менеджер сессий
func NewManager(config *Config, deps *Dependencies) *Manager {
	if config == nil {
		config = DefaultConfig()
	}
	return &Manager{
		config: config,
		deps:   deps,
	}
}

// Start начинает прохождение викторины: загружает вопросы, создает
// активную игру в БД и показывает первый вопрос.
func (m *Manager) Start(ctx context.Context, quizID uint, playerName string) (*Session, error) {
	playerName = entity.NormalizeName(playerName)
	if err := entity.ValidateName(playerName); err != nil {
		return nil, err
	}

	quiz, err := m.deps.QuizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("в викторине нет вопросов: %w", apperrors.ErrValidation)
	}

	game := &entity.Game{
		QuizID:    quiz.ID,
		Status:    entity.GameStatusActive,
		StartedAt: time.Now(),
	}
	if err := m.deps.GameRepo.Create(game); err != nil {
		return nil, fmt.Errorf("ошибка создания игры: %w", err)
	}

	id := uuid.New().String()
	sess := newSession(id, playerName, quiz, game.ID, m.config, m.deps.OnEvent, m.submitResult)
	m.sessions.Store(id, sess)

	log.Printf("[SessionManager] Сессия %s: игрок '%s' начал викторину %d (%d вопросов)",
		id, playerName, quiz.ID, len(quiz.Questions))

	sess.start()
	return sess, nil
}

// Get возвращает сессию по ID
func (m *Manager) Get(sessionID string) (*Session, error) {
	v, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, fmt.Errorf("сессия %s не найдена: %w", sessionID, apperrors.ErrNotFound)
	}
	return v.(*Session), nil
}

// Answer передает ответ игрока в сессию
func (m *Manager) Answer(sessionID string, answer string) (*AnswerPayload, error) {
	sess, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.SubmitAnswer(answer)
}

// State возвращает срез состояния сессии для опроса
func (m *Manager) State(sessionID string) (*Snapshot, error) {
	sess, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.State(), nil
}

// submitResult отправляет итог завершенной сессии в статистику.
// Ключ SetNX гарантирует одну отправку на сессию даже при гонке
// таймера и ответа.
func (m *Manager) submitResult(s *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	key := submittedKey(s.ID)
	ttl := time.Duration(m.config.SubmittedKeyTTLSeconds) * time.Second
	acquired, err := m.deps.CacheRepo.SetNX(ctx, key, "1", ttl)
	if err != nil {
		// Redis недоступен - отправляем без защиты, результат важнее
		log.Printf("[SessionManager] Сессия %s: ошибка SetNX: %v", s.ID, err)
	} else if !acquired {
		log.Printf("[SessionManager] Сессия %s: результат уже отправлен, пропуск", s.ID)
		return
	}

	score, answers, duration := s.Result()
	if err := m.deps.Submitter.SubmitScore(ctx, s.PlayerName, s.Quiz.ID, s.GameID, score, answers); err != nil {
		log.Printf("[SessionManager] Сессия %s: ошибка записи результата: %v", s.ID, err)
		return
	}

	log.Printf("[SessionManager] Сессия %s: результат записан, игрок '%s', очки %d, время %s",
		s.ID, s.PlayerName, score, duration.Round(time.Second))

	m.scheduleRemoval(s.ID)
}

// scheduleRemoval удаляет завершенную сессию из памяти после периода
// хранения, чтобы клиент успел забрать итоговое состояние
func (m *Manager) scheduleRemoval(sessionID string) {
	retention := time.Duration(m.config.CompletedRetentionSeconds) * time.Second
	time.AfterFunc(retention, func() {
		if v, ok := m.sessions.LoadAndDelete(sessionID); ok {
			v.(*Session).stop()
			log.Printf("[SessionManager] Сессия %s удалена из памяти", sessionID)
		}
	})
}

// Shutdown гасит таймеры всех активных сессий
func (m *Manager) Shutdown() {
	m.sessions.Range(func(key, value interface{}) bool {
		value.(*Session).stop()
		m.sessions.Delete(key)
		return true
	})
	log.Printf("[SessionManager] Все сессии остановлены")
}

func submittedKey(sessionID string) string {
	return fmt.Sprintf("session:submitted:%s", sessionID)
}
