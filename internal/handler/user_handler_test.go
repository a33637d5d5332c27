package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/repository"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/service"
)

// stubUserRepo - минимальная заглушка репозитория для HTTP-тестов
type stubUserRepo struct {
	createErr error
	users     map[string]*entity.User
}

func (s *stubUserRepo) Create(user *entity.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = 1
	return nil
}

func (s *stubUserRepo) GetByName(name string) (*entity.User, error) {
	return s.GetByNameWithStats(name)
}

func (s *stubUserRepo) GetByNameWithStats(name string) (*entity.User, error) {
	if u, ok := s.users[name]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *stubUserRepo) RecordScore(name string, quizID uint, score int) (*entity.User, error) {
	return nil, apperrors.ErrNotFound
}

func (s *stubUserRepo) GetLeaderboard(limit int) ([]entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) GetQuizLeaderboard(quizID uint, limit int) ([]repository.QuizRanking, error) {
	return nil, nil
}

func registerRouter(repo *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewUserHandler(service.NewUserService(repo), nil)
	router.POST("/api/users/register", h.Register)
	router.GET("/api/users/:name/stats", h.GetStats)
	return router
}

func TestUserHandler_Register(t *testing.T) {
	router := registerRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/register",
		strings.NewReader(`{"name":"Алиса"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Алиса"`)
}

func TestUserHandler_RegisterDuplicate(t *testing.T) {
	router := registerRouter(&stubUserRepo{createErr: apperrors.ErrConflict})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/register",
		strings.NewReader(`{"name":"Алиса"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_RegisterInvalidName(t *testing.T) {
	router := registerRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/register",
		strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUserHandler_RegisterMalformedBody(t *testing.T) {
	router := registerRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/register",
		strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_StatsNotFound(t *testing.T) {
	router := registerRouter(&stubUserRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users/Никто/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
