package service

import (
	"fmt"
	"log"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/repository"
)

// UserService предоставляет регистрацию игроков и их статистику
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register регистрирует игрока по отображаемому имени.
// Имя нормализуется и проверяется до обращения к БД; занятое имя
// отдается как ErrConflict из репозитория.
func (s *UserService) Register(name string) (*entity.User, error) {
	name = entity.NormalizeName(name)
	if err := entity.ValidateName(name); err != nil {
		return nil, err
	}

	user := &entity.User{Name: name}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("ошибка регистрации игрока '%s': %w", name, err)
	}

	log.Printf("[UserService] Игрок '%s' зарегистрирован (ID: %d)", user.Name, user.ID)
	return user, nil
}

// GetStats возвращает пользователя вместе со статистикой по викторинам
func (s *UserService) GetStats(name string) (*entity.User, error) {
	return s.userRepo.GetByNameWithStats(entity.NormalizeName(name))
}
