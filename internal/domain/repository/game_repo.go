package repository

import (
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
)

// GameRepository определяет методы для работы с записями игр
type GameRepository interface {
	Create(game *entity.Game) error
	// GetByID возвращает игру вместе с записями игроков
	GetByID(id uint) (*entity.Game, error)
	// CompleteWithPlayer дописывает запись игрока и переводит игру в completed.
	// Возвращает ErrConflict, если игра уже завершена: завершенная игра заморожена.
	CompleteWithPlayer(gameID uint, player *entity.GamePlayer) (*entity.Game, error)
	// GetCompletedByQuizID возвращает завершенные игры викторины (для экспорта)
	GetCompletedByQuizID(quizID uint) ([]entity.Game, error)
}
