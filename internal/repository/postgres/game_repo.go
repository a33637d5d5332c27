package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// GameRepo реализует repository.GameRepository
type GameRepo struct {
	db *gorm.DB
}

// NewGameRepo создает новый репозиторий игр
func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

// Create создает новую игру в статусе active
func (r *GameRepo) Create(game *entity.Game) error {
	return r.db.Create(game).Error
}

// GetByID возвращает игру вместе с игроками
func (r *GameRepo) GetByID(id uint) (*entity.Game, error) {
	var game entity.Game
	err := r.db.Preload("Players").First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// CompleteWithPlayer записывает результат игрока и переводит игру в
// статус completed. Завершенная игра заморожена: повторная запись
// возвращает ErrConflict.
func (r *GameRepo) CompleteWithPlayer(gameID uint, player *entity.GamePlayer) (*entity.Game, error) {
	var game entity.Game

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Players").First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if game.IsCompleted() {
			return apperrors.ErrConflict
		}

		player.GameID = game.ID
		if player.CompletedAt == nil {
			now := time.Now()
			player.CompletedAt = &now
		}
		if err := tx.Create(player).Error; err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":   entity.GameStatusCompleted,
			"ended_at": now,
		}
		if err := tx.Model(&game).Updates(updates).Error; err != nil {
			return err
		}

		game.Status = entity.GameStatusCompleted
		game.EndedAt = &now
		game.Players = append(game.Players, *player)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GetCompletedByQuizID возвращает завершенные игры викторины с игроками,
// последние первыми
func (r *GameRepo) GetCompletedByQuizID(quizID uint) ([]entity.Game, error) {
	var games []entity.Game
	err := r.db.
		Preload("Players").
		Where("quiz_id = ? AND status = ?", quizID, entity.GameStatusCompleted).
		Order("ended_at DESC").
		Find(&games).Error
	return games, err
}
