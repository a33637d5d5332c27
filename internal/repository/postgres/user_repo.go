package postgres

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/entity"
	"github.com/Vasanthadithya-mundrathi/VQUIZ/internal/domain/repository"
	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя.
// Дубликат имени определяется по unique constraint БД (23505), а не
// предварительным SELECT: так исключается гонка двух одновременных регистраций.
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // 23505 - unique_violation
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

// GetByName возвращает пользователя по имени
func (r *UserRepo) GetByName(name string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("name = ?", name).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByNameWithStats возвращает пользователя вместе с его статистикой по викторинам
func (r *UserRepo) GetByNameWithStats(name string) (*entity.User, error) {
	var user entity.User
	err := r.db.Preload("QuizStats").Where("name = ?", name).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RecordScore применяет очки завершенной игры к агрегатам пользователя.
// Пользователь создается при первом результате. Инкременты "слепые"
// (gorm.Expr поверх текущего значения БД): повторный вызов с тем же
// результатом прибавит очки еще раз.
func (r *UserRepo) RecordScore(name string, quizID uint, score int) (*entity.User, error) {
	var user entity.User
	now := time.Now()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("name = ?", name).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = entity.User{Name: name}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var stat entity.QuizStat
		err = tx.Where("user_id = ? AND quiz_id = ?", user.ID, quizID).First(&stat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stat = newQuizStat(user.ID, quizID, score, now)
			if err := tx.Create(&stat).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := tx.Model(&stat).Updates(statUpdates(&stat, score, now)).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&user).Updates(map[string]interface{}{
			"total_score":  gorm.Expr("total_score + ?", score),
			"games_played": gorm.Expr("games_played + 1"),
		}).Error; err != nil {
			return err
		}

		// перечитываем обновленные счетчики
		return tx.First(&user, user.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// newQuizStat формирует первую запись статистики пользователя по викторине
func newQuizStat(userID, quizID uint, score int, now time.Time) entity.QuizStat {
	s := int64(score)
	return entity.QuizStat{
		UserID:       userID,
		QuizID:       quizID,
		HighestScore: s,
		TotalScore:   s,
		Attempts:     1,
		LastPlayed:   &now,
	}
}

// statUpdates формирует карту инкрементов существующей записи статистики.
// highest_score обновляется только при превышении сохраненного максимума.
func statUpdates(stat *entity.QuizStat, score int, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{
		"total_score": gorm.Expr("total_score + ?", score),
		"attempts":    gorm.Expr("attempts + 1"),
		"last_played": now,
	}
	if int64(score) > stat.HighestScore {
		updates["highest_score"] = score
	}
	return updates
}

// GetLeaderboard возвращает пользователей для глобального лидерборда,
// отсортированных по total_score DESC. Вторичная сортировка по id
// фиксирует порядок при равных счетах.
func (r *UserRepo) GetLeaderboard(limit int) ([]entity.User, error) {
	var users []entity.User
	err := r.db.
		Order("total_score DESC, id ASC").
		Limit(limit).
		Select("id", "name", "total_score", "games_played").
		Find(&users).Error
	return users, err
}

// GetQuizLeaderboard возвращает строки лидерборда одной викторины:
// join quiz_stats и users, сортировка по highest_score DESC.
func (r *UserRepo) GetQuizLeaderboard(quizID uint, limit int) ([]repository.QuizRanking, error) {
	var rankings []repository.QuizRanking
	err := r.db.Table("quiz_stats").
		Select("users.name AS name, quiz_stats.highest_score, quiz_stats.total_score, quiz_stats.attempts, quiz_stats.last_played").
		Joins("JOIN users ON users.id = quiz_stats.user_id").
		Where("quiz_stats.quiz_id = ?", quizID).
		Order("quiz_stats.highest_score DESC, quiz_stats.user_id ASC").
		Limit(limit).
		Scan(&rankings).Error
	return rankings, err
}
