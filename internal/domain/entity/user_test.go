package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/Vasanthadithya-mundrathi/VQUIZ/internal/pkg/errors"
)

func TestUser_AverageScore(t *testing.T) {
	// среднее округляется до ближайшего целого
	user := User{TotalScore: 100, GamesPlayed: 3}
	assert.Equal(t, int64(33), user.AverageScore())

	user = User{TotalScore: 110, GamesPlayed: 4}
	assert.Equal(t, int64(28), user.AverageScore())

	// ноль игр не приводит к делению на ноль
	user = User{TotalScore: 0, GamesPlayed: 0}
	assert.Equal(t, int64(0), user.AverageScore())
}

func TestQuizStat_AverageScore(t *testing.T) {
	stat := QuizStat{TotalScore: 41, Attempts: 2}
	assert.Equal(t, int64(21), stat.AverageScore())

	stat = QuizStat{}
	assert.Equal(t, int64(0), stat.AverageScore())
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Ян"))
	assert.NoError(t, ValidateName(strings.Repeat("я", MaxNameLength)))

	// длина считается в рунах, не в байтах
	assert.NoError(t, ValidateName("Александра"))

	assert.ErrorIs(t, ValidateName("x"), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateName(""), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateName(strings.Repeat("я", MaxNameLength+1)), apperrors.ErrValidation)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Алиса", NormalizeName("  Алиса  "))
	assert.Equal(t, "Алиса", NormalizeName("Алиса"))
}
