package session

// Константы начисления очков
const (
	// BasePoints - очки за сам факт правильного ответа
	BasePoints = 10
	// TimeBonusStepMs - размер "ступени" бонуса за скорость:
	// одно очко за каждые полные TimeBonusStepMs оставшегося времени
	TimeBonusStepMs = 3000
	// MaxStreakBonus - потолок бонуса за серию правильных ответов
	MaxStreakBonus = 5
)

// CalculateScore вычисляет очки за один ответ.
//
// Неправильный ответ (в том числе таймаут) всегда дает 0.
// Правильный ответ дает BasePoints плюс бонус за скорость плюс бонус
// за серию. Бонус за скорость убывает ступенями по TimeBonusStepMs и
// не бывает отрицательным. Бонус за серию равен длине серии ДО этого
// ответа, но не больше MaxStreakBonus.
func CalculateScore(correct bool, timeSpentMs int64, timeLimitMs int64, streakBefore int) int {
	if !correct {
		return 0
	}

	// затраченное время зажимается в [0, timeLimitMs]
	if timeSpentMs < 0 {
		timeSpentMs = 0
	}
	if timeSpentMs > timeLimitMs {
		timeSpentMs = timeLimitMs
	}

	timeBonus := int((timeLimitMs - timeSpentMs) / TimeBonusStepMs)

	streakBonus := streakBefore
	if streakBonus > MaxStreakBonus {
		streakBonus = MaxStreakBonus
	}
	if streakBonus < 0 {
		streakBonus = 0
	}

	return BasePoints + timeBonus + streakBonus
}
