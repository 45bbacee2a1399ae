package pricing

import "github.com/m04kA/SMC-RentalService/pkg/types"

// WeekendAdjustedDays количество оплачиваемых дней аренды [start, end].
//
// Базовое значение - число ночей (end - start), аренда на один день считается как 1.
// Каждая пара пятница+суббота внутри [start, end) считается одним днем:
// в субботу магазин закрыт, выдача в пятницу и возврат после субботы оплачиваются как один день.
// Результат всегда >= 1.
func WeekendAdjustedDays(start, end types.Date) int {
	nights := start.DaysUntil(end)
	if nights <= 0 {
		return 1
	}

	// Пятница -> воскресенье всегда один день
	if start.IsFriday() && nights == 2 {
		return 1
	}

	days := nights
	for d := start; d.Before(end); d = d.AddDays(1) {
		if d.IsFriday() && d.AddDays(1).Before(end) {
			days--
		}
	}

	if days < 1 {
		return 1
	}
	return days
}
