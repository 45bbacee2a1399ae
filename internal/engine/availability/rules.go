package availability

import (
	"fmt"
	"slices"

	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Rule одно правило проверки. Возвращает (вердикт, true), если правило отклоняет
// диапазон, и (_, false), чтобы передать проверку следующему правилу.
type Rule interface {
	Name() string
	Check(in Input) (Verdict, bool)
}

// RuleFunc адаптер функции к Rule
type RuleFunc struct {
	RuleName string
	Fn       func(in Input) (Verdict, bool)
}

func (r RuleFunc) Name() string                   { return r.RuleName }
func (r RuleFunc) Check(in Input) (Verdict, bool) { return r.Fn(in) }

// DefaultRules цепочка правил в порядке применения
func DefaultRules() []Rule {
	return []Rule{
		OrderingRule{},
		PastDateRule{},
		CutoffRule{},
		ZeroStockRule{},
		MaxDurationRule{},
		ClosedDayRule{},
		ConflictRule{},
	}
}

// OrderingRule отклоняет некорректный ввод: пустые даты, start > end, отрицательный остаток
type OrderingRule struct{}

func (OrderingRule) Name() string { return "ordering" }

func (OrderingRule) Check(in Input) (Verdict, bool) {
	c := in.Candidate
	switch {
	case c.Start.IsZero() || c.End.IsZero():
		return invalid("start and end dates are required"), true
	case c.Start.After(c.End):
		return invalid(fmt.Sprintf("start %s is after end %s", c.Start, c.End)), true
	case in.Stock < 0:
		return invalid(fmt.Sprintf("stock must not be negative, got %d", in.Stock)), true
	case in.MaxRentalDays < 0:
		return invalid("max rental days must not be negative"), true
	}
	return Verdict{}, false
}

// PastDateRule отклоняет диапазоны, начинающиеся раньше сегодняшней даты магазина
type PastDateRule struct{}

func (PastDateRule) Name() string { return "past_date" }

func (PastDateRule) Check(in Input) (Verdict, bool) {
	today := in.Cutoff.Today(in.Now)
	if in.Candidate.Start.Before(today) {
		return Verdict{
			Outcome: OutcomeRejectedPastDate,
			Reason:  fmt.Sprintf("start %s is before today %s", in.Candidate.Start, today),
		}, true
	}
	return Verdict{}, false
}

// CutoffRule закрывает бронирование на сегодня после часа отсечки.
// Действует только когда в наличии не больше одной единицы.
type CutoffRule struct{}

func (CutoffRule) Name() string { return "same_day_cutoff" }

func (CutoffRule) Check(in Input) (Verdict, bool) {
	if in.Stock > 1 {
		return Verdict{}, false
	}
	if !in.Cutoff.IsToday(in.Candidate.Start, in.Now) || !in.Cutoff.IsPastCutoff(in.Now) {
		return Verdict{}, false
	}
	return Verdict{
		Outcome: OutcomeRejectedCutoff,
		Reason:  fmt.Sprintf("same-day booking closes at %02d:00", in.Cutoff.CutoffHour()),
	}, true
}

// ZeroStockRule при нулевом остатке новое бронирование невозможно.
// Если разрешена стыковка (ZeroStockJoins), принимается только диапазон, каждая дата
// которого является допустимой границей стыковки.
type ZeroStockRule struct{}

func (ZeroStockRule) Name() string { return "zero_stock" }

func (ZeroStockRule) Check(in Input) (Verdict, bool) {
	if in.Stock != 0 {
		return Verdict{}, false
	}

	dates, _ := types.EnumerateRange(in.Candidate.Start, in.Candidate.End)

	var conflicts []types.Date
	for _, d := range dates {
		if !in.ZeroStockJoins || !isAllowedJoin(in, d) {
			conflicts = append(conflicts, d)
		}
	}
	if len(conflicts) == 0 {
		return Verdict{}, false
	}

	return Verdict{
		Outcome:       OutcomeRejectedConflict,
		ConflictDates: conflicts,
		Reason:        "item is out of stock",
	}, true
}

// MaxDurationRule ограничивает количество оплачиваемых дней
type MaxDurationRule struct{}

func (MaxDurationRule) Name() string { return "max_duration" }

func (MaxDurationRule) Check(in Input) (Verdict, bool) {
	if in.MaxRentalDays == 0 {
		return Verdict{}, false
	}

	days := pricing.WeekendAdjustedDays(in.Candidate.Start, in.Candidate.End)
	if days > in.MaxRentalDays {
		return Verdict{
			Outcome: OutcomeRejectedMaxDuration,
			Reason:  fmt.Sprintf("rental of %d days exceeds maximum of %d", days, in.MaxRentalDays),
		}, true
	}
	return Verdict{}, false
}

// ClosedDayRule запрещает выдачу и возврат в дни, когда магазин закрыт
type ClosedDayRule struct{}

func (ClosedDayRule) Name() string { return "closed_day" }

func (ClosedDayRule) Check(in Input) (Verdict, bool) {
	if len(in.ClosedWeekdays) == 0 {
		return Verdict{}, false
	}

	var closed []types.Date
	for _, d := range []types.Date{in.Candidate.Start, in.Candidate.End} {
		if slices.Contains(in.ClosedWeekdays, d.Weekday()) && !slices.Contains(closed, d) {
			closed = append(closed, d)
		}
	}
	if len(closed) == 0 {
		return Verdict{}, false
	}

	return Verdict{
		Outcome:       OutcomeRejectedClosedDay,
		ConflictDates: closed,
		Reason:        fmt.Sprintf("shop is closed on %s", closed[0].Weekday()),
	}, true
}

// ConflictRule проверяет каждую дату диапазона: бронирование еще одной единицы не должно
// превышать остаток. Допустимые границы стыковки и субботы не считаются конфликтом.
type ConflictRule struct{}

func (ConflictRule) Name() string { return "conflict" }

func (ConflictRule) Check(in Input) (Verdict, bool) {
	dates, _ := types.EnumerateRange(in.Candidate.Start, in.Candidate.End)

	var conflicts []types.Date
	for _, d := range dates {
		if d.IsSaturday() {
			continue
		}
		if in.Index.ReservationCount(d)+1 > in.Stock && !isAllowedJoin(in, d) {
			conflicts = append(conflicts, d)
		}
	}
	if len(conflicts) == 0 {
		return Verdict{}, false
	}

	return Verdict{
		Outcome:       OutcomeRejectedConflict,
		ConflictDates: conflicts,
		Reason:        fmt.Sprintf("%s is fully booked", conflicts[0]),
	}, true
}

// isAllowedJoin дата - начало кандидата на последнем дне бронирования
// или конец кандидата на первом дне бронирования
func isAllowedJoin(in Input, d types.Date) bool {
	if !in.AllowJoin {
		return false
	}
	if d == in.Candidate.Start && in.Index.IsLastDayOfReservation(d) {
		return true
	}
	return d == in.Candidate.End && in.Index.IsFirstDayOfReservation(d)
}

func invalid(reason string) Verdict {
	return Verdict{Outcome: OutcomeInvalidInput, Reason: reason}
}
