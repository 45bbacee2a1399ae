package availability

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/engine/cutoff"
	"github.com/m04kA/SMC-RentalService/internal/engine/reservations"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Outcome результат проверки диапазона
type Outcome string

const (
	OutcomeAccepted            Outcome = "accepted"
	OutcomeRejectedConflict    Outcome = "rejected_conflict"
	OutcomeRejectedCutoff      Outcome = "rejected_cutoff"
	OutcomeRejectedMaxDuration Outcome = "rejected_max_duration"
	OutcomeRejectedPastDate    Outcome = "rejected_past_date"
	OutcomeRejectedClosedDay   Outcome = "rejected_closed_day"
	OutcomeInvalidInput        Outcome = "invalid_input"
	OutcomeDataUnavailable     Outcome = "data_unavailable"
)

// IsAccepted true только для OutcomeAccepted
func (o Outcome) IsAccepted() bool {
	return o == OutcomeAccepted
}

// IsRejection true для бизнес-отказов (не для ошибок ввода и недоступности данных)
func (o Outcome) IsRejection() bool {
	switch o {
	case OutcomeRejectedConflict, OutcomeRejectedCutoff, OutcomeRejectedMaxDuration,
		OutcomeRejectedPastDate, OutcomeRejectedClosedDay:
		return true
	default:
		return false
	}
}

// Candidate выбранный пользователем диапазон [Start, End]
type Candidate struct {
	Start types.Date
	End   types.Date
}

// Input все, что нужно для проверки одного диапазона. Передается по значению.
type Input struct {
	Candidate      Candidate
	Index          *reservations.Index // nil = нет бронирований
	Stock          int                 // Всего единиц товара
	Cutoff         cutoff.Policy
	Now            time.Time
	AllowJoin      bool
	MaxRentalDays  int // 0 = без ограничения
	ZeroStockJoins bool
	ClosedWeekdays []time.Weekday
}

// Verdict результат проверки.
// ConflictDates заполняется для rejected_conflict и rejected_closed_day, по возрастанию.
type Verdict struct {
	Outcome       Outcome      `json:"outcome"`
	ConflictDates []types.Date `json:"conflictDates,omitempty"`
	StartJoin     bool         `json:"startJoin"`
	EndJoin       bool         `json:"endJoin"`
	Reason        string       `json:"reason,omitempty"`
}

// FirstConflict первая конфликтная дата, если есть
func (v Verdict) FirstConflict() (types.Date, bool) {
	if len(v.ConflictDates) == 0 {
		return types.Date{}, false
	}
	return v.ConflictDates[0], true
}

// DataUnavailable вердикт для случая, когда бронирования или остаток получить не удалось
func DataUnavailable(reason string) Verdict {
	return Verdict{Outcome: OutcomeDataUnavailable, Reason: reason}
}
