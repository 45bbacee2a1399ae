package domain

import (
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ReservationStatus represents the status of a stored reservation
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationCompleted ReservationStatus = "completed"
)

// ReservedRange one confirmed booking occupying UnitsReserved units on every day of [Start, End]
type ReservedRange struct {
	Start         types.Date `json:"start"`
	End           types.Date `json:"end"`
	UnitsReserved int        `json:"units"`
}

// Covers returns true if d lies inside [Start, End]
func (r ReservedRange) Covers(d types.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// IsValid returns true for a well-formed range
func (r ReservedRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.Start.After(r.End) && r.UnitsReserved >= 1
}

// Reservation stored reservation of an item
type Reservation struct {
	ID        int64
	ItemID    int64
	OrderRef  *string // Номер заказа во внешней системе магазина
	StartDate types.Date
	EndDate   types.Date
	Units     int
	Status    ReservationStatus
	CreatedBy *int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies stock
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationActive
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == ReservationActive
}

// ToReservedRange converts the stored reservation into an engine range
func (r *Reservation) ToReservedRange() ReservedRange {
	return ReservedRange{
		Start:         r.StartDate,
		End:           r.EndDate,
		UnitsReserved: r.Units,
	}
}

// OccupiesStock true для активных и завершенных резерваций: их даты были заняты
func (r *Reservation) OccupiesStock() bool {
	return r.Status != ReservationCancelled
}

// OccupiedRanges returns engine ranges of all reservations that hold (or held) units
func OccupiedRanges(reservations []*Reservation) []ReservedRange {
	ranges := make([]ReservedRange, 0, len(reservations))
	for _, r := range reservations {
		if r.OccupiesStock() {
			ranges = append(ranges, r.ToReservedRange())
		}
	}
	return ranges
}

// ReservationsFilter фильтр для получения резерваций товара
type ReservationsFilter struct {
	ItemID          int64              // Обязательный параметр
	From            *types.Date        // Резервации, заканчивающиеся не раньше From
	To              *types.Date        // Резервации, начинающиеся не позже To
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и завершенные
}

// InactiveStatuses статусы, не занимающие склад
var InactiveStatuses = []ReservationStatus{
	ReservationCancelled,
	ReservationCompleted,
}
