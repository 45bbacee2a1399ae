package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelReservationRequest запрос на отмену резервации
type CancelReservationRequest struct {
	UserID             int64   `json:"userId"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// GetItemReservationsRequest запрос на получение резерваций товара
type GetItemReservationsRequest struct {
	UserID          int64       `json:"userId"`
	ItemID          int64       `json:"itemId"`
	From            *types.Date `json:"from,omitempty"`            // Начало периода (опционально)
	To              *types.Date `json:"to,omitempty"`              // Конец периода (опционально)
	Status          *string     `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool        `json:"includeInactive,omitempty"` // Включить отмененные и завершенные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetItemReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		ItemID:          r.ItemID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Явно запрошенный неактивный статус включает неактивные записи
		if status != domain.ReservationActive {
			filter.IncludeInactive = true
		}
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными резервации
type ReservationResponse struct {
	ID        int64      `json:"id"`
	ItemID    int64      `json:"itemId"`
	OrderRef  *string    `json:"orderRef,omitempty"`
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"`
	Units     int        `json:"units"`
	Status    string     `json:"status"`
	CreatedBy *int64     `json:"createdBy,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком резерваций
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ItemID:             r.ItemID,
		OrderRef:           r.OrderRef,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		Units:              r.Units,
		Status:             string(r.Status),
		CreatedBy:          r.CreatedBy,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в статус резервации
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.ReservationActive, domain.ReservationCancelled, domain.ReservationCompleted:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
