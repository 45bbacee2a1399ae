package get_reservation

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

// ReservationDetailsResponse резервация с оплачиваемыми днями и признаком возможности отмены
type ReservationDetailsResponse struct {
	models.ReservationResponse
	BillableDays int  `json:"billableDays"` // пятница+суббота считаются одним днем
	Cancellable  bool `json:"cancellable"`
}

// FromServiceResponse дополняет ответ сервиса данными аренды
func FromServiceResponse(r *models.ReservationResponse) ReservationDetailsResponse {
	return ReservationDetailsResponse{
		ReservationResponse: *r,
		BillableDays:        pricing.WeekendAdjustedDays(r.StartDate, r.EndDate),
		Cancellable:         r.Status == string(domain.ReservationActive),
	}
}
