package shopservice

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Item модель товара из системы бронирования магазина
type Item struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	Active    bool    `json:"active"`
}

// Reservation подтвержденный заказ, занимающий Units единиц на [Start, End]
type Reservation struct {
	Start types.Date `json:"start"`
	End   types.Date `json:"end"`
	Units int        `json:"units"`
}

// Stock остаток товара
type Stock struct {
	TotalUnits int `json:"total_units"`
}

// ToDomain конвертирует резервацию магазина в диапазон движка
func (r Reservation) ToDomain() domain.ReservedRange {
	return domain.ReservedRange{Start: r.Start, End: r.End, UnitsReserved: r.Units}
}

// ErrorResponse модель ошибки от сервиса магазина
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
