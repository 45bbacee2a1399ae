package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Start    string  `json:"start"` // "2024-06-14"
	End      string  `json:"end"`
	OrderRef *string `json:"orderRef,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID        int64          `json:"id"`
	ItemID    int64          `json:"itemId"`
	OrderRef  *string        `json:"orderRef,omitempty"`
	StartDate string         `json:"startDate"`
	EndDate   string         `json:"endDate"`
	Units     int            `json:"units"`
	Status    string         `json:"status"`
	CreatedBy *int64         `json:"createdBy,omitempty"`
	StartJoin bool           `json:"startJoin"`
	EndJoin   bool           `json:"endJoin"`
	Quote     *pricing.Quote `json:"quote,omitempty"`
	Currency  string         `json:"currency"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
}

// RejectedResponse тело ответа, когда диапазон не прошел проверку
type RejectedResponse struct {
	Error   string                   `json:"error"`
	Verdict handlers.VerdictResponse `json:"verdict"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID, itemID int64) (*createReservation.Request, error) {
	start, err := types.ParseDate(r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	end, err := types.ParseDate(r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &createReservation.Request{
		UserID:   userID,
		ItemID:   itemID,
		Start:    start,
		End:      end,
		OrderRef: r.OrderRef,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:        resp.ID,
		ItemID:    resp.ItemID,
		OrderRef:  resp.OrderRef,
		StartDate: resp.StartDate.String(),
		EndDate:   resp.EndDate.String(),
		Units:     resp.Units,
		Status:    resp.Status,
		CreatedBy: resp.CreatedBy,
		StartJoin: resp.StartJoin,
		EndJoin:   resp.EndJoin,
		Quote:     resp.Quote,
		Currency:  resp.Currency,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
