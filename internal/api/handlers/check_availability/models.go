package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ItemID int64  `json:"itemId"`
	Start  string `json:"start"` // "2024-06-14"
	End    string `json:"end"`
	Stock  int    `json:"stock"`
	handlers.VerdictResponse
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(itemID int64, startStr, endStr string) (*checkAvailability.Request, error) {
	start, err := types.ParseDate(startStr)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	end, err := types.ParseDate(endStr)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &checkAvailability.Request{
		ItemID: itemID,
		Start:  start,
		End:    end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ItemID:          resp.ItemID,
		Start:           resp.Start.String(),
		End:             resp.End.String(),
		Stock:           resp.Stock,
		VerdictResponse: handlers.FromVerdict(resp.Verdict),
	}
}
