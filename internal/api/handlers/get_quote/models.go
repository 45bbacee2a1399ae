package get_quote

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	getQuote "github.com/m04kA/SMC-RentalService/internal/usecase/get_quote"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ItemID    int64                   `json:"itemId"`
	ItemName  string                  `json:"itemName"`
	Start     string                  `json:"start"`
	End       string                  `json:"end"`
	BasePrice float64                 `json:"basePrice"`
	Currency  string                  `json:"currency"`
	Verdict   handlers.VerdictResponse `json:"verdict"`

	// Заполняются только для принятого диапазона
	Days       *int                    `json:"days,omitempty"`
	TotalPrice *float64                `json:"totalPrice,omitempty"`
	Breakdown  []pricing.TierBreakdown `json:"breakdown,omitempty"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(itemID int64, startStr, endStr string) (*getQuote.Request, error) {
	start, err := types.ParseDate(startStr)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	end, err := types.ParseDate(endStr)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &getQuote.Request{
		ItemID: itemID,
		Start:  start,
		End:    end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQuote.Response) *QuoteResponse {
	out := &QuoteResponse{
		ItemID:    resp.ItemID,
		ItemName:  resp.ItemName,
		Start:     resp.Start.String(),
		End:       resp.End.String(),
		BasePrice: resp.BasePrice,
		Currency:  resp.Currency,
		Verdict:   handlers.FromVerdict(resp.Verdict),
	}

	if resp.Quote != nil {
		days, total := resp.Quote.Days, resp.Quote.TotalPrice
		out.Days = &days
		out.TotalPrice = &total
		out.Breakdown = resp.Quote.Breakdown
	}

	return out
}
