package get_calendar

import (
	"fmt"

	getCalendar "github.com/m04kA/SMC-RentalService/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// DayResponse состояние дня в HTTP ответе
type DayResponse struct {
	Date      string `json:"date"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
	Closed    bool   `json:"closed"`
	FirstDay  bool   `json:"firstDay"`
	LastDay   bool   `json:"lastDay"`
	Bookable  bool   `json:"bookable"`
	Outcome   string `json:"outcome"`
}

// CalendarResponse HTTP response model
type CalendarResponse struct {
	ItemID     int64         `json:"itemId"`
	From       string        `json:"from"`
	To         string        `json:"to"`
	TotalUnits int           `json:"totalUnits"`
	CutoffHour int           `json:"cutoffHour"`
	Days       []DayResponse `json:"days"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(itemID int64, fromStr, toStr string) (*getCalendar.Request, error) {
	from, err := types.ParseDate(fromStr)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}

	to, err := types.ParseDate(toStr)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	return &getCalendar.Request{
		ItemID: itemID,
		From:   from,
		To:     to,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayResponse{
			Date:      d.Date.String(),
			Reserved:  d.Reserved,
			Available: d.Available,
			Closed:    d.Closed,
			FirstDay:  d.FirstDay,
			LastDay:   d.LastDay,
			Bookable:  d.Bookable,
			Outcome:   string(d.Outcome),
		})
	}

	return &CalendarResponse{
		ItemID:     resp.ItemID,
		From:       resp.From.String(),
		To:         resp.To.String(),
		TotalUnits: resp.TotalUnits,
		CutoffHour: resp.CutoffHour,
		Days:       days,
	}
}
