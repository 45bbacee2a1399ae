package handlers

import (
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
)

// VerdictResponse вердикт проверки диапазона в HTTP ответе
type VerdictResponse struct {
	Outcome       string   `json:"outcome"`
	Available     bool     `json:"available"`
	ConflictDates []string `json:"conflictDates,omitempty"` // "2024-06-14"
	StartJoin     bool     `json:"startJoin"`
	EndJoin       bool     `json:"endJoin"`
	Reason        string   `json:"reason,omitempty"`
}

// FromVerdict конвертирует вердикт резолвера в HTTP модель
func FromVerdict(v availability.Verdict) VerdictResponse {
	resp := VerdictResponse{
		Outcome:   string(v.Outcome),
		Available: v.Outcome.IsAccepted(),
		StartJoin: v.StartJoin,
		EndJoin:   v.EndJoin,
		Reason:    v.Reason,
	}

	if len(v.ConflictDates) > 0 {
		resp.ConflictDates = make([]string, 0, len(v.ConflictDates))
		for _, d := range v.ConflictDates {
			resp.ConflictDates = append(resp.ConflictDates, d.String())
		}
	}

	return resp
}
