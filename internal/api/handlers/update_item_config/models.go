package update_item_config

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/itemconfig/models"
)

// UpdateItemConfigRequest HTTP request model
type UpdateItemConfigRequest struct {
	PickupHour        *int                 `json:"pickupHour,omitempty"`
	CutoffBufferHours *int                 `json:"cutoffBufferHours,omitempty"`
	MaxRentalDays     *int                 `json:"maxRentalDays,omitempty"`
	AllowJoin         *bool                `json:"allowJoin,omitempty"`
	ZeroStockJoins    *bool                `json:"zeroStockJoins,omitempty"`
	Tiers             []domain.PricingTier `json:"tiers,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateItemConfigRequest) ToServiceRequest(userID int64) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:            userID,
		PickupHour:        r.PickupHour,
		CutoffBufferHours: r.CutoffBufferHours,
		MaxRentalDays:     r.MaxRentalDays,
		AllowJoin:         r.AllowJoin,
		ZeroStockJoins:    r.ZeroStockJoins,
		Tiers:             r.Tiers,
	}
}
