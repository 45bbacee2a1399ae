package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Уровни конфигурации
const (
	LevelItem    = "item"    // Конфигурация товара
	LevelShop    = "shop"    // Общая конфигурация магазина
	LevelDefault = "default" // Встроенные значения
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации аренды.
// Все поля опциональны - обновляются только переданные значения.
type UpdateConfigRequest struct {
	UserID            int64                `json:"userId"`
	PickupHour        *int                 `json:"pickupHour,omitempty"`
	CutoffBufferHours *int                 `json:"cutoffBufferHours,omitempty"`
	MaxRentalDays     *int                 `json:"maxRentalDays,omitempty"`
	AllowJoin         *bool                `json:"allowJoin,omitempty"`
	ZeroStockJoins    *bool                `json:"zeroStockJoins,omitempty"`
	Tiers             []domain.PricingTier `json:"tiers,omitempty"`
}

// IsEmpty true, если не передано ни одного поля
func (r *UpdateConfigRequest) IsEmpty() bool {
	return r.PickupHour == nil && r.CutoffBufferHours == nil && r.MaxRentalDays == nil &&
		r.AllowJoin == nil && r.ZeroStockJoins == nil && r.Tiers == nil
}

// ApplyTo переносит переданные поля в конфигурацию
func (r *UpdateConfigRequest) ApplyTo(c *domain.ItemRentalConfig) {
	if r.PickupHour != nil {
		c.PickupHour = *r.PickupHour
	}
	if r.CutoffBufferHours != nil {
		c.CutoffBufferHours = *r.CutoffBufferHours
	}
	if r.MaxRentalDays != nil {
		c.MaxRentalDays = *r.MaxRentalDays
	}
	if r.AllowJoin != nil {
		c.AllowJoin = *r.AllowJoin
	}
	if r.ZeroStockJoins != nil {
		c.ZeroStockJoins = *r.ZeroStockJoins
	}
	if r.Tiers != nil {
		c.Tiers = append(domain.PricingTiers(nil), r.Tiers...)
	}
}

// Response модели

// ConfigResponse действующая конфигурация аренды
type ConfigResponse struct {
	ID                *int64               `json:"id,omitempty"`     // nil для встроенных значений
	ItemID            *int64               `json:"itemId,omitempty"` // nil для общей конфигурации
	Level             string               `json:"level"`
	PickupHour        int                  `json:"pickupHour"`
	CutoffBufferHours int                  `json:"cutoffBufferHours"`
	CutoffHour        int                  `json:"cutoffHour"`
	MaxRentalDays     int                  `json:"maxRentalDays"`
	AllowJoin         bool                 `json:"allowJoin"`
	ZeroStockJoins    bool                 `json:"zeroStockJoins"`
	Tiers             []domain.PricingTier `json:"tiers"`
	CreatedAt         *time.Time           `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time           `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ItemRentalConfig, level string) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		ItemID:            c.ItemID,
		Level:             level,
		PickupHour:        c.PickupHour,
		CutoffBufferHours: c.CutoffBufferHours,
		CutoffHour:        c.CutoffHour(),
		MaxRentalDays:     c.MaxRentalDays,
		AllowJoin:         c.AllowJoin,
		ZeroStockJoins:    c.ZeroStockJoins,
		Tiers:             []domain.PricingTier(c.Tiers),
	}
	if resp.Tiers == nil {
		resp.Tiers = []domain.PricingTier{}
	}

	if level != LevelDefault {
		id := c.ID
		createdAt, updatedAt := c.CreatedAt, c.UpdatedAt
		resp.ID = &id
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
