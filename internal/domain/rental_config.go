package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PricingTier скидка для дней с индексом меньше ThresholdDays
type PricingTier struct {
	ThresholdDays   int     `json:"thresholdDays"`
	DiscountPercent float64 `json:"discountPercent"`
}

// PricingTiers ordered list of tiers, stored as JSONB
type PricingTiers []PricingTier

// Value реализует driver.Valuer
func (t PricingTiers) Value() (driver.Value, error) {
	if t == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]PricingTier(t))
}

// Scan реализует sql.Scanner
func (t *PricingTiers) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("PricingTiers: cannot scan %T", src)
	}

	var tiers []PricingTier
	if err := json.Unmarshal(data, &tiers); err != nil {
		return err
	}
	*t = tiers
	return nil
}

// ItemRentalConfig represents the rental policy of an item
// Supports hierarchical configuration:
// 1. Item-specific (item_id)
// 2. Shop-wide (item_id IS NULL)
type ItemRentalConfig struct {
	ID                int64
	ItemID            *int64 // NULL = config for all items
	PickupHour        int
	CutoffBufferHours int
	MaxRentalDays     int
	AllowJoin         bool
	ZeroStockJoins    bool // Разрешать стыковку при нулевом остатке
	Tiers             PricingTiers
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsGlobalConfig returns true if this is a shop-wide configuration
func (c *ItemRentalConfig) IsGlobalConfig() bool {
	return c.ItemID == nil
}

// IsItemSpecific returns true if this configuration is for a specific item
func (c *ItemRentalConfig) IsItemSpecific() bool {
	return c.ItemID != nil
}

// CutoffHour час, начиная с которого бронирование на сегодня закрыто
func (c *ItemRentalConfig) CutoffHour() int {
	return c.PickupHour - c.CutoffBufferHours
}

// DefaultRentalConfig returns built-in defaults used when nothing is stored
func DefaultRentalConfig() *ItemRentalConfig {
	tiers := make(PricingTiers, len(DefaultPricingTiers))
	copy(tiers, DefaultPricingTiers)

	return &ItemRentalConfig{
		PickupHour:        DefaultPickupHour,
		CutoffBufferHours: DefaultCutoffBufferHours,
		MaxRentalDays:     DefaultMaxRentalDays,
		AllowJoin:         DefaultAllowJoin,
		ZeroStockJoins:    DefaultZeroStockJoins,
		Tiers:             tiers,
	}
}

var (
	ErrInvalidPickupHour    = errors.New("pickup hour must be between 0 and 23")
	ErrInvalidCutoffBuffer  = errors.New("cutoff buffer must be between 0 and 12 hours")
	ErrInvalidMaxRentalDays = errors.New("max rental days must be between 1 and 60")
)

// Validate checks the policy fields (tiers are validated by the pricing engine)
func (c *ItemRentalConfig) Validate() error {
	if c.PickupHour < MinPickupHour || c.PickupHour > MaxPickupHour {
		return ErrInvalidPickupHour
	}
	if c.CutoffBufferHours < MinCutoffBufferHours || c.CutoffBufferHours > MaxCutoffBufferHours {
		return ErrInvalidCutoffBuffer
	}
	if c.MaxRentalDays < MinRentalDaysLimit || c.MaxRentalDays > MaxRentalDaysLimit {
		return ErrInvalidMaxRentalDays
	}
	return nil
}
