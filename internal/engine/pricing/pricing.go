package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

var (
	ErrNoTiers              = errors.New("at least one pricing tier is required")
	ErrTooManyTiers         = errors.New("too many pricing tiers")
	ErrInvalidTierThreshold = errors.New("tier thresholds must be positive and strictly ascending")
	ErrInvalidTierDiscount  = errors.New("tier discount must be between 0 and 100")
	ErrNegativeBasePrice    = errors.New("base price must not be negative")
)

// TierBreakdown подряд идущие дни с одинаковой скидкой
type TierBreakdown struct {
	DaysInTier      int     `json:"daysInTier"`
	DiscountPercent float64 `json:"discountPercent"`
	Subtotal        float64 `json:"subtotal"`
}

// Quote результат расчета стоимости аренды
type Quote struct {
	Days       int             `json:"days"`
	TotalPrice float64         `json:"totalPrice"`
	Breakdown  []TierBreakdown `json:"breakdown"`
}

// PriceForDay цена дня с индексом dayIndex (0 - первый день).
// Первый день всегда по полной цене. Дальше применяется первая ступень, у которой
// dayIndex < ThresholdDays; если такой нет - скидка последней ступени.
func PriceForDay(dayIndex int, basePrice float64, tiers domain.PricingTiers) float64 {
	discount := DiscountForDay(dayIndex, tiers)
	return basePrice * (1 - discount/100)
}

// DiscountForDay процент скидки для дня с индексом dayIndex
func DiscountForDay(dayIndex int, tiers domain.PricingTiers) float64 {
	if dayIndex == 0 || len(tiers) == 0 {
		return 0
	}

	for _, tier := range tiers {
		if dayIndex < tier.ThresholdDays {
			return tier.DiscountPercent
		}
	}
	return tiers[len(tiers)-1].DiscountPercent
}

// TotalPrice считает стоимость аренды [start, end] с учетом выходных и ступеней скидок
func TotalPrice(start, end types.Date, basePrice float64, tiers domain.PricingTiers) Quote {
	days := WeekendAdjustedDays(start, end)
	return PriceDays(days, basePrice, tiers)
}

// PriceDays считает стоимость для уже известного количества оплачиваемых дней
func PriceDays(days int, basePrice float64, tiers domain.PricingTiers) Quote {
	if days < 1 {
		days = 1
	}

	var (
		total     float64
		breakdown []TierBreakdown
	)

	for i := 0; i < days; i++ {
		discount := DiscountForDay(i, tiers)
		price := PriceForDay(i, basePrice, tiers)
		total += price

		if n := len(breakdown); n > 0 && breakdown[n-1].DiscountPercent == discount {
			breakdown[n-1].DaysInTier++
			breakdown[n-1].Subtotal += price
			continue
		}
		breakdown = append(breakdown, TierBreakdown{
			DaysInTier:      1,
			DiscountPercent: discount,
			Subtotal:        price,
		})
	}

	for i := range breakdown {
		breakdown[i].Subtotal = RoundMoney(breakdown[i].Subtotal)
	}

	return Quote{
		Days:       days,
		TotalPrice: RoundMoney(total),
		Breakdown:  breakdown,
	}
}

// RoundMoney округляет до агорот (2 знака), половина - от нуля
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidateTiers проверяет, что ступени упорядочены по возрастанию порога и скидки в [0, 100]
func ValidateTiers(tiers domain.PricingTiers) error {
	if len(tiers) == 0 {
		return ErrNoTiers
	}
	if len(tiers) > domain.MaxPricingTiers {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyTiers, len(tiers), domain.MaxPricingTiers)
	}

	prev := 0
	for i, tier := range tiers {
		if tier.ThresholdDays <= prev {
			return fmt.Errorf("%w: tier %d has threshold %d", ErrInvalidTierThreshold, i, tier.ThresholdDays)
		}
		if tier.DiscountPercent < 0 || tier.DiscountPercent > 100 || math.IsNaN(tier.DiscountPercent) {
			return fmt.Errorf("%w: tier %d has discount %v", ErrInvalidTierDiscount, i, tier.DiscountPercent)
		}
		prev = tier.ThresholdDays
	}
	return nil
}

// ValidateBasePrice проверяет цену первого дня
func ValidateBasePrice(basePrice float64) error {
	if basePrice < 0 || math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return ErrNegativeBasePrice
	}
	return nil
}
