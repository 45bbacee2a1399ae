package domain

import "time"

// Default rental policy values (used when neither item nor shop-wide config exists)
const (
	DefaultPickupHour        = 13
	DefaultCutoffBufferHours = 2
	DefaultMaxRentalDays     = 7
	DefaultAllowJoin         = true
	DefaultZeroStockJoins    = false
	DefaultTimezone          = "Asia/Jerusalem"
	DefaultCurrency          = "ILS"
)

// DefaultPricingTiers: first day full price, then 50% up to day 3, 60% up to day 7, 70% after
var DefaultPricingTiers = PricingTiers{
	{ThresholdDays: 1, DiscountPercent: 0},
	{ThresholdDays: 3, DiscountPercent: 50},
	{ThresholdDays: 7, DiscountPercent: 60},
	{ThresholdDays: 999, DiscountPercent: 70},
}

// DefaultClosedWeekdays дни, в которые магазин не выдает и не принимает оборудование
var DefaultClosedWeekdays = []time.Weekday{time.Saturday}

// Business validation constants
const (
	MinPickupHour               = 0
	MaxPickupHour               = 23
	MinCutoffBufferHours        = 0
	MaxCutoffBufferHours        = 12
	MinRentalDaysLimit          = 1
	MaxRentalDaysLimit          = 60
	MaxPricingTiers             = 20
	MaxCalendarSpanDays         = 92
	MaxCancellationReasonLength = 500
	MaxOrderRefLength           = 64
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
