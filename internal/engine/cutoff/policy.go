package cutoff

import (
	"time"

	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// DefaultBufferHours запас между закрытием бронирования на сегодня и часом выдачи
const DefaultBufferHours = 2

// Policy правило бронирования "на сегодня".
// Бронирование на сегодня закрывается в PickupHour - BufferHours по времени магазина.
type Policy struct {
	PickupHour  int
	BufferHours int
	Location    *time.Location // nil = UTC
}

// NewPolicy создает политику; loc == nil означает UTC
func NewPolicy(pickupHour, bufferHours int, loc *time.Location) Policy {
	return Policy{PickupHour: pickupHour, BufferHours: bufferHours, Location: loc}
}

// CutoffHour час закрытия бронирования на сегодня
func (p Policy) CutoffHour() int {
	return p.PickupHour - p.BufferHours
}

// IsPastCutoff true, если час now в зоне магазина >= CutoffHour
func (p Policy) IsPastCutoff(now time.Time) bool {
	return p.localize(now).Hour() >= p.CutoffHour()
}

// Today календарная дата now в зоне магазина
func (p Policy) Today(now time.Time) types.Date {
	return types.DateOf(p.localize(now))
}

// IsToday true, если d совпадает с сегодняшней датой магазина
func (p Policy) IsToday(d types.Date, now time.Time) bool {
	return p.Today(now) == d
}

func (p Policy) localize(t time.Time) time.Time {
	if p.Location == nil {
		return t.UTC()
	}
	return t.In(p.Location)
}
