package reservations

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Index набор забронированных диапазонов одного товара и производная карта
// "дата -> сумма зарезервированных единиц". Неизменяем после создания.
type Index struct {
	ranges []domain.ReservedRange
	counts map[types.Date]int
}

// NewIndex строит индекс. Некорректные диапазоны (start > end, units < 1) пропускаются.
func NewIndex(ranges []domain.ReservedRange) *Index {
	idx := &Index{
		ranges: make([]domain.ReservedRange, 0, len(ranges)),
		counts: make(map[types.Date]int),
	}

	for _, r := range ranges {
		if !r.IsValid() {
			continue
		}
		idx.ranges = append(idx.ranges, r)
		for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
			idx.counts[d] += r.UnitsReserved
		}
	}

	return idx
}

// Empty индекс без бронирований
func Empty() *Index {
	return NewIndex(nil)
}

// IsDateReserved true, если хотя бы один диапазон покрывает d
func (i *Index) IsDateReserved(d types.Date) bool {
	return i.counts[d] > 0
}

// ReservationCount сумма зарезервированных единиц на дату d
func (i *Index) ReservationCount(d types.Date) int {
	return i.counts[d]
}

// IsFirstDayOfReservation d занята, а предыдущий день свободен
func (i *Index) IsFirstDayOfReservation(d types.Date) bool {
	return i.IsDateReserved(d) && !i.IsDateReserved(d.AddDays(-1))
}

// IsLastDayOfReservation d занята, а следующий день свободен
func (i *Index) IsLastDayOfReservation(d types.Date) bool {
	return i.IsDateReserved(d) && !i.IsDateReserved(d.AddDays(1))
}

// Ranges копия принятых в индекс диапазонов
func (i *Index) Ranges() []domain.ReservedRange {
	out := make([]domain.ReservedRange, len(i.ranges))
	copy(out, i.ranges)
	return out
}

// Len количество диапазонов в индексе
func (i *Index) Len() int {
	return len(i.ranges)
}
