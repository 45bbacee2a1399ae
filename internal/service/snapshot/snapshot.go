package snapshot

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/engine/cutoff"
	"github.com/m04kA/SMC-RentalService/internal/engine/reservations"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Snapshot согласованный срез данных одного товара на момент Now.
// Строится заново на каждый запрос и дальше не изменяется.
type Snapshot struct {
	Item           *domain.Item
	Stock          domain.StockInfo
	Config         *domain.ItemRentalConfig
	Index          *reservations.Index
	Cutoff         cutoff.Policy
	ClosedWeekdays []time.Weekday
	Now            time.Time
}

// Today сегодняшняя дата в зоне магазина
func (s *Snapshot) Today() types.Date {
	return s.Cutoff.Today(s.Now)
}

// Input собирает вход резолвера для диапазона
func (s *Snapshot) Input(candidate availability.Candidate) availability.Input {
	return availability.Input{
		Candidate:      candidate,
		Index:          s.Index,
		Stock:          s.Stock.TotalUnits,
		Cutoff:         s.Cutoff,
		Now:            s.Now,
		AllowJoin:      s.Config.AllowJoin,
		MaxRentalDays:  s.Config.MaxRentalDays,
		ZeroStockJoins: s.Config.ZeroStockJoins,
		ClosedWeekdays: s.ClosedWeekdays,
	}
}

// IsClosed true, если в этот день недели магазин не выдает и не принимает товар
func (s *Snapshot) IsClosed(d types.Date) bool {
	for _, wd := range s.ClosedWeekdays {
		if d.Weekday() == wd {
			return true
		}
	}
	return false
}
