package get_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/service/snapshot"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// UseCase use case для получения календаря доступности товара
type UseCase struct {
	loader       SnapshotLoader
	resolver     Resolver
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(loader SnapshotLoader, resolver Resolver, logger Logger) *UseCase {
	return &UseCase{
		loader:       loader,
		resolver:     resolver,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute строит состояние каждого дня периода [From, To].
// Все дни считаются по одному срезу данных, поэтому календарь согласован сам с собой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: item=%d, from=%s, to=%s", req.ItemID, req.From, req.To)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем срез данных товара
	snap, err := uc.loader.Load(ctx, req.ItemID, uc.timeProvider.Now(), req.From)
	if err != nil {
		switch {
		case errors.Is(err, snapshot.ErrItemNotFound):
			uc.logger.Warn("GetCalendar: item id=%d not found", req.ItemID)
			return nil, ErrItemNotFound
		case errors.Is(err, snapshot.ErrDataUnavailable):
			uc.logger.Warn("GetCalendar: data unavailable for item id=%d: %v", req.ItemID, err)
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		default:
			uc.logger.Error("GetCalendar: failed to load item id=%d: %v", req.ItemID, err)
			return nil, fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
		}
	}

	dates, err := types.EnumerateRange(req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Состояние каждого дня
	days := make([]DayStatus, 0, len(dates))
	for _, date := range dates {
		reserved := snap.Index.ReservationCount(date)
		verdict := uc.resolver.Evaluate(snap.Input(availability.Candidate{Start: date, End: date}))

		days = append(days, DayStatus{
			Date:      date,
			Reserved:  reserved,
			Available: max(snap.Stock.TotalUnits-reserved, 0),
			Closed:    snap.IsClosed(date),
			FirstDay:  snap.Index.IsFirstDayOfReservation(date),
			LastDay:   snap.Index.IsLastDayOfReservation(date),
			Bookable:  verdict.Outcome.IsAccepted(),
			Outcome:   verdict.Outcome,
		})
	}

	uc.logger.Info("GetCalendar: item=%d, built %d days", req.ItemID, len(days))

	return &Response{
		ItemID:     req.ItemID,
		From:       req.From,
		To:         req.To,
		TotalUnits: snap.Stock.TotalUnits,
		CutoffHour: snap.Cutoff.CutoffHour(),
		Days:       days,
	}, nil
}
