package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/service/snapshot"
)

const operationName = "check_availability"

// UseCase use case для проверки доступности диапазона
type UseCase struct {
	loader       SnapshotLoader
	resolver     Resolver
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	loader SnapshotLoader,
	resolver Resolver,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		loader:       loader,
		resolver:     resolver,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности.
// Бизнес-отказы возвращаются как вердикт, а не как ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: item=%d, start=%s, end=%s", req.ItemID, req.Start, req.End)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Загружаем срез данных товара
	snap, err := uc.loader.Load(ctx, req.ItemID, now, req.Start)
	if err != nil {
		switch {
		case errors.Is(err, snapshot.ErrItemNotFound):
			uc.logger.Warn("CheckAvailability: item id=%d not found", req.ItemID)
			return nil, ErrItemNotFound
		case errors.Is(err, snapshot.ErrDataUnavailable):
			uc.logger.Warn("CheckAvailability: data unavailable for item id=%d: %v", req.ItemID, err)
			uc.metrics.RecordVerdict(operationName, string(availability.OutcomeDataUnavailable))
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		default:
			uc.logger.Error("CheckAvailability: failed to load item id=%d: %v", req.ItemID, err)
			return nil, fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
		}
	}

	// 4. Проверяем диапазон
	verdict := uc.resolver.Evaluate(snap.Input(availability.Candidate{Start: req.Start, End: req.End}))
	uc.metrics.RecordVerdict(operationName, string(verdict.Outcome))

	uc.logger.Info("CheckAvailability: item=%d, %s..%s -> %s", req.ItemID, req.Start, req.End, verdict.Outcome)

	return &Response{
		ItemID:  req.ItemID,
		Start:   req.Start,
		End:     req.End,
		Stock:   snap.Stock.TotalUnits,
		Verdict: verdict,
	}, nil
}
