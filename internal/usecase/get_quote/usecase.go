package get_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	"github.com/m04kA/SMC-RentalService/internal/service/snapshot"
)

const operationName = "get_quote"

// UseCase use case для расчета стоимости аренды
type UseCase struct {
	loader       SnapshotLoader
	resolver     Resolver
	metrics      Metrics
	currency     string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	loader SnapshotLoader,
	resolver Resolver,
	metrics Metrics,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		loader:       loader,
		resolver:     resolver,
		metrics:      metrics,
		currency:     currency,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute проверяет доступность и, если диапазон принят, считает стоимость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQuote: item=%d, start=%s, end=%s", req.ItemID, req.Start, req.End)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetQuote: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем срез данных товара
	snap, err := uc.loader.Load(ctx, req.ItemID, uc.timeProvider.Now(), req.Start)
	if err != nil {
		switch {
		case errors.Is(err, snapshot.ErrItemNotFound):
			uc.logger.Warn("GetQuote: item id=%d not found", req.ItemID)
			return nil, ErrItemNotFound
		case errors.Is(err, snapshot.ErrDataUnavailable):
			uc.logger.Warn("GetQuote: data unavailable for item id=%d: %v", req.ItemID, err)
			uc.metrics.RecordVerdict(operationName, string(availability.OutcomeDataUnavailable))
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		default:
			uc.logger.Error("GetQuote: failed to load item id=%d: %v", req.ItemID, err)
			return nil, fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
		}
	}

	// 3. Проверяем диапазон
	verdict := uc.resolver.Evaluate(snap.Input(availability.Candidate{Start: req.Start, End: req.End}))
	uc.metrics.RecordVerdict(operationName, string(verdict.Outcome))

	resp := &Response{
		ItemID:    req.ItemID,
		ItemName:  snap.Item.Name,
		Start:     req.Start,
		End:       req.End,
		BasePrice: snap.Item.BasePrice,
		Currency:  uc.currency,
		Verdict:   verdict,
	}

	if !verdict.Outcome.IsAccepted() {
		uc.logger.Info("GetQuote: item=%d, %s..%s rejected: %s", req.ItemID, req.Start, req.End, verdict.Outcome)
		return resp, nil
	}

	// 4. Считаем стоимость
	if err := pricing.ValidateBasePrice(snap.Item.BasePrice); err != nil {
		uc.logger.Error("GetQuote: item id=%d has invalid base price: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPricing, err)
	}
	if err := pricing.ValidateTiers(snap.Config.Tiers); err != nil {
		uc.logger.Error("GetQuote: item id=%d has invalid tiers: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPricing, err)
	}

	quote := pricing.TotalPrice(req.Start, req.End, snap.Item.BasePrice, snap.Config.Tiers)
	uc.metrics.RecordQuote(quote.Days)
	resp.Quote = &quote

	uc.logger.Info("GetQuote: item=%d, %s..%s -> %d days, total=%.2f %s",
		req.ItemID, req.Start, req.End, quote.Days, quote.TotalPrice, uc.currency)

	return resp, nil
}
