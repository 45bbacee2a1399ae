package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	"github.com/m04kA/SMC-RentalService/internal/service/snapshot"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

const (
	operationName = "create_reservation"

	// unitsPerReservation резервация всегда занимает одну единицу
	unitsPerReservation = 1
)

// UseCase use case для создания резервации
type UseCase struct {
	loader          SnapshotLoader
	resolver        Resolver
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         Metrics
	currency        string
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	loader SnapshotLoader,
	resolver Resolver,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics Metrics,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		loader:          loader,
		resolver:        resolver,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
		currency:        currency,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания резервации.
// Проверка доступности и вставка выполняются в одной сериализуемой транзакции,
// строка товара блокируется, поэтому два параллельных запроса не займут одну и ту же единицу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, item=%d, start=%s, end=%s",
		req.UserID, req.ItemID, req.Start, req.End)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		result  *domain.Reservation
		verdict availability.Verdict
		snap    *snapshot.Snapshot
	)

	// 3. Проверка и вставка в транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Перечитываем товар и резервации внутри транзакции
		var err error
		snap, err = uc.loader.Load(txCtx, req.ItemID, now, req.Start)
		if err != nil {
			switch {
			case errors.Is(err, snapshot.ErrItemNotFound):
				uc.logger.Warn("CreateReservation: item id=%d not found", req.ItemID)
				return ErrItemNotFound
			case errors.Is(err, snapshot.ErrDataUnavailable):
				uc.logger.Warn("CreateReservation: data unavailable for item id=%d: %v", req.ItemID, err)
				return fmt.Errorf("%w: %w", ErrDataUnavailable, err)
			default:
				uc.logger.Error("CreateReservation: failed to load item id=%d: %v", req.ItemID, err)
				return fmt.Errorf("%w: failed to load snapshot: %w", ErrInternal, err)
			}
		}

		// 3.2. Проверяем диапазон
		verdict = uc.resolver.Evaluate(snap.Input(availability.Candidate{Start: req.Start, End: req.End}))
		uc.metrics.RecordVerdict(operationName, string(verdict.Outcome))

		if !verdict.Outcome.IsAccepted() {
			uc.logger.Warn("CreateReservation: item=%d, %s..%s rejected: %s (%s)",
				req.ItemID, req.Start, req.End, verdict.Outcome, verdict.Reason)
			return &RejectedError{Verdict: verdict}
		}

		// 3.3. Создаем резервацию
		reservation := &domain.Reservation{
			ItemID:    req.ItemID,
			OrderRef:  req.OrderRef,
			StartDate: req.Start,
			EndDate:   req.End,
			Units:     unitsPerReservation,
			Status:    domain.ReservationActive,
			CreatedBy: ptr.Ptr(req.UserID),
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// 40001 может прийти и на SELECT/INSERT внутри транзакции, не только на COMMIT
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateReservation: concurrent update for item id=%d", req.ItemID)
			return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	resp := &Response{
		ID:        result.ID,
		ItemID:    result.ItemID,
		OrderRef:  result.OrderRef,
		StartDate: result.StartDate,
		EndDate:   result.EndDate,
		Units:     result.Units,
		Status:    string(result.Status),
		CreatedBy: result.CreatedBy,
		StartJoin: verdict.StartJoin,
		EndJoin:   verdict.EndJoin,
		Currency:  uc.currency,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}

	// 4. Стоимость для подтверждения заказа
	if pricing.ValidateBasePrice(snap.Item.BasePrice) == nil && pricing.ValidateTiers(snap.Config.Tiers) == nil {
		quote := pricing.TotalPrice(req.Start, req.End, snap.Item.BasePrice, snap.Config.Tiers)
		resp.Quote = &quote
	} else {
		uc.logger.Warn("CreateReservation: item id=%d has invalid pricing, quote omitted", req.ItemID)
	}

	return resp, nil
}
