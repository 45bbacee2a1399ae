package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	itemRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/item"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

const nameDatabase = "database"

// DatabaseProvider читает товары и резервации из собственной БД сервиса.
// Внутри транзакции (ctx из txmanager) все чтения идут через неё.
type DatabaseProvider struct {
	itemRepo        ItemRepository
	reservationRepo ReservationRepository
	metrics         Metrics
	logger          Logger
}

// NewDatabaseProvider создает провайдер поверх репозиториев
func NewDatabaseProvider(itemRepo ItemRepository, reservationRepo ReservationRepository, metrics Metrics, logger Logger) *DatabaseProvider {
	return &DatabaseProvider{
		itemRepo:        itemRepo,
		reservationRepo: reservationRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// Name имя источника для метрик и логов
func (p *DatabaseProvider) Name() string {
	return nameDatabase
}

// FetchItem получает товар
func (p *DatabaseProvider) FetchItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	item, err := p.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, p.wrap("fetch_item", itemID, err)
	}
	return item, nil
}

// FetchReservations получает неотмененные резервации товара, заканчивающиеся не раньше from
func (p *DatabaseProvider) FetchReservations(ctx context.Context, itemID int64, from types.Date) ([]domain.ReservedRange, error) {
	ranges, err := p.reservationRepo.GetOccupiedRanges(ctx, itemID, from)
	if err != nil {
		return nil, p.wrap("fetch_reservations", itemID, err)
	}
	return ranges, nil
}

// FetchStock получает остаток товара
func (p *DatabaseProvider) FetchStock(ctx context.Context, itemID int64) (domain.StockInfo, error) {
	stock, err := p.itemRepo.GetStock(ctx, itemID)
	if err != nil {
		return domain.StockInfo{}, p.wrap("fetch_stock", itemID, err)
	}
	return stock, nil
}

func (p *DatabaseProvider) wrap(operation string, itemID int64, err error) error {
	if errors.Is(err, itemRepo.ErrItemNotFound) {
		return ErrItemNotFound
	}
	p.metrics.RecordProviderError(nameDatabase, operation)
	p.logger.Error("DatabaseProvider: %s failed for item_id=%d: %v", operation, itemID, err)
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, operation, err)
}
