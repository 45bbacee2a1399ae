package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	shopClient "github.com/m04kA/SMC-RentalService/internal/integrations/shopservice"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

const nameShop = "shop"

// ShopProvider получает товары и резервации из системы бронирования магазина
type ShopProvider struct {
	client  ShopServiceClient
	metrics Metrics
	logger  Logger
}

// NewShopProvider создает провайдер поверх HTTP клиента магазина
func NewShopProvider(client ShopServiceClient, metrics Metrics, logger Logger) *ShopProvider {
	return &ShopProvider{
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Name имя источника для метрик и логов
func (p *ShopProvider) Name() string {
	return nameShop
}

// FetchItem получает товар. Остаток берется отдельным запросом FetchStock.
func (p *ShopProvider) FetchItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	item, err := p.client.GetItem(ctx, itemID)
	if err != nil {
		return nil, p.wrap("fetch_item", itemID, err)
	}
	return &domain.Item{
		ID:        item.ID,
		Name:      item.Name,
		BasePrice: item.BasePrice,
		Active:    item.Active,
	}, nil
}

// FetchReservations получает подтвержденные резервации товара
func (p *ShopProvider) FetchReservations(ctx context.Context, itemID int64, from types.Date) ([]domain.ReservedRange, error) {
	ranges, err := p.client.GetReservations(ctx, itemID, from)
	if err != nil {
		return nil, p.wrap("fetch_reservations", itemID, err)
	}
	return ranges, nil
}

// FetchStock получает остаток товара
func (p *ShopProvider) FetchStock(ctx context.Context, itemID int64) (domain.StockInfo, error) {
	stock, err := p.client.GetStock(ctx, itemID)
	if err != nil {
		return domain.StockInfo{}, p.wrap("fetch_stock", itemID, err)
	}
	return stock, nil
}

func (p *ShopProvider) wrap(operation string, itemID int64, err error) error {
	if errors.Is(err, shopClient.ErrItemNotFound) {
		return ErrItemNotFound
	}
	p.metrics.RecordProviderError(nameShop, operation)
	p.logger.Warn("ShopProvider: %s failed for item_id=%d: %v", operation, itemID, err)
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, operation, err)
}
