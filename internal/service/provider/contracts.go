package provider

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/shopservice"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// ItemRepository интерфейс репозитория товаров
type ItemRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	GetStock(ctx context.Context, id int64) (domain.StockInfo, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetOccupiedRanges(ctx context.Context, itemID int64, from types.Date) ([]domain.ReservedRange, error)
}

// ShopServiceClient интерфейс клиента системы бронирования магазина
type ShopServiceClient interface {
	GetItem(ctx context.Context, itemID int64) (*shopservice.Item, error)
	GetReservations(ctx context.Context, itemID int64, from types.Date) ([]domain.ReservedRange, error)
	GetStock(ctx context.Context, itemID int64) (domain.StockInfo, error)
}

// Metrics учет ошибок источника данных
type Metrics interface {
	RecordProviderError(provider, operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
