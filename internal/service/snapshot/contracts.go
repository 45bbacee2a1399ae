package snapshot

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// DataProvider источник товаров, резерваций и остатков
type DataProvider interface {
	FetchItem(ctx context.Context, itemID int64) (*domain.Item, error)
	FetchReservations(ctx context.Context, itemID int64, from types.Date) ([]domain.ReservedRange, error)
	FetchStock(ctx context.Context, itemID int64) (domain.StockInfo, error)
}

// ConfigRepository интерфейс репозитория конфигурации аренды
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, itemID int64) (*domain.ItemRentalConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
