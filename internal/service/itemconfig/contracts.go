package itemconfig

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации аренды
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.ItemRentalConfig) (*domain.ItemRentalConfig, error)
	GetByItem(ctx context.Context, itemID *int64) (*domain.ItemRentalConfig, error)
	GetConfigWithHierarchy(ctx context.Context, itemID int64) (*domain.ItemRentalConfig, error)
	Update(ctx context.Context, id int64, config *domain.ItemRentalConfig) (*domain.ItemRentalConfig, error)
}

// ItemProvider источник товаров (проверка существования)
type ItemProvider interface {
	FetchItem(ctx context.Context, itemID int64) (*domain.Item, error)
}

// StaffChecker проверяет, является ли пользователь сотрудником магазина
type StaffChecker interface {
	IsStaff(userID int64) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
