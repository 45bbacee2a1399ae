package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/cutoff"
	"github.com/m04kA/SMC-RentalService/internal/engine/reservations"
	configRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/itemconfig"
	"github.com/m04kA/SMC-RentalService/internal/service/provider"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Settings настройки магазина, общие для всех товаров
type Settings struct {
	Location       *time.Location
	ClosedWeekdays []time.Weekday
	Defaults       *domain.ItemRentalConfig // используется, если в БД нет конфигурации
}

// Loader собирает Snapshot из источника данных и конфигурации
type Loader struct {
	provider   DataProvider
	configRepo ConfigRepository
	settings   Settings
	logger     Logger
}

// NewLoader создает новый экземпляр загрузчика
func NewLoader(provider DataProvider, configRepo ConfigRepository, settings Settings, logger Logger) *Loader {
	if settings.Defaults == nil {
		settings.Defaults = domain.DefaultRentalConfig()
	}
	return &Loader{
		provider:   provider,
		configRepo: configRepo,
		settings:   settings,
		logger:     logger,
	}
}

// Load получает товар, конфигурацию, остаток и резервации.
// from ограничивает резервации снизу; нулевое значение означает "с сегодняшнего дня".
func (l *Loader) Load(ctx context.Context, itemID int64, now time.Time, from types.Date) (*Snapshot, error) {
	// 1. Товар
	item, err := l.provider.FetchItem(ctx, itemID)
	if err != nil {
		return nil, l.mapProviderError("item", itemID, err)
	}
	if !item.Active {
		l.logger.Warn("Load: item id=%d is not active", itemID)
		return nil, ErrItemNotFound
	}

	// 2. Конфигурация с учетом иерархии
	config, err := l.configRepo.GetConfigWithHierarchy(ctx, itemID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		l.logger.Error("Load: failed to get config for item id=%d: %v", itemID, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = l.settings.Defaults
	}

	policy := cutoff.NewPolicy(config.PickupHour, config.CutoffBufferHours, l.settings.Location)
	today := policy.Today(now)
	if from.IsZero() || from.After(today) {
		from = today
	}

	// 3. Остаток
	stock, err := l.provider.FetchStock(ctx, itemID)
	if err != nil {
		return nil, l.mapProviderError("stock", itemID, err)
	}
	if !stock.IsValid() {
		l.logger.Error("Load: invalid stock %d for item id=%d", stock.TotalUnits, itemID)
		return nil, fmt.Errorf("%w: negative stock", ErrDataUnavailable)
	}

	// 4. Резервации, начиная с дня перед окном (нужен для IsFirstDayOfReservation(from))
	ranges, err := l.provider.FetchReservations(ctx, itemID, from.AddDays(-1))
	if err != nil {
		return nil, l.mapProviderError("reservations", itemID, err)
	}

	return &Snapshot{
		Item:           item,
		Stock:          stock,
		Config:         config,
		Index:          reservations.NewIndex(ranges),
		Cutoff:         policy,
		ClosedWeekdays: l.settings.ClosedWeekdays,
		Now:            now,
	}, nil
}

func (l *Loader) mapProviderError(what string, itemID int64, err error) error {
	if errors.Is(err, provider.ErrItemNotFound) {
		l.logger.Warn("Load: item id=%d not found", itemID)
		return ErrItemNotFound
	}
	l.logger.Error("Load: failed to fetch %s for item id=%d: %v", what, itemID, err)
	return fmt.Errorf("%w: %s: %w", ErrDataUnavailable, what, err)
}
