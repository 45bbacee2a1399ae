package itemconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var configColumns = []string{
	"id",
	"item_id",
	"pickup_hour",
	"cutoff_buffer_hours",
	"max_rental_days",
	"allow_join",
	"zero_stock_joins",
	"pricing_tiers",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации аренды
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает конфигурацию (item_id = NULL - общая для магазина)
func (r *Repository) Create(ctx context.Context, config *domain.ItemRentalConfig) (*domain.ItemRentalConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("item_rental_config").
		Columns(
			"item_id",
			"pickup_hour",
			"cutoff_buffer_hours",
			"max_rental_days",
			"allow_join",
			"zero_stock_joins",
			"pricing_tiers",
		).
		Values(
			config.ItemID,
			config.PickupHour,
			config.CutoffBufferHours,
			config.MaxRentalDays,
			config.AllowJoin,
			config.ZeroStockJoins,
			config.Tiers,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByItem получает конфигурацию конкретного уровня:
// itemID != nil - конфигурация товара, itemID == nil - общая конфигурация магазина
func (r *Repository) GetByItem(ctx context.Context, itemID *int64) (*domain.ItemRentalConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).From("item_rental_config")
	if itemID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"item_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"item_id": *itemID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByItem - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByItem - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом приоритетов:
// 1. Конфигурация конкретного товара
// 2. Общая конфигурация магазина
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, itemID int64) (*domain.ItemRentalConfig, error) {
	// 1. Конфигурация товара
	config, err := r.GetByItem(ctx, &itemID)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (item): %v", ErrExecQuery, err)
	}

	// 2. Общая конфигурация
	config, err = r.GetByItem(ctx, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (shop): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// Update обновляет конфигурацию
func (r *Repository) Update(ctx context.Context, id int64, config *domain.ItemRentalConfig) (*domain.ItemRentalConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("item_rental_config").
		Set("pickup_hour", config.PickupHour).
		Set("cutoff_buffer_hours", config.CutoffBufferHours).
		Set("max_rental_days", config.MaxRentalDays).
		Set("allow_join", config.AllowJoin).
		Set("zero_stock_joins", config.ZeroStockJoins).
		Set("pricing_tiers", config.Tiers).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING item_id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ItemID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	config.ID = id
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

func scanConfig(row interface{ Scan(dest ...interface{}) error }) (*domain.ItemRentalConfig, error) {
	var config domain.ItemRentalConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.ItemID,
		&config.PickupHour,
		&config.CutoffBufferHours,
		&config.MaxRentalDays,
		&config.AllowJoin,
		&config.ZeroStockJoins,
		&config.Tiers,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
