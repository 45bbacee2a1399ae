package item

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

// Repository репозиторий товаров проката
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория товаров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает товар по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы параллельные
// резервации одного товара выполнялись последовательно.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"total_units",
		"base_price",
		"active",
		"created_at",
		"updated_at",
	).
		From("items").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var item domain.Item
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.Name,
		&item.TotalUnits,
		&item.BasePrice,
		&item.Active,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan item: %w", ErrScanRow, err)
	}

	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}

// GetStock возвращает общее количество единиц товара
func (r *Repository) GetStock(ctx context.Context, id int64) (domain.StockInfo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("total_units").
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.StockInfo{}, fmt.Errorf("%w: GetStock - build select query: %v", ErrBuildQuery, err)
	}

	var stock domain.StockInfo
	err = executor.QueryRowContext(ctx, query, args...).Scan(&stock.TotalUnits)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StockInfo{}, ErrItemNotFound
	}
	if err != nil {
		return domain.StockInfo{}, fmt.Errorf("%w: GetStock - scan stock: %w", ErrScanRow, err)
	}

	return stock, nil
}
