package itemconfig

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

const tiersJSON = `[{"thresholdDays":1,"discountPercent":0},{"thresholdDays":3,"discountPercent":50}]`

func configRow(rows *sqlmock.Rows, id int64, itemID interface{}, now time.Time) *sqlmock.Rows {
	return rows.AddRow(id, itemID, 13, 2, 7, true, false, []byte(tiersJSON), now, now)
}

func TestRepository_GetConfigWithHierarchy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Item level", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("FROM item_rental_config WHERE item_id = $1")).
			WithArgs(int64(5)).
			WillReturnRows(configRow(sqlmock.NewRows(configColumns), 1, 5, now))

		cfg, err := repo.GetConfigWithHierarchy(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, cfg.IsItemSpecific())
		assert.Equal(t, int64(5), *cfg.ItemID)
		assert.Equal(t, domain.PricingTiers{
			{ThresholdDays: 1, DiscountPercent: 0},
			{ThresholdDays: 3, DiscountPercent: 50},
		}, cfg.Tiers)
	})

	t.Run("Falls back to shop level", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("WHERE item_id = $1")).
			WithArgs(int64(6)).
			WillReturnRows(sqlmock.NewRows(configColumns))
		mock.ExpectQuery(regexp.QuoteMeta("WHERE item_id IS NULL")).
			WillReturnRows(configRow(sqlmock.NewRows(configColumns), 2, nil, now))

		cfg, err := repo.GetConfigWithHierarchy(context.Background(), 6)
		require.NoError(t, err)
		assert.True(t, cfg.IsGlobalConfig())
		assert.Equal(t, int64(2), cfg.ID)
	})

	t.Run("Nothing stored", func(t *testing.T) {
		mock.ExpectQuery("WHERE item_id = ").WillReturnRows(sqlmock.NewRows(configColumns))
		mock.ExpectQuery("WHERE item_id IS NULL").WillReturnRows(sqlmock.NewRows(configColumns))

		_, err := repo.GetConfigWithHierarchy(context.Background(), 7)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("Database failure", func(t *testing.T) {
		mock.ExpectQuery("WHERE item_id = ").WillReturnError(errors.New("connection reset"))

		_, err := repo.GetConfigWithHierarchy(context.Background(), 8)
		assert.ErrorIs(t, err, ErrExecQuery)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateAndUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	cfg := domain.DefaultRentalConfig()
	cfg.ItemID = ptr.Ptr(int64(5))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO item_rental_config (item_id,pickup_hour,cutoff_buffer_hours,max_rental_days,allow_join,zero_stock_joins,pricing_tiers) VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at, updated_at")).
		WithArgs(int64(5), 13, 2, 7, true, false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(10, now, now))

	created, err := repo.Create(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)

	created.MaxRentalDays = 14
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE item_rental_config SET pickup_hour = $1, cutoff_buffer_hours = $2, max_rental_days = $3, allow_join = $4, zero_stock_joins = $5, pricing_tiers = $6, updated_at = NOW() WHERE id = $7")).
		WithArgs(13, 2, 14, true, false, sqlmock.AnyArg(), int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "created_at", "updated_at"}).AddRow(5, now, now))

	updated, err := repo.Update(context.Background(), 10, created)
	require.NoError(t, err)
	assert.Equal(t, 14, updated.MaxRentalDays)

	mock.ExpectQuery("UPDATE item_rental_config").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "created_at", "updated_at"}))
	_, err = repo.Update(context.Background(), 11, created)
	assert.ErrorIs(t, err, ErrConfigNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
