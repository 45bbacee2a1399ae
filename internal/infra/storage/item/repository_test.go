package item

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

var itemColumns = []string{"id", "name", "total_units", "base_price", "active", "created_at", "updated_at"}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, total_units, base_price, active, created_at, updated_at FROM items WHERE id = $1")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(7, "Camping tent", 2, 550.0, true, now, now))

		item, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), item.ID)
		assert.Equal(t, "Camping tent", item.Name)
		assert.Equal(t, 2, item.TotalUnits)
		assert.Equal(t, 550.0, item.BasePrice)
		assert.True(t, item.Active)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM items").
			WithArgs(int64(8)).
			WillReturnRows(sqlmock.NewRows(itemColumns))

		_, err := repo.GetByID(context.Background(), 8)
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM items").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.GetByID(context.Background(), 9)
		assert.ErrorIs(t, err, ErrScanRow)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Locks row inside transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("FROM items WHERE id = $1 FOR UPDATE")).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(7, "Camping tent", 1, 550.0, true, now, now))
		mock.ExpectCommit()

		err := txmanager.NewSQLTransactionManager(db).DoSerializable(context.Background(), func(ctx context.Context) error {
			_, err := repo.GetByID(ctx, 7)
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT total_units FROM items WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"total_units"}).AddRow(0))

	stock, err := repo.GetStock(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, stock.IsZeroStock())

	mock.ExpectQuery("SELECT total_units FROM items").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"total_units"}))

	_, err = repo.GetStock(context.Background(), 4)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
