package snapshot

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	configRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/itemconfig"
	"github.com/m04kA/SMC-RentalService/internal/service/provider"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type fakeProvider struct {
	item     *domain.Item
	stock    domain.StockInfo
	ranges   []domain.ReservedRange
	itemErr  error
	stockErr error
	rangeErr error
	from     types.Date
}

func (f *fakeProvider) FetchItem(ctx context.Context, itemID int64) (*domain.Item, error) {
	return f.item, f.itemErr
}

// FetchReservations отдает только диапазоны с End >= from, как репозиторий
func (f *fakeProvider) FetchReservations(ctx context.Context, itemID int64, from types.Date) ([]domain.ReservedRange, error) {
	f.from = from
	if f.rangeErr != nil {
		return nil, f.rangeErr
	}
	out := make([]domain.ReservedRange, 0, len(f.ranges))
	for _, r := range f.ranges {
		if !r.End.Before(from) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProvider) FetchStock(ctx context.Context, itemID int64) (domain.StockInfo, error) {
	return f.stock, f.stockErr
}

type fakeConfigRepo struct {
	config *domain.ItemRentalConfig
	err    error
}

func (f *fakeConfigRepo) GetConfigWithHierarchy(ctx context.Context, itemID int64) (*domain.ItemRentalConfig, error) {
	return f.config, f.err
}

func jerusalem(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jerusalem")
	require.NoError(t, err)
	return loc
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	loc := jerusalem(t)
	// 23:30 UTC 9 июня = 02:30 10 июня в Иерусалиме
	now := time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC)

	activeItem := &domain.Item{ID: 7, Name: "SUP", BasePrice: 550, Active: true}

	t.Run("Uses defaults and shop timezone", func(t *testing.T) {
		p := &fakeProvider{
			item:   activeItem,
			stock:  domain.StockInfo{TotalUnits: 1},
			ranges: []domain.ReservedRange{{Start: types.MustParseDate("2024-06-10"), End: types.MustParseDate("2024-06-12"), UnitsReserved: 1}},
		}
		loader := NewLoader(p, &fakeConfigRepo{err: configRepo.ErrConfigNotFound}, Settings{
			Location:       loc,
			ClosedWeekdays: []time.Weekday{time.Saturday},
		}, logger.Nop())

		snap, err := loader.Load(ctx, 7, now, types.Date{})
		require.NoError(t, err)

		assert.Equal(t, types.MustParseDate("2024-06-10"), snap.Today())
		assert.Equal(t, types.MustParseDate("2024-06-09"), p.from)
		assert.Equal(t, domain.DefaultMaxRentalDays, snap.Config.MaxRentalDays)
		assert.Equal(t, 1, snap.Index.ReservationCount(types.MustParseDate("2024-06-11")))
		assert.True(t, snap.IsClosed(types.MustParseDate("2024-06-15")))

		in := snap.Input(availability.Candidate{Start: types.MustParseDate("2024-06-12"), End: types.MustParseDate("2024-06-14")})
		assert.Equal(t, 1, in.Stock)
		assert.True(t, in.AllowJoin)
		assert.Equal(t, loc, in.Cutoff.Location)
	})

	t.Run("Range ending the day before the window is indexed", func(t *testing.T) {
		// 09:00 10 июня в Иерусалиме, до отсечки
		morning := time.Date(2024, 6, 10, 6, 0, 0, 0, time.UTC)
		p := &fakeProvider{
			item:  activeItem,
			stock: domain.StockInfo{TotalUnits: 1},
			ranges: []domain.ReservedRange{
				{Start: types.MustParseDate("2024-06-06"), End: types.MustParseDate("2024-06-09"), UnitsReserved: 1},
				{Start: types.MustParseDate("2024-06-10"), End: types.MustParseDate("2024-06-12"), UnitsReserved: 1},
			},
		}
		loader := NewLoader(p, &fakeConfigRepo{err: configRepo.ErrConfigNotFound}, Settings{Location: loc}, logger.Nop())

		snap, err := loader.Load(ctx, 7, morning, types.Date{})
		require.NoError(t, err)

		day := types.MustParseDate("2024-06-10")
		assert.True(t, snap.Index.IsDateReserved(day.AddDays(-1)))
		assert.False(t, snap.Index.IsFirstDayOfReservation(day))

		verdict := availability.NewResolver().Evaluate(snap.Input(availability.Candidate{Start: day, End: day}))
		assert.Equal(t, availability.OutcomeRejectedConflict, verdict.Outcome)
		assert.False(t, verdict.EndJoin)
		assert.Equal(t, []types.Date{day}, verdict.ConflictDates)
	})

	t.Run("Item config wins", func(t *testing.T) {
		cfg := domain.DefaultRentalConfig()
		cfg.ItemID = ptr.Ptr(int64(7))
		cfg.MaxRentalDays = 14
		cfg.AllowJoin = false

		p := &fakeProvider{item: activeItem, stock: domain.StockInfo{TotalUnits: 2}}
		loader := NewLoader(p, &fakeConfigRepo{config: cfg}, Settings{Location: loc}, logger.Nop())

		snap, err := loader.Load(ctx, 7, now, types.MustParseDate("2024-06-01"))
		require.NoError(t, err)
		assert.Equal(t, 14, snap.Config.MaxRentalDays)
		assert.False(t, snap.Input(availability.Candidate{}).AllowJoin)
		assert.Equal(t, types.MustParseDate("2024-05-31"), p.from)
	})

	t.Run("Unknown item", func(t *testing.T) {
		loader := NewLoader(&fakeProvider{itemErr: provider.ErrItemNotFound}, &fakeConfigRepo{}, Settings{}, logger.Nop())
		_, err := loader.Load(ctx, 7, now, types.Date{})
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Inactive item", func(t *testing.T) {
		loader := NewLoader(&fakeProvider{item: &domain.Item{ID: 7}}, &fakeConfigRepo{}, Settings{}, logger.Nop())
		_, err := loader.Load(ctx, 7, now, types.Date{})
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Reservations unavailable", func(t *testing.T) {
		p := &fakeProvider{item: activeItem, rangeErr: fmt.Errorf("%w: timeout", provider.ErrUnavailable)}
		loader := NewLoader(p, &fakeConfigRepo{}, Settings{}, logger.Nop())
		_, err := loader.Load(ctx, 7, now, types.Date{})
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})

	t.Run("Negative stock", func(t *testing.T) {
		p := &fakeProvider{item: activeItem, stock: domain.StockInfo{TotalUnits: -1}}
		loader := NewLoader(p, &fakeConfigRepo{}, Settings{}, logger.Nop())
		_, err := loader.Load(ctx, 7, now, types.Date{})
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})

	t.Run("Config failure", func(t *testing.T) {
		loader := NewLoader(&fakeProvider{item: activeItem}, &fakeConfigRepo{err: errors.New("db down")}, Settings{}, logger.Nop())
		_, err := loader.Load(ctx, 7, now, types.Date{})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
