package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/engine/cutoff"
	"github.com/m04kA/SMC-RentalService/internal/engine/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/snapshot"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// memoryStore резервации в памяти: Load видит все созданные ранее резервации
type memoryStore struct {
	stock   int
	created []*domain.Reservation
	loadErr   error
	createErr error
	inTx      bool
}

func (s *memoryStore) Load(ctx context.Context, itemID int64, now time.Time, from types.Date) (*snapshot.Snapshot, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return &snapshot.Snapshot{
		Item:           &domain.Item{ID: itemID, BasePrice: 550, Active: true},
		Stock:          domain.StockInfo{TotalUnits: s.stock},
		Config:         domain.DefaultRentalConfig(),
		Index:          reservations.NewIndex(domain.OccupiedRanges(s.created)),
		Cutoff:         cutoff.NewPolicy(13, 2, time.UTC),
		ClosedWeekdays: []time.Weekday{time.Saturday},
		Now:            now,
	}, nil
}

func (s *memoryStore) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if !s.inTx {
		return nil, errors.New("create outside transaction")
	}
	if s.createErr != nil {
		return nil, s.createErr
	}
	r.ID = int64(len(s.created) + 1)
	s.created = append(s.created, r)
	return r, nil
}

func (s *memoryStore) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.inTx = true
	defer func() { s.inTx = false }()
	return fn(ctx)
}

type failingTx struct{ err error }

func (f failingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return f.err
}

type nopMetrics struct{}

func (nopMetrics) RecordVerdict(operation, outcome string) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func d(s string) types.Date { return types.MustParseDate(s) }

func newUseCase(store *memoryStore, tx TransactionManager) *UseCase {
	uc := NewUseCase(store, availability.NewResolver(), store, tx, nopMetrics{}, "ILS", logger.Nop())
	uc.timeProvider = fixedTime{now: time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Second booking of the last unit is rejected", func(t *testing.T) {
		store := &memoryStore{stock: 1}
		uc := newUseCase(store, store)

		first, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-12"), OrderRef: ptr.Ptr("WC-1001")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, "active", first.Status)
		assert.Equal(t, 1, first.Units)
		require.NotNil(t, first.Quote)
		assert.Equal(t, 2, first.Quote.Days)

		_, err = uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-11"), End: d("2024-06-13")})
		require.ErrorIs(t, err, ErrRejected)

		var rejected *RejectedError
		require.True(t, errors.As(err, &rejected))
		assert.Equal(t, availability.OutcomeRejectedConflict, rejected.Verdict.Outcome)
		assert.Equal(t, d("2024-06-11"), rejected.Verdict.ConflictDates[0])
		assert.Len(t, store.created, 1)
	})

	t.Run("Join to an existing reservation", func(t *testing.T) {
		store := &memoryStore{stock: 1}
		uc := newUseCase(store, store)

		_, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-12")})
		require.NoError(t, err)

		joined, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-12"), End: d("2024-06-13")})
		require.NoError(t, err)
		assert.True(t, joined.StartJoin)
		assert.False(t, joined.EndJoin)
	})

	t.Run("Two units allow overlap", func(t *testing.T) {
		store := &memoryStore{stock: 2}
		uc := newUseCase(store, store)

		for i := 0; i < 2; i++ {
			_, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-11")})
			require.NoError(t, err)
		}
		_, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-11")})
		assert.ErrorIs(t, err, ErrRejected)
	})

	t.Run("Invalid order ref", func(t *testing.T) {
		store := &memoryStore{stock: 1}
		uc := newUseCase(store, store)

		_, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-11"), OrderRef: ptr.Ptr("")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Unknown item", func(t *testing.T) {
		store := &memoryStore{loadErr: snapshot.ErrItemNotFound}
		uc := newUseCase(store, store)

		_, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-11")})
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Data unavailable", func(t *testing.T) {
		store := &memoryStore{loadErr: fmt.Errorf("%w: db", snapshot.ErrDataUnavailable)}
		uc := newUseCase(store, store)

		_, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-11")})
		assert.ErrorIs(t, err, ErrDataUnavailable)
	})

	t.Run("Serialization failure", func(t *testing.T) {
		store := &memoryStore{stock: 1}
		uc := newUseCase(store, failingTx{err: fmt.Errorf("%w: 40001", txmanager.ErrSerialization)})

		_, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-11")})
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
	})

	t.Run("Serialization failure on insert", func(t *testing.T) {
		pqErr := &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies"}
		store := &memoryStore{stock: 1, createErr: fmt.Errorf("%w: Create - execute insert: %w", errors.New("storage: exec"), pqErr)}
		uc := newUseCase(store, store)

		_, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-11")})
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Empty(t, store.created)
	})

	t.Run("Serialization failure on reservations read", func(t *testing.T) {
		pqErr := &pq.Error{Code: "40001"}
		store := &memoryStore{loadErr: fmt.Errorf("%w: reservations: %w", snapshot.ErrDataUnavailable, pqErr)}
		uc := newUseCase(store, store)

		_, err := uc.Execute(ctx, &Request{UserID: 5, ItemID: 1, Start: d("2024-06-10"), End: d("2024-06-11")})
		assert.ErrorIs(t, err, ErrConcurrentUpdate)
		assert.NotErrorIs(t, err, ErrDataUnavailable)
	})
}
