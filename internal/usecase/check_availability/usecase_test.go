package check_availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/engine/cutoff"
	"github.com/m04kA/SMC-RentalService/internal/engine/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/snapshot"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

type fakeLoader struct {
	snap *snapshot.Snapshot
	err  error
}

func (f *fakeLoader) Load(ctx context.Context, itemID int64, now time.Time, from types.Date) (*snapshot.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.snap.Now = now
	return f.snap, nil
}

type recordedVerdicts map[string]int

func (r recordedVerdicts) RecordVerdict(operation, outcome string) {
	r[operation+":"+outcome]++
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func d(s string) types.Date { return types.MustParseDate(s) }

func newSnapshot(stock int, ranges ...domain.ReservedRange) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Item:           &domain.Item{ID: 1, BasePrice: 550, Active: true},
		Stock:          domain.StockInfo{TotalUnits: stock},
		Config:         domain.DefaultRentalConfig(),
		Index:          reservations.NewIndex(ranges),
		Cutoff:         cutoff.NewPolicy(13, 2, time.UTC),
		ClosedWeekdays: []time.Weekday{time.Saturday},
	}
}

func newUseCase(loader SnapshotLoader, m Metrics) *UseCase {
	uc := NewUseCase(loader, availability.NewResolver(), m, logger.Nop())
	uc.timeProvider = fixedTime{now: time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	existing := domain.ReservedRange{Start: d("2024-06-10"), End: d("2024-06-12"), UnitsReserved: 1}

	t.Run("Join at the end of an existing reservation", func(t *testing.T) {
		m := recordedVerdicts{}
		uc := newUseCase(&fakeLoader{snap: newSnapshot(1, existing)}, m)

		resp, err := uc.Execute(ctx, &Request{ItemID: 1, Start: d("2024-06-12"), End: d("2024-06-14")})
		require.NoError(t, err)
		assert.Equal(t, availability.OutcomeAccepted, resp.Verdict.Outcome)
		assert.True(t, resp.Verdict.StartJoin)
		assert.False(t, resp.Verdict.EndJoin)
		assert.Equal(t, 1, m["check_availability:accepted"])
	})

	t.Run("Start inside an existing reservation", func(t *testing.T) {
		uc := newUseCase(&fakeLoader{snap: newSnapshot(1, existing)}, recordedVerdicts{})

		resp, err := uc.Execute(ctx, &Request{ItemID: 1, Start: d("2024-06-11"), End: d("2024-06-13")})
		require.NoError(t, err)
		assert.Equal(t, availability.OutcomeRejectedConflict, resp.Verdict.Outcome)
		first, ok := resp.Verdict.FirstConflict()
		require.True(t, ok)
		assert.Equal(t, d("2024-06-11"), first)
	})

	t.Run("Reversed dates are a verdict", func(t *testing.T) {
		uc := newUseCase(&fakeLoader{snap: newSnapshot(1)}, recordedVerdicts{})

		resp, err := uc.Execute(ctx, &Request{ItemID: 1, Start: d("2024-06-14"), End: d("2024-06-12")})
		require.NoError(t, err)
		assert.Equal(t, availability.OutcomeInvalidInput, resp.Verdict.Outcome)
	})

	t.Run("Missing dates", func(t *testing.T) {
		uc := newUseCase(&fakeLoader{snap: newSnapshot(1)}, recordedVerdicts{})

		_, err := uc.Execute(ctx, &Request{ItemID: 1, Start: d("2024-06-14")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Unknown item", func(t *testing.T) {
		uc := newUseCase(&fakeLoader{err: snapshot.ErrItemNotFound}, recordedVerdicts{})

		_, err := uc.Execute(ctx, &Request{ItemID: 1, Start: d("2024-06-12"), End: d("2024-06-14")})
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Provider failure", func(t *testing.T) {
		m := recordedVerdicts{}
		uc := newUseCase(&fakeLoader{err: fmt.Errorf("%w: timeout", snapshot.ErrDataUnavailable)}, m)

		_, err := uc.Execute(ctx, &Request{ItemID: 1, Start: d("2024-06-12"), End: d("2024-06-14")})
		assert.ErrorIs(t, err, ErrDataUnavailable)
		assert.Equal(t, 1, m["check_availability:data_unavailable"])
	})
}
