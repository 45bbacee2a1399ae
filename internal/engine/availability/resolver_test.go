package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/cutoff"
	"github.com/m04kA/SMC-RentalService/internal/engine/reservations"
	"github.com/m04kA/SMC-RentalService/pkg/types"
)

// Июнь 2024: 10 - понедельник, 14 - пятница, 15 - суббота

func d(s string) types.Date {
	return types.MustParseDate(s)
}

func dates(ss ...string) []types.Date {
	out := make([]types.Date, len(ss))
	for i, s := range ss {
		out[i] = d(s)
	}
	return out
}

func index(ranges ...[2]string) *reservations.Index {
	rr := make([]domain.ReservedRange, 0, len(ranges))
	for _, r := range ranges {
		rr = append(rr, domain.ReservedRange{Start: d(r[0]), End: d(r[1]), UnitsReserved: 1})
	}
	return reservations.NewIndex(rr)
}

func baseInput(start, end string) Input {
	return Input{
		Candidate:     Candidate{Start: d(start), End: d(end)},
		Index:         reservations.Empty(),
		Stock:         1,
		Cutoff:        cutoff.NewPolicy(13, 2, nil),
		Now:           time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		AllowJoin:     true,
		MaxRentalDays: 7,
	}
}

func TestResolver_Scenarios(t *testing.T) {
	resolver := NewResolver()

	t.Run("Start joins last day of reservation", func(t *testing.T) {
		in := baseInput("2024-06-12", "2024-06-14")
		in.Index = index([2]string{"2024-06-10", "2024-06-12"})

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeAccepted, v.Outcome)
		assert.True(t, v.StartJoin)
		assert.False(t, v.EndJoin)
		assert.Empty(t, v.ConflictDates)
	})

	t.Run("Start inside reservation conflicts", func(t *testing.T) {
		in := baseInput("2024-06-11", "2024-06-13")
		in.Index = index([2]string{"2024-06-10", "2024-06-12"})

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeRejectedConflict, v.Outcome)
		first, ok := v.FirstConflict()
		require.True(t, ok)
		assert.Equal(t, d("2024-06-11"), first)
		assert.Equal(t, dates("2024-06-11", "2024-06-12"), v.ConflictDates)
	})

	t.Run("Zero stock rejects fresh booking", func(t *testing.T) {
		in := baseInput("2024-06-20", "2024-06-21")
		in.Stock = 0

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeRejectedConflict, v.Outcome)
		assert.Equal(t, dates("2024-06-20", "2024-06-21"), v.ConflictDates)
	})

	t.Run("Before same-day cutoff proceeds to conflict checks", func(t *testing.T) {
		in := baseInput("2024-06-10", "2024-06-11")
		in.Now = time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC)

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeAccepted, v.Outcome)

		in.Index = index([2]string{"2024-06-11", "2024-06-13"})
		in.AllowJoin = false
		v = resolver.Evaluate(in)
		assert.Equal(t, OutcomeRejectedConflict, v.Outcome)
	})
}

func TestResolver_SameDayCutoff(t *testing.T) {
	resolver := NewResolver()
	in := baseInput("2024-06-10", "2024-06-11")
	in.Now = time.Date(2024, 6, 10, 11, 30, 0, 0, time.UTC)

	t.Run("Single unit past cutoff", func(t *testing.T) {
		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeRejectedCutoff, v.Outcome)
		assert.NotEmpty(t, v.Reason)
	})

	t.Run("Waived when more than one unit", func(t *testing.T) {
		multi := in
		multi.Stock = 2
		assert.Equal(t, OutcomeAccepted, resolver.Evaluate(multi).Outcome)
	})

	t.Run("Only applies to today", func(t *testing.T) {
		tomorrow := in
		tomorrow.Candidate = Candidate{Start: d("2024-06-11"), End: d("2024-06-12")}
		assert.Equal(t, OutcomeAccepted, resolver.Evaluate(tomorrow).Outcome)
	})

	t.Run("Uses shop timezone", func(t *testing.T) {
		shop := in
		shop.Cutoff = cutoff.NewPolicy(13, 2, time.FixedZone("IDT", 3*60*60))
		// 07:30 UTC = 10:30 по времени магазина
		shop.Now = time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)
		assert.Equal(t, OutcomeAccepted, resolver.Evaluate(shop).Outcome)

		// 08:30 UTC = 11:30
		shop.Now = time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC)
		assert.Equal(t, OutcomeRejectedCutoff, resolver.Evaluate(shop).Outcome)
	})
}

func TestResolver_Joins(t *testing.T) {
	resolver := NewResolver()

	t.Run("End joins first day of reservation", func(t *testing.T) {
		in := baseInput("2024-06-18", "2024-06-20")
		in.Index = index([2]string{"2024-06-20", "2024-06-23"})

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeAccepted, v.Outcome)
		assert.False(t, v.StartJoin)
		assert.True(t, v.EndJoin)
	})

	t.Run("Both ends join", func(t *testing.T) {
		in := baseInput("2024-06-12", "2024-06-17")
		in.Index = index(
			[2]string{"2024-06-10", "2024-06-12"},
			[2]string{"2024-06-17", "2024-06-19"},
		)

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeAccepted, v.Outcome)
		assert.True(t, v.StartJoin)
		assert.True(t, v.EndJoin)
	})

	t.Run("Join disabled turns edges into conflicts", func(t *testing.T) {
		in := baseInput("2024-06-12", "2024-06-14")
		in.Index = index([2]string{"2024-06-10", "2024-06-12"})
		in.AllowJoin = false

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeRejectedConflict, v.Outcome)
		assert.Equal(t, dates("2024-06-12"), v.ConflictDates)
		assert.False(t, v.StartJoin)
		assert.False(t, v.EndJoin)
	})

	t.Run("Join disabled never flags joins on accept", func(t *testing.T) {
		in := baseInput("2024-06-12", "2024-06-14")
		in.Index = index([2]string{"2024-06-10", "2024-06-12"})
		in.AllowJoin = false
		in.Stock = 2

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeAccepted, v.Outcome)
		assert.False(t, v.StartJoin)
		assert.False(t, v.EndJoin)
	})

	t.Run("Interior dates can not join", func(t *testing.T) {
		in := baseInput("2024-06-09", "2024-06-13")
		in.Index = index([2]string{"2024-06-11", "2024-06-11"})

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeRejectedConflict, v.Outcome)
		assert.Equal(t, dates("2024-06-11"), v.ConflictDates)
	})
}

func TestResolver_Stock(t *testing.T) {
	resolver := NewResolver()

	t.Run("Second unit available on overlap", func(t *testing.T) {
		in := baseInput("2024-06-10", "2024-06-13")
		in.Index = index([2]string{"2024-06-11", "2024-06-12"})
		in.Stock = 2

		assert.Equal(t, OutcomeAccepted, resolver.Evaluate(in).Outcome)
	})

	t.Run("Overlapping reservations exhaust stock", func(t *testing.T) {
		in := baseInput("2024-06-10", "2024-06-13")
		in.Index = index(
			[2]string{"2024-06-11", "2024-06-12"},
			[2]string{"2024-06-12", "2024-06-13"},
		)
		in.Stock = 2

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeRejectedConflict, v.Outcome)
		assert.Equal(t, dates("2024-06-12"), v.ConflictDates)
	})

	t.Run("Saturday is never a conflict", func(t *testing.T) {
		in := baseInput("2024-06-13", "2024-06-16")
		in.Index = index([2]string{"2024-06-15", "2024-06-15"})

		assert.Equal(t, OutcomeAccepted, resolver.Evaluate(in).Outcome)
	})

	t.Run("Zero stock join only when enabled", func(t *testing.T) {
		in := baseInput("2024-06-12", "2024-06-12")
		in.Index = index([2]string{"2024-06-10", "2024-06-12"})
		in.Stock = 0

		assert.Equal(t, OutcomeRejectedConflict, resolver.Evaluate(in).Outcome)

		in.ZeroStockJoins = true
		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeAccepted, v.Outcome)
		assert.True(t, v.StartJoin)

		in.Candidate.End = d("2024-06-13")
		v = resolver.Evaluate(in)
		assert.Equal(t, OutcomeRejectedConflict, v.Outcome)
		assert.Equal(t, dates("2024-06-13"), v.ConflictDates)
	})

	t.Run("Zero stock without join boundaries is never accepted", func(t *testing.T) {
		idx := index([2]string{"2024-06-10", "2024-06-12"})
		start := d("2024-06-02")
		for i := 0; i < 20; i++ {
			for span := 0; span < 5; span++ {
				in := baseInput(start.AddDays(i).String(), start.AddDays(i+span).String())
				in.Index = idx
				in.Stock = 0
				in.ZeroStockJoins = true

				v := resolver.Evaluate(in)
				if v.Outcome == OutcomeAccepted {
					assert.True(t, v.StartJoin || v.EndJoin, "%s..%s", in.Candidate.Start, in.Candidate.End)
				}
			}
		}
	})
}

func TestResolver_OtherRules(t *testing.T) {
	resolver := NewResolver()

	t.Run("Start after end is invalid input", func(t *testing.T) {
		v := resolver.Evaluate(baseInput("2024-06-14", "2024-06-12"))
		assert.Equal(t, OutcomeInvalidInput, v.Outcome)
	})

	t.Run("Negative stock is invalid input", func(t *testing.T) {
		in := baseInput("2024-06-12", "2024-06-14")
		in.Stock = -1
		assert.Equal(t, OutcomeInvalidInput, resolver.Evaluate(in).Outcome)
	})

	t.Run("Missing dates are invalid input", func(t *testing.T) {
		in := baseInput("2024-06-12", "2024-06-14")
		in.Candidate.End = types.Date{}
		assert.Equal(t, OutcomeInvalidInput, resolver.Evaluate(in).Outcome)
	})

	t.Run("Past start date", func(t *testing.T) {
		in := baseInput("2024-06-09", "2024-06-11")
		in.Now = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
		assert.Equal(t, OutcomeRejectedPastDate, resolver.Evaluate(in).Outcome)
	})

	t.Run("Max duration uses billable days", func(t *testing.T) {
		// 10 ночей, одна пара пятница+суббота -> 9 дней
		v := resolver.Evaluate(baseInput("2024-06-16", "2024-06-26"))
		assert.Equal(t, OutcomeRejectedMaxDuration, v.Outcome)

		// 8 ночей с парой -> ровно 7 дней
		assert.Equal(t, OutcomeAccepted, resolver.Evaluate(baseInput("2024-06-16", "2024-06-24")).Outcome)

		unlimited := baseInput("2024-06-16", "2024-07-26")
		unlimited.MaxRentalDays = 0
		assert.Equal(t, OutcomeAccepted, resolver.Evaluate(unlimited).Outcome)
	})

	t.Run("Closed weekday for pickup or return", func(t *testing.T) {
		in := baseInput("2024-06-13", "2024-06-15")
		in.ClosedWeekdays = []time.Weekday{time.Saturday}

		v := resolver.Evaluate(in)
		assert.Equal(t, OutcomeRejectedClosedDay, v.Outcome)
		assert.Equal(t, dates("2024-06-15"), v.ConflictDates)

		in.Candidate.End = d("2024-06-16")
		assert.Equal(t, OutcomeAccepted, resolver.Evaluate(in).Outcome)
	})

	t.Run("Cutoff is checked before conflicts", func(t *testing.T) {
		in := baseInput("2024-06-10", "2024-06-11")
		in.Now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
		in.Index = index([2]string{"2024-06-10", "2024-06-11"})
		in.AllowJoin = false

		assert.Equal(t, OutcomeRejectedCutoff, resolver.Evaluate(in).Outcome)
	})

	t.Run("Nil index means no reservations", func(t *testing.T) {
		in := baseInput("2024-06-12", "2024-06-14")
		in.Index = nil
		assert.Equal(t, OutcomeAccepted, resolver.Evaluate(in).Outcome)
	})
}

func TestResolver_Idempotent(t *testing.T) {
	resolver := NewResolver()
	in := baseInput("2024-06-11", "2024-06-13")
	in.Index = index([2]string{"2024-06-10", "2024-06-12"})

	first := resolver.Evaluate(in)
	second := resolver.Evaluate(in)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, in.Index.Len())
}

func TestResolver_CustomRules(t *testing.T) {
	blackout := RuleFunc{
		RuleName: "blackout",
		Fn: func(in Input) (Verdict, bool) {
			if in.Candidate.Start == d("2024-06-20") {
				return Verdict{Outcome: OutcomeRejectedClosedDay, Reason: "holiday"}, true
			}
			return Verdict{}, false
		},
	}

	resolver := NewResolver().With(blackout)
	assert.Equal(t, []string{
		"ordering", "past_date", "same_day_cutoff", "zero_stock", "max_duration", "closed_day", "conflict", "blackout",
	}, resolver.Rules())

	v := resolver.Evaluate(baseInput("2024-06-20", "2024-06-21"))
	assert.Equal(t, OutcomeRejectedClosedDay, v.Outcome)
	assert.Equal(t, "holiday", v.Reason)

	assert.Equal(t, OutcomeAccepted, resolver.Evaluate(baseInput("2024-06-19", "2024-06-21")).Outcome)
	assert.Len(t, NewResolver().Rules(), 7)
}

func TestOutcome(t *testing.T) {
	assert.True(t, OutcomeAccepted.IsAccepted())
	assert.False(t, OutcomeAccepted.IsRejection())
	assert.True(t, OutcomeRejectedCutoff.IsRejection())
	assert.False(t, OutcomeInvalidInput.IsRejection())
	assert.False(t, OutcomeDataUnavailable.IsRejection())

	v := DataUnavailable("timeout")
	assert.Equal(t, OutcomeDataUnavailable, v.Outcome)
	_, ok := v.FirstConflict()
	assert.False(t, ok)
}
