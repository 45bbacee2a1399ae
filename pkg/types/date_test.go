package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		d, err := ParseDate("2024-01-05")
		require.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.January, d.Month())
		assert.Equal(t, 5, d.Day())
	})

	t.Run("Leap day", func(t *testing.T) {
		d, err := ParseDate("2024-02-29")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-29", d.String())
	})

	invalid := []string{"", "2024/01/15", "2024-1-15", "2024-13-01", "2024-00-10", "2023-02-29", "2024-04-31", "20240115", "2024-01-15T10:00"}
	for _, s := range invalid {
		t.Run("Invalid "+s, func(t *testing.T) {
			_, err := ParseDate(s)
			assert.ErrorIs(t, err, ErrInvalidDateFormat)
		})
	}
}

func TestDate_StringRoundTrip(t *testing.T) {
	start := NewDate(1999, time.December, 25)
	for i := 0; i < 800; i++ {
		d := start.AddDays(i)
		parsed, err := ParseDate(d.String())
		require.NoError(t, err)
		assert.Equal(t, d.String(), parsed.String())
		assert.Equal(t, d, parsed)
	}
}

func TestDate_ZeroPadding(t *testing.T) {
	assert.Equal(t, "0987-03-04", NewDate(987, time.March, 4).String())
}

func TestDate_Weekdays(t *testing.T) {
	// 2024-06-07 пятница, 2024-06-08 суббота, 2024-06-09 воскресенье
	fri := MustParseDate("2024-06-07")
	sat := MustParseDate("2024-06-08")
	sun := MustParseDate("2024-06-09")

	assert.True(t, fri.IsFriday())
	assert.False(t, fri.IsSaturday())
	assert.True(t, sat.IsSaturday())
	assert.Equal(t, 5, fri.DayOfWeek())
	assert.Equal(t, 6, sat.DayOfWeek())
	assert.Equal(t, 0, sun.DayOfWeek())
}

func TestDate_Comparison(t *testing.T) {
	a := MustParseDate("2024-01-31")
	b := MustParseDate("2024-02-01")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, a.DaysUntil(b))
	assert.Equal(t, -1, b.DaysUntil(a))
	assert.Equal(t, b, a.AddDays(1))
}

func TestDateOf_UsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("IDT", 3*60*60)
	// 22:30 UTC 14 июня = 01:30 15 июня по местному времени
	utc := time.Date(2024, time.June, 14, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-14", DateOf(utc).String())
	assert.Equal(t, "2024-06-15", DateOf(utc.In(loc)).String())
}

func TestEnumerateRange(t *testing.T) {
	t.Run("Inclusive ascending", func(t *testing.T) {
		dates, err := EnumerateRange(MustParseDate("2024-02-27"), MustParseDate("2024-03-02"))
		require.NoError(t, err)

		got := make([]string, len(dates))
		for i, d := range dates {
			got[i] = d.String()
		}
		assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}, got)
	})

	t.Run("Single day", func(t *testing.T) {
		d := MustParseDate("2024-05-05")
		dates, err := EnumerateRange(d, d)
		require.NoError(t, err)
		assert.Equal(t, []Date{d}, dates)
	})

	t.Run("Start after end is not swapped", func(t *testing.T) {
		_, err := EnumerateRange(MustParseDate("2024-05-06"), MustParseDate("2024-05-05"))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Start Date `json:"start"`
	}

	data, err := json.Marshal(payload{Start: MustParseDate("2024-07-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-07-01"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-12-31"}`), &p))
	assert.Equal(t, MustParseDate("2024-12-31"), p.Start)

	assert.Error(t, json.Unmarshal([]byte(`{"start":"31.12.2024"}`), &p))
}

func TestDate_ScanValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-10", d.String())

	require.NoError(t, d.Scan([]byte("2024-03-11")))
	assert.Equal(t, "2024-03-11", d.String())

	require.NoError(t, d.Scan("2024-03-12T00:00:00Z"))
	assert.Equal(t, "2024-03-12", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", v)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
