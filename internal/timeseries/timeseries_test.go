package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsighthq/finsight/internal/model"
)

func record(id string, date time.Time, amount float64, kind model.TransactionType) model.Record {
	return model.Record{
		ID:            id,
		Date:          date,
		Amount:        amount,
		Type:          kind,
		Category:      "Other",
		Counterparty:  "Unknown",
		PaymentStatus: model.StatusPaid,
	}
}

func TestMonthlyBuckets_FillsGaps(t *testing.T) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	buckets := MonthlyBuckets([]model.Record{
		record("a", jan, 1000, model.TypeIncome),
		record("b", jan, 400, model.TypeExpense),
		record("c", mar, 600, model.TypeExpense),
	})

	require.Len(t, buckets, 3)

	assert.True(t, buckets[0].Observed)
	assert.InDelta(t, 1000.0, buckets[0].Revenue, 1e-9)
	assert.InDelta(t, 400.0, buckets[0].Expenses, 1e-9)
	assert.InDelta(t, 600.0, buckets[0].NetCashFlow, 1e-9)

	// February has no records but stays in the series as a zero bucket.
	assert.False(t, buckets[1].Observed)
	assert.Equal(t, time.February, buckets[1].Month.Month())
	assert.InDelta(t, 0.0, buckets[1].NetCashFlow, 1e-9)

	assert.InDelta(t, -600.0, buckets[2].NetCashFlow, 1e-9)
	assert.Equal(t, 2, ObservedMonths(buckets))
}

func TestMonthlyBuckets_Empty(t *testing.T) {
	assert.Nil(t, MonthlyBuckets(nil))
}

func TestCashPosition(t *testing.T) {
	buckets := []Bucket{
		{NetCashFlow: 500},
		{NetCashFlow: -200},
		{NetCashFlow: 100},
	}
	assert.InDelta(t, 400.0, CashPosition(buckets), 1e-9)
}

func TestRecentBurn(t *testing.T) {
	buckets := []Bucket{
		{NetCashFlow: -900}, // outside the window
		{NetCashFlow: -300},
		{NetCashFlow: 150}, // positive months contribute no burn
		{NetCashFlow: -600},
	}

	// Average over the last 3 months: (300 + 0 + 600) / 3.
	assert.InDelta(t, 300.0, RecentBurn(buckets, 3), 1e-9)

	// Window wider than history averages over what exists.
	assert.InDelta(t, 450.0, RecentBurn(buckets, 10), 1e-9)

	assert.InDelta(t, 0.0, RecentBurn(nil, 3), 1e-9)
}

func TestRunway(t *testing.T) {
	months, unbounded := Runway(1000, 250)
	assert.False(t, unbounded)
	assert.InDelta(t, 4.0, months, 1e-9)

	// Zero burn is the unbounded sentinel, never a division.
	_, unbounded = Runway(1000, 0)
	assert.True(t, unbounded)

	// Exhausted position with real burn.
	months, unbounded = Runway(-50, 100)
	assert.False(t, unbounded)
	assert.InDelta(t, 0.0, months, 1e-9)
}

func TestRunway_MonotonicInCashPosition(t *testing.T) {
	// Holding burn constant, more cash strictly means more runway.
	previous := 0.0
	for _, position := range []float64{100, 500, 1000, 5000} {
		months, unbounded := Runway(position, 200)
		require.False(t, unbounded)
		assert.Greater(t, months, previous)
		previous = months
	}
}
