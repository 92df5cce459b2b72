// Package timeseries aggregates ledger records into calendar-month buckets
// and derives burn and runway figures from them. It is shared by the score
// calculator and the cash-flow forecaster.
package timeseries

import (
	"time"

	"github.com/finsighthq/finsight/internal/model"
)

// Bucket is one calendar month of aggregated cash flow.
type Bucket struct {
	// Month is the first day of the bucket's calendar month in UTC.
	Month       time.Time
	Revenue     float64
	Expenses    float64
	NetCashFlow float64
	// Observed is false for gap months materialized between the first
	// and last record so trend indices stay calendar-true.
	Observed bool
}

// MonthKey truncates t to the first day of its calendar month in UTC.
func MonthKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthlyBuckets aggregates records into an ordered, calendar-continuous
// sequence of monthly buckets from the earliest to the latest record.
// Months inside the span with no records become zero-flow buckets.
// An empty batch yields nil.
func MonthlyBuckets(records []model.Record) []Bucket {
	if len(records) == 0 {
		return nil
	}

	byMonth := make(map[time.Time]*Bucket)
	var first, last time.Time
	for i := range records {
		key := MonthKey(records[i].Date)
		if first.IsZero() || key.Before(first) {
			first = key
		}
		if last.IsZero() || key.After(last) {
			last = key
		}

		bucket, ok := byMonth[key]
		if !ok {
			bucket = &Bucket{Month: key, Observed: true}
			byMonth[key] = bucket
		}
		if records[i].Type == model.TypeIncome {
			bucket.Revenue += records[i].Amount
		} else {
			bucket.Expenses += records[i].Amount
		}
	}

	var buckets []Bucket
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		if bucket, ok := byMonth[month]; ok {
			bucket.NetCashFlow = bucket.Revenue - bucket.Expenses
			buckets = append(buckets, *bucket)
		} else {
			buckets = append(buckets, Bucket{Month: month})
		}
	}
	return buckets
}

// ObservedMonths counts buckets that actually contained records.
func ObservedMonths(buckets []Bucket) int {
	var n int
	for i := range buckets {
		if buckets[i].Observed {
			n++
		}
	}
	return n
}

// NetFlows extracts the net cash flow series in bucket order.
func NetFlows(buckets []Bucket) []float64 {
	flows := make([]float64, len(buckets))
	for i := range buckets {
		flows[i] = buckets[i].NetCashFlow
	}
	return flows
}

// CashPosition returns the cumulative net cash flow across all buckets,
// the engine's view of the current cash balance.
func CashPosition(buckets []Bucket) float64 {
	var position float64
	for i := range buckets {
		position += buckets[i].NetCashFlow
	}
	return position
}

// RecentBurn averages the monthly burn over the most recent n buckets.
// Burn counts only cash-negative months: burn = max(0, -netCashFlow).
func RecentBurn(buckets []Bucket, n int) float64 {
	if len(buckets) == 0 || n <= 0 {
		return 0
	}
	start := len(buckets) - n
	if start < 0 {
		start = 0
	}
	window := buckets[start:]

	var total float64
	for i := range window {
		if window[i].NetCashFlow < 0 {
			total += -window[i].NetCashFlow
		}
	}
	return total / float64(len(window))
}

// Runway converts a cash position and an average monthly burn into months
// of survival. A non-positive burn means the business is not consuming
// cash and the runway is unbounded; a non-positive position with real
// burn means the runway is already exhausted.
func Runway(position, burn float64) (months float64, unbounded bool) {
	if burn <= 0 {
		return 0, true
	}
	if position <= 0 {
		return 0, false
	}
	return position / burn, false
}
