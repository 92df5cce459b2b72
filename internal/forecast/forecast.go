// Package forecast projects future monthly net cash flow from historical
// ledger records using a least-squares trend with a widening uncertainty
// band, and estimates the cash runway at the current burn rate.
package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/finsighthq/finsight/internal/common"
	"github.com/finsighthq/finsight/internal/model"
	"github.com/finsighthq/finsight/internal/stats"
	"github.com/finsighthq/finsight/internal/timeseries"
)

const (
	// DefaultHorizon is the number of future months projected.
	DefaultHorizon = 6
	// MinRecords is the smallest batch a trend can be fitted to.
	MinRecords = 10
	// MinMonths is the minimum number of distinct calendar months the
	// batch must span.
	MinMonths = 2
	// burnWindowMonths is how far back the runway burn rate looks.
	burnWindowMonths = 3
)

// Config tunes a forecasting run.
type Config struct {
	// ReferenceDate is the injected "now"; records dated after it are
	// excluded so future-dated entries cannot leak into the trend.
	ReferenceDate time.Time
	// Horizon is the number of future months to project.
	Horizon int
}

// DefaultConfig returns the documented defaults anchored at referenceDate.
func DefaultConfig(referenceDate time.Time) Config {
	return Config{ReferenceDate: referenceDate, Horizon: DefaultHorizon}
}

// Validate rejects out-of-range options before any record is processed.
func (c *Config) Validate() error {
	if c.ReferenceDate.IsZero() {
		return common.NewConfigError("referenceDate", "must be set explicitly")
	}
	if c.Horizon < 1 {
		return common.NewConfigError("horizon", "must be at least 1, got %d", c.Horizon)
	}
	return nil
}

// InsufficientDataError reports that the batch is too small or too narrow
// to fit a trend. It is the forecaster's only expected failure mode and
// carries the counts the caller needs for a "need N more records" message.
type InsufficientDataError struct {
	RecordCount     int
	RequiredRecords int
	MonthsSpanned   int
	RequiredMonths  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d records across %d months (need at least %d records across %d months)",
		e.RecordCount, e.MonthsSpanned, e.RequiredRecords, e.RequiredMonths)
}

// Forecaster runs projections with a fixed configuration. It holds no
// per-run state and is safe for concurrent use.
type Forecaster struct {
	cfg Config
}

// New validates the configuration eagerly and returns a forecaster.
func New(cfg Config) (*Forecaster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("forecaster: %w", err)
	}
	return &Forecaster{cfg: cfg}, nil
}

// Forecast aggregates records into monthly buckets, fits a linear trend to
// net cash flow, and projects the configured horizon. The uncertainty band
// at step k is the residual standard deviation scaled by √k. Too little
// history returns an *InsufficientDataError, never a panic.
func (f *Forecaster) Forecast(records []model.Record) (*model.CashFlowForecast, error) {
	history := make([]model.Record, 0, len(records))
	for i := range records {
		if !records[i].Date.After(f.cfg.ReferenceDate) {
			history = append(history, records[i])
		}
	}

	buckets := timeseries.MonthlyBuckets(history)
	observed := timeseries.ObservedMonths(buckets)
	if len(history) < MinRecords || observed < MinMonths {
		return nil, &InsufficientDataError{
			RecordCount:     len(history),
			RequiredRecords: MinRecords,
			MonthsSpanned:   observed,
			RequiredMonths:  MinMonths,
		}
	}

	flows := timeseries.NetFlows(buckets)
	fit := stats.FitLine(flows)

	residuals := make([]float64, len(flows))
	for i, flow := range flows {
		residuals[i] = flow - fit.At(float64(i))
	}
	sigma := stats.StdDev(residuals)

	lastMonth := buckets[len(buckets)-1].Month
	points := make([]model.ForecastPoint, 0, f.cfg.Horizon)
	for k := 1; k <= f.cfg.Horizon; k++ {
		projected := fit.At(float64(len(flows) - 1 + k))
		band := sigma * math.Sqrt(float64(k))
		points = append(points, model.ForecastPoint{
			Period:               lastMonth.AddDate(0, k, 0),
			ProjectedNetCashFlow: projected,
			LowerBound:           projected - band,
			UpperBound:           projected + band,
		})
	}

	position := timeseries.CashPosition(buckets)
	burn := timeseries.RecentBurn(buckets, burnWindowMonths)
	months, unbounded := timeseries.Runway(position, burn)

	return &model.CashFlowForecast{
		Points:  points,
		Horizon: f.cfg.Horizon,
		Metrics: model.ForecastMetrics{
			RunwayMonths:    months,
			RunwayUnbounded: unbounded,
			CashPosition:    position,
			AvgMonthlyBurn:  burn,
		},
	}, nil
}
