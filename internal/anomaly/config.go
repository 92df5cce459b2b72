// Package anomaly detects amount outliers, overdue payments, and category
// spend spikes in a normalized ledger batch. Detection is a pure function
// of the records and the configuration; repeated runs over the same input
// produce the same anomalies.
package anomaly

import (
	"time"

	"github.com/finsighthq/finsight/internal/common"
)

// Config tunes the three detection passes. Every option has a default;
// ReferenceDate is the injected "now" and must always be set explicitly.
type Config struct {
	// ReferenceDate anchors all date arithmetic. Never read from a
	// global clock so runs stay reproducible.
	ReferenceDate time.Time
	// ZScoreThreshold is the minimum |z| for a z-test amount flag.
	ZScoreThreshold float64
	// IQRMultiplier scales the interquartile range when fencing outliers.
	IQRMultiplier float64
	// PaymentDelayDays is the grace period before an unpaid invoice is
	// considered overdue.
	PaymentDelayDays int
	// CategorySpikeFactor is the multiple of the historical baseline a
	// month's category spend must exceed to be flagged.
	CategorySpikeFactor float64
	// MinConfidence filters out weakly supported candidates.
	MinConfidence float64
}

// DefaultConfig returns the documented defaults anchored at referenceDate.
func DefaultConfig(referenceDate time.Time) Config {
	return Config{
		ReferenceDate:       referenceDate,
		ZScoreThreshold:     3.0,
		IQRMultiplier:       1.5,
		PaymentDelayDays:    30,
		CategorySpikeFactor: 2.5,
		MinConfidence:       0.7,
	}
}

// Validate rejects out-of-range options before any record is processed,
// so bad configuration is never mistaken for bad data.
func (c *Config) Validate() error {
	if c.ReferenceDate.IsZero() {
		return common.NewConfigError("referenceDate", "must be set explicitly")
	}
	if c.ZScoreThreshold <= 0 {
		return common.NewConfigError("zScoreThreshold", "must be positive, got %.2f", c.ZScoreThreshold)
	}
	if c.IQRMultiplier <= 0 {
		return common.NewConfigError("iqrMultiplier", "must be positive, got %.2f", c.IQRMultiplier)
	}
	if c.PaymentDelayDays <= 0 {
		return common.NewConfigError("paymentDelayDays", "must be positive, got %d", c.PaymentDelayDays)
	}
	if c.CategorySpikeFactor <= 1 {
		return common.NewConfigError("categorySpikeFactor", "must exceed 1, got %.2f", c.CategorySpikeFactor)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return common.NewConfigError("minConfidence", "must be between 0.0 and 1.0, got %.2f", c.MinConfidence)
	}
	return nil
}
