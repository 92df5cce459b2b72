package anomaly

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finsighthq/finsight/internal/model"
)

// Detector runs the three detection passes with a fixed configuration.
// It holds no per-run state and is safe for concurrent use.
type Detector struct {
	cfg Config
}

// NewDetector validates the configuration eagerly and returns a detector.
func NewDetector(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("anomaly detector: %w", err)
	}
	return &Detector{cfg: cfg}, nil
}

// Detect runs the amount-outlier, payment-delay, and category-spike passes
// over records and returns the filtered, sorted result. Empty cohorts and
// empty category groups contribute no candidates; they are never errors.
// ExecutionTime is diagnostic only.
func (d *Detector) Detect(records []model.Record) *model.AnomalyDetectionResult {
	start := time.Now()

	var candidates []model.Anomaly
	candidates = append(candidates, d.amountOutliers(records)...)
	candidates = append(candidates, d.paymentDelays(records)...)
	candidates = append(candidates, d.categorySpikes(records)...)

	anomalies := make([]model.Anomaly, 0, len(candidates))
	for _, a := range candidates {
		if a.Confidence >= d.cfg.MinConfidence {
			anomalies = append(anomalies, a)
		}
	}

	// Stable sort keeps the pass order as the final tie-breaker so
	// repeated runs agree position for position.
	sort.SliceStable(anomalies, func(i, j int) bool {
		ri, rj := anomalies[i].RiskLevel.Rank(), anomalies[j].RiskLevel.Rank()
		if ri != rj {
			return ri > rj
		}
		return anomalies[i].Confidence > anomalies[j].Confidence
	})

	return &model.AnomalyDetectionResult{
		Anomalies:     anomalies,
		Summary:       summarize(anomalies),
		ExecutionTime: time.Since(start),
	}
}

func summarize(anomalies []model.Anomaly) model.AnomalySummary {
	byRisk := map[model.RiskLevel]int{
		model.RiskLow:      0,
		model.RiskMedium:   0,
		model.RiskHigh:     0,
		model.RiskCritical: 0,
	}
	for i := range anomalies {
		byRisk[anomalies[i].RiskLevel]++
	}
	return model.AnomalySummary{ByRisk: byRisk, Total: len(anomalies)}
}

func newAnomaly(kind model.AnomalyType, risk model.RiskLevel, confidence float64, title, description string, metadata map[string]any) model.Anomaly {
	if confidence > 1 {
		confidence = 1
	}
	return model.Anomaly{
		ID:          uuid.New().String(),
		Type:        kind,
		RiskLevel:   risk,
		Title:       title,
		Description: description,
		Metadata:    metadata,
		Confidence:  confidence,
	}
}
