package model

import (
	"fmt"
	"time"
)

// RiskLevel grades how urgently an anomaly deserves attention.
type RiskLevel string

const (
	// RiskLow indicates a minor deviation worth a glance.
	RiskLow RiskLevel = "low"
	// RiskMedium indicates a deviation that should be reviewed.
	RiskMedium RiskLevel = "medium"
	// RiskHigh indicates a significant deviation needing prompt review.
	RiskHigh RiskLevel = "high"
	// RiskCritical indicates a deviation requiring immediate attention.
	RiskCritical RiskLevel = "critical"
)

// riskRank orders levels for sorting; higher is more severe.
var riskRank = map[RiskLevel]int{
	RiskLow:      0,
	RiskMedium:   1,
	RiskHigh:     2,
	RiskCritical: 3,
}

// Rank returns the severity rank of the level; higher means more severe.
func (l RiskLevel) Rank() int {
	return riskRank[l]
}

// Escalate returns the next level up, saturating at critical.
func (l RiskLevel) Escalate() RiskLevel {
	switch l {
	case RiskLow:
		return RiskMedium
	case RiskMedium:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Validate checks that the level is one of the known grades.
func (l RiskLevel) Validate() error {
	if _, ok := riskRank[l]; !ok {
		return fmt.Errorf("unknown risk level %q", l)
	}
	return nil
}

// AnomalyType categorizes the kind of deviation detected.
type AnomalyType string

const (
	// AnomalyAmountOutlier indicates an amount far outside its cohort.
	AnomalyAmountOutlier AnomalyType = "amount_outlier"
	// AnomalyPaymentDelay indicates an invoice overdue past the threshold.
	AnomalyPaymentDelay AnomalyType = "payment_delay"
	// AnomalyCategorySpike indicates a month of unusually high category spend.
	AnomalyCategorySpike AnomalyType = "category_spike"
)

// Anomaly is one detected deviation. Instances are created fresh on every
// detection run and never mutated afterwards.
type Anomaly struct {
	Metadata    map[string]any `json:"metadata,omitempty"`
	ID          string         `json:"id"`
	Type        AnomalyType    `json:"type"`
	RiskLevel   RiskLevel      `json:"risk_level"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Confidence  float64        `json:"confidence"`
}

// Validate checks the anomaly's structural invariants.
func (a *Anomaly) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("anomaly ID is required")
	}
	switch a.Type {
	case AnomalyAmountOutlier, AnomalyPaymentDelay, AnomalyCategorySpike:
	default:
		return fmt.Errorf("unknown anomaly type %q", a.Type)
	}
	if err := a.RiskLevel.Validate(); err != nil {
		return err
	}
	if a.Confidence < 0.0 || a.Confidence > 1.0 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %.2f", a.Confidence)
	}
	return nil
}

// AnomalySummary aggregates a detection run by risk level.
type AnomalySummary struct {
	ByRisk map[RiskLevel]int `json:"by_risk"`
	Total  int               `json:"total"`
}

// AnomalyDetectionResult is the complete output of one detection run.
// Anomalies are ordered by risk level descending, then confidence descending.
// ExecutionTime is diagnostic only and never influences the anomaly list.
type AnomalyDetectionResult struct {
	Anomalies     []Anomaly      `json:"anomalies"`
	Summary       AnomalySummary `json:"summary"`
	ExecutionTime time.Duration  `json:"execution_time"`
}
