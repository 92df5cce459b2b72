package anomaly

import (
	"fmt"
	"math"

	"github.com/finsighthq/finsight/internal/model"
	"github.com/finsighthq/finsight/internal/stats"
)

// iqrOnlyConfidence is assigned when a record is flagged by the IQR fence
// without a usable z-score (zero-variance cohort, or |z| inside the
// threshold).
const iqrOnlyConfidence = 0.7

// amountOutliers flags records whose amounts sit far outside their
// income/expense cohort, combining a z-score test with IQR fencing.
func (d *Detector) amountOutliers(records []model.Record) []model.Anomaly {
	var anomalies []model.Anomaly
	for _, cohort := range []model.TransactionType{model.TypeIncome, model.TypeExpense} {
		var members []model.Record
		for i := range records {
			if records[i].Type == cohort {
				members = append(members, records[i])
			}
		}
		anomalies = append(anomalies, d.cohortOutliers(cohort, members)...)
	}
	return anomalies
}

func (d *Detector) cohortOutliers(cohort model.TransactionType, members []model.Record) []model.Anomaly {
	if len(members) < 2 {
		return nil
	}

	amounts := make([]float64, len(members))
	for i := range members {
		amounts[i] = members[i].Amount
	}

	mean := stats.Mean(amounts)
	sigma := stats.StdDev(amounts)
	q1, q3 := stats.Quartiles(amounts)
	iqr := q3 - q1
	lowerFence := q1 - d.cfg.IQRMultiplier*iqr
	upperFence := q3 + d.cfg.IQRMultiplier*iqr

	threshold := d.cfg.ZScoreThreshold

	var anomalies []model.Anomaly
	for i := range members {
		amount := members[i].Amount

		var z float64
		var zFlag bool
		if sigma > 0 {
			z = (amount - mean) / sigma
			zFlag = math.Abs(z) > threshold
		}
		// Strict inequalities: a value sitting exactly on a fence is
		// not an outlier.
		iqrFlag := amount < lowerFence || amount > upperFence

		if !zFlag && !iqrFlag {
			continue
		}

		var risk model.RiskLevel
		var confidence float64
		switch {
		case zFlag && iqrFlag:
			// Corroborated by both tests: escalate one level.
			risk = zRisk(math.Abs(z), threshold).Escalate()
			confidence = math.Max(math.Abs(z)/(threshold+3), iqrOnlyConfidence)
		case zFlag:
			risk = zRisk(math.Abs(z), threshold)
			confidence = math.Abs(z) / (threshold + 3)
		default:
			risk = model.RiskLow
			confidence = iqrOnlyConfidence
		}

		metadata := map[string]any{
			"record_id":    members[i].ID,
			"counterparty": members[i].Counterparty,
			"date":         members[i].Date.Format("2006-01-02"),
			"amount":       amount,
			"cohort":       string(cohort),
			"cohort_mean":  mean,
		}
		if sigma > 0 {
			metadata["z_score"] = z
		}

		anomalies = append(anomalies, newAnomaly(
			model.AnomalyAmountOutlier,
			risk,
			confidence,
			fmt.Sprintf("Unusual %s amount", cohort),
			fmt.Sprintf("%s of %.2f deviates sharply from the cohort mean of %.2f", cohort, amount, mean),
			metadata,
		))
	}
	return anomalies
}

// zRisk buckets an absolute z-score relative to the configured threshold.
func zRisk(absZ, threshold float64) model.RiskLevel {
	switch {
	case absZ >= threshold+3:
		return model.RiskCritical
	case absZ >= threshold+1:
		return model.RiskHigh
	case absZ >= threshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
