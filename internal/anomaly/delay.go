package anomaly

import (
	"fmt"

	"github.com/finsighthq/finsight/internal/model"
)

const hoursPerDay = 24

// paymentDelays flags unpaid income records whose due date has slipped
// past the configured grace period. Income without a due date is exempt
// by contract, never an error.
func (d *Detector) paymentDelays(records []model.Record) []model.Anomaly {
	grace := d.cfg.PaymentDelayDays

	var anomalies []model.Anomaly
	for i := range records {
		r := &records[i]
		if r.Type != model.TypeIncome || r.PaymentStatus == model.StatusPaid || r.DueDate == nil {
			continue
		}

		daysLate := int(d.cfg.ReferenceDate.Sub(*r.DueDate).Hours() / hoursPerDay)
		if daysLate <= grace {
			continue
		}

		// Severity scales with how far past the grace period the
		// invoice has drifted, not with a fixed day ladder.
		overdueRatio := float64(daysLate) / float64(grace)
		var risk model.RiskLevel
		switch {
		case overdueRatio > 3:
			risk = model.RiskCritical
		case overdueRatio >= 1.5:
			risk = model.RiskHigh
		default:
			risk = model.RiskMedium
		}

		anomalies = append(anomalies, newAnomaly(
			model.AnomalyPaymentDelay,
			risk,
			overdueRatio/2,
			fmt.Sprintf("Overdue payment from %s", r.Counterparty),
			fmt.Sprintf("Invoice of %.2f is %d days past due (grace period %d days)", r.Amount, daysLate, grace),
			map[string]any{
				"record_id":    r.ID,
				"counterparty": r.Counterparty,
				"due_date":     r.DueDate.Format("2006-01-02"),
				"days_late":    daysLate,
				"amount":       r.Amount,
			},
		))
	}
	return anomalies
}
