package score

import (
	"fmt"
	"sort"

	"github.com/finsighthq/finsight/internal/model"
)

// maxInsights caps the insight list; the worst findings come first.
const maxInsights = 6

type insight struct {
	text     string
	severity float64
}

// insights turns notably strong or weak metrics into short factual
// statements, ordered worst first.
func (c *Calculator) insights(m *metrics) []string {
	var candidates []insight

	if m.runwayUnbounded {
		candidates = append(candidates, insight{
			text: "Cash flow is non-negative; runway is effectively unbounded.",
		})
	} else if m.runwayMonths < 3 {
		candidates = append(candidates, insight{
			text:     fmt.Sprintf("Runway of %.1f months is below the 3-month comfort level.", m.runwayMonths),
			severity: 1 - m.runwayMonths/3,
		})
	}

	if m.hasDSO {
		switch {
		case m.dsoDays > fullDSODays:
			candidates = append(candidates, insight{
				text:     fmt.Sprintf("DSO of %.0f days exceeds the %.0f-day target.", m.dsoDays, fullDSODays),
				severity: clamp01((m.dsoDays - fullDSODays) / (zeroDSODays - fullDSODays)),
			})
		case m.dsoDays <= fullDSODays/2:
			candidates = append(candidates, insight{
				text: fmt.Sprintf("Invoices are collected in %.0f days on average, well inside the %.0f-day target.", m.dsoDays, fullDSODays),
			})
		}
	}

	if m.revenue > 0 {
		switch {
		case m.netMargin < 0:
			candidates = append(candidates, insight{
				text:     fmt.Sprintf("Expenses exceed revenue: net margin is %.1f%%.", m.netMargin*100),
				severity: 1,
			})
		case m.netMargin >= fullMargin:
			candidates = append(candidates, insight{
				text: fmt.Sprintf("Net margin of %.1f%% meets the %.0f%% target.", m.netMargin*100, fullMargin*100),
			})
		}
	}

	if m.topShare > 0.5 {
		candidates = append(candidates, insight{
			text:     fmt.Sprintf("Top %d clients account for %.0f%% of revenue.", topClients, m.topShare*100),
			severity: clamp01((m.topShare - fullConcentration) / (zeroConcentration - fullConcentration)),
		})
	}

	if m.volatility > 1 {
		candidates = append(candidates, insight{
			text:     fmt.Sprintf("Monthly net cash flow is highly volatile (coefficient of variation %.2f).", m.volatility),
			severity: m.volatilityPenalty,
		})
	}

	if m.criticalAnomalies > 0 {
		candidates = append(candidates, insight{
			text:     fmt.Sprintf("%d critical anomalies were detected in this period.", m.criticalAnomalies),
			severity: 1,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].severity > candidates[j].severity
	})
	if len(candidates) > maxInsights {
		candidates = candidates[:maxInsights]
	}

	texts := make([]string, len(candidates))
	for i := range candidates {
		texts[i] = candidates[i].text
	}
	return texts
}

// recommendations emits at least one action per pillar scoring below the
// good cut, tied to that pillar's worst contributing metric.
func (c *Calculator) recommendations(m *metrics, cash, margin, resilience, risk float64) []string {
	var recs []string

	if cash < model.GoodPillarCut {
		if m.runwaySub <= m.dsoSub {
			recs = append(recs, "Reduce monthly burn or secure financing to extend the cash runway past 12 weeks.")
		} else {
			recs = append(recs, fmt.Sprintf("Tighten collections to bring DSO under %.0f days.", fullDSODays))
		}
	}

	if margin < model.GoodPillarCut {
		if m.netMargin < 0 {
			recs = append(recs, "Cut costs or raise prices: the business is currently operating at a loss.")
		} else {
			recs = append(recs, fmt.Sprintf("Improve pricing or cost structure to lift net margin toward %.0f%%.", fullMargin*100))
		}
	}

	if resilience < model.GoodPillarCut {
		if m.concSub <= m.fixedCostSub {
			recs = append(recs, fmt.Sprintf("Diversify the client base: the top %d clients hold %.0f%% of revenue.", topClients, m.topShare*100))
		} else {
			recs = append(recs, "Renegotiate recurring commitments to lower the fixed-cost ratio.")
		}
	}

	if risk < model.GoodPillarCut {
		if m.anomalyPenalty >= m.volatilityPenalty {
			recs = append(recs, "Investigate the flagged anomalies, starting with the critical ones.")
		} else {
			recs = append(recs, "Stagger large payments to smooth month-to-month cash-flow swings.")
		}
	}

	return recs
}
