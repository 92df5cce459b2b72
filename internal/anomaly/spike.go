package anomaly

import (
	"fmt"
	"sort"
	"time"

	"github.com/finsighthq/finsight/internal/model"
	"github.com/finsighthq/finsight/internal/stats"
	"github.com/finsighthq/finsight/internal/timeseries"
)

// categorySpikes flags months where a category's expense total far
// exceeds the mean of that category's other months. A category with a
// single month of history has no baseline and is never flagged.
func (d *Detector) categorySpikes(records []model.Record) []model.Anomaly {
	totals := make(map[string]map[time.Time]float64)
	for i := range records {
		if records[i].Type != model.TypeExpense {
			continue
		}
		month := timeseries.MonthKey(records[i].Date)
		if totals[records[i].Category] == nil {
			totals[records[i].Category] = make(map[time.Time]float64)
		}
		totals[records[i].Category][month] += records[i].Amount
	}

	// Map iteration order is randomized; sort for reproducible output.
	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	factor := d.cfg.CategorySpikeFactor

	var anomalies []model.Anomaly
	for _, category := range categories {
		byMonth := totals[category]
		if len(byMonth) < 2 {
			continue
		}

		months := make([]time.Time, 0, len(byMonth))
		for month := range byMonth {
			months = append(months, month)
		}
		sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

		for _, month := range months {
			others := make([]float64, 0, len(months)-1)
			for _, other := range months {
				if !other.Equal(month) {
					others = append(others, byMonth[other])
				}
			}
			baseline := stats.Mean(others)
			if baseline <= 0 {
				continue
			}

			total := byMonth[month]
			if total <= factor*baseline {
				continue
			}

			ratio := total / baseline
			var risk model.RiskLevel
			switch {
			case ratio < factor+1:
				risk = model.RiskMedium
			case ratio < factor+2:
				risk = model.RiskHigh
			default:
				risk = model.RiskCritical
			}

			anomalies = append(anomalies, newAnomaly(
				model.AnomalyCategorySpike,
				risk,
				ratio/(2*factor),
				fmt.Sprintf("Spending spike in %s", category),
				fmt.Sprintf("%s spend of %.2f in %s is %.1fx the usual %.2f", category, total, month.Format("January 2006"), ratio, baseline),
				map[string]any{
					"category": category,
					"month":    month.Format("2006-01"),
					"ratio":    ratio,
					"total":    total,
					"baseline": baseline,
				},
			))
		}
	}
	return anomalies
}
