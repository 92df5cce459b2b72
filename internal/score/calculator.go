// Package score computes the composite 0-100 FinSight health score from
// four weighted pillars: cash, margin, resilience, and risk. Each pillar
// is a piecewise-linear mapping from a small set of metrics to [0,25],
// clamped at the bounds, so the total is always numeric and summable.
package score

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/finsighthq/finsight/internal/common"
	"github.com/finsighthq/finsight/internal/model"
	"github.com/finsighthq/finsight/internal/stats"
	"github.com/finsighthq/finsight/internal/timeseries"
)

const (
	burnWindowMonths = 3

	// Cash pillar breakpoints.
	fullRunwayWeeks = 12.0
	weeksPerMonth   = 13.0 / 3.0
	fullDSODays     = 30.0
	zeroDSODays     = 90.0

	// Margin pillar breakpoints.
	fullMargin       = 0.20
	growthAdjustment = 0.10

	// Resilience pillar breakpoints.
	fullConcentration  = 0.20
	zeroConcentration  = 0.80
	topClients         = 5
	fixedCategoryShare = 0.80
	fullFixedCostRatio = 0.30
	zeroFixedCostRatio = 0.80

	// Risk pillar breakpoints.
	anomalyWeightCap = 12.0
	fullVolatility   = 0.25
	zeroVolatility   = 1.50
)

// Config tunes a scoring run. Sub-weights blend the two metrics inside
// the cash and resilience pillars; each pair must sum to 1.
type Config struct {
	// ReferenceDate is the injected "now" used to age open invoices.
	ReferenceDate time.Time
	// RunwayWeight and DSOWeight blend the cash pillar.
	RunwayWeight float64
	DSOWeight    float64
	// ConcentrationWeight and FixedCostWeight blend the resilience pillar.
	ConcentrationWeight float64
	FixedCostWeight     float64
}

// DefaultConfig returns the documented defaults anchored at referenceDate.
func DefaultConfig(referenceDate time.Time) Config {
	return Config{
		ReferenceDate:       referenceDate,
		RunwayWeight:        0.6,
		DSOWeight:           0.4,
		ConcentrationWeight: 0.6,
		FixedCostWeight:     0.4,
	}
}

// Validate rejects out-of-range options before any record is processed.
func (c *Config) Validate() error {
	if c.ReferenceDate.IsZero() {
		return common.NewConfigError("referenceDate", "must be set explicitly")
	}
	for _, pair := range []struct {
		name string
		a, b float64
	}{
		{"cash weights", c.RunwayWeight, c.DSOWeight},
		{"resilience weights", c.ConcentrationWeight, c.FixedCostWeight},
	} {
		if pair.a < 0 || pair.b < 0 {
			return common.NewConfigError(pair.name, "must not be negative")
		}
		if math.Abs(pair.a+pair.b-1) > 1e-9 {
			return common.NewConfigError(pair.name, "must sum to 1, got %.2f", pair.a+pair.b)
		}
	}
	return nil
}

// Calculator scores batches with a fixed configuration. It holds no
// per-run state and is safe for concurrent use.
type Calculator struct {
	cfg Config
}

// NewCalculator validates the configuration eagerly and returns a calculator.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("score calculator: %w", err)
	}
	return &Calculator{cfg: cfg}, nil
}

// metrics carries the intermediate figures the pillars, insights, and
// recommendations all draw from.
type metrics struct {
	runwayMonths    float64
	runwayUnbounded bool
	runwaySub       float64
	dsoDays         float64
	hasDSO          bool
	dsoSub          float64

	revenue   float64
	expenses  float64
	netMargin float64
	growth    float64
	marginSub float64

	topShare       float64
	concSub        float64
	fixedCostRatio float64
	fixedCostSub   float64

	anomalyPenalty    float64
	volatility        float64
	volatilityPenalty float64
	criticalAnomalies int
}

// Score computes the four pillars over records, optionally folding the
// anomaly summary into the risk pillar. A pillar whose inputs are wholly
// absent scores 0; the result is always numeric with Total the exact sum.
func (c *Calculator) Score(records []model.Record, summary *model.AnomalySummary) *model.FinSightScore {
	m := c.gather(records, summary)

	cash := c.cashPillar(records, m)
	margin := c.marginPillar(m)
	resilience := c.resiliencePillar(records, m)
	risk := c.riskPillar(records, m)

	total := cash + margin + resilience + risk
	return &model.FinSightScore{
		Total:           total,
		Cash:            cash,
		Margin:          margin,
		Resilience:      resilience,
		Risk:            risk,
		Level:           model.LevelForTotal(total),
		Insights:        c.insights(m),
		Recommendations: c.recommendations(m, cash, margin, resilience, risk),
	}
}

func (c *Calculator) gather(records []model.Record, summary *model.AnomalySummary) *metrics {
	m := &metrics{}

	buckets := timeseries.MonthlyBuckets(records)
	position := timeseries.CashPosition(buckets)
	burn := timeseries.RecentBurn(buckets, burnWindowMonths)
	m.runwayMonths, m.runwayUnbounded = timeseries.Runway(position, burn)

	m.dsoDays, m.hasDSO = c.daysSalesOutstanding(records)

	for i := range records {
		if records[i].Type == model.TypeIncome {
			m.revenue += records[i].Amount
		} else {
			m.expenses += records[i].Amount
		}
	}
	if m.revenue > 0 {
		m.netMargin = (m.revenue - m.expenses) / m.revenue
		m.growth = revenueGrowth(buckets)
	}

	m.topShare = topCounterpartyShare(records, m.revenue)
	m.fixedCostRatio = fixedCostRatio(records, buckets, m.expenses)

	if summary != nil {
		weighted := float64(8*summary.ByRisk[model.RiskCritical] +
			4*summary.ByRisk[model.RiskHigh] +
			2*summary.ByRisk[model.RiskMedium] +
			summary.ByRisk[model.RiskLow])
		m.anomalyPenalty = math.Min(1, weighted/anomalyWeightCap)
		m.criticalAnomalies = summary.ByRisk[model.RiskCritical]
	}
	if len(buckets) >= 2 {
		m.volatility = stats.CoefficientOfVariation(timeseries.NetFlows(buckets))
	}
	m.volatilityPenalty = rampUp(m.volatility, fullVolatility, zeroVolatility)

	return m
}

// cashPillar blends runway against a 12-week target with DSO against a
// 30-day target.
func (c *Calculator) cashPillar(records []model.Record, m *metrics) float64 {
	if len(records) == 0 {
		return 0
	}

	if m.runwayUnbounded {
		m.runwaySub = 1
	} else {
		m.runwaySub = clamp01(m.runwayMonths * weeksPerMonth / fullRunwayWeeks)
	}

	if m.hasDSO {
		m.dsoSub = rampDown(m.dsoDays, fullDSODays, zeroDSODays)
	}

	return model.MaxPillarScore * (c.cfg.RunwayWeight*m.runwaySub + c.cfg.DSOWeight*m.dsoSub)
}

// marginPillar maps net margin onto [0,25] and lets revenue growth adjust
// the result by at most ±10% of the pillar value.
func (c *Calculator) marginPillar(m *metrics) float64 {
	if m.revenue <= 0 {
		return 0
	}

	m.marginSub = clamp01(m.netMargin / fullMargin)
	pillar := model.MaxPillarScore * m.marginSub

	adjust := math.Max(-growthAdjustment, math.Min(growthAdjustment, m.growth))
	pillar *= 1 + adjust

	return math.Max(0, math.Min(model.MaxPillarScore, pillar))
}

// resiliencePillar blends client concentration with the fixed-cost ratio.
func (c *Calculator) resiliencePillar(records []model.Record, m *metrics) float64 {
	if m.revenue <= 0 && m.expenses <= 0 {
		return 0
	}

	if m.revenue > 0 {
		m.concSub = rampDown(m.topShare, fullConcentration, zeroConcentration)
	}
	if m.expenses > 0 {
		m.fixedCostSub = rampDown(m.fixedCostRatio, fullFixedCostRatio, zeroFixedCostRatio)
	}

	return model.MaxPillarScore * (c.cfg.ConcentrationWeight*m.concSub + c.cfg.FixedCostWeight*m.fixedCostSub)
}

// riskPillar is the inverse of anomaly severity and cash-flow volatility.
func (c *Calculator) riskPillar(records []model.Record, m *metrics) float64 {
	if len(records) == 0 {
		return 0
	}
	blend := 0.5*m.anomalyPenalty + 0.5*m.volatilityPenalty
	return model.MaxPillarScore * (1 - blend)
}

// daysSalesOutstanding averages invoice age over income records: unpaid
// invoices age from issue date to the reference date, paid invoices count
// their due-date span when one exists and are skipped otherwise.
func (c *Calculator) daysSalesOutstanding(records []model.Record) (days float64, ok bool) {
	var total float64
	var count int
	for i := range records {
		r := &records[i]
		if r.Type != model.TypeIncome {
			continue
		}
		var age float64
		switch {
		case r.PaymentStatus != model.StatusPaid:
			age = c.cfg.ReferenceDate.Sub(r.Date).Hours() / 24
		case r.DueDate != nil:
			age = r.DueDate.Sub(r.Date).Hours() / 24
		default:
			continue
		}
		total += math.Max(0, age)
		count++
	}
	if count == 0 {
		return 0, false
	}
	return total / float64(count), true
}

// revenueGrowth compares the first and last revenue-bearing months.
func revenueGrowth(buckets []timeseries.Bucket) float64 {
	var first, last float64
	for i := range buckets {
		if buckets[i].Revenue > 0 {
			if first == 0 {
				first = buckets[i].Revenue
			}
			last = buckets[i].Revenue
		}
	}
	if first == 0 {
		return 0
	}
	return (last - first) / first
}

// topCounterpartyShare is the revenue share held by the top clients.
func topCounterpartyShare(records []model.Record, revenue float64) float64 {
	if revenue <= 0 {
		return 0
	}
	byClient := make(map[string]float64)
	for i := range records {
		if records[i].Type == model.TypeIncome {
			byClient[records[i].Counterparty] += records[i].Amount
		}
	}

	totals := make([]float64, 0, len(byClient))
	for _, total := range byClient {
		totals = append(totals, total)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(totals)))

	var top float64
	for i := 0; i < len(totals) && i < topClients; i++ {
		top += totals[i]
	}
	return top / revenue
}

// fixedCostRatio treats categories present in at least 80% of observed
// months as fixed commitments and returns their share of total spend.
func fixedCostRatio(records []model.Record, buckets []timeseries.Bucket, expenses float64) float64 {
	observed := timeseries.ObservedMonths(buckets)
	if expenses <= 0 || observed == 0 {
		return 0
	}

	monthsByCategory := make(map[string]map[time.Time]bool)
	totalByCategory := make(map[string]float64)
	for i := range records {
		if records[i].Type != model.TypeExpense {
			continue
		}
		category := records[i].Category
		if monthsByCategory[category] == nil {
			monthsByCategory[category] = make(map[time.Time]bool)
		}
		monthsByCategory[category][timeseries.MonthKey(records[i].Date)] = true
		totalByCategory[category] += records[i].Amount
	}

	var fixed float64
	for category, months := range monthsByCategory {
		if float64(len(months)) >= fixedCategoryShare*float64(observed) {
			fixed += totalByCategory[category]
		}
	}
	return fixed / expenses
}

// rampDown maps value to 1 at or below full, 0 at or above zero, linear
// in between.
func rampDown(value, full, zero float64) float64 {
	if value <= full {
		return 1
	}
	if value >= zero {
		return 0
	}
	return (zero - value) / (zero - full)
}

// rampUp maps value to 0 at or below full, 1 at or above zero, linear in
// between. The mirror of rampDown for penalties.
func rampUp(value, full, zero float64) float64 {
	return 1 - rampDown(value, full, zero)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
