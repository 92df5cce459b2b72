package model

import "time"

// ForecastPoint is one projected month of net cash flow with an
// uncertainty band that widens as the horizon extends.
type ForecastPoint struct {
	Period               time.Time `json:"period"`
	ProjectedNetCashFlow float64   `json:"projected_net_cash_flow"`
	LowerBound           float64   `json:"lower_bound"`
	UpperBound           float64   `json:"upper_bound"`
}

// ForecastMetrics summarizes the cash position behind the projection.
// When RunwayUnbounded is true the business is not burning cash and
// RunwayMonths is meaningless.
type ForecastMetrics struct {
	RunwayMonths    float64 `json:"runway_months"`
	CashPosition    float64 `json:"cash_position"`
	AvgMonthlyBurn  float64 `json:"avg_monthly_burn"`
	RunwayUnbounded bool    `json:"runway_unbounded"`
}

// CashFlowForecast is the complete output of one forecasting run.
type CashFlowForecast struct {
	Points  []ForecastPoint `json:"points"`
	Metrics ForecastMetrics `json:"metrics"`
	Horizon int             `json:"horizon"`
}
