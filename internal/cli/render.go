package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/finsighthq/finsight/internal/model"
)

// riskStyle picks a color for a risk level.
func riskStyle(level model.RiskLevel) lipgloss.Style {
	switch level {
	case model.RiskCritical, model.RiskHigh:
		return ErrorStyle
	case model.RiskMedium:
		return WarningStyle
	default:
		return SubtleStyle
	}
}

// RenderAnomalies renders a detection result as a styled box.
func RenderAnomalies(result *model.AnomalyDetectionResult) string {
	if len(result.Anomalies) == 0 {
		return RenderBox("Anomalies", SuccessStyle.Render("No anomalies detected."))
	}

	var b strings.Builder
	for i := range result.Anomalies {
		a := &result.Anomalies[i]
		style := riskStyle(a.RiskLevel)
		fmt.Fprintf(&b, "%s %s (confidence %.0f%%)\n", style.Render(strings.ToUpper(string(a.RiskLevel))), a.Title, a.Confidence*100)
		fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render(a.Description))
	}
	fmt.Fprintf(&b, "\n%s", SubtleStyle.Render(fmt.Sprintf(
		"critical %d · high %d · medium %d · low %d",
		result.Summary.ByRisk[model.RiskCritical],
		result.Summary.ByRisk[model.RiskHigh],
		result.Summary.ByRisk[model.RiskMedium],
		result.Summary.ByRisk[model.RiskLow],
	)))

	return RenderBox(fmt.Sprintf("Anomalies (%d)", result.Summary.Total), b.String())
}

// levelStyle picks a color for a score level.
func levelStyle(level model.ScoreLevel) lipgloss.Style {
	switch level {
	case model.LevelExcellent, model.LevelGood:
		return SuccessStyle
	case model.LevelWarning:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

// RenderScore renders a health score as a styled box.
func RenderScore(s *model.FinSightScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %.1f/100 (%s)\n\n", s.Total, levelStyle(s.Level).Render(string(s.Level)))
	fmt.Fprintf(&b, "Cash        %5.1f/25\n", s.Cash)
	fmt.Fprintf(&b, "Margin      %5.1f/25\n", s.Margin)
	fmt.Fprintf(&b, "Resilience  %5.1f/25\n", s.Resilience)
	fmt.Fprintf(&b, "Risk        %5.1f/25\n", s.Risk)

	if len(s.Insights) > 0 {
		b.WriteString("\nInsights:\n")
		for _, insight := range s.Insights {
			fmt.Fprintf(&b, "  • %s\n", insight)
		}
	}
	if len(s.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, rec := range s.Recommendations {
			fmt.Fprintf(&b, "  → %s\n", rec)
		}
	}

	return RenderBox("FinSight Score", strings.TrimRight(b.String(), "\n"))
}

// RenderForecast renders a cash-flow forecast as a styled box.
func RenderForecast(f *model.CashFlowForecast) string {
	var b strings.Builder
	for i := range f.Points {
		p := &f.Points[i]
		fmt.Fprintf(&b, "%s  %10.2f  [%.2f, %.2f]\n",
			p.Period.Format("2006-01"), p.ProjectedNetCashFlow, p.LowerBound, p.UpperBound)
	}

	b.WriteString("\n")
	if f.Metrics.RunwayUnbounded {
		b.WriteString(SuccessStyle.Render("Runway: unbounded (cash flow is non-negative)"))
	} else {
		b.WriteString(fmt.Sprintf("Runway: %.1f months at a burn of %.2f/month", f.Metrics.RunwayMonths, f.Metrics.AvgMonthlyBurn))
	}
	fmt.Fprintf(&b, "\nCash position: %.2f", f.Metrics.CashPosition)

	return RenderBox(fmt.Sprintf("Cash-Flow Forecast (%d months)", f.Horizon), b.String())
}
