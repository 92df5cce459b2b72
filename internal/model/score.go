package model

import "fmt"

// MaxPillarScore is the ceiling of each individual pillar.
const MaxPillarScore = 25.0

// GoodPillarCut is the pillar score below which a recommendation is owed.
const GoodPillarCut = 15.0

// ScoreLevel bands the total health score for display.
type ScoreLevel string

const (
	// LevelExcellent covers totals above 80.
	LevelExcellent ScoreLevel = "excellent"
	// LevelGood covers totals above 60 up to and including 80.
	LevelGood ScoreLevel = "good"
	// LevelWarning covers totals above 40 up to and including 60.
	LevelWarning ScoreLevel = "warning"
	// LevelCritical covers totals of 40 and below.
	LevelCritical ScoreLevel = "critical"
)

// LevelForTotal bands a total score. Boundary values belong to the lower
// band: exactly 80 is good, exactly 40 is critical.
func LevelForTotal(total float64) ScoreLevel {
	switch {
	case total > 80:
		return LevelExcellent
	case total > 60:
		return LevelGood
	case total > 40:
		return LevelWarning
	default:
		return LevelCritical
	}
}

// FinSightScore is the composite 0-100 financial health score.
// Total is always the exact sum of the four pillar scores.
type FinSightScore struct {
	Level           ScoreLevel `json:"level"`
	Insights        []string   `json:"insights"`
	Recommendations []string   `json:"recommendations"`
	Total           float64    `json:"total"`
	Cash            float64    `json:"cash"`
	Margin          float64    `json:"margin"`
	Resilience      float64    `json:"resilience"`
	Risk            float64    `json:"risk"`
}

// Validate checks the score's structural invariants.
func (s *FinSightScore) Validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"cash", s.Cash},
		{"margin", s.Margin},
		{"resilience", s.Resilience},
		{"risk", s.Risk},
	} {
		if p.value < 0 || p.value > MaxPillarScore {
			return fmt.Errorf("%s pillar must be between 0 and %.0f, got %.2f", p.name, MaxPillarScore, p.value)
		}
	}
	sum := s.Cash + s.Margin + s.Resilience + s.Risk
	if s.Total != sum {
		return fmt.Errorf("total %.4f does not equal pillar sum %.4f", s.Total, sum)
	}
	if s.Level != LevelForTotal(s.Total) {
		return fmt.Errorf("level %q does not match total %.2f", s.Level, s.Total)
	}
	return nil
}
