package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForTotal_Boundaries(t *testing.T) {
	tests := []struct {
		want  ScoreLevel
		total float64
	}{
		{LevelExcellent, 100},
		{LevelExcellent, 81},
		{LevelGood, 80}, // boundary belongs to the lower band
		{LevelGood, 61},
		{LevelWarning, 60},
		{LevelWarning, 41},
		{LevelCritical, 40},
		{LevelCritical, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForTotal(tt.total), "total %.0f", tt.total)
	}
}

func TestFinSightScore_Validate(t *testing.T) {
	valid := FinSightScore{
		Total:      70,
		Cash:       20,
		Margin:     15,
		Resilience: 15,
		Risk:       20,
		Level:      LevelGood,
	}
	assert.NoError(t, valid.Validate())

	overflow := valid
	overflow.Cash = 26
	assert.ErrorContains(t, overflow.Validate(), "cash pillar must be between 0 and 25")

	mismatch := valid
	mismatch.Total = 71
	assert.ErrorContains(t, mismatch.Validate(), "does not equal pillar sum")

	wrongLevel := valid
	wrongLevel.Level = LevelExcellent
	assert.ErrorContains(t, wrongLevel.Validate(), "does not match total")
}
