package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsighthq/finsight/internal/anomaly"
	"github.com/finsighthq/finsight/internal/common"
	"github.com/finsighthq/finsight/internal/model"
)

var referenceDate = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

// rawBatch builds four months of raw rows: steady income from two
// clients, recurring rent, and one malformed row.
func rawBatch() []model.RawRecord {
	var rows []model.RawRecord
	for m := 1; m <= 4; m++ {
		date := fmt.Sprintf("2025-%02d-10", m)
		rows = append(rows,
			model.RawRecord{ID: fmt.Sprintf("inc-a-%d", m), Date: date, Amount: "3000", Type: "income", Counterparty: "Acme Corp", PaymentStatus: "Paid"},
			model.RawRecord{ID: fmt.Sprintf("inc-b-%d", m), Date: date, Amount: "2000", Type: "income", Counterparty: "Globex", PaymentStatus: "Paid"},
			model.RawRecord{ID: fmt.Sprintf("rent-%d", m), Date: date, Amount: "1500", Type: "expense", Category: "Rent"},
		)
	}
	rows = append(rows, model.RawRecord{ID: "broken", Date: "yesterday", Amount: "10"})
	return rows
}

func TestNew_RequiresReferenceDate(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestNew_RejectsBadAnalyzerConfig(t *testing.T) {
	bad := anomaly.DefaultConfig(referenceDate)
	bad.ZScoreThreshold = -2

	_, err := New(Config{ReferenceDate: referenceDate, Anomaly: &bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestRun_FullPipeline(t *testing.T) {
	eng, err := New(Config{ReferenceDate: referenceDate})
	require.NoError(t, err)

	report, err := eng.Run(rawBatch())
	require.NoError(t, err)

	assert.Len(t, report.Normalization.Valid, 12)
	assert.Len(t, report.Normalization.Rejected, 1)

	require.NotNil(t, report.Anomalies)
	require.NotNil(t, report.Score)
	require.NotNil(t, report.Forecast)
	assert.Nil(t, report.InsufficientData)

	assert.NoError(t, report.Score.Validate())
	assert.Len(t, report.Forecast.Points, 6)
}

func TestRun_InsufficientForecastIsSoft(t *testing.T) {
	eng, err := New(Config{ReferenceDate: referenceDate})
	require.NoError(t, err)

	report, err := eng.Run(rawBatch()[:5])
	require.NoError(t, err, "a short batch must not fail the run")

	assert.Nil(t, report.Forecast)
	require.NotNil(t, report.InsufficientData)
	assert.Equal(t, 5, report.InsufficientData.RecordCount)
	require.NotNil(t, report.Score, "scoring still runs without a forecast")
}

func TestRun_Deterministic(t *testing.T) {
	eng, err := New(Config{ReferenceDate: referenceDate})
	require.NoError(t, err)

	raw := rawBatch()
	first, err := eng.Run(raw)
	require.NoError(t, err)
	second, err := eng.Run(raw)
	require.NoError(t, err)

	assert.Equal(t, first.Normalization, second.Normalization)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Forecast, second.Forecast)
	assert.Equal(t, first.Anomalies.Summary, second.Anomalies.Summary)
	require.Equal(t, len(first.Anomalies.Anomalies), len(second.Anomalies.Anomalies))
	for i := range first.Anomalies.Anomalies {
		a, b := first.Anomalies.Anomalies[i], second.Anomalies.Anomalies[i]
		a.ID, b.ID = "", ""
		assert.Equal(t, a, b)
	}
}
