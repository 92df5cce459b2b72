package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsighthq/finsight/internal/model"
)

func TestNormalize_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		row    model.RawRecord
		reason string
	}{
		{
			name:   "unparsable date",
			row:    model.RawRecord{ID: "r1", Date: "not-a-date", Amount: "100"},
			reason: "unparsable date",
		},
		{
			name:   "empty date",
			row:    model.RawRecord{ID: "r2", Amount: "100"},
			reason: "unparsable date",
		},
		{
			name:   "unparsable amount",
			row:    model.RawRecord{ID: "r3", Date: "2025-01-15", Amount: "lots"},
			reason: "unparsable amount",
		},
		{
			name:   "missing amount",
			row:    model.RawRecord{ID: "r4", Date: "2025-01-15"},
			reason: "missing amount",
		},
		{
			name:   "non-finite amount",
			row:    model.RawRecord{ID: "r5", Date: "2025-01-15", Amount: "NaN"},
			reason: "non-finite amount",
		},
		{
			name:   "infinite amount",
			row:    model.RawRecord{ID: "r6", Date: "2025-01-15", Amount: "+Inf"},
			reason: "non-finite amount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize([]model.RawRecord{tt.row})
			assert.Empty(t, result.Valid)
			require.Len(t, result.Rejected, 1)
			assert.Equal(t, tt.row, result.Rejected[0].Raw)
			assert.Contains(t, result.Rejected[0].Reason, tt.reason)
		})
	}
}

func TestNormalize_Defaults(t *testing.T) {
	result := Normalize([]model.RawRecord{
		{Date: "2025-02-01", Amount: "500", Type: "income"},
	})
	require.Len(t, result.Valid, 1)

	record := result.Valid[0]
	assert.Equal(t, "record-0", record.ID)
	assert.Equal(t, DefaultCategory, record.Category)
	assert.Equal(t, DefaultCounterparty, record.Counterparty)
	assert.Equal(t, model.StatusPaid, record.PaymentStatus)
	assert.Nil(t, record.DueDate)
	assert.NoError(t, record.Validate())
}

func TestNormalize_TypeInference(t *testing.T) {
	result := Normalize([]model.RawRecord{
		{ID: "a", Date: "2025-02-01", Amount: "-250"},          // negative, no type
		{ID: "b", Date: "2025-02-01", Amount: "250"},           // positive, no type
		{ID: "c", Date: "2025-02-01", Amount: "-250", Type: "income"}, // explicit type wins
	})
	require.Len(t, result.Valid, 3)

	assert.Equal(t, model.TypeExpense, result.Valid[0].Type)
	assert.Equal(t, model.TypeIncome, result.Valid[1].Type)
	assert.Equal(t, model.TypeIncome, result.Valid[2].Type)

	// Amounts are always stored as magnitudes.
	for _, record := range result.Valid {
		assert.InDelta(t, 250.0, record.Amount, 1e-9)
	}
}

func TestNormalize_DateLayoutsAndDueDate(t *testing.T) {
	result := Normalize([]model.RawRecord{
		{ID: "rfc", Date: "2025-03-05T10:30:00Z", Amount: "10"},
		{ID: "us", Date: "03/05/2025", Amount: "10"},
		{ID: "due", Date: "2025-03-05", Amount: "10", Type: "income", PaymentStatus: "Pending", DueDate: "2025-04-04"},
		{ID: "bad-due", Date: "2025-03-05", Amount: "10", DueDate: "soon"},
	})
	require.Len(t, result.Valid, 4)

	assert.Equal(t, 5, result.Valid[0].Date.Day())
	assert.Equal(t, time.March, result.Valid[1].Date.Month())

	require.NotNil(t, result.Valid[2].DueDate)
	assert.Equal(t, "2025-04-04", result.Valid[2].DueDate.Format("2006-01-02"))
	assert.Equal(t, model.StatusPending, result.Valid[2].PaymentStatus)

	// A bad due date disables delay checks but keeps the row.
	assert.Nil(t, result.Valid[3].DueDate)
}

func TestNormalize_MixedBatchNeverFails(t *testing.T) {
	result := Normalize([]model.RawRecord{
		{ID: "good", Date: "2025-01-01", Amount: "100"},
		{ID: "bad", Date: "???", Amount: "100"},
	})
	assert.Len(t, result.Valid, 1)
	assert.Len(t, result.Rejected, 1)
}
