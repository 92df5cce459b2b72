package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Validate(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		record  Record
		errMsg  string
		wantErr bool
	}{
		{
			name: "valid income record",
			record: Record{
				ID:            "txn-1",
				Date:          date,
				Amount:        1500,
				Type:          TypeIncome,
				Category:      "Consulting",
				Counterparty:  "Acme Corp",
				PaymentStatus: StatusPending,
			},
			wantErr: false,
		},
		{
			name: "missing ID",
			record: Record{
				Date:          date,
				Amount:        100,
				Type:          TypeExpense,
				PaymentStatus: StatusPaid,
			},
			wantErr: true,
			errMsg:  "record ID is required",
		},
		{
			name: "missing date",
			record: Record{
				ID:            "txn-2",
				Amount:        100,
				Type:          TypeExpense,
				PaymentStatus: StatusPaid,
			},
			wantErr: true,
			errMsg:  "record date is required",
		},
		{
			name: "negative amount",
			record: Record{
				ID:            "txn-3",
				Date:          date,
				Amount:        -50,
				Type:          TypeExpense,
				PaymentStatus: StatusPaid,
			},
			wantErr: true,
			errMsg:  "record amount must be a magnitude, got -50.00",
		},
		{
			name: "unknown type",
			record: Record{
				ID:            "txn-4",
				Date:          date,
				Amount:        50,
				Type:          "transfer",
				PaymentStatus: StatusPaid,
			},
			wantErr: true,
			errMsg:  `unknown transaction type "transfer"`,
		},
		{
			name: "unknown payment status",
			record: Record{
				ID:            "txn-5",
				Date:          date,
				Amount:        50,
				Type:          TypeIncome,
				PaymentStatus: "Overdue",
			},
			wantErr: true,
			errMsg:  `unknown payment status "Overdue"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRecord_Signed(t *testing.T) {
	income := Record{Type: TypeIncome, Amount: 100}
	expense := Record{Type: TypeExpense, Amount: 100}

	assert.InDelta(t, 100.0, income.Signed(), 1e-9)
	assert.InDelta(t, -100.0, expense.Signed(), 1e-9)
}

func TestRiskLevel_Escalate(t *testing.T) {
	assert.Equal(t, RiskMedium, RiskLow.Escalate())
	assert.Equal(t, RiskHigh, RiskMedium.Escalate())
	assert.Equal(t, RiskCritical, RiskHigh.Escalate())
	assert.Equal(t, RiskCritical, RiskCritical.Escalate())
}

func TestAnomaly_Validate(t *testing.T) {
	valid := Anomaly{
		ID:         "a-1",
		Type:       AnomalyAmountOutlier,
		RiskLevel:  RiskHigh,
		Confidence: 0.8,
	}
	assert.NoError(t, valid.Validate())

	badConfidence := valid
	badConfidence.Confidence = 1.2
	assert.ErrorContains(t, badConfidence.Validate(), "confidence must be between 0.0 and 1.0")

	badType := valid
	badType.Type = "weird"
	assert.ErrorContains(t, badType.Validate(), "unknown anomaly type")
}
