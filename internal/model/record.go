// Package model defines the value types shared by the FinSight analyzers.
package model

import (
	"fmt"
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome marks revenue records (invoices, sales, interest).
	TypeIncome TransactionType = "income"
	// TypeExpense marks cost records (bills, payroll, purchases).
	TypeExpense TransactionType = "expense"
)

// PaymentStatus tracks whether an income record has been settled.
// It carries no meaning for expense records.
type PaymentStatus string

const (
	// StatusPaid indicates the invoice has been settled.
	StatusPaid PaymentStatus = "Paid"
	// StatusPending indicates the invoice is awaiting payment.
	StatusPending PaymentStatus = "Pending"
	// StatusInProgress indicates a partial or processing payment.
	StatusInProgress PaymentStatus = "InProgress"
)

// RawRecord is one row as produced by the upstream ingestion layer.
// Every field is a string; an empty string means the field was absent.
type RawRecord struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	Type          string `json:"type"`
	Category      string `json:"category"`
	Counterparty  string `json:"counterparty"`
	PaymentStatus string `json:"paymentStatus"`
	DueDate       string `json:"dueDate"`
}

// Record is a normalized ledger entry. Amounts are stored as positive
// magnitudes; direction lives in Type.
type Record struct {
	Date          time.Time       `json:"date"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Counterparty  string          `json:"counterparty"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Amount        float64         `json:"amount"`
}

// Signed returns the amount with its cash-flow direction applied:
// positive for income, negative for expenses.
func (r *Record) Signed() float64 {
	if r.Type == TypeExpense {
		return -r.Amount
	}
	return r.Amount
}

// Validate checks that the record satisfies the normalized-record contract.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record ID is required")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("record date is required")
	}
	if r.Amount < 0 {
		return fmt.Errorf("record amount must be a magnitude, got %.2f", r.Amount)
	}
	switch r.Type {
	case TypeIncome, TypeExpense:
	default:
		return fmt.Errorf("unknown transaction type %q", r.Type)
	}
	switch r.PaymentStatus {
	case StatusPaid, StatusPending, StatusInProgress:
	default:
		return fmt.Errorf("unknown payment status %q", r.PaymentStatus)
	}
	return nil
}

// RejectedRecord pairs a raw row with the reason it was rejected.
type RejectedRecord struct {
	Raw    RawRecord `json:"raw"`
	Reason string    `json:"reason"`
}

// NormalizationResult splits a raw batch into well-formed records and
// per-row rejections. Rejections are informational, never fatal.
type NormalizationResult struct {
	Valid    []Record         `json:"valid"`
	Rejected []RejectedRecord `json:"rejected"`
}
