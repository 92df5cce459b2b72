// Package normalize validates and coerces raw ledger rows into well-formed
// records so the analyzers never need defensive null-handling internally.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/finsighthq/finsight/internal/model"
)

// Defaults applied when optional raw fields are absent or unrecognized.
const (
	DefaultCategory     = "Other"
	DefaultCounterparty = "Unknown"
)

// dateLayouts are tried in order when parsing raw date fields.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Normalize turns a raw batch into valid records plus per-row rejections.
// Only an unparsable date or a non-finite amount rejects a row; every
// other defect is repaired with a documented default. Normalize never
// fails: a fully malformed batch simply yields zero valid records.
func Normalize(raw []model.RawRecord) model.NormalizationResult {
	result := model.NormalizationResult{
		Valid:    make([]model.Record, 0, len(raw)),
		Rejected: make([]model.RejectedRecord, 0),
	}

	for i, row := range raw {
		record, err := normalizeRow(i, row)
		if err != nil {
			result.Rejected = append(result.Rejected, model.RejectedRecord{
				Raw:    row,
				Reason: err.Error(),
			})
			continue
		}
		result.Valid = append(result.Valid, record)
	}

	return result
}

func normalizeRow(index int, row model.RawRecord) (model.Record, error) {
	date, err := parseDate(row.Date)
	if err != nil {
		return model.Record{}, fmt.Errorf("unparsable date %q", row.Date)
	}

	amount, err := parseAmount(row.Amount)
	if err != nil {
		return model.Record{}, err
	}

	record := model.Record{
		ID:            row.ID,
		Date:          date,
		Category:      row.Category,
		Counterparty:  row.Counterparty,
		Type:          parseType(row.Type, amount),
		PaymentStatus: parseStatus(row.PaymentStatus),
		Amount:        math.Abs(amount),
	}

	if record.ID == "" {
		// Stable across repeated runs over the same batch.
		record.ID = fmt.Sprintf("record-%d", index)
	}
	if record.Category == "" {
		record.Category = DefaultCategory
	}
	if record.Counterparty == "" {
		record.Counterparty = DefaultCounterparty
	}

	if row.DueDate != "" {
		// A bad due date only disables delay checks for this record;
		// the row itself stays valid.
		if due, dueErr := parseDate(row.DueDate); dueErr == nil {
			record.DueDate = &due
		}
	}

	return record, nil
}

func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no matching layout")
}

func parseAmount(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("missing amount")
	}
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable amount %q", value)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("non-finite amount %q", value)
	}
	return amount, nil
}

// parseType honors an explicit type and otherwise falls back to the sign
// convention: negative amounts are expenses.
func parseType(value string, amount float64) model.TransactionType {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "income":
		return model.TypeIncome
	case "expense":
		return model.TypeExpense
	}
	if amount < 0 {
		return model.TypeExpense
	}
	return model.TypeIncome
}

// parseStatus defaults missing or unknown statuses to Paid: absence of
// payment data is never treated as evidence of delinquency.
func parseStatus(value string) model.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return model.StatusPending
	case "inprogress", "in_progress", "in progress":
		return model.StatusInProgress
	default:
		return model.StatusPaid
	}
}
