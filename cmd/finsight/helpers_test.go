package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReferenceDate(t *testing.T) {
	t.Run("explicit date", func(t *testing.T) {
		ref, err := parseReferenceDate("2025-06-30")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), ref)
	})

	t.Run("empty means today", func(t *testing.T) {
		ref, err := parseReferenceDate("")
		require.NoError(t, err)
		assert.False(t, ref.IsZero())
		// Normalized to midnight UTC so repeated runs within a day agree.
		assert.Equal(t, 0, ref.Hour())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := parseReferenceDate("June 30th")
		assert.ErrorContains(t, err, "invalid reference date")
	})
}

func TestLoadRecords(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "records.json")
		payload := `[
			{"id": "t1", "date": "2025-01-15", "amount": "1200", "type": "income", "counterparty": "Acme Corp"},
			{"id": "t2", "date": "2025-01-20", "amount": "-300", "category": "Rent"}
		]`
		require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

		raw, err := loadRecords(path)
		require.NoError(t, err)
		require.Len(t, raw, 2)
		assert.Equal(t, "t1", raw[0].ID)
		assert.Equal(t, "Rent", raw[1].Category)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadRecords(filepath.Join(dir, "nope.json"))
		assert.ErrorContains(t, err, "failed to read records file")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := loadRecords(path)
		assert.ErrorContains(t, err, "failed to parse records file")
	})
}
