package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/finsighthq/finsight/internal/model"
)

// loadRecords reads a JSON array of raw ledger rows, the interchange
// format produced by the upstream export/ingestion tooling.
func loadRecords(path string) ([]model.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	var raw []model.RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse records file %s: %w", path, err)
	}
	return raw, nil
}

// parseReferenceDate resolves the --reference-date flag; an empty value
// means "today". This is the only place the engine's clock is read.
func parseReferenceDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	ref, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q (want YYYY-MM-DD): %w", value, err)
	}
	return ref, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
