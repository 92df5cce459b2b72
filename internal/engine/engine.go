// Package engine orchestrates the FinSight analyzers: it normalizes a raw
// batch once, then runs anomaly detection, health scoring, and cash-flow
// forecasting over the shared immutable record slice. The analyzers are
// pure functions, so detection and forecasting run concurrently; scoring
// runs last so it can fold in the anomaly summary.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/finsighthq/finsight/internal/anomaly"
	"github.com/finsighthq/finsight/internal/common"
	"github.com/finsighthq/finsight/internal/forecast"
	"github.com/finsighthq/finsight/internal/model"
	"github.com/finsighthq/finsight/internal/normalize"
	"github.com/finsighthq/finsight/internal/score"
)

// Config assembles the analyzer configurations around one shared
// reference date. Zero-valued analyzer configs are filled with defaults.
type Config struct {
	// ReferenceDate is the injected "now" shared by every analyzer.
	ReferenceDate time.Time
	// Anomaly overrides the anomaly detector defaults when non-zero.
	Anomaly *anomaly.Config
	// Score overrides the score calculator defaults when non-zero.
	Score *score.Config
	// Forecast overrides the forecaster defaults when non-zero.
	Forecast *forecast.Config
}

// Report is the combined output of one engine run. InsufficientData is a
// soft state: when set, Forecast is nil and the run is still a success.
type Report struct {
	Normalization model.NormalizationResult     `json:"normalization"`
	Anomalies     *model.AnomalyDetectionResult `json:"anomalies"`
	Score         *model.FinSightScore          `json:"score"`
	Forecast      *model.CashFlowForecast       `json:"forecast,omitempty"`
	// InsufficientData carries the forecaster's shortfall when the batch
	// is too small to project.
	InsufficientData *forecast.InsufficientDataError `json:"insufficient_data,omitempty"`
}

// Engine runs the full analysis pipeline with a fixed configuration.
type Engine struct {
	detector   *anomaly.Detector
	calculator *score.Calculator
	forecaster *forecast.Forecaster
}

// New validates the configuration eagerly and returns an engine.
func New(cfg Config) (*Engine, error) {
	if cfg.ReferenceDate.IsZero() {
		return nil, fmt.Errorf("engine: %w", common.NewConfigError("referenceDate", "must be set explicitly"))
	}

	anomalyCfg := anomaly.DefaultConfig(cfg.ReferenceDate)
	if cfg.Anomaly != nil {
		anomalyCfg = *cfg.Anomaly
	}
	scoreCfg := score.DefaultConfig(cfg.ReferenceDate)
	if cfg.Score != nil {
		scoreCfg = *cfg.Score
	}
	forecastCfg := forecast.DefaultConfig(cfg.ReferenceDate)
	if cfg.Forecast != nil {
		forecastCfg = *cfg.Forecast
	}

	detector, err := anomaly.NewDetector(anomalyCfg)
	if err != nil {
		return nil, err
	}
	calculator, err := score.NewCalculator(scoreCfg)
	if err != nil {
		return nil, err
	}
	forecaster, err := forecast.New(forecastCfg)
	if err != nil {
		return nil, err
	}

	return &Engine{
		detector:   detector,
		calculator: calculator,
		forecaster: forecaster,
	}, nil
}

// Run normalizes raw once and feeds the valid records to all three
// analyzers. Rejected rows and insufficient forecast data are reported as
// soft states inside the Report, never as errors.
func (e *Engine) Run(raw []model.RawRecord) (*Report, error) {
	report := &Report{Normalization: normalize.Normalize(raw)}
	records := report.Normalization.Valid

	slog.Debug("normalized batch",
		"raw", len(raw),
		"valid", len(records),
		"rejected", len(report.Normalization.Rejected),
	)

	var wg sync.WaitGroup
	var forecastErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		report.Anomalies = e.detector.Detect(records)
	}()
	go func() {
		defer wg.Done()
		report.Forecast, forecastErr = e.forecaster.Forecast(records)
	}()
	wg.Wait()

	if forecastErr != nil {
		var insufficient *forecast.InsufficientDataError
		if !errors.As(forecastErr, &insufficient) {
			return nil, fmt.Errorf("forecast failed: %w", forecastErr)
		}
		report.InsufficientData = insufficient
		slog.Info("forecast skipped", "reason", insufficient.Error())
	}

	report.Score = e.calculator.Score(records, &report.Anomalies.Summary)

	return report, nil
}
