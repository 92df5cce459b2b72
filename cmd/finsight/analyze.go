package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finsighthq/finsight/internal/anomaly"
	"github.com/finsighthq/finsight/internal/cli"
	"github.com/finsighthq/finsight/internal/engine"
	"github.com/finsighthq/finsight/internal/forecast"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis: anomalies, score, and forecast",
		Long: `Normalize a batch of ledger records and run all three analyzers:
anomaly detection, health scoring, and cash-flow forecasting.`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("input", "i", "", "JSON file of ledger records (required)")
	cmd.Flags().String("reference-date", "", "analysis date, YYYY-MM-DD (default: today)")
	cmd.Flags().Bool("json", false, "emit the full report as JSON")
	cmd.Flags().Float64("z-threshold", 3.0, "z-score threshold for amount outliers")
	cmd.Flags().Float64("iqr-multiplier", 1.5, "IQR fence multiplier for amount outliers")
	cmd.Flags().Int("delay-days", 30, "grace period before a payment counts as delayed")
	cmd.Flags().Float64("spike-factor", 2.5, "baseline multiple for category spikes")
	cmd.Flags().Float64("min-confidence", 0.7, "minimum anomaly confidence")
	cmd.Flags().Int("horizon", forecast.DefaultHorizon, "months of cash flow to project")
	_ = cmd.MarkFlagRequired("input")

	_ = viper.BindPFlag("anomaly.z_threshold", cmd.Flags().Lookup("z-threshold"))
	_ = viper.BindPFlag("anomaly.iqr_multiplier", cmd.Flags().Lookup("iqr-multiplier"))
	_ = viper.BindPFlag("anomaly.delay_days", cmd.Flags().Lookup("delay-days"))
	_ = viper.BindPFlag("anomaly.spike_factor", cmd.Flags().Lookup("spike-factor"))
	_ = viper.BindPFlag("anomaly.min_confidence", cmd.Flags().Lookup("min-confidence"))
	_ = viper.BindPFlag("forecast.horizon", cmd.Flags().Lookup("horizon"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	refFlag, _ := cmd.Flags().GetString("reference-date")
	asJSON, _ := cmd.Flags().GetBool("json")

	ref, err := parseReferenceDate(refFlag)
	if err != nil {
		return err
	}

	raw, err := loadRecords(input)
	if err != nil {
		return err
	}

	anomalyCfg := anomaly.Config{
		ReferenceDate:       ref,
		ZScoreThreshold:     viper.GetFloat64("anomaly.z_threshold"),
		IQRMultiplier:       viper.GetFloat64("anomaly.iqr_multiplier"),
		PaymentDelayDays:    viper.GetInt("anomaly.delay_days"),
		CategorySpikeFactor: viper.GetFloat64("anomaly.spike_factor"),
		MinConfidence:       viper.GetFloat64("anomaly.min_confidence"),
	}
	forecastCfg := forecast.Config{
		ReferenceDate: ref,
		Horizon:       viper.GetInt("forecast.horizon"),
	}

	eng, err := engine.New(engine.Config{
		ReferenceDate: ref,
		Anomaly:       &anomalyCfg,
		Forecast:      &forecastCfg,
	})
	if err != nil {
		return err
	}

	report, err := eng.Run(raw)
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(report)
	}

	slog.Info(cli.FormatTitle(fmt.Sprintf("Analyzing %d records as of %s", len(raw), ref.Format("2006-01-02"))))
	if rejected := len(report.Normalization.Rejected); rejected > 0 {
		slog.Warn(cli.FormatWarning(fmt.Sprintf("%d records were rejected during normalization", rejected)))
	}

	fmt.Println(cli.RenderAnomalies(report.Anomalies))
	fmt.Println(cli.RenderScore(report.Score))
	if report.Forecast != nil {
		fmt.Println(cli.RenderForecast(report.Forecast))
	} else if report.InsufficientData != nil {
		shortfall := report.InsufficientData.RequiredRecords - report.InsufficientData.RecordCount
		fmt.Println(cli.FormatInfo(fmt.Sprintf(
			"Forecast unavailable: add %d more records spanning at least %d months.",
			max(shortfall, 0), report.InsufficientData.RequiredMonths)))
	}

	return nil
}
