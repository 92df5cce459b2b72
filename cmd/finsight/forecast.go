package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/finsighthq/finsight/internal/cli"
	"github.com/finsighthq/finsight/internal/forecast"
	"github.com/finsighthq/finsight/internal/normalize"
)

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project future monthly net cash flow",
		Long: `Fit a trend to historical monthly cash flow and project it forward
with an uncertainty band, plus a runway estimate at the current burn.`,
		RunE: runForecast,
	}

	cmd.Flags().StringP("input", "i", "", "JSON file of ledger records (required)")
	cmd.Flags().String("reference-date", "", "analysis date, YYYY-MM-DD (default: today)")
	cmd.Flags().Bool("json", false, "emit the forecast as JSON")
	cmd.Flags().Int("horizon", forecast.DefaultHorizon, "months to project")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runForecast(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	refFlag, _ := cmd.Flags().GetString("reference-date")
	asJSON, _ := cmd.Flags().GetBool("json")
	horizon, _ := cmd.Flags().GetInt("horizon")

	ref, err := parseReferenceDate(refFlag)
	if err != nil {
		return err
	}

	raw, err := loadRecords(input)
	if err != nil {
		return err
	}
	result := normalize.Normalize(raw)
	if rejected := len(result.Rejected); rejected > 0 {
		slog.Warn(cli.FormatWarning(fmt.Sprintf("%d records were rejected during normalization", rejected)))
	}

	forecaster, err := forecast.New(forecast.Config{ReferenceDate: ref, Horizon: horizon})
	if err != nil {
		return err
	}

	projection, err := forecaster.Forecast(result.Valid)
	if err != nil {
		var insufficient *forecast.InsufficientDataError
		if errors.As(err, &insufficient) {
			// A soft state, not a failure: tell the user what to add.
			shortfall := insufficient.RequiredRecords - insufficient.RecordCount
			fmt.Println(cli.FormatInfo(fmt.Sprintf(
				"Not enough history to forecast: add %d more records spanning at least %d months.",
				max(shortfall, 0), insufficient.RequiredMonths)))
			return nil
		}
		return err
	}

	if asJSON {
		return printJSON(projection)
	}
	fmt.Println(cli.RenderForecast(projection))
	return nil
}
