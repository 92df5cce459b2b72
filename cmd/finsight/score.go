package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/finsighthq/finsight/internal/anomaly"
	"github.com/finsighthq/finsight/internal/cli"
	"github.com/finsighthq/finsight/internal/model"
	"github.com/finsighthq/finsight/internal/normalize"
	"github.com/finsighthq/finsight/internal/score"
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute the FinSight health score",
		Long: `Compute the composite 0-100 health score from the cash, margin,
resilience, and risk pillars, with insights and recommendations.`,
		RunE: runScore,
	}

	cmd.Flags().StringP("input", "i", "", "JSON file of ledger records (required)")
	cmd.Flags().String("reference-date", "", "analysis date, YYYY-MM-DD (default: today)")
	cmd.Flags().Bool("json", false, "emit the score as JSON")
	cmd.Flags().Bool("with-anomalies", true, "fold anomaly severity into the risk pillar")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runScore(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	refFlag, _ := cmd.Flags().GetString("reference-date")
	asJSON, _ := cmd.Flags().GetBool("json")
	withAnomalies, _ := cmd.Flags().GetBool("with-anomalies")

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

	var summary *model.AnomalySummary
	if withAnomalies {
		detector, detErr := anomaly.NewDetector(anomaly.DefaultConfig(ref))
		if detErr != nil {
			return detErr
		}
		summary = &detector.Detect(result.Valid).Summary
	}

	calculator, err := score.NewCalculator(score.DefaultConfig(ref))
	if err != nil {
		return err
	}
	finScore := calculator.Score(result.Valid, summary)

	if asJSON {
		return printJSON(finScore)
	}
	fmt.Println(cli.RenderScore(finScore))
	return nil
}
