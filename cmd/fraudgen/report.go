package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sand/fraud-analytics-dashboard/backend/internal/core/ports"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/entities"
	"github.com/sand/fraud-analytics-dashboard/backend/pkg/export"
)

type reportOutput struct {
	ID      uuid.UUID                 `json:"id"       yaml:"id"`
	Seed    uint64                    `json:"seed"     yaml:"seed"`
	Metrics entities.Metrics          `json:"metrics"  yaml:"metrics"`
	Daily   entities.DailyFraudSeries `json:"daily"    yaml:"daily"`
	TopRisk []entities.RiskRow        `json:"top_risk" yaml:"top_risk"`
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a ledger and print its fraud report",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}

	cmd.Flags().Int("top", ports.DefaultTopK, "Number of highest-risk transactions to list")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(name, export.FormatJSON, export.FormatYAML)
	if err != nil {
		return err
	}

	service, err := buildPipeline(cmd)
	if err != nil {
		return err
	}

	report, err := service.Build(cmd.Context())
	if err != nil {
		return err
	}

	out := reportOutput{
		ID:      report.ID,
		Seed:    report.Seed,
		Metrics: report.Metrics,
		Daily:   report.Daily,
		TopRisk: report.TopRisk,
	}

	if format == export.FormatYAML {
		return export.WriteYAML(cmd.OutOrStdout(), out)
	}
	return export.WriteJSON(cmd.OutOrStdout(), out)
}
