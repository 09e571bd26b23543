package main

import (
	"github.com/spf13/cobra"

	"github.com/sand/fraud-analytics-dashboard/backend/pkg/export"
)

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic transaction ledger to stdout",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("format")
	format, err := export.ParseFormat(name, export.FormatCSV, export.FormatJSON, export.FormatYAML)
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

	out := cmd.OutOrStdout()
	switch format {
	case export.FormatCSV:
		return export.WriteLedgerCSV(out, report.Ledger)
	case export.FormatYAML:
		return export.WriteYAML(out, report.Ledger)
	default:
		return export.WriteJSON(out, report.Ledger)
	}
}
