package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.openly.dev/pointy"

	cfg "github.com/sand/fraud-analytics-dashboard/backend/config"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/usecases"
)

// buildPipeline creates a report service from the environment config with the
// explicitly set flags applied on top.
func buildPipeline(cmd *cobra.Command) (*usecases.ReportService, error) {
	config, err := cfg.Default()
	if err != nil {
		return nil, err
	}

	overrides, err := flagOverrides(cmd)
	if err != nil {
		return nil, err
	}

	location, err := config.Report.Location()
	if err != nil {
		return nil, err
	}

	return usecases.NewPipeline(newLogger(cmd), config.ReportConfig(), config.Generator.Options(), location, overrides)
}

func flagOverrides(cmd *cobra.Command) (usecases.Overrides, error) {
	var overrides usecases.Overrides
	flags := cmd.Flags()

	if flags.Changed("count") {
		count, err := flags.GetInt("count")
		if err != nil {
			return overrides, err
		}
		overrides.LedgerSize = pointy.Int(count)
	}

	if flags.Changed("seed") {
		seed, err := flags.GetUint64("seed")
		if err != nil {
			return overrides, err
		}
		overrides.Seed = pointy.Uint64(seed)
	}

	if flags.Changed("top") {
		top, err := flags.GetInt("top")
		if err != nil {
			return overrides, err
		}
		overrides.TopK = pointy.Int(top)
	}

	if flags.Changed("now") {
		raw, err := flags.GetString("now")
		if err != nil {
			return overrides, err
		}
		now, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return overrides, fmt.Errorf("invalid --now: %w", err)
		}
		overrides.Now = &now
	}

	return overrides, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
}
