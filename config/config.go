package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/sand/fraud-analytics-dashboard/backend/internal/usecases"
	"github.com/sand/fraud-analytics-dashboard/backend/internal/usecases/mocked"
)

type (
	Config struct {
		App       `json:"app"       toml:"app"`
		HTTP      `json:"http"      toml:"http"`
		Log       `json:"logger"    toml:"logger"`
		Generator `json:"generator" toml:"generator"`
		Report    `json:"report"    toml:"report"`
	}

	App struct {
		Name        string `json:"name"        toml:"name"        env:"APP_NAME" env-default:"fraud-analytics"`
		Environment string `json:"environment" toml:"environment" env:"ENV_NAME" env-default:"dev"`
		Debug       bool   `json:"debug"       toml:"debug"       env:"DEBUG"    env-default:"false"`
	}

	HTTP struct {
		Port      string `json:"port"       toml:"port"       env:"PORT"            env-default:"8050"`
		StaticDir string `json:"static_dir" toml:"static_dir" env:"HTTP_STATIC_DIR"`
	}

	Log struct {
		Level slog.Level `json:"level" toml:"level" env:"LOG_LEVEL"`
	}

	Generator struct {
		Count       int     `json:"count"        toml:"count"        env:"GEN_COUNT"        env-default:"500"`
		Seed        uint64  `json:"seed"         toml:"seed"         env:"GEN_SEED"         env-default:"42"`
		WindowDays  int     `json:"window_days"  toml:"window_days"  env:"GEN_WINDOW_DAYS"  env-default:"30"`
		AmountMean  float64 `json:"amount_mean"  toml:"amount_mean"  env:"GEN_AMOUNT_MEAN"  env-default:"4"`
		AmountSigma float64 `json:"amount_sigma" toml:"amount_sigma" env:"GEN_AMOUNT_SIGMA" env-default:"1.8"`
		UserIDMin   int     `json:"user_id_min"  toml:"user_id_min"  env:"GEN_USER_ID_MIN"  env-default:"1000"`
		UserIDMax   int     `json:"user_id_max"  toml:"user_id_max"  env:"GEN_USER_ID_MAX"  env-default:"9999"`
	}

	Report struct {
		TopK     int    `json:"top_k"    toml:"top_k"    env:"REPORT_TOP_K" env-default:"10"`
		Timezone string `json:"timezone" toml:"timezone" env:"REPORT_TZ"    env-default:"UTC"`
	}
)

// LoadConfig reads config.toml (or config.json) next to this package and then
// applies the environment on top.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	_, b, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(b)

	configTomlPath := filepath.Join(basePath, "config.toml")
	err := cleanenv.ReadConfig(configTomlPath, cfg)
	if err != nil {
		configJsonPath := filepath.Join(basePath, "config.json")
		err = cleanenv.ReadConfig(configJsonPath, cfg)
		if err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
	}

	err = cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("env read error: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration built from env-default tags and the
// environment, without reading any file.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("env read error: %w", err)
	}
	return cfg, nil
}

// Options converts the generator section into ledger generator options.
func (g Generator) Options() mocked.Options {
	opts := mocked.DefaultOptions()
	opts.Seed = g.Seed
	opts.Window = time.Duration(g.WindowDays) * 24 * time.Hour
	opts.AmountMean = g.AmountMean
	opts.AmountSigma = g.AmountSigma
	opts.UserIDMin = g.UserIDMin
	opts.UserIDMax = g.UserIDMax
	return opts
}

// ReportConfig returns the pipeline sizing.
func (c *Config) ReportConfig() usecases.ReportConfig {
	return usecases.ReportConfig{
		LedgerSize: c.Generator.Count,
		TopK:       c.Report.TopK,
	}
}

// Location resolves the report timezone used for calendar days.
func (r Report) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("report timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}
