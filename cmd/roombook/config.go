// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/pdiddy/roombook/internal/compliance"
	"github.com/pdiddy/roombook/internal/engine"
	"github.com/pdiddy/roombook/internal/registry"
	"github.com/pdiddy/roombook/internal/secrets"
	"github.com/pdiddy/roombook/internal/sensordata"
	"github.com/pdiddy/roombook/pkg/types"
)

// loadConfig assembles the runtime configuration from viper (config file
// plus ROOMBOOK_* environment variables) and the secrets directory.
func loadConfig() types.Config {
	viper.SetDefault("influx.url", "http://localhost:8086")
	viper.SetDefault("influx.bucket", "room_sensors")
	viper.SetDefault("influx.measurement", "room_data")
	viper.SetDefault("influx.history_days", 14)
	viper.SetDefault("influx.aggregate_window", "1h")
	viper.SetDefault("registry.db_path", "roombook.db")
	viper.SetDefault("registry.inventory_file", "rooms.yaml")
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.shutdown_timeout", "10s")

	return types.Config{
		Influx: types.InfluxConfig{
			URL:             viper.GetString("influx.url"),
			Org:             secretDefault(secrets.KeyInfluxOrg, viper.GetString("influx.org")),
			Bucket:          viper.GetString("influx.bucket"),
			Token:           secretDefault(secrets.KeyInfluxToken, viper.GetString("influx.token")),
			Measurement:     viper.GetString("influx.measurement"),
			HistoryDays:     viper.GetInt("influx.history_days"),
			AggregateWindow: viper.GetDuration("influx.aggregate_window"),
		},
		Registry: types.RegistryConfig{
			DBPath:        viper.GetString("registry.db_path"),
			InventoryFile: viper.GetString("registry.inventory_file"),
		},
		Ranking: types.RankingConfig{
			RulesFile: viper.GetString("ranking.rules_file"),
			Weights:   weightsFromViper(),
		},
		Server: types.ServerConfig{
			Addr:            viper.GetString("server.addr"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
	}
}

func weightsFromViper() map[string]float64 {
	raw := viper.GetStringMap("ranking.weights")
	if len(raw) == 0 {
		return nil
	}
	weights := make(map[string]float64, len(raw))
	for k := range raw {
		weights[k] = viper.GetFloat64("ranking.weights." + k)
	}
	return weights
}

// newLogger builds the process-wide structured logger.
func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// newEvaluator builds the compliance evaluator from the configured rules
// file, falling back to the built-in table.
func newEvaluator(cfg types.RankingConfig) (*compliance.Evaluator, error) {
	if cfg.RulesFile == "" {
		return compliance.NewEvaluator(compliance.DefaultRules()), nil
	}
	rules, err := compliance.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("loading compliance rules: %w", err)
	}
	return compliance.NewEvaluator(rules), nil
}

// buildEngine wires the full ranking pipeline. The caller owns the
// returned closers.
func buildEngine(cfg types.Config, logger *slog.Logger) (*engine.Engine, *registry.Store, *sensordata.Store, error) {
	evaluator, err := newEvaluator(cfg.Ranking)
	if err != nil {
		return nil, nil, nil, err
	}

	reg, err := registry.NewStore(cfg.Registry)
	if err != nil {
		return nil, nil, nil, err
	}

	sensors, err := sensordata.NewStore(cfg.Influx)
	if err != nil {
		reg.Close()
		return nil, nil, nil, err
	}

	eng := engine.New(sensors, reg, reg, evaluator, logger)
	return eng, reg, sensors, nil
}
