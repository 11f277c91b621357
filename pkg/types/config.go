// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// InfluxConfig holds connection settings for the sensor time-series store.
type InfluxConfig struct {
	// URL is the InfluxDB base URL (e.g. "http://localhost:8086").
	URL string `json:"url" yaml:"url"`

	// Org is the InfluxDB organization.
	Org string `json:"org" yaml:"org"`

	// Bucket is the bucket holding room sensor measurements
	// (default "room_sensors").
	Bucket string `json:"bucket" yaml:"bucket"`

	// Token authenticates against the InfluxDB API. Usually supplied via
	// the influx-token secret file rather than the config file.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// Measurement is the measurement name sensor points are written under
	// (default "room_data").
	Measurement string `json:"measurement" yaml:"measurement"`

	// HistoryDays is how far back sensor history is fetched for
	// compliance evaluation (default 14).
	HistoryDays int `json:"history_days" yaml:"history_days"`

	// AggregateWindow is the downsampling window applied server-side
	// (default 1h). Compliance percentages are computed over these
	// aggregated samples.
	AggregateWindow time.Duration `json:"aggregate_window" yaml:"aggregate_window"`
}

// RegistryConfig holds settings for the room/equipment/booking store.
type RegistryConfig struct {
	// DBPath is the SQLite database file (default "roombook.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// InventoryFile is the YAML room inventory used to seed the registry
	// (default "rooms.yaml").
	InventoryFile string `json:"inventory_file" yaml:"inventory_file"`
}

// RankingConfig holds settings for the ranking pipeline.
type RankingConfig struct {
	// RulesFile optionally overrides the built-in compliance rules table
	// with a YAML file.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`

	// Weights optionally overrides the default attribute weights.
	Weights map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Config groups all component configurations.
type Config struct {
	Influx   InfluxConfig   `json:"influx" yaml:"influx"`
	Registry RegistryConfig `json:"registry" yaml:"registry"`
	Ranking  RankingConfig  `json:"ranking" yaml:"ranking"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}
