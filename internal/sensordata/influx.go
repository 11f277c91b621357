// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sensordata adapts an InfluxDB 2.x bucket to the engine's
// SensorStore interface. Sensor history is stored as one measurement with
// a room_id tag and one field per sensor; queries downsample server-side
// with aggregateWindow so compliance evaluation sees hourly means.
package sensordata

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/pdiddy/roombook/internal/httputil"
	"github.com/pdiddy/roombook/pkg/types"
)

// fieldBySensor maps engine sensor names to InfluxDB field names. The
// particulate and noise fields kept their historical names when the
// engine's attribute names were unified.
var fieldBySensor = map[string]string{
	types.AttrCO2:         "co2",
	types.AttrVOC:         "voc",
	types.AttrTemperature: "temperature",
	types.AttrLight:       "light",
	types.AttrHumidity:    "humidity",
	types.AttrPM25:        "air_quality_pm2_5",
	types.AttrPM10:        "air_quality_pm10",
	types.AttrNoise:       "sound",
}

// Store fetches room sensor series from InfluxDB. Safe for concurrent
// use; the underlying client pools its HTTP connections.
type Store struct {
	client      influxdb2.Client
	query       api.QueryAPI
	bucket      string
	measurement string
	historyDays int
	window      time.Duration
}

// NewStore connects a Store using cfg. Missing optional fields fall back
// to the documented defaults (bucket "room_sensors", measurement
// "room_data", 14 days of history, 1h aggregation).
func NewStore(cfg types.InfluxConfig) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("influx URL is required")
	}
	if cfg.Org == "" {
		return nil, fmt.Errorf("influx org is required")
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "room_sensors"
	}
	measurement := cfg.Measurement
	if measurement == "" {
		measurement = "room_data"
	}
	historyDays := cfg.HistoryDays
	if historyDays <= 0 {
		historyDays = 14
	}
	window := cfg.AggregateWindow
	if window <= 0 {
		window = time.Hour
	}

	options := influxdb2.DefaultOptions()
	options.SetHTTPClient(httputil.NewClient(0))
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, options)
	return &Store{
		client:      client,
		query:       client.QueryAPI(cfg.Org),
		bucket:      bucket,
		measurement: measurement,
		historyDays: historyDays,
		window:      window,
	}, nil
}

// Close releases the underlying HTTP client.
func (s *Store) Close() {
	s.client.Close()
}

// FetchSeries returns the downsampled history for one (room, sensor)
// pair, oldest first. An unknown sensor is an error; a room with no data
// yields an empty series, which the caller treats as unavailable data.
func (s *Store) FetchSeries(ctx context.Context, roomID, sensor string) ([]types.TimeSeriesPoint, error) {
	flux, err := s.fluxQuery(roomID, sensor)
	if err != nil {
		return nil, err
	}

	result, err := s.query.Query(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("querying %s history for room %s: %w", sensor, roomID, err)
	}

	var series []types.TimeSeriesPoint
	for result.Next() {
		record := result.Record()
		value, ok := asFloat(record.Value())
		if !ok {
			continue
		}
		series = append(series, types.TimeSeriesPoint{
			Timestamp: record.Time(),
			Value:     value,
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("reading %s history for room %s: %w", sensor, roomID, err)
	}
	return series, nil
}

// fluxQuery builds the Flux pipeline for one (room, sensor) pair.
func (s *Store) fluxQuery(roomID, sensor string) (string, error) {
	field, ok := fieldBySensor[sensor]
	if !ok {
		return "", fmt.Errorf("unknown sensor %q", sensor)
	}

	return fmt.Sprintf(`from(bucket: %q)
  |> range(start: -%dd)
  |> filter(fn: (r) => r["_measurement"] == %q)
  |> filter(fn: (r) => r["_field"] == %q)
  |> filter(fn: (r) => r["room_id"] == %q)
  |> aggregateWindow(every: %s, fn: mean, createEmpty: false)
  |> yield(name: "mean")`,
		s.bucket, s.historyDays, s.measurement, field, roomID, s.window,
	), nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
