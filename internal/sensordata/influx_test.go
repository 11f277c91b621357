// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sensordata

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/roombook/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.InfluxConfig{
		URL: "http://localhost:8086",
		Org: "myorg",
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestNewStoreRequiredFields(t *testing.T) {
	_, err := NewStore(types.InfluxConfig{Org: "myorg"})
	assert.Error(t, err)

	_, err = NewStore(types.InfluxConfig{URL: "http://localhost:8086"})
	assert.Error(t, err)
}

func TestNewStoreDefaults(t *testing.T) {
	s := testStore(t)
	assert.Equal(t, "room_sensors", s.bucket)
	assert.Equal(t, "room_data", s.measurement)
	assert.Equal(t, 14, s.historyDays)
	assert.Equal(t, time.Hour, s.window)
}

func TestFluxQueryShape(t *testing.T) {
	s := testStore(t)

	flux, err := s.fluxQuery("MSA 3.500", types.AttrNoise)
	require.NoError(t, err)

	for _, want := range []string{
		`from(bucket: "room_sensors")`,
		`range(start: -14d)`,
		`r["_measurement"] == "room_data"`,
		`r["_field"] == "sound"`,
		`r["room_id"] == "MSA 3.500"`,
		`aggregateWindow(every: 1h0m0s, fn: mean, createEmpty: false)`,
	} {
		assert.Contains(t, flux, want)
	}
}

func TestFluxQueryFieldMapping(t *testing.T) {
	s := testStore(t)

	tests := []struct {
		sensor string
		field  string
	}{
		{types.AttrPM25, `"air_quality_pm2_5"`},
		{types.AttrPM10, `"air_quality_pm10"`},
		{types.AttrNoise, `"sound"`},
		{types.AttrCO2, `"co2"`},
		{types.AttrLight, `"light"`},
	}
	for _, tt := range tests {
		flux, err := s.fluxQuery("R1", tt.sensor)
		require.NoError(t, err)
		assert.True(t, strings.Contains(flux, tt.field), "sensor %s: query %s lacks field %s", tt.sensor, flux, tt.field)
	}
}

func TestFluxQueryUnknownSensor(t *testing.T) {
	s := testStore(t)
	_, err := s.fluxQuery("R1", "radon")
	assert.Error(t, err)
}

func TestFluxQueryCoversAllTrackedSensors(t *testing.T) {
	s := testStore(t)
	for _, sensor := range types.Sensors() {
		_, err := s.fluxQuery("R1", sensor)
		assert.NoError(t, err, "sensor %s has no field mapping", sensor)
	}
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"float64", 42.5, 42.5, true},
		{"int64", int64(7), 7, true},
		{"uint64", uint64(9), 9, true},
		{"string", "nope", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := asFloat(tt.value)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
