// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compliance evaluates room sensor history against environmental
// guidelines. Each sensor has one named rule (threshold bounds plus a
// violation tolerance); the evaluator turns a time series into a pass/fail
// verdict and a representative value for the decision matrix.
package compliance

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// CO2Rule follows the German Committee on Indoor Air guide values:
// good air below GoodLimit ppm, acceptable below Limit ppm.
type CO2Rule struct {
	// Limit is the acceptability threshold in ppm (default 1500).
	Limit float64 `json:"limit" yaml:"limit"`

	// GoodLimit is the good-air threshold in ppm (default 1000).
	GoodLimit float64 `json:"good_limit" yaml:"good_limit"`

	// GoodShare is the minimum percentage of samples that must sit below
	// GoodLimit (default 50).
	GoodShare float64 `json:"good_share" yaml:"good_share"`

	// Tolerance is the allowed percentage of samples above Limit
	// (default 5).
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
}

// RollingRule bounds a 24-hour rolling mean, as the EU ambient air
// directive specifies for particulate matter.
type RollingRule struct {
	// Limit is the rolling-mean ceiling in µg/m³ (25 for PM2.5, 50 for
	// PM10).
	Limit float64 `json:"limit" yaml:"limit"`

	// WindowSamples is the rolling window length in samples. Sensor
	// history is aggregated hourly, so 24 samples cover one day.
	WindowSamples int `json:"window_samples" yaml:"window_samples"`

	// Tolerance is the allowed percentage of samples whose window mean
	// exceeds Limit (default 1).
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
}

// NoiseRule follows the WHO classroom recommendations: background noise at
// or below BackgroundLimit dB, peaks at or below PeakLimit dB.
type NoiseRule struct {
	// BackgroundLimit is the background threshold in dB (default 35).
	BackgroundLimit float64 `json:"background_limit" yaml:"background_limit"`

	// PeakLimit is the peak threshold in dB (default 55).
	PeakLimit float64 `json:"peak_limit" yaml:"peak_limit"`

	// Tolerance is the allowed percentage of samples above
	// BackgroundLimit (default 5).
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// PeakTolerance is the allowed percentage of samples above PeakLimit
	// (default 1, tighter than the background tolerance).
	PeakTolerance float64 `json:"peak_tolerance" yaml:"peak_tolerance"`
}

// LightRule follows EN 12464-1: task-area illuminance of at least MinLux.
type LightRule struct {
	// MinLux is the minimum illuminance in lux (default 500).
	MinLux float64 `json:"min_lux" yaml:"min_lux"`

	// Tolerance is the allowed percentage of samples below MinLux
	// (default 5).
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
}

// BandRule keeps samples inside a [Min, Max] comfort band. Used for
// relative humidity and temperature.
type BandRule struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`

	// Tolerance is the allowed percentage of samples outside the band
	// (default 5).
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
}

// LimitRule bounds individual samples by a single ceiling. Used for VOC.
type LimitRule struct {
	// Limit is the sample ceiling (400 ppb for VOC).
	Limit float64 `json:"limit" yaml:"limit"`

	// Tolerance is the allowed percentage of samples above Limit
	// (default 1).
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
}

// Rules is the full compliance rules table, one entry per tracked sensor.
// The zero value is not usable; start from DefaultRules or LoadRules.
type Rules struct {
	CO2         CO2Rule     `json:"co2" yaml:"co2"`
	PM25        RollingRule `json:"pm2_5" yaml:"pm2_5"`
	PM10        RollingRule `json:"pm10" yaml:"pm10"`
	Noise       NoiseRule   `json:"noise" yaml:"noise"`
	Light       LightRule   `json:"light" yaml:"light"`
	Humidity    BandRule    `json:"humidity" yaml:"humidity"`
	VOC         LimitRule   `json:"voc" yaml:"voc"`
	Temperature BandRule    `json:"temperature" yaml:"temperature"`
}

// DefaultRules returns the canonical rules table. Thresholds come from the
// referenced guidelines; tolerances are the historically used defaults.
func DefaultRules() Rules {
	return Rules{
		CO2:         CO2Rule{Limit: 1500, GoodLimit: 1000, GoodShare: 50, Tolerance: 5},
		PM25:        RollingRule{Limit: 25, WindowSamples: 24, Tolerance: 1},
		PM10:        RollingRule{Limit: 50, WindowSamples: 24, Tolerance: 1},
		Noise:       NoiseRule{BackgroundLimit: 35, PeakLimit: 55, Tolerance: 5, PeakTolerance: 1},
		Light:       LightRule{MinLux: 500, Tolerance: 5},
		Humidity:    BandRule{Min: 30, Max: 70, Tolerance: 5},
		VOC:         LimitRule{Limit: 400, Tolerance: 1},
		Temperature: BandRule{Min: 19, Max: 26, Tolerance: 5},
	}
}

// LoadRules reads a YAML rules table from path. Fields absent from the
// file keep their DefaultRules value, so a file may override a single
// threshold.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return rules, nil
}

// Validate rejects tables with nonsensical bounds or tolerances.
func (r Rules) Validate() error {
	checkTol := func(name string, tol float64) error {
		if tol < 0 || tol > 100 {
			return fmt.Errorf("%s: tolerance %.1f outside [0, 100]", name, tol)
		}
		return nil
	}

	for _, c := range []struct {
		name string
		tol  float64
	}{
		{"co2", r.CO2.Tolerance},
		{"pm2_5", r.PM25.Tolerance},
		{"pm10", r.PM10.Tolerance},
		{"noise", r.Noise.Tolerance},
		{"noise peak", r.Noise.PeakTolerance},
		{"light", r.Light.Tolerance},
		{"humidity", r.Humidity.Tolerance},
		{"voc", r.VOC.Tolerance},
		{"temperature", r.Temperature.Tolerance},
	} {
		if err := checkTol(c.name, c.tol); err != nil {
			return err
		}
	}

	if r.CO2.GoodLimit > r.CO2.Limit {
		return fmt.Errorf("co2: good limit %.0f above acceptability limit %.0f", r.CO2.GoodLimit, r.CO2.Limit)
	}
	if r.Noise.BackgroundLimit > r.Noise.PeakLimit {
		return fmt.Errorf("noise: background limit %.0f above peak limit %.0f", r.Noise.BackgroundLimit, r.Noise.PeakLimit)
	}
	if r.PM25.WindowSamples <= 0 || r.PM10.WindowSamples <= 0 {
		return fmt.Errorf("particulate rolling window must be positive")
	}
	if r.Humidity.Min >= r.Humidity.Max {
		return fmt.Errorf("humidity: band [%.0f, %.0f] is empty", r.Humidity.Min, r.Humidity.Max)
	}
	if r.Temperature.Min >= r.Temperature.Max {
		return fmt.Errorf("temperature: band [%.0f, %.0f] is empty", r.Temperature.Min, r.Temperature.Max)
	}
	return nil
}
