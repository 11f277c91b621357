// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compliance

import (
	"fmt"
	"sort"

	"github.com/pdiddy/roombook/pkg/types"
)

// Evaluator applies the rules table to sensor time series. It is a pure
// function of its inputs and safe for concurrent use.
type Evaluator struct {
	rules Rules
}

// NewEvaluator returns an Evaluator backed by the given rules table.
func NewEvaluator(rules Rules) *Evaluator {
	return &Evaluator{rules: rules}
}

// Rules returns the table the evaluator was built with.
func (ev *Evaluator) Rules() Rules { return ev.rules }

// Evaluate checks one sensor's series against its rule. A negative
// tolerance selects the rule's own default. An empty series never fails
// the call; it yields a non-compliant result with a "no samples" reason so
// the room is excluded instead of crashing the batch.
//
// Sensors without a rule are assumed compliant with the series mean as
// representative value, matching the historical behaviour for newly added
// sensors.
func (ev *Evaluator) Evaluate(sensor string, series []types.TimeSeriesPoint, tolerance float64) types.ComplianceResult {
	if len(series) == 0 {
		return types.ComplianceResult{
			Compliant: false,
			Reason:    fmt.Sprintf("%s: no samples", sensor),
		}
	}

	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Value
	}

	switch sensor {
	case types.AttrCO2:
		return ev.evaluateCO2(values, pick(tolerance, ev.rules.CO2.Tolerance))
	case types.AttrPM25:
		return evaluateRolling(sensor, values, ev.rules.PM25, pick(tolerance, ev.rules.PM25.Tolerance), series)
	case types.AttrPM10:
		return evaluateRolling(sensor, values, ev.rules.PM10, pick(tolerance, ev.rules.PM10.Tolerance), series)
	case types.AttrNoise:
		return ev.evaluateNoise(values, pick(tolerance, ev.rules.Noise.Tolerance))
	case types.AttrLight:
		return ev.evaluateLight(values, pick(tolerance, ev.rules.Light.Tolerance))
	case types.AttrHumidity:
		return evaluateBand(sensor, values, ev.rules.Humidity, pick(tolerance, ev.rules.Humidity.Tolerance))
	case types.AttrVOC:
		return ev.evaluateVOC(values, pick(tolerance, ev.rules.VOC.Tolerance))
	case types.AttrTemperature:
		return evaluateBand(sensor, values, ev.rules.Temperature, pick(tolerance, ev.rules.Temperature.Tolerance))
	default:
		return types.ComplianceResult{
			Representative: mean(values),
			Compliant:      true,
		}
	}
}

func pick(override, fallback float64) float64 {
	if override < 0 {
		return fallback
	}
	return override
}

func (ev *Evaluator) evaluateCO2(values []float64, tolerance float64) types.ComplianceResult {
	rule := ev.rules.CO2
	exceeded := percentage(values, func(v float64) bool { return v > rule.Limit })
	belowGood := percentage(values, func(v float64) bool { return v < rule.GoodLimit })

	res := types.ComplianceResult{
		Representative: mean(values),
		Stats: map[string]float64{
			"max":            max(values),
			"exceeded_limit": exceeded,
			"below_good":     belowGood,
		},
		Compliant: exceeded <= tolerance && belowGood > rule.GoodShare,
	}
	if !res.Compliant {
		if exceeded > tolerance {
			res.Reason = fmt.Sprintf("co2: %.1f%% of samples above %.0f ppm, tolerance %.1f%%", exceeded, rule.Limit, tolerance)
		} else {
			res.Reason = fmt.Sprintf("co2: only %.1f%% of samples below %.0f ppm, need more than %.0f%%", belowGood, rule.GoodLimit, rule.GoodShare)
		}
	}
	return res
}

// evaluateRolling checks a rolling-mean rule. The series is sorted by
// timestamp first; windows shorter than WindowSamples never count as
// violations, and the violation percentage is taken over the full sample
// count, matching the store's hourly aggregation semantics.
func evaluateRolling(sensor string, values []float64, rule RollingRule, tolerance float64, series []types.TimeSeriesPoint) types.ComplianceResult {
	ordered := make([]types.TimeSeriesPoint, len(series))
	copy(ordered, series)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	sorted := make([]float64, len(ordered))
	for i, p := range ordered {
		sorted[i] = p.Value
	}

	violations := 0
	var windowSum float64
	for i, v := range sorted {
		windowSum += v
		if i >= rule.WindowSamples {
			windowSum -= sorted[i-rule.WindowSamples]
		}
		if i >= rule.WindowSamples-1 {
			if windowSum/float64(rule.WindowSamples) > rule.Limit {
				violations++
			}
		}
	}
	violationPct := float64(violations) / float64(len(sorted)) * 100

	res := types.ComplianceResult{
		Representative: mean(values),
		Stats: map[string]float64{
			"max":               max(values),
			"window_violations": violationPct,
		},
		Compliant: violationPct <= tolerance,
	}
	if !res.Compliant {
		res.Reason = fmt.Sprintf("%s: %.1f%% of 24h windows above %.0f µg/m³, tolerance %.1f%%", sensor, violationPct, rule.Limit, tolerance)
	}
	return res
}

func (ev *Evaluator) evaluateNoise(values []float64, tolerance float64) types.ComplianceResult {
	rule := ev.rules.Noise
	aboveBackground := percentage(values, func(v float64) bool { return v > rule.BackgroundLimit })
	abovePeak := percentage(values, func(v float64) bool { return v > rule.PeakLimit })

	res := types.ComplianceResult{
		Representative: mean(values),
		Stats: map[string]float64{
			"max":              max(values),
			"above_background": aboveBackground,
			"above_peak":       abovePeak,
		},
		Compliant: aboveBackground <= tolerance && abovePeak <= rule.PeakTolerance,
	}
	if !res.Compliant {
		if abovePeak > rule.PeakTolerance {
			res.Reason = fmt.Sprintf("noise: %.1f%% of samples above %.0f dB peak limit, tolerance %.1f%%", abovePeak, rule.PeakLimit, rule.PeakTolerance)
		} else {
			res.Reason = fmt.Sprintf("noise: %.1f%% of samples above %.0f dB background limit, tolerance %.1f%%", aboveBackground, rule.BackgroundLimit, tolerance)
		}
	}
	return res
}

func (ev *Evaluator) evaluateLight(values []float64, tolerance float64) types.ComplianceResult {
	rule := ev.rules.Light
	belowMin := percentage(values, func(v float64) bool { return v < rule.MinLux })

	res := types.ComplianceResult{
		Representative: mean(values),
		Stats: map[string]float64{
			"min":       min(values),
			"max":       max(values),
			"below_min": belowMin,
		},
		Compliant: belowMin <= tolerance,
	}
	if !res.Compliant {
		res.Reason = fmt.Sprintf("light: %.1f%% of samples below %.0f lux, tolerance %.1f%%", belowMin, rule.MinLux, tolerance)
	}
	return res
}

func evaluateBand(sensor string, values []float64, rule BandRule, tolerance float64) types.ComplianceResult {
	inRange := percentage(values, func(v float64) bool { return v >= rule.Min && v <= rule.Max })

	res := types.ComplianceResult{
		Representative: mean(values),
		Stats: map[string]float64{
			"min":      min(values),
			"max":      max(values),
			"in_range": inRange,
		},
		Compliant: inRange >= 100-tolerance,
	}
	if !res.Compliant {
		res.Reason = fmt.Sprintf("%s: only %.1f%% of samples inside [%.0f, %.0f], tolerance %.1f%%", sensor, inRange, rule.Min, rule.Max, tolerance)
	}
	return res
}

func (ev *Evaluator) evaluateVOC(values []float64, tolerance float64) types.ComplianceResult {
	rule := ev.rules.VOC
	aboveLimit := percentage(values, func(v float64) bool { return v > rule.Limit })

	res := types.ComplianceResult{
		Representative: mean(values),
		Stats: map[string]float64{
			"max":         max(values),
			"above_limit": aboveLimit,
		},
		Compliant: aboveLimit <= tolerance,
	}
	if !res.Compliant {
		res.Reason = fmt.Sprintf("voc: %.1f%% of samples above %.0f ppb, tolerance %.1f%%", aboveLimit, rule.Limit, tolerance)
	}
	return res
}

// percentage returns the share of values satisfying pred, in percent.
func percentage(values []float64, pred func(float64) bool) float64 {
	if len(values) == 0 {
		return 0
	}
	n := 0
	for _, v := range values {
		if pred(v) {
			n++
		}
	}
	return float64(n) / float64(len(values)) * 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func min(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func max(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
