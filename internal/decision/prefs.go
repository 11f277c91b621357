// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decision

import "github.com/pdiddy/roombook/pkg/types"

// Anchor targets derived from the categorical preferences. Each anchor is
// the value the ranker pulls candidates toward; proximity, not magnitude,
// decides the score.
const (
	co2AnchorHigh    = 350
	co2AnchorNormal  = 500
	pm25AnchorHigh   = 5
	pm25AnchorNormal = 10
	pm10AnchorHigh   = 10
	pm10AnchorNormal = 15

	noiseAnchorSilent = 15
	noiseAnchorNormal = 30

	lightAnchorBright = 800
	lightAnchorNormal = 500

	temperatureAnchorWarm     = 27
	temperatureAnchorModerate = 23
	temperatureAnchorCool     = 17

	humidityAnchor = 50
	vocAnchor      = 50
)

// Anchors maps a ranking request to the preference vector: one numeric
// target per attribute. Required equipment anchors at 1 and optional
// equipment at 0, so a room carrying an unrequested feature is not
// rewarded for it. Capacity anchors at the requested seat count, which
// favors the smallest adequate room over an oversized one.
func Anchors(req types.RankingRequest) map[string]float64 {
	anchors := map[string]float64{
		types.AttrCO2:         co2AnchorNormal,
		types.AttrPM25:        pm25AnchorNormal,
		types.AttrPM10:        pm10AnchorNormal,
		types.AttrNoise:       noiseAnchorNormal,
		types.AttrLight:       lightAnchorNormal,
		types.AttrHumidity:    humidityAnchor,
		types.AttrVOC:         vocAnchor,
		types.AttrTemperature: temperatureAnchorModerate,
	}

	if req.Preferences.AirQuality == types.AirQualityHigh {
		anchors[types.AttrCO2] = co2AnchorHigh
		anchors[types.AttrPM25] = pm25AnchorHigh
		anchors[types.AttrPM10] = pm10AnchorHigh
	}
	if req.Preferences.Noise == types.NoiseSilent {
		anchors[types.AttrNoise] = noiseAnchorSilent
	}
	if req.Preferences.Lighting == types.LightingBright {
		anchors[types.AttrLight] = lightAnchorBright
	}
	switch req.Preferences.Temperature {
	case types.TemperatureWarm:
		anchors[types.AttrTemperature] = temperatureAnchorWarm
	case types.TemperatureCool:
		anchors[types.AttrTemperature] = temperatureAnchorCool
	}

	anchors[types.AttrCapacity] = float64(req.SeatingCapacity)

	b2f := func(b bool) float64 {
		if b {
			return 1
		}
		return 0
	}
	anchors[types.AttrProjector] = b2f(req.Equipment.Projector)
	anchors[types.AttrBlackboard] = b2f(req.Equipment.Blackboard)
	anchors[types.AttrWhiteboard] = b2f(req.Equipment.Whiteboard)
	anchors[types.AttrSmartboard] = b2f(req.Equipment.Smartboard)
	anchors[types.AttrMicrophone] = b2f(req.Equipment.Microphone)
	anchors[types.AttrPC] = b2f(req.Equipment.PC)

	return anchors
}

// DefaultWeights returns the standard attribute weight vector. Only the
// ratios matter; the ranker renormalizes the vector to sum to 1.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		types.AttrCO2:         2,
		types.AttrNoise:       4,
		types.AttrPM25:        2,
		types.AttrPM10:        2,
		types.AttrLight:       3,
		types.AttrHumidity:    2,
		types.AttrVOC:         1,
		types.AttrTemperature: 3,
		types.AttrCapacity:    4,
		types.AttrProjector:   4,
		types.AttrBlackboard:  4,
		types.AttrWhiteboard:  4,
		types.AttrSmartboard:  4,
		types.AttrMicrophone:  4,
		types.AttrPC:          4,
	}
}

// MergeWeights overlays user-supplied weights on the defaults. Unknown
// attribute names are carried through; attributes missing from both end
// up with weight 1 inside the ranker.
func MergeWeights(overrides map[string]float64) map[string]float64 {
	merged := DefaultWeights()
	for attr, w := range overrides {
		merged[attr] = w
	}
	return merged
}
