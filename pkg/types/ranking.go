// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AirQualityPreference selects the CO2/particulate anchor set.
type AirQualityPreference string

const (
	AirQualityNormal AirQualityPreference = "normal"
	AirQualityHigh   AirQualityPreference = "high"
)

// NoisePreference selects the noise anchor.
type NoisePreference string

const (
	NoiseNormal NoisePreference = "normal"
	NoiseSilent NoisePreference = "silent"
)

// LightingPreference selects the illuminance anchor.
type LightingPreference string

const (
	LightingNormal LightingPreference = "normal"
	LightingBright LightingPreference = "bright"
)

// TemperaturePreference selects the temperature anchor.
type TemperaturePreference string

const (
	TemperatureCool     TemperaturePreference = "cool"
	TemperatureModerate TemperaturePreference = "moderate"
	TemperatureWarm     TemperaturePreference = "warm"
)

// EquipmentRequirements marks which room features the requester needs.
// Required features anchor the corresponding matrix column at 1, so rooms
// carrying the feature score closer to the ideal.
type EquipmentRequirements struct {
	Projector  bool `json:"projector" yaml:"projector"`
	Blackboard bool `json:"blackboard" yaml:"blackboard"`
	Whiteboard bool `json:"whiteboard" yaml:"whiteboard"`
	Smartboard bool `json:"smartboard" yaml:"smartboard"`
	Microphone bool `json:"microphone" yaml:"microphone"`
	PC         bool `json:"pc" yaml:"pc"`
}

// EnvironmentalPreferences holds the categorical comfort preferences the
// anchor derivation maps to numeric targets.
type EnvironmentalPreferences struct {
	AirQuality  AirQualityPreference  `json:"air_quality" yaml:"air_quality"`
	Noise       NoisePreference       `json:"noise" yaml:"noise"`
	Lighting    LightingPreference    `json:"lighting" yaml:"lighting"`
	Temperature TemperaturePreference `json:"temperature" yaml:"temperature"`
}

// RankingRequest is the engine's upward-facing input: a date, a
// 30-minute-aligned time window, the seating requirement, and the
// requester's equipment and comfort preferences.
type RankingRequest struct {
	// Date in "YYYY-MM-DD" form.
	Date string `json:"date" yaml:"date"`

	// StartTime and EndTime in "HH:MM:SS" form, both on the requested
	// date, both aligned to 30-minute boundaries.
	StartTime string `json:"start_time" yaml:"start_time"`
	EndTime   string `json:"end_time" yaml:"end_time"`

	// SeatingCapacity is the minimum number of seats.
	SeatingCapacity int `json:"seating_capacity" yaml:"seating_capacity"`

	Equipment   EquipmentRequirements    `json:"equipment" yaml:"equipment"`
	Preferences EnvironmentalPreferences `json:"preferences" yaml:"preferences"`

	// Weights maps attribute names to relative importance. Missing
	// attributes default to weight 1; the ranker renormalizes the vector,
	// so only ratios matter.
	Weights map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

// RankedRoom is one row of a ranking result: the room, its decision-matrix
// attributes, and its closeness score. Rank 1 is best. Scores are only
// comparable within the same response.
type RankedRoom struct {
	RoomID string `json:"room_id" yaml:"room_id"`

	// Attributes holds the raw decision-matrix row: sensor representative
	// values plus capacity and 0/1 equipment flags.
	Attributes map[string]float64 `json:"attributes" yaml:"attributes"`

	// Equipment restates the boolean flags for callers that do not want
	// to decode the 0/1 columns.
	Equipment RoomEquipment `json:"equipment" yaml:"equipment"`

	// Score is the TOPSIS closeness coefficient in [0, 1]; higher is
	// better. A single-candidate ranking always scores 1.0.
	Score float64 `json:"score" yaml:"score"`

	// Rank is the 1-based position after descending-score ordering.
	Rank int `json:"rank" yaml:"rank"`
}
