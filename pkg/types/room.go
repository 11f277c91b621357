// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// TimeSeriesPoint is one sensor measurement. Series are ordered by
// timestamp and may be irregularly sampled; points are immutable once
// fetched from the store.
type TimeSeriesPoint struct {
	// Timestamp is the measurement instant in UTC.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Value is the measured reading in the sensor's native unit
	// (ppm, µg/m³, dB, lux, %RH, ppb, °C).
	Value float64 `json:"value" yaml:"value"`
}

// ComplianceResult summarizes one environmental check for a (room, sensor)
// pair. Produced once per ranking request and never persisted.
type ComplianceResult struct {
	// Representative is the scalar that stands in for the series in the
	// decision matrix (the mean unless a rule specifies otherwise).
	Representative float64 `json:"representative" yaml:"representative"`

	// Stats carries secondary statistics from the check (min, max,
	// violation percentages) keyed by a short name.
	Stats map[string]float64 `json:"stats,omitempty" yaml:"stats,omitempty"`

	// Compliant reports whether the series satisfies the rule within its
	// violation tolerance.
	Compliant bool `json:"compliant" yaml:"compliant"`

	// Reason explains a non-compliant verdict (e.g. "no samples",
	// "9.2% of samples above 1500 ppm, tolerance 5.0%"). Empty when
	// compliant.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// RoomEquipment is the static equipment record for a room. Owned by the
// registry; read-only to the ranking engine.
type RoomEquipment struct {
	// RoomID is the registry identifier (e.g. "MSA 3.500").
	RoomID string `json:"room_id" yaml:"room_id"`

	// Capacity is the number of seats.
	Capacity int `json:"capacity" yaml:"capacity"`

	Projector  bool `json:"projector" yaml:"projector"`
	Blackboard bool `json:"blackboard" yaml:"blackboard"`
	Whiteboard bool `json:"whiteboard" yaml:"whiteboard"`
	Smartboard bool `json:"smartboard" yaml:"smartboard"`
	Microphone bool `json:"microphone" yaml:"microphone"`
	PC         bool `json:"pc" yaml:"pc"`
}

// Flags returns the equipment booleans keyed by attribute name, coerced
// to 0/1 the way the decision matrix consumes them.
func (e RoomEquipment) Flags() map[string]float64 {
	b2f := func(b bool) float64 {
		if b {
			return 1
		}
		return 0
	}
	return map[string]float64{
		AttrProjector:  b2f(e.Projector),
		AttrBlackboard: b2f(e.Blackboard),
		AttrWhiteboard: b2f(e.Whiteboard),
		AttrSmartboard: b2f(e.Smartboard),
		AttrMicrophone: b2f(e.Microphone),
		AttrPC:         b2f(e.PC),
	}
}

// Attribute names shared by the compliance evaluator, the decision matrix,
// and the preference vector. Sensor attributes double as sensor names.
const (
	AttrCO2         = "co2"
	AttrPM25        = "pm2_5"
	AttrPM10        = "pm10"
	AttrNoise       = "noise"
	AttrLight       = "light"
	AttrHumidity    = "humidity"
	AttrVOC         = "voc"
	AttrTemperature = "temperature"

	AttrCapacity   = "capacity"
	AttrProjector  = "projector"
	AttrBlackboard = "blackboard"
	AttrWhiteboard = "whiteboard"
	AttrSmartboard = "smartboard"
	AttrMicrophone = "microphone"
	AttrPC         = "pc"
)

// Sensors lists the tracked environmental sensors in evaluation order.
// The order is also the fail-fast order of the matrix builder.
func Sensors() []string {
	return []string{
		AttrCO2, AttrTemperature, AttrNoise, AttrLight,
		AttrHumidity, AttrVOC, AttrPM25, AttrPM10,
	}
}

// EquipmentAttributes lists the non-sensor attribute names in matrix
// column order.
func EquipmentAttributes() []string {
	return []string{
		AttrCapacity, AttrProjector, AttrBlackboard, AttrWhiteboard,
		AttrSmartboard, AttrMicrophone, AttrPC,
	}
}
