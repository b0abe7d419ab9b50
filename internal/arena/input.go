package arena

import "math"

// AxisID names a one-dimensional input channel.
type AxisID string

// Axes used by the built-in variants.
const (
	AxisLeftPaddle  AxisID = "left_paddle"
	AxisRightPaddle AxisID = "right_paddle"
	AxisBraveX      AxisID = "brave_x"
	AxisBraveY      AxisID = "brave_y"
)

// InputSampler provides per-frame axis readings.
// Sample returns ok=false when the source has no reading for the axis this
// frame. That is distinct from an active, centred reading of 0.
type InputSampler interface {
	Sample(axis AxisID) (value float64, ok bool)
}

// SamplerFunc adapts a function to the InputSampler interface.
type SamplerFunc func(axis AxisID) (float64, bool)

// Sample calls f(axis).
func (f SamplerFunc) Sample(axis AxisID) (float64, bool) {
	return f(axis)
}

// AxisValues is a fixed set of readings. Axes missing from the map report
// no reading.
type AxisValues map[AxisID]float64

// Sample returns the stored reading for the axis.
func (v AxisValues) Sample(axis AxisID) (float64, bool) {
	val, ok := v[axis]
	return val, ok
}

// NoInput reports no reading for any axis.
var NoInput InputSampler = SamplerFunc(func(AxisID) (float64, bool) {
	return 0, false
})

// ClampAxis restricts a raw reading to [-1, 1]. NaN becomes 0.
func ClampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

// sampleAxis reads an axis and normalises it for the simulation.
// Missing readings count as no movement.
func sampleAxis(in InputSampler, axis AxisID) float64 {
	if axis == "" {
		return 0
	}
	v, ok := in.Sample(axis)
	if !ok {
		return 0
	}
	return ClampAxis(v)
}
