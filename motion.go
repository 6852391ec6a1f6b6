package vitals

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MotionEstimator computes tilt and counts steps from IMU samples.
//
// A step is counted when the acceleration magnitude rises above the high
// threshold. The detector is re-armed only once the magnitude falls below
// the low threshold, so noise between the two never counts twice.
type MotionEstimator struct {
	steps uint64
	above bool

	accel float64
	pitch float64
	roll  float64
	gyro  float64

	low  float64
	high float64
}

// NewMotionEstimator returns a MotionEstimator with the default step
// thresholds.
func NewMotionEstimator(opts ...MotionOption) *MotionEstimator {
	m := &MotionEstimator{
		low:  StepLow,
		high: StepHigh,
	}
	m.Options(opts...)

	return m
}

// Update processes one IMU sample: acceleration in m/s² and angular rate in
// °/s.
func (m *MotionEstimator) Update(ax, ay, az, gx, gy, gz float64) {
	a := [3]float64{ax, ay, az}
	g := [3]float64{gx, gy, gz}

	m.accel = floats.Norm(a[:], 2)
	// Only valid while gravity dominates the reading.
	m.pitch = math.Atan2(ax, math.Sqrt(ay*ay+az*az)) * 180 / math.Pi
	m.roll = math.Atan2(ay, az) * 180 / math.Pi
	m.gyro = floats.Norm(g[:], 2)

	m.detectStep()
}

func (m *MotionEstimator) detectStep() {
	if m.accel > m.high && !m.above {
		m.above = true
		m.steps++
	}

	if m.accel < m.low {
		m.above = false
	}
}

// Steps returns the number of steps counted so far.
func (m *MotionEstimator) Steps() uint64 {
	return m.steps
}

// AccelMagnitude returns the norm of the last acceleration, in m/s².
func (m *MotionEstimator) AccelMagnitude() float64 {
	return m.accel
}

// Pitch returns the last pitch angle, in degrees.
func (m *MotionEstimator) Pitch() float64 {
	return m.pitch
}

// Roll returns the last roll angle, in degrees.
func (m *MotionEstimator) Roll() float64 {
	return m.roll
}

// GyroMagnitude returns the norm of the last angular rate, in °/s.
func (m *MotionEstimator) GyroMagnitude() float64 {
	return m.gyro
}
