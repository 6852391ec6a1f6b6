// Package vitals estimates heart rate, SpO2 and step count from raw PPG and
// IMU samples.
//
// Each estimator is a small state machine fed one sample at a time by the
// caller's polling loop. None of them block, allocate per sample or share
// state, so they can be updated in any order.
//
//	hr := vitals.NewBeatEstimator(nil)
//	ox := vitals.NewOxygenEstimator()
//	for dev.Available() {
//		red, ir, _ := dev.Next()
//		hr.DetectBeat(ir, now())
//		ox.Update(float64(red), float64(ir))
//	}
//
// Failures are reported as validity flags (BeatEstimator.Valid,
// OxygenEstimator.FingerDetected) rather than errors: noise and missing
// contact are the normal state of a wrist sensor.
package vitals
