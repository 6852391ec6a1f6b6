package vitals

// A BeatOption configures a BeatEstimator.
type BeatOption func(b *BeatEstimator) BeatOption

// Options sets different configuration options and returns the previous
// value of the last option passed.
func (b *BeatEstimator) Options(options ...BeatOption) BeatOption {
	var old BeatOption
	for _, opt := range options {
		old = opt(b)
	}
	return old
}

// FingerOnLevel sets the raw IR level under which samples are ignored. By
// default, the level is 30000.
func FingerOnLevel(threshold uint32) BeatOption {
	return func(b *BeatEstimator) BeatOption {
		old := b.fingerOn
		b.fingerOn = threshold
		return FingerOnLevel(old)
	}
}

// An OxygenOption configures an OxygenEstimator.
type OxygenOption func(o *OxygenEstimator) OxygenOption

// Options sets different configuration options and returns the previous
// value of the last option passed.
func (o *OxygenEstimator) Options(options ...OxygenOption) OxygenOption {
	var old OxygenOption
	for _, opt := range options {
		old = opt(o)
	}
	return old
}

// Decay sets the weight of the previous running mean, from 0.0 to 1.0.
// Values close to 1 smooth heavily. By default, the decay is 0.95.
func Decay(frate float64) OxygenOption {
	return func(o *OxygenEstimator) OxygenOption {
		old := o.red.decay
		frate = clamp01(frate)
		o.red.decay = frate
		o.ir.decay = frate
		return Decay(old)
	}
}

// Smoothing sets the weight of the previous SpO2 when a new block is
// computed, from 0.0 to 1.0. By default, the smoothing is 0.7.
func Smoothing(f float64) OxygenOption {
	return func(o *OxygenEstimator) OxygenOption {
		old := o.filtered.decay
		o.filtered.decay = clamp01(f)
		return Smoothing(old)
	}
}

// BlockSize sets how many samples make up a block. Values below 1 are
// ignored. By default, the block is 100 samples.
func BlockSize(n int) OxygenOption {
	return func(o *OxygenEstimator) OxygenOption {
		old := o.block
		if n >= 1 {
			o.block = n
		}
		return BlockSize(old)
	}
}

// Calibration sets the linear mapping SpO2 = slope*(R - pivot) + offset.
// By default, the mapping is -23.3*(R - 0.4) + 100.
func Calibration(slope, pivot, offset float64) OxygenOption {
	return func(o *OxygenEstimator) OxygenOption {
		oldS, oldP, oldO := o.slope, o.pivot, o.offset
		o.slope, o.pivot, o.offset = slope, pivot, offset
		return Calibration(oldS, oldP, oldO)
	}
}

// FingerThreshold sets the IR mean above which a finger is considered on
// the sensor. By default, the threshold is 30000.
func FingerThreshold(v float64) OxygenOption {
	return func(o *OxygenEstimator) OxygenOption {
		old := o.threshold
		o.threshold = v
		return FingerThreshold(old)
	}
}

// A MotionOption configures a MotionEstimator.
type MotionOption func(m *MotionEstimator) MotionOption

// Options sets different configuration options and returns the previous
// value of the last option passed.
func (m *MotionEstimator) Options(options ...MotionOption) MotionOption {
	var old MotionOption
	for _, opt := range options {
		old = opt(m)
	}
	return old
}

// StepThresholds sets the re-arm (low) and trigger (high) acceleration
// magnitudes, in m/s². The call is ignored if low is greater than high. By
// default, the thresholds are 10.0 and 12.0.
func StepThresholds(low, high float64) MotionOption {
	return func(m *MotionEstimator) MotionOption {
		oldL, oldH := m.low, m.high
		if low <= high {
			m.low, m.high = low, high
		}
		return StepThresholds(oldL, oldH)
	}
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
