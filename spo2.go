package vitals

import "math"

// OxygenEstimator estimates SpO2 from paired red and IR samples. Deviations
// from the running means are accumulated over a block of samples; at the end
// of each block the ratio of the red and IR modulation depths is mapped to a
// saturation percentage.
//
// Values are not clamped. A reading outside 0 to 100% means the block was
// taken without proper contact and should be discarded by the caller.
type OxygenEstimator struct {
	red movingAverage
	ir  movingAverage

	sumRed float64 // Σ(red - mean)²
	sumIR  float64 // Σ(ir - mean)²
	n      int
	seeded bool

	spo2     float64
	filtered movingAverage

	block     int
	slope     float64
	pivot     float64
	offset    float64
	threshold float64
}

// NewOxygenEstimator returns an OxygenEstimator with the default filter
// factors and calibration.
func NewOxygenEstimator(opts ...OxygenOption) *OxygenEstimator {
	o := &OxygenEstimator{
		red:       movingAverage{decay: frate},
		ir:        movingAverage{decay: frate},
		filtered:  movingAverage{decay: fspo2},
		block:     NumSamples,
		slope:     calSlope,
		pivot:     calPivot,
		offset:    calOffset,
		threshold: FingerOn,
	}
	o.Options(opts...)

	return o
}

// Update adds a red/IR sample pair to the current block.
func (o *OxygenEstimator) Update(red, ir float64) {
	// if first measurement, pre-fill values.
	if !o.seeded {
		o.red.seed(red)
		o.ir.seed(ir)
		o.seeded = true
	}

	o.red.add(red)
	o.ir.add(ir)
	o.sumRed += (red - o.red.mean) * (red - o.red.mean)
	o.sumIR += (ir - o.ir.mean) * (ir - o.ir.mean)
	o.n++

	if o.n < o.block {
		return
	}

	if r := o.ratio(); !math.IsNaN(r) && !math.IsInf(r, 0) {
		o.spo2 = o.slope*(r-o.pivot) + o.offset
		o.filtered.add(o.spo2)
	}

	o.sumRed = 0
	o.sumIR = 0
	o.n = 0
}

// ratio returns the R value of the current block. The deviation sums are
// used without dividing by the block size; the scale cancels out in the
// ratio.
func (o *OxygenEstimator) ratio() float64 {
	red := math.Sqrt(o.sumRed) / o.red.mean
	ir := math.Sqrt(o.sumIR) / o.ir.mean

	return red / ir
}

// SpO2 returns the value computed from the last complete block.
func (o *OxygenEstimator) SpO2() float64 {
	return o.spo2
}

// FilteredSpO2 returns the SpO2 smoothed across blocks.
func (o *OxygenEstimator) FilteredSpO2() float64 {
	return o.filtered.mean
}

// FingerDetected reports whether the running IR mean is above the contact
// threshold.
func (o *OxygenEstimator) FingerDetected() bool {
	return o.ir.mean > o.threshold
}

// MeanRed returns the running mean of the red channel.
func (o *OxygenEstimator) MeanRed() float64 {
	return o.red.mean
}

// MeanIR returns the running mean of the IR channel.
func (o *OxygenEstimator) MeanIR() float64 {
	return o.ir.mean
}

// Pending returns how many samples the current block holds.
func (o *OxygenEstimator) Pending() int {
	return o.n
}
