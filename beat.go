package vitals

// PeakDetector reports whether a raw IR sample completes a pulse peak.
type PeakDetector interface {
	Check(ir float64) bool
}

// PulseDetector is the default PeakDetector. It removes the DC level of the
// IR signal, low pass filters what is left and reports a beat on every
// positive zero crossing that follows a swing of plausible amplitude.
type PulseDetector struct {
	filterFIR fir
	signal    struct {
		dc movingAverage
		ac struct {
			max  float64
			min  float64
			prev float64
		}
		rising bool
	}
	seeded bool
}

// Peak-to-trough limits of the filtered AC signal, in ADC counts.
const (
	minSwing = 20
	maxSwing = 1000
)

// NewPulseDetector returns a PeakDetector tuned for raw 18-bit MAX30102
// counts.
func NewPulseDetector() *PulseDetector {
	b := &PulseDetector{}
	b.signal.dc.decay = 15.0 / 16
	return b
}

// Check receives a raw IR sample and checks for beats. It returns true on
// rising edges (positive zero crossings) or false otherwise.
func (b *PulseDetector) Check(signal float64) bool {
	beat := false

	if !b.seeded {
		b.signal.dc.seed(signal)
		b.seeded = true
	}
	b.signal.dc.add(signal)
	ac := b.filterFIR.lowPass(signal - b.signal.dc.mean)

	// Rising edge
	if b.signal.ac.prev < 0 && ac >= 0 {
		delta := b.signal.ac.max - b.signal.ac.min
		if delta > minSwing && delta < maxSwing {
			beat = true
		}

		b.signal.rising = true
		b.signal.ac.max = 0
	}

	// Falling edge
	if b.signal.ac.prev > 0 && ac <= 0 {
		b.signal.rising = false
		b.signal.ac.min = 0
	}

	if b.signal.rising {
		if ac > b.signal.ac.prev {
			b.signal.ac.max = ac
		}
	} else {
		if ac < b.signal.ac.prev {
			b.signal.ac.min = ac
		}
	}

	b.signal.ac.prev = ac

	return beat
}
