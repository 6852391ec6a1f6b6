package vitals

// BeatEstimator turns raw IR samples into beat-to-beat and averaged heart
// rate. Heart rate is expected to be between 40 and 180 beats per minute;
// beats outside that range, or closer than 300ms to the previous one, are
// dropped as noise.
type BeatEstimator struct {
	peaks PeakDetector
	rates rateSeries

	lastBeat int64 // ms
	bpm      float64
	avg      int
	valid    bool

	fingerOn uint32
}

// NewBeatEstimator returns a BeatEstimator that uses p to find pulse peaks.
// If p is nil, a PulseDetector is used.
func NewBeatEstimator(p PeakDetector, opts ...BeatOption) *BeatEstimator {
	if p == nil {
		p = NewPulseDetector()
	}
	b := &BeatEstimator{
		peaks:    p,
		fingerOn: FingerOn,
	}
	b.Options(opts...)

	return b
}

// DetectBeat processes one IR sample taken at nowMs, a monotonic millisecond
// clock. Samples below the finger-on level are ignored.
func (b *BeatEstimator) DetectBeat(ir uint32, nowMs int64) {
	if ir < b.fingerOn {
		return
	}
	if !b.peaks.Check(float64(ir)) {
		return
	}

	delta := nowMs - b.lastBeat
	if delta <= MinDelta {
		return
	}
	b.lastBeat = nowMs
	b.bpm = 60000 / float64(delta)

	// Slots are stored truncated, so the lower bound applies to the stored
	// value.
	if b.bpm >= MaxHR || int(b.bpm) <= MinHR {
		return
	}
	b.rates.add(uint8(b.bpm))

	var count int
	b.avg, count = b.rates.mean()
	b.valid = count >= MinReadings
}

// Reset drops the rate history, for example when the finger is removed. The
// time of the last beat is kept.
func (b *BeatEstimator) Reset() {
	b.valid = false
	b.rates.clear()
	b.avg = 0
	b.bpm = 0
}

// Valid reports whether enough rates were collected for AverageBPM to be
// meaningful.
func (b *BeatEstimator) Valid() bool {
	return b.valid
}

// BPM returns the rate computed from the last two accepted beats.
func (b *BeatEstimator) BPM() float64 {
	return b.bpm
}

// AverageBPM returns the mean of the stored rates.
func (b *BeatEstimator) AverageBPM() int {
	return b.avg
}
