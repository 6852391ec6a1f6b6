package vitals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// ppg returns a red/IR pair whose modulation depths are equal, so the
// ratio of ratios is 1.
func ppg(i int) (red, ir float64) {
	ir = 80000 + 400*math.Sin(2*math.Pi*float64(i)/40)
	return 0.75 * ir, ir
}

func TestOxygenBlock(t *testing.T) {
	o := NewOxygenEstimator()
	for i := 0; i < NumSamples-1; i++ {
		o.Update(ppg(i))
		require.Equal(t, i+1, o.Pending())
	}
	assert.Zero(t, o.SpO2())

	o.Update(ppg(NumSamples - 1))
	assert.Zero(t, o.Pending())
	assert.Zero(t, o.sumRed)
	assert.Zero(t, o.sumIR)

	want := calSlope*(1-calPivot) + calOffset
	assert.InDelta(t, want, o.SpO2(), 1e-6)
	assert.InDelta(t, (1-fspo2)*want, o.FilteredSpO2(), 1e-6)

	for i := NumSamples; i < 2*NumSamples; i++ {
		o.Update(ppg(i))
	}
	assert.InDelta(t, want, o.SpO2(), 1e-6)
	assert.InDelta(t, fspo2*(1-fspo2)*want+(1-fspo2)*want, o.FilteredSpO2(), 1e-6)
}

func TestOxygenSeedsMeans(t *testing.T) {
	o := NewOxygenEstimator()
	o.Update(40000, 60000)
	assert.Equal(t, 40000.0, o.MeanRed())
	assert.Equal(t, 60000.0, o.MeanIR())
	assert.Zero(t, o.sumRed)
	assert.Zero(t, o.sumIR)

	o.Update(40000+2000, 60000)
	assert.InDelta(t, 40000+2000*(1-frate), o.MeanRed(), 1e-9)
}

func TestOxygenFlatBlockDiscarded(t *testing.T) {
	o := NewOxygenEstimator()
	for i := 0; i < NumSamples; i++ {
		o.Update(60000, 80000)
	}

	// no deviation at all, R is undefined
	assert.Zero(t, o.SpO2())
	assert.Zero(t, o.FilteredSpO2())
	assert.Zero(t, o.Pending())
	assert.True(t, o.FingerDetected())
}

func TestOxygenFingerDetected(t *testing.T) {
	o := NewOxygenEstimator()
	o.Update(20000, 50000)
	assert.True(t, o.FingerDetected())

	o = NewOxygenEstimator()
	o.Update(800, 1200)
	assert.False(t, o.FingerDetected())

	o.Options(FingerThreshold(1000))
	assert.True(t, o.FingerDetected())
}

func TestOxygenOptions(t *testing.T) {
	o := NewOxygenEstimator(BlockSize(10), Calibration(-20, 0.5, 104))
	for i := 0; i < 10; i++ {
		o.Update(ppg(i))
	}
	assert.Zero(t, o.Pending())
	assert.InDelta(t, -20*(1-0.5)+104, o.SpO2(), 1e-6)

	old := o.Options(BlockSize(0))
	assert.Equal(t, 10, o.block)
	o.Options(BlockSize(25))
	o.Options(old)
	assert.Equal(t, 10, o.block)

	old = o.Options(Decay(1.5))
	assert.Equal(t, 1.0, o.red.decay)
	assert.Equal(t, 1.0, o.ir.decay)
	o.Options(old)
	assert.Equal(t, frate, o.ir.decay)

	old = o.Options(Smoothing(-1))
	assert.Zero(t, o.filtered.decay)
	o.Options(old)
	assert.Equal(t, fspo2, o.filtered.decay)
}

func TestOxygenAccessorsIdempotent(t *testing.T) {
	o := NewOxygenEstimator()
	for i := 0; i < 3*NumSamples/2; i++ {
		o.Update(ppg(i))
	}

	assert.Equal(t, o.SpO2(), o.SpO2())
	assert.Equal(t, o.FilteredSpO2(), o.FilteredSpO2())
	assert.Equal(t, o.FingerDetected(), o.FingerDetected())
	assert.Equal(t, o.Pending(), o.Pending())
}

func TestOxygenBlockResetProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		o := NewOxygenEstimator()
		blocks := rapid.IntRange(1, 4).Draw(t, "blocks")
		for i := 0; i < blocks*NumSamples; i++ {
			red := rapid.Float64Range(1000, 250000).Draw(t, "red")
			ir := rapid.Float64Range(1000, 250000).Draw(t, "ir")
			o.Update(red, ir)
			if o.Pending() < 0 || o.Pending() >= NumSamples {
				t.Fatalf("pending = %d", o.Pending())
			}
		}

		if o.Pending() != 0 || o.sumRed != 0 || o.sumIR != 0 {
			t.Fatalf("block not reset: n=%d red=%v ir=%v", o.Pending(), o.sumRed, o.sumIR)
		}
		if math.IsNaN(o.FilteredSpO2()) {
			t.Fatalf("filtered SpO2 is NaN")
		}
	})
}
