package vitals

// Half of a symmetric 23-tap low pass filter, run over a 32 sample ring. The
// coefficients are Q15 fixed-point gains, hence the firScale on the output.
var firC = [12]float64{172, 321, 579, 927, 1360, 1858, 2390, 2916, 3391, 3768, 4012, 4096}

const (
	firSize  = 32
	firMask  = firSize - 1
	firScale = 1.0 / 32768
)

type fir struct {
	buffer [firSize]float64
	idx    int
}

// lowPass applies the low pass FIR filter to an AC sample.
func (f *fir) lowPass(delta float64) float64 {
	f.buffer[f.idx] = delta

	z := firC[11] * f.buffer[(f.idx-11)&firMask]

	for i := 0; i < 11; i++ {
		z += firC[i] * (f.buffer[(f.idx-i)&firMask] + f.buffer[(f.idx-22+i)&firMask])
	}

	f.idx++
	f.idx &= firMask

	return z * firScale
}
