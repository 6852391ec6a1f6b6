package vitals

// movingAverage stores an exponentially weighted moving average. Each new
// value contributes (1 - decay) of itself to the mean.
type movingAverage struct {
	mean  float64
	decay float64
}

func (m *movingAverage) add(n float64) {
	m.mean = m.mean*m.decay + n*(1-m.decay)
}

// seed pre-fills the mean so the first values are not pulled towards zero.
func (m *movingAverage) seed(n float64) {
	m.mean = n
}

func (m *movingAverage) reset() {
	m.mean = 0
}
