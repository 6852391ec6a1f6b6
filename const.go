package vitals

// Heart rate
const (
	// RateSize is the number of beat-to-beat rates kept for the average.
	RateSize = 8

	MinHR       = 40  // bpm
	MaxHR       = 180 // bpm
	MinDelta    = 300 // ms between beats, 200 bpm
	MinReadings = 3

	// FingerOn is the raw IR level under which no contact is assumed.
	FingerOn = 30000
)

// SpO2
const (
	NumSamples = 100

	frate = 0.95 // running mean decay
	fspo2 = 0.7  // cross-block smoothing

	// Empirical calibration: SpO2 = slope*(R - pivot) + offset
	calSlope  = -23.3
	calPivot  = 0.4
	calOffset = 100.0
)

// Steps
const (
	StepHigh = 12.0 // m/s²
	StepLow  = 10.0 // m/s²
)
