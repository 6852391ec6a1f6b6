package max30102

import (
	"fmt"
	"math"
)

// Option defines a functional option for the device.
type Option func(d *Device) (Option, error)

// Options set different configuration options and returns the previous value
// of the last option passed.
func (d *Device) Options(options ...Option) (Option, error) {
	var old Option
	var err error
	for _, opt := range options {
		old, err = opt(d)
		if err != nil {
			return nil, err
		}
	}

	return old, nil
}

// config keeps the bits of reg selected by mask, sets flag and returns the
// bits that were replaced.
func (d *Device) config(reg, mask, flag byte) (byte, error) {
	cfg, err := d.Read(reg)
	if err != nil {
		return 0, fmt.Errorf("could not get %#x from %#x: %w", mask, reg, err)
	}
	old := cfg &^ mask
	cfg &= mask
	cfg |= flag
	if err := d.Write(reg, cfg); err != nil {
		return 0, fmt.Errorf("could not set %#x in %#x: %w", flag, reg, err)
	}

	return old, nil
}

// Mode sets the operation mode of the device. The FIFO pointers are cleared.
func Mode(mode byte) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(ModeCfg, modeMask, mode)
		if err != nil {
			return nil, fmt.Errorf("max30102: could not configure mode: %w", err)
		}

		if err = d.Write(FIFOWrPtr, 0); err != nil {
			return nil, fmt.Errorf("max30102: could not configure mode: %w", err)
		}
		if err = d.Write(OvfCount, 0); err != nil {
			return nil, fmt.Errorf("max30102: could not configure mode: %w", err)
		}
		if err = d.Write(FIFORdPtr, 0); err != nil {
			return nil, fmt.Errorf("max30102: could not configure mode: %w", err)
		}
		d.head, d.count = 0, 0

		return Mode(old), nil
	}
}

func ledAmp(current float64) byte {
	if current > 51 {
		current = 51
	}
	if current < 0 {
		current = 0
	}
	return byte(math.Round(current * 5))
}

// RedPulseAmp sets the pulse amplitude of the red LED. It accepts values
// from 0.0 to 51.0 mA and the value is rounded to the nearest multiple of 0.2.
func RedPulseAmp(current float64) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(Led1PA, 0, ledAmp(current))
		if err != nil {
			return nil, fmt.Errorf("max30102: could not configure red LED pulse amplitude: %w", err)
		}

		return RedPulseAmp(float64(old) / 5), nil
	}
}

// IRPulseAmp sets the pulse amplitude of the IR LED. It accepts values
// from 0.0 to 51.0 mA and the value is rounded to the nearest multiple of 0.2.
func IRPulseAmp(current float64) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(Led2PA, 0, ledAmp(current))
		if err != nil {
			return nil, fmt.Errorf("max30102: could not configure IR LED pulse amplitude: %w", err)
		}

		return IRPulseAmp(float64(old) / 5), nil
	}
}

// SampleAverage sets how many consecutive samples the device averages into
// each FIFO entry.
func SampleAverage(avg byte) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(FIFOCfg, avgMask, avg)
		if err != nil {
			return nil, fmt.Errorf("max30102: could not configure sample average: %w", err)
		}

		return SampleAverage(old), nil
	}
}

// ADCRange sets the full scale of the SpO2 ADC.
func ADCRange(r byte) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(SpO2Cfg, adcRangeMask, r)
		if err != nil {
			return nil, fmt.Errorf("max30102: could not configure ADC range: %w", err)
		}

		return ADCRange(old), nil
	}
}

// PulseWidth sets the pulse width of the device.
func PulseWidth(pw byte) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(SpO2Cfg, pwMask, pw)
		if err != nil {
			return nil, fmt.Errorf("max30102: could not configure pulse width: %w", err)
		}

		return PulseWidth(old), nil
	}
}

// SampleRate sets the SpO2 sample rate control of the device.
func SampleRate(sr byte) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(SpO2Cfg, srMask, sr)
		if err != nil {
			return nil, fmt.Errorf("max30102: could not configure sample rate: %w", err)
		}

		return SampleRate(old), nil
	}
}

// SwapLEDs exchanges the red and IR values of every sample read afterwards.
// Some boards (MH-ET LIVE) wire the LEDs in the opposite slots.
func SwapLEDs(swap bool) Option {
	return func(d *Device) (Option, error) {
		old := d.swap
		d.swap = swap
		return SwapLEDs(old), nil
	}
}
