package mpu6050

import "fmt"

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

func (d *Device) config(reg, mask, flag byte) (byte, error) {
	cfg, err := d.read(reg)
	if err != nil {
		return 0, err
	}
	old := cfg &^ mask
	cfg &= mask
	cfg |= flag
	if err := d.write(reg, cfg); err != nil {
		return 0, err
	}

	return old, nil
}

// AccelRange sets the accelerometer full scale.
func AccelRange(r byte) Option {
	return func(d *Device) (Option, error) {
		r &^= rangeMask
		if _, err := d.config(AccelConfig, rangeMask, r); err != nil {
			return nil, fmt.Errorf("mpu6050: could not configure accelerometer range: %w", err)
		}
		old := d.accelRange
		d.accelRange = r

		return AccelRange(old), nil
	}
}

// GyroRange sets the gyroscope full scale.
func GyroRange(r byte) Option {
	return func(d *Device) (Option, error) {
		r &^= rangeMask
		if _, err := d.config(GyroConfig, rangeMask, r); err != nil {
			return nil, fmt.Errorf("mpu6050: could not configure gyroscope range: %w", err)
		}
		old := d.gyroRange
		d.gyroRange = r

		return GyroRange(old), nil
	}
}

// Bandwidth sets the digital low pass filter applied to both sensors.
func Bandwidth(b byte) Option {
	return func(d *Device) (Option, error) {
		old, err := d.config(Config, dlpfMask, b&^dlpfMask)
		if err != nil {
			return nil, fmt.Errorf("mpu6050: could not configure bandwidth: %w", err)
		}

		return Bandwidth(old), nil
	}
}
