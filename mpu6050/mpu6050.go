// Package mpu6050 reads acceleration and angular rate from an InvenSense
// MPU6050 over I²C.
package mpu6050

import (
	"encoding/binary"
	"errors"
	"fmt"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

var (
	// ErrNotDevice throws an error when the WHO_AM_I register does not match
	// a MPU6050 signature (0x68).
	ErrNotDevice error = errors.New("mpu6050: WHO_AM_I does not match (0x68)")
)

// Sample is one IMU reading.
type Sample struct {
	Ax, Ay, Az float64 // m/s²
	Gx, Gy, Gz float64 // °/s
	Temp       float64 // °C
}

// Device defines a MPU6050 device.
type Device struct {
	dev *i2c.Dev
	bus i2c.BusCloser

	accelRange byte
	gyroRange  byte
}

// New returns a new MPU6050 device. By default, this sets the accelerometer
// range to ±8g, the gyroscope range to ±500°/s and the low pass filter to
// 21Hz.
//
// Argument "busName" can be used to specify the exact bus to use ("/dev/i2c-1", "I2C1", "1").
// Argument "addr" can be used to specify alternative address if default (0x68) is changed (AD0 high is 0x69).
// If "busName" argument is specified as an empty string "" the first available bus will be used.
func New(busName string, addr uint16, opts ...Option) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("mpu6050: could not initialize host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("mpu6050: could not open I2C bus: %w", err)
	}

	d, err := NewI2C(bus, addr, opts...)
	if err != nil {
		bus.Close()
		return nil, err
	}
	d.bus = bus

	return d, nil
}

// NewI2C returns a new MPU6050 device on an already opened bus. The bus is
// not closed by Close.
func NewI2C(bus i2c.Bus, addr uint16, opts ...Option) (*Device, error) {
	if addr == 0 {
		addr = Addr
	}

	d := &Device{
		dev: &i2c.Dev{
			Addr: addr,
			Bus:  bus,
		},
	}

	id, err := d.read(WhoAmI)
	if err != nil {
		return nil, fmt.Errorf("mpu6050: could not get device ID: %w", err)
	}
	if id != ID {
		return nil, ErrNotDevice
	}

	// wake up, gyro X PLL as clock source
	if err := d.write(PwrMgmt1, ClockPLLX); err != nil {
		return nil, fmt.Errorf("mpu6050: could not wake device: %w", err)
	}

	if _, err = d.Options(
		AccelRange(Accel8G),
		GyroRange(Gyro500),
		Bandwidth(Band21Hz),
	); err != nil {
		return nil, fmt.Errorf("mpu6050: could not initialize device: %w", err)
	}
	if _, err = d.Options(opts...); err != nil {
		return nil, fmt.Errorf("mpu6050: could not initialize device: %w", err)
	}

	return d, nil
}

// Close puts the device to sleep and closes the bus if it was opened by New.
func (d *Device) Close() error {
	err := d.write(PwrMgmt1, Sleep)
	if d.bus != nil {
		if cerr := d.bus.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Sense reads one sample from the device.
func (d *Device) Sense() (Sample, error) {
	b := make([]byte, sampleBytes)
	if err := d.dev.Tx([]byte{AccelXOutH}, b); err != nil {
		return Sample{}, fmt.Errorf("mpu6050: could not read sample: %w", err)
	}

	raw := func(i int) float64 {
		return float64(int16(binary.BigEndian.Uint16(b[i*2:])))
	}

	a := standardGravity / accelLSB[d.accelRange>>3]
	g := 1 / gyroLSB[d.gyroRange>>3]

	return Sample{
		Ax:   raw(0) * a,
		Ay:   raw(1) * a,
		Az:   raw(2) * a,
		Temp: raw(3)/340 + 36.53,
		Gx:   raw(4) * g,
		Gy:   raw(5) * g,
		Gz:   raw(6) * g,
	}, nil
}

func (d *Device) read(reg byte) (byte, error) {
	b := make([]byte, 1)
	if err := d.dev.Tx([]byte{reg}, b); err != nil {
		return 0, fmt.Errorf("could not read %#x: %w", reg, err)
	}

	return b[0], nil
}

func (d *Device) write(reg, data byte) error {
	if _, err := d.dev.Write([]byte{reg, data}); err != nil {
		return fmt.Errorf("could not write %#x: %w", reg, err)
	}

	return nil
}
