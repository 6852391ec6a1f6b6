package max30102

import (
	"errors"
	"fmt"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

var (
	// ErrNotDevice throws an error when the device part ID does not match a
	// MAX30102 signature (0x15).
	ErrNotDevice error = errors.New("max30102: part ID does not match (0x15)")
	// ErrTimeout throws an error when a status flag never reaches the
	// expected state.
	ErrTimeout error = errors.New("max30102: timed out waiting for device")
)

// maxPolls bounds how many times a status register is read while waiting.
const maxPolls = 1000

// Sample is one raw red/IR reading, 18-bit ADC counts.
type Sample struct {
	Red uint32
	IR  uint32
}

// Device defines a MAX30102 device.
type Device struct {
	dev *i2c.Dev
	bus i2c.BusCloser

	swap bool

	// samples read from the hardware FIFO and not yet consumed
	queue [FIFODepth]Sample
	head  int
	count int
}

// New returns a new MAX30102 device. By default, this sets the LED pulse
// amplitude to 25.4mA, with a pulse width of 411us, 4 samples averaged, an
// ADC range of 16384nA and a sample rate of 200 samples/s.
//
// Argument "busName" can be used to specify the exact bus to use ("/dev/i2c-2", "I2C2", "2").
// Argument "addr" can be used to specify alternative address if default (0x57) is unavailable and changed.
// If "busName" argument is specified as an empty string "" the first available bus will be used.
func New(busName string, addr uint16, opts ...Option) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("max30102: could not initialize host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("max30102: could not open I2C bus: %w", err)
	}

	d, err := NewI2C(bus, addr, opts...)
	if err != nil {
		bus.Close()
		return nil, err
	}
	d.bus = bus

	return d, nil
}

// NewI2C returns a new MAX30102 device on an already opened bus. The bus is
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

	part, err := d.Read(RegPartID)
	if err != nil {
		return nil, fmt.Errorf("max30102: could not get part ID: %w", err)
	}
	if part != PartID {
		return nil, ErrNotDevice
	}

	if err = d.Reset(); err != nil {
		return nil, fmt.Errorf("max30102: could not reset device: %w", err)
	}
	if _, err = d.Options(
		RedPulseAmp(25.4),
		IRPulseAmp(25.4),
		SampleAverage(Avg4),
		ADCRange(ADC16384),
		SampleRate(SR200),
		PulseWidth(PW411),
		Mode(ModeSpO2),
	); err != nil {
		return nil, fmt.Errorf("max30102: could not initialize device: %w", err)
	}
	if _, err = d.Options(opts...); err != nil {
		return nil, fmt.Errorf("max30102: could not initialize device: %w", err)
	}

	return d, nil
}

// Close sets the device into power-save mode and closes the bus if it was
// opened by New.
func (d *Device) Close() error {
	err := d.Shutdown()
	if d.bus != nil {
		if cerr := d.bus.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// RevID returns the revision ID of the device.
func (d *Device) RevID() (byte, error) {
	rev, err := d.Read(RegRevID)
	if err != nil {
		return 0, fmt.Errorf("max30102: could not get revision ID: %w", err)
	}
	return rev, nil
}

// waitClear reads reg until flag is cleared.
func (d *Device) waitClear(reg, flag byte) error {
	for i := 0; i < maxPolls; i++ {
		state, err := d.Read(reg)
		if err != nil {
			return fmt.Errorf("could not wait for %#x in %#x to clear: %w", flag, reg, err)
		}
		if state&flag == 0 {
			return nil
		}
	}

	return ErrTimeout
}

// Temperature returns the current die temperature of the device in °C.
func (d *Device) Temperature() (float64, error) {
	if err := d.Write(TempCfg, TempEna); err != nil {
		return 0, fmt.Errorf("max30102: could not enable temperature: %w", err)
	}
	if err := d.waitClear(TempCfg, TempEna); err != nil {
		return 0, fmt.Errorf("max30102: could not read temperature: %w", err)
	}

	i, err := d.Read(TempInt)
	if err != nil {
		return 0, fmt.Errorf("max30102: could not read integer part of temperature: %w", err)
	}

	f, err := d.Read(TempFrac)
	if err != nil {
		return 0, fmt.Errorf("max30102: could not read fractional part of temperature: %w", err)
	}

	return float64(int8(i)) + (float64(f&0x0F) * 0.0625), nil
}

// Fahrenheit converts a temperature from °C to °F.
func Fahrenheit(c float64) float64 {
	return c*1.8 + 32
}

// Read reads a single byte from a register.
func (d *Device) Read(reg byte) (byte, error) {
	b := make([]byte, 1)
	if err := d.dev.Tx([]byte{reg}, b); err != nil {
		return 0, fmt.Errorf("max30102: could not read byte: %w", err)
	}

	return b[0], nil
}

// ReadBytes read n bytes from a register.
func (d *Device) ReadBytes(reg byte, n int) ([]byte, error) {
	b := make([]byte, n)
	if err := d.dev.Tx([]byte{reg}, b); err != nil {
		return nil, fmt.Errorf("max30102: could not read %d bytes: %w", n, err)
	}

	return b, nil
}

// Write writes a byte to a register.
func (d *Device) Write(reg, data byte) error {
	n, err := d.dev.Write([]byte{reg, data})
	if err != nil {
		return err
	}
	n-- // remove register write
	if n != 1 {
		return fmt.Errorf("write: wrong number of bytes written: want %d, got %d", 1, n)
	}

	return nil
}

// Reset resets the device. All configurations, thresholds, and data registers
// are reset to their power-on state.
func (d *Device) Reset() error {
	if err := d.Write(ModeCfg, ResetControl); err != nil {
		return fmt.Errorf("max30102: could not reset: %w", err)
	}
	if err := d.waitClear(ModeCfg, ResetControl); err != nil {
		return fmt.Errorf("max30102: could not reset: %w", err)
	}
	d.head, d.count = 0, 0

	return nil
}

// Check moves every sample waiting in the hardware FIFO to the local queue
// and returns how many were read. If the local queue is full, the oldest
// samples are dropped.
func (d *Device) Check() (int, error) {
	n, err := d.pending()
	if err != nil {
		return 0, fmt.Errorf("max30102: could not check FIFO: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	bytes, err := d.ReadBytes(FIFOData, n*sampleBytes)
	if err != nil {
		return 0, fmt.Errorf("max30102: could not read FIFO: %w", err)
	}

	for i := 0; i < n; i++ {
		b := bytes[i*sampleBytes:]
		s := Sample{
			Red: (uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])) & adcMask,
			IR:  (uint32(b[3])<<16 | uint32(b[4])<<8 | uint32(b[5])) & adcMask,
		}
		if d.swap {
			s.Red, s.IR = s.IR, s.Red
		}
		d.push(s)
	}

	return n, nil
}

// Available reports whether a sample is waiting in the local queue.
func (d *Device) Available() bool {
	return d.count > 0
}

// Next returns the oldest sample in the local queue. ok is false if the
// queue is empty.
func (d *Device) Next() (red, ir uint32, ok bool) {
	if d.count == 0 {
		return 0, 0, false
	}
	s := d.queue[d.head]
	d.head = (d.head + 1) % FIFODepth
	d.count--

	return s.Red, s.IR, true
}

func (d *Device) push(s Sample) {
	if d.count == FIFODepth {
		d.head = (d.head + 1) % FIFODepth
		d.count--
	}
	d.queue[(d.head+d.count)%FIFODepth] = s
	d.count++
}

// pending returns the number of samples in the hardware FIFO.
func (d *Device) pending() (int, error) {
	wr, err := d.Read(FIFOWrPtr)
	if err != nil {
		return 0, err
	}
	rd, err := d.Read(FIFORdPtr)
	if err != nil {
		return 0, err
	}

	if wr == rd {
		// Equal pointers are either empty or full after an overflow.
		ovf, err := d.Read(OvfCount)
		if err != nil {
			return 0, err
		}
		if ovf != 0 {
			return FIFODepth, nil
		}
		return 0, nil
	}
	return (int(wr) + FIFODepth - int(rd)) % FIFODepth, nil
}

// Shutdown sets the device into power-save mode.
func (d *Device) Shutdown() error {
	_, err := d.config(ModeCfg, ^modeSHDN, modeSHDN)

	return err
}

// Startup wakes the device from power-save mode.
func (d *Device) Startup() error {
	_, err := d.config(ModeCfg, ^modeSHDN, 0)

	return err
}
