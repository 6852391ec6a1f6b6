package mpu6050

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/periph/conn/i2c/i2ctest"
)

func rd(reg, v byte) i2ctest.IO {
	return i2ctest.IO{Addr: Addr, W: []byte{reg}, R: []byte{v}}
}

func wr(reg, v byte) i2ctest.IO {
	return i2ctest.IO{Addr: Addr, W: []byte{reg, v}}
}

func initOps() []i2ctest.IO {
	return []i2ctest.IO{
		rd(WhoAmI, ID),
		wr(PwrMgmt1, ClockPLLX),
		rd(AccelConfig, 0), wr(AccelConfig, Accel8G),
		rd(GyroConfig, 0), wr(GyroConfig, Gyro500),
		rd(Config, 0), wr(Config, Band21Hz),
	}
}

func TestNewI2C(t *testing.T) {
	bus := &i2ctest.Playback{Ops: initOps()}
	_, err := NewI2C(bus, 0)
	require.NoError(t, err)
	assert.NoError(t, bus.Close())
}

func TestNewI2CNotDevice(t *testing.T) {
	bus := &i2ctest.Playback{Ops: []i2ctest.IO{rd(WhoAmI, 0x70)}}
	_, err := NewI2C(bus, 0)
	assert.ErrorIs(t, err, ErrNotDevice)
}

func TestSense(t *testing.T) {
	bus := &i2ctest.Playback{Ops: append(initOps(), i2ctest.IO{
		Addr: Addr,
		W:    []byte{AccelXOutH},
		R: []byte{
			0x10, 0x00, // ax  4096 = 1g
			0xF0, 0x00, // ay -4096
			0x00, 0x00, // az
			0x00, 0x00, // temp
			0x00, 0x83, // gx 131
			0xFF, 0x7D, // gy -131
			0x00, 0x00, // gz
		},
	})}
	d, err := NewI2C(bus, 0)
	require.NoError(t, err)

	s, err := d.Sense()
	require.NoError(t, err)
	assert.InDelta(t, standardGravity, s.Ax, 1e-9)
	assert.InDelta(t, -standardGravity, s.Ay, 1e-9)
	assert.Zero(t, s.Az)
	assert.InDelta(t, 36.53, s.Temp, 1e-9)
	assert.InDelta(t, 2, s.Gx, 1e-9)
	assert.InDelta(t, -2, s.Gy, 1e-9)
	assert.Zero(t, s.Gz)
	assert.NoError(t, bus.Close())
}

func TestRangeOptions(t *testing.T) {
	bus := &i2ctest.Playback{Ops: append(initOps(),
		rd(AccelConfig, Accel8G), wr(AccelConfig, Accel2G),
		rd(GyroConfig, Gyro500), wr(GyroConfig, Gyro2000),
		i2ctest.IO{Addr: Addr, W: []byte{AccelXOutH}, R: []byte{
			0x40, 0x00, 0, 0, 0, 0, 0, 0, 0x00, 0x29, 0, 0, 0, 0,
		}},
	)}
	d, err := NewI2C(bus, 0)
	require.NoError(t, err)

	_, err = d.Options(AccelRange(Accel2G), GyroRange(Gyro2000))
	require.NoError(t, err)

	s, err := d.Sense()
	require.NoError(t, err)
	assert.InDelta(t, standardGravity, s.Ax, 1e-9) // 16384 at ±2g
	assert.InDelta(t, 41/16.4, s.Gx, 1e-9)
	assert.NoError(t, bus.Close())
}
