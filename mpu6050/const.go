package mpu6050

// Register addresses
const (
	Config      = 0x1A
	GyroConfig  = 0x1B
	AccelConfig = 0x1C
	AccelXOutH  = 0x3B
	PwrMgmt1    = 0x6B
	WhoAmI      = 0x75
)

// Device constants
const (
	Addr = 0x68
	ID   = 0x68

	// gravity in m/s²
	standardGravity = 9.80665

	sampleBytes = 14 // accel, temperature, gyro
)

// Settings
const (
	DeviceReset byte = 0b1000_0000
	Sleep       byte = 0b0100_0000
	ClockPLLX   byte = 0b0000_0001
)

// Accelerometer full scale
const (
	Accel2G = (iota << 3)
	Accel4G
	Accel8G
	Accel16G

	rangeMask byte = 0b111_00_111
)

// Gyroscope full scale
const (
	Gyro250 = (iota << 3)
	Gyro500
	Gyro1000
	Gyro2000
)

// Digital low pass filter bandwidth, accelerometer side
const (
	Band260Hz = iota
	Band184Hz
	Band94Hz
	Band44Hz
	Band21Hz
	Band10Hz
	Band5Hz

	dlpfMask byte = 0b11111_000
)

// LSB per g for each accelerometer range.
var accelLSB = [4]float64{16384, 8192, 4096, 2048}

// LSB per °/s for each gyroscope range.
var gyroLSB = [4]float64{131, 65.5, 32.8, 16.4}
