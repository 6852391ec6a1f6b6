package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cgxeiji/vitals"
	"github.com/cgxeiji/vitals/max30102"
	"github.com/cgxeiji/vitals/mpu6050"
)

func main() {
	var (
		ppgBus = flag.String("ppg-bus", "", "I2C bus of the MAX30102")
		imuBus = flag.String("imu-bus", "", "I2C bus of the MPU6050")
		every  = flag.Duration("every", 500*time.Millisecond, "display interval")
		swap   = flag.Bool("swap", true, "swap red/IR slots (MH-ET LIVE boards)")
	)
	flag.Parse()
	log.SetPrefix("vitals: ")

	ppg, err := max30102.New(*ppgBus, 0, max30102.SwapLEDs(*swap))
	if err != nil {
		log.Fatal(err)
	}
	defer ppg.Close()

	rev, err := ppg.RevID()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("MAX30102 rev.%d detected", rev)

	imu, err := mpu6050.New(*imuBus, 0)
	if err != nil {
		log.Fatal(err)
	}
	defer imu.Close()
	log.Print("MPU6050 initialized")

	hr := vitals.NewBeatEstimator(nil)
	ox := vitals.NewOxygenEstimator()
	motion := vitals.NewMotionEstimator()

	start := time.Now()
	t := time.NewTicker(*every)
	defer t.Stop()

	for {
		if _, err := ppg.Check(); err != nil {
			log.Fatal(err)
		}
		touching := true
		for ppg.Available() {
			red, ir, _ := ppg.Next()
			hr.DetectBeat(ir, time.Since(start).Milliseconds())
			ox.Update(float64(red), float64(ir))
			touching = ir >= vitals.FingerOn
		}
		if !touching {
			hr.Reset()
		}

		s, err := imu.Sense()
		if err != nil {
			log.Fatal(err)
		}
		motion.Update(s.Ax, s.Ay, s.Az, s.Gx, s.Gy, s.Gz)

		select {
		case <-t.C:
			display(ppg, hr, ox, motion)
		default:
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func display(ppg *max30102.Device, hr *vitals.BeatEstimator, ox *vitals.OxygenEstimator, m *vitals.MotionEstimator) {
	if !ox.FingerDetected() {
		fmt.Printf("\rno finger                                   ")
	} else {
		bpm := "--"
		if hr.Valid() {
			bpm = fmt.Sprintf("%3d", hr.AverageBPM())
		}
		fmt.Printf("\rhr = %s bpm  spo2 = %5.1f%% ", bpm, ox.FilteredSpO2())
	}

	fmt.Printf("steps = %d  pitch = %+06.1f  roll = %+06.1f  gyro = %5.1f ",
		m.Steps(), m.Pitch(), m.Roll(), m.GyroMagnitude())

	if temp, err := ppg.Temperature(); err == nil {
		fmt.Printf("temp = %02.2fF", max30102.Fahrenheit(temp))
	}
}
