package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"siren/core"
	"siren/host/monitor"
	"siren/host/serial"
	"siren/host/sim"
	"siren/protocol"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", serial.DefaultBaud, "Baud rate (ignored for USB CDC)")
	simRun  = flag.Bool("sim", false, "Run the simulated board instead of opening a device")
	speed   = flag.Int("speed", 10, "Simulator speed-up over real time")
	steps   = flag.Int("steps", 0, "Stop after this many reports (0 = no limit)")
	verbose = flag.Bool("verbose", false, "Print every report, not only violations")
)

func main() {
	flag.Parse()

	fmt.Println("Siren Monitor - Sweep Telemetry Checker")
	fmt.Println("=======================================")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	checker := monitor.NewChecker()
	received := 0
	onReport := func(r protocol.StepReport, violations []monitor.Violation) {
		received++
		if *verbose {
			fmt.Printf("step %5d  freq %3d Hz  dir %+d\n", r.Step, r.Freq, r.Dir)
		}
		for _, v := range violations {
			fmt.Printf("VIOLATION %s\n", v)
		}
		if *steps > 0 && received >= *steps {
			cancel()
		}
	}

	var err error
	if *simRun {
		err = runSimulator(ctx, checker, onReport)
	} else {
		err = runDevice(ctx, checker, onReport)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sum := checker.Summary()
	fmt.Printf("\nSummary: %s\n", sum)
	if sum.Violations > 0 {
		os.Exit(2)
	}
}

func runDevice(ctx context.Context, checker *monitor.Checker, fn monitor.ReportFunc) error {
	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	session := monitor.NewSession()
	fmt.Printf("Connecting to board on %s...\n", *device)
	if err := session.ConnectWithConfig(cfg); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer session.Close()

	fmt.Println("Connected, waiting for step reports (Ctrl-C to stop)")
	return session.Watch(ctx, checker, fn)
}

func runSimulator(ctx context.Context, checker *monitor.Checker, fn monitor.ReportFunc) error {
	if *speed <= 0 {
		return fmt.Errorf("invalid simulator speed %d", *speed)
	}

	pr, pw := io.Pipe()
	core.SetFrameWriter(pw)
	core.SetDebugEnabled(*verbose)
	core.SetDebugWriter(func(msg string) {
		// Reports are already printed from the frames
		if len(msg) < 5 || msg[:5] != "freq " {
			fmt.Println(msg)
		}
	})
	core.StartReporter()

	tick := time.Microsecond / time.Duration(*speed)
	if tick <= 0 {
		tick = time.Nanosecond
	}
	m := sim.NewMachine(tick)
	go func() {
		defer pw.Close()
		defer m.Close()
		m.Run()
		core.DumpTimingRing()
	}()

	fmt.Printf("Simulating %d s countdown at %dx, %d us per note\n",
		core.CountdownSeconds, *speed, core.TimerToUS(core.ClockCyclesPerNote))
	err := checker.Run(ctx, pr, fn)
	pr.Close()

	if dropped := core.DroppedReports(); dropped > 0 {
		fmt.Printf("Reports dropped on the board side: %d\n", dropped)
	}
	return err
}
