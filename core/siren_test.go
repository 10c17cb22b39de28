package core

import (
	"reflect"
	"strconv"
	"testing"
	"time"
)

// callLog records hardware calls across fakes in the order they happen
type callLog struct {
	calls []string
}

func (l *callLog) add(call string) {
	l.calls = append(l.calls, call)
}

func (l *callLog) reset() {
	l.calls = nil
}

type fakeOscillator struct {
	log     *callLog
	hz      uint32
	duty    uint16
	enabled bool
}

func (o *fakeOscillator) SetPeriod(hz uint32) {
	o.hz = hz
	o.log.add("osc.period=" + strconv.Itoa(int(hz)))
}

func (o *fakeOscillator) SetDuty(perMille uint16) {
	o.duty = perMille
	o.log.add("osc.duty=" + strconv.Itoa(int(perMille)))
}

func (o *fakeOscillator) Enable() {
	o.enabled = true
	o.log.add("osc.enable")
}

func (o *fakeOscillator) Disable() {
	o.enabled = false
	o.log.add("osc.disable")
}

type fakeTimer struct {
	log       *callLog
	interrupt bool
	running   bool
	ticks     uint32
}

func (t *fakeTimer) EnableInterrupt() {
	t.interrupt = true
	t.log.add("timer.enable_irq")
}

func (t *fakeTimer) DisableInterrupt() {
	t.interrupt = false
	t.log.add("timer.disable_irq")
}

func (t *fakeTimer) ResetEvent() {
	t.log.add("timer.reset")
}

func (t *fakeTimer) Start(ticks uint32) {
	t.ticks = ticks
	t.running = true
	t.log.add("timer.start=" + strconv.Itoa(int(ticks)))
}

type fakeIRQ struct {
	log      *callLog
	enabled  bool
	onEnable func()
}

func (i *fakeIRQ) Enable() {
	if i.onEnable != nil {
		i.onEnable()
	}
	i.enabled = true
	i.log.add("irq.enable")
}

func (i *fakeIRQ) Disable() {
	i.enabled = false
	i.log.add("irq.disable")
}

type fakeHardware struct {
	log   *callLog
	osc   *fakeOscillator
	timer *fakeTimer
	irq   *fakeIRQ
}

func newFakeHardware() *fakeHardware {
	log := &callLog{}
	return &fakeHardware{
		log:   log,
		osc:   &fakeOscillator{log: log},
		timer: &fakeTimer{log: log},
		irq:   &fakeIRQ{log: log},
	}
}

func startedController(t *testing.T) (*Controller, *fakeHardware) {
	t.Helper()
	hw := newFakeHardware()
	c := NewController(NewSweep())
	c.Start(hw.osc, hw.timer, hw.irq)
	hw.log.reset()
	return c, hw
}

func TestControllerStartOrder(t *testing.T) {
	hw := newFakeHardware()
	c := NewController(NewSweep())

	handlesReady := false
	hw.irq.onEnable = func() {
		handlesReady = c.osc.Ready() && c.timer.Ready()
	}

	c.Start(hw.osc, hw.timer, hw.irq)

	expected := []string{
		"osc.period=440",
		"osc.duty=500",
		"osc.enable",
		"timer.enable_irq",
		"timer.reset",
		"timer.start=22000",
		"irq.enable",
	}
	if !reflect.DeepEqual(hw.log.calls, expected) {
		t.Errorf("Expected start sequence %v, got %v", expected, hw.log.calls)
	}
	if !handlesReady {
		t.Error("Expected both handles installed before the interrupt line was unmasked")
	}
	if c.State() != StateArmed {
		t.Errorf("Expected state armed, got %s", c.State())
	}
	if !hw.osc.enabled || hw.osc.duty != HalfDuty {
		t.Errorf("Expected oscillator enabled at duty %d, got enabled=%v duty=%d", HalfDuty, hw.osc.enabled, hw.osc.duty)
	}
}

func TestControllerStartTwicePanics(t *testing.T) {
	c, hw := startedController(t)

	expectPanic(t, "second Start", func() {
		c.Start(hw.osc, hw.timer, hw.irq)
	})
	if len(hw.log.calls) != 0 {
		t.Errorf("Expected no hardware calls from a rejected Start, got %v", hw.log.calls)
	}
}

func TestControllerStopBeforeStartPanics(t *testing.T) {
	c := NewController(NewSweep())
	expectPanic(t, "Stop before Start", func() {
		c.Stop()
	})
}

func TestControllerInterruptStepsAndRearms(t *testing.T) {
	c, hw := startedController(t)

	c.HandleInterrupt()

	expected := []string{
		"osc.period=450",
		"osc.duty=500",
		"timer.reset",
		"timer.start=22000",
	}
	if !reflect.DeepEqual(hw.log.calls, expected) {
		t.Errorf("Expected interrupt sequence %v, got %v", expected, hw.log.calls)
	}
	if c.Steps() != 1 {
		t.Errorf("Expected 1 step, got %d", c.Steps())
	}
	if c.Sweep().Frequency() != 450 || c.Sweep().Direction() != 1 {
		t.Errorf("Expected sweep at (450, +1), got (%d, %d)", c.Sweep().Frequency(), c.Sweep().Direction())
	}
}

func TestControllerProgramsEachStep(t *testing.T) {
	c, hw := startedController(t)

	var programmed []uint32
	for i := 0; i < 2*NumberSteps; i++ {
		c.HandleInterrupt()
		programmed = append(programmed, hw.osc.hz)
	}

	if programmed[NumberSteps-1] != MaxFreq {
		t.Errorf("Expected %d Hz programmed on step %d, got %d", MaxFreq, NumberSteps, programmed[NumberSteps-1])
	}
	if last := programmed[len(programmed)-1]; last != BaseFreq {
		t.Errorf("Expected %d Hz programmed at the end of the cycle, got %d", BaseFreq, last)
	}
	for i, hz := range programmed {
		if hz < BaseFreq || hz > MaxFreq {
			t.Errorf("Step %d programmed %d Hz, outside [%d, %d]", i+1, hz, BaseFreq, MaxFreq)
		}
	}
}

func TestControllerStopOrder(t *testing.T) {
	c, hw := startedController(t)
	c.HandleInterrupt()
	hw.log.reset()

	c.Stop()

	expected := []string{
		"timer.reset",
		"timer.disable_irq",
		"irq.disable",
		"osc.disable",
	}
	if !reflect.DeepEqual(hw.log.calls, expected) {
		t.Errorf("Expected stop sequence %v, got %v", expected, hw.log.calls)
	}
	if c.State() != StateStopped {
		t.Errorf("Expected state stopped, got %s", c.State())
	}
}

func TestControllerIgnoresInterruptAfterStop(t *testing.T) {
	c, hw := startedController(t)
	c.HandleInterrupt()
	c.Stop()
	hw.log.reset()

	freq := c.Sweep().Frequency()
	c.HandleInterrupt()

	if len(hw.log.calls) != 0 {
		t.Errorf("Expected a late interrupt to touch no hardware, got %v", hw.log.calls)
	}
	if c.Steps() != 1 {
		t.Errorf("Expected step count to stay at 1, got %d", c.Steps())
	}
	if c.Sweep().Frequency() != freq {
		t.Errorf("Expected frequency to stay at %d, got %d", freq, c.Sweep().Frequency())
	}

	expectPanic(t, "second Stop", func() {
		c.Stop()
	})
}

func TestControllerRun(t *testing.T) {
	hw := newFakeHardware()
	c := NewController(NewSweep())

	// Deliver one interrupt per second of countdown
	var slept []time.Duration
	sleep := func(d time.Duration) {
		slept = append(slept, d)
		c.HandleInterrupt()
	}

	c.Run(hw.osc, hw.timer, hw.irq, sleep)

	if len(slept) != CountdownSeconds {
		t.Errorf("Expected %d sleeps, got %d", CountdownSeconds, len(slept))
	}
	for i, d := range slept {
		if d != time.Second {
			t.Errorf("Sleep %d: expected 1s, got %s", i, d)
		}
	}
	if c.Steps() != CountdownSeconds {
		t.Errorf("Expected %d steps, got %d", CountdownSeconds, c.Steps())
	}
	if c.State() != StateStopped {
		t.Errorf("Expected state stopped, got %s", c.State())
	}
	if hw.osc.enabled || hw.timer.interrupt || hw.irq.enabled {
		t.Errorf("Expected all hardware disabled, got osc=%v timer_irq=%v irq=%v",
			hw.osc.enabled, hw.timer.interrupt, hw.irq.enabled)
	}
}

func TestControllerStateString(t *testing.T) {
	tests := []struct {
		state    ControllerState
		expected string
	}{
		{StateIdle, "idle"},
		{StateStarting, "starting"},
		{StateArmed, "armed"},
		{StateStopped, "stopped"},
		{ControllerState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}
