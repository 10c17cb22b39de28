package core

import (
	"io"
	"sync"
	"sync/atomic"

	"siren/protocol"
)

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures a sweep event for post-mortem analysis
type TimingEvent struct {
	EventType uint8  // Event type code
	Step      uint32 // Interrupts handled when the event was recorded
	Value1    int32  // Context-dependent value
	Value2    int32  // Context-dependent value
}

// Event type codes
const (
	EvtStart = 1 // Timer armed, v1=frequency
	EvtStep  = 2 // Frequency stepped, v1=frequency v2=direction
	EvtFlip  = 3 // Direction reversed, v1=frequency v2=new direction
	EvtStop  = 4 // Timer interrupt and output disabled
)

const (
	TimingRingSize = 32 // Keep last 32 events for post-mortem

	reportQueueLen = 16
)

var (
	// debugPrintln is the platform debug print function, nil until set
	debugPrintln atomic.Pointer[DebugWriter]

	// debugEnabled controls whether debug output is active
	debugEnabled atomic.Bool

	// frameWriter receives binary step reports, nil until set
	frameWriter atomic.Pointer[io.Writer]

	// Timing capture ring buffer, only touched with interrupts masked
	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8

	// Step reports queued from the interrupt handler
	reportChan     atomic.Pointer[chan protocol.StepReport]
	reporterOnce   sync.Once
	droppedReports atomic.Uint32
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		debugPrintln.Store(nil)
		return
	}
	debugPrintln.Store(&writer)
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled.Load()
}

// SetFrameWriter sets where binary step reports go. nil disables them.
func SetFrameWriter(w io.Writer) {
	if w == nil {
		frameWriter.Store(nil)
		return
	}
	frameWriter.Store(&w)
}

// DebugPrintln writes a debug message using the platform-specific writer.
// It blocks for as long as the writer does; never call it from an interrupt.
func DebugPrintln(msg string) {
	if !debugEnabled.Load() {
		return
	}
	if w := debugPrintln.Load(); w != nil {
		(*w)(msg)
	}
}

// StartReporter starts the goroutine that drains step reports into the
// debug and frame writers. Safe to call more than once.
func StartReporter() {
	reporterOnce.Do(func() {
		ch := make(chan protocol.StepReport, reportQueueLen)
		reportChan.Store(&ch)
		go reportWorker(ch)
	})
}

// reportWorker runs in background, drains the report channel
func reportWorker(ch <-chan protocol.StepReport) {
	out := protocol.NewScratchOutput()
	var seq uint8
	for r := range ch {
		DebugPrintln("freq " + itoa(int(r.Freq)))

		if w := frameWriter.Load(); w != nil {
			out.Reset()
			protocol.EncodeStepReport(out, seq, r)
			seq++
			_, _ = (*w).Write(out.Result())
		}
	}
}

// ReportStep queues a step report without blocking, so it is safe from the
// interrupt handler. It returns false and counts a drop when the queue is
// full or the reporter is not running.
func ReportStep(r protocol.StepReport) bool {
	ch := reportChan.Load()
	if ch == nil {
		droppedReports.Add(1)
		return false
	}
	select {
	case *ch <- r:
		return true
	default:
		droppedReports.Add(1)
		return false
	}
}

// PendingReports returns how many step reports are waiting for the reporter
func PendingReports() int {
	ch := reportChan.Load()
	if ch == nil {
		return 0
	}
	return len(*ch)
}

// DroppedReports returns how many step reports were lost
func DroppedReports() uint32 {
	return droppedReports.Load()
}

// RecordTiming captures a timing event in the ring buffer.
// Callers hold interrupts masked.
func RecordTiming(eventType uint8, step uint32, value1, value2 int32) {
	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		EventType: eventType,
		Step:      step,
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead = (idx + 1) % TimingRingSize
}

// TimingEvents returns the recorded events, oldest first
func TimingEvents() []TimingEvent {
	state := disableInterrupts()
	ring := timingRing
	start := timingRingHead
	restoreInterrupts(state)

	events := make([]TimingEvent, 0, TimingRingSize)
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := ring[(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpTimingRing outputs the timing ring buffer (call after Stop)
func DumpTimingRing() {
	if !IsDebugEnabled() {
		return
	}
	DebugPrintln("[TIMING] === Timing Ring Dump ===")
	DebugPrintln("[TIMING] Reports dropped: " + utoa(DroppedReports()))

	for _, evt := range TimingEvents() {
		var name string
		switch evt.EventType {
		case EvtStart:
			name = "START"
		case EvtStep:
			name = "STEP"
		case EvtFlip:
			name = "FLIP"
		case EvtStop:
			name = "STOP"
		default:
			name = "UNKNOWN"
		}

		DebugPrintln("[TIMING] " + name +
			" step=" + utoa(evt.Step) +
			" v1=" + itoa(int(evt.Value1)) +
			" v2=" + itoa(int(evt.Value2)))
	}
	DebugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
}
