package core

import "time"

// CountdownSeconds is how long the siren sounds before launch
const CountdownSeconds = 10

// Countdown prints n down to 1, one second apart, then "launch!". It runs in
// the main context; the sweep keeps stepping from the timer interrupt.
func Countdown(n int, sleep func(time.Duration)) {
	for t := n; t >= 1; t-- {
		DebugPrintln(itoa(t))
		sleep(time.Second)
	}
	DebugPrintln("launch!")
}
