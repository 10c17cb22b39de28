package core

// TimerFreq is the clock driving the periodic sweep timer. Both targets
// prescale their timer peripheral to 1 MHz, so one tick is one microsecond.
const TimerFreq = 1000000

// TimerFromUS converts microseconds to timer ticks
func TimerFromUS(us uint32) uint32 {
	return uint32(uint64(us) * TimerFreq / 1000000)
}

// TimerToUS converts timer ticks to microseconds
func TimerToUS(ticks uint32) uint32 {
	return uint32(uint64(ticks) * 1000000 / TimerFreq)
}
