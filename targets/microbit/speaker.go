//go:build microbit_v2

package main

import (
	"machine"

	"siren/core"

	"tinygo.org/x/drivers/tone"
)

// speaker implements core.Oscillator on the micro:bit's on-board speaker
type speaker struct {
	tone    tone.Speaker
	pwm     tone.PWM
	channel uint8
	duty    uint16
	enabled bool
}

// newSpeaker claims pwm for pin. The driver starts it at A4, which is
// core.BaseFreq, and silent.
func newSpeaker(pwm tone.PWM, pin machine.Pin) (*speaker, error) {
	t, err := tone.New(pwm, pin)
	if err != nil {
		return nil, err
	}
	t.Stop()

	// Same channel the driver picked; needed for duty cycles other than 50%
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	return &speaker{tone: t, pwm: pwm, channel: ch}, nil
}

func (s *speaker) SetPeriod(hz uint32) {
	if hz == 0 {
		return
	}
	// tone drives 50% after a period change; restore our own output level
	s.tone.SetPeriod(1000000000 / uint64(hz))
	s.apply()
}

func (s *speaker) SetDuty(perMille uint16) {
	if perMille > core.MaxDuty {
		perMille = core.MaxDuty
	}
	s.duty = perMille
	s.apply()
}

func (s *speaker) Enable() {
	s.enabled = true
	s.apply()
}

func (s *speaker) Disable() {
	s.enabled = false
	s.apply()
}

func (s *speaker) apply() {
	if !s.enabled {
		s.tone.Stop()
		return
	}
	s.pwm.Set(s.channel, uint32(uint64(s.pwm.Top())*uint64(s.duty)/core.MaxDuty))
}
