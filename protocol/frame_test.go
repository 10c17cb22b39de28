package protocol

import (
	"bytes"
	"testing"
)

func encodeFrame(seq uint8, r StepReport) []byte {
	output := NewScratchOutput()
	EncodeStepReport(output, seq, r)
	frame := make([]byte, len(output.Result()))
	copy(frame, output.Result())
	return frame
}

func TestEncodeStepReportLayout(t *testing.T) {
	frame := encodeFrame(0x13, StepReport{Step: 1, Freq: 450, Dir: 1})

	// sync, len, seq, msgid, step, freq(2), dir, crc(2), sync
	if len(frame) != 11 {
		t.Fatalf("Expected 11-byte frame, got %d: % X", len(frame), frame)
	}
	if frame[0] != MessageValueSync || frame[len(frame)-1] != MessageValueSync {
		t.Errorf("Expected frame to be wrapped in sync bytes, got % X", frame)
	}
	if frame[1] != 10 {
		t.Errorf("Expected length byte 10, got %d", frame[1])
	}
	if frame[2] != MessageDest|0x03 {
		t.Errorf("Expected sequence byte 0x13, got 0x%02X", frame[2])
	}

	crc := CRC16(frame[1:8])
	if frame[8] != uint8(crc>>8) || frame[9] != uint8(crc) {
		t.Errorf("CRC mismatch: frame has %02X%02X, computed %04X", frame[8], frame[9], crc)
	}
}

func TestDecoderRoundTrip(t *testing.T) {
	want := []StepReport{
		{Seq: 0, Step: 1, Freq: 450, Dir: 1},
		{Seq: 1, Step: 22, Freq: 660, Dir: -1},
		{Seq: 2, Step: 44, Freq: 440, Dir: 1},
	}

	var stream []byte
	for i, r := range want {
		stream = append(stream, encodeFrame(uint8(i), r)...)
	}

	got := NewDecoder().Feed(stream)
	if len(got) != len(want) {
		t.Fatalf("Expected %d reports, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Report %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestDecoderSplitInput(t *testing.T) {
	stream := append(encodeFrame(0, StepReport{Step: 1, Freq: 450, Dir: 1}),
		encodeFrame(1, StepReport{Step: 2, Freq: 460, Dir: 1})...)

	d := NewDecoder()
	var got []StepReport
	for _, b := range stream {
		got = append(got, d.Feed([]byte{b})...)
	}

	if len(got) != 2 || got[0].Freq != 450 || got[1].Freq != 460 {
		t.Errorf("Expected reports for 450 and 460 Hz, got %+v", got)
	}
}

func TestDecoderSkipsTextLines(t *testing.T) {
	var stream bytes.Buffer
	stream.WriteString("10\r\n")
	stream.Write(encodeFrame(0, StepReport{Step: 1, Freq: 450, Dir: 1}))
	stream.WriteString("freq 450\r\n")
	stream.Write(encodeFrame(1, StepReport{Step: 2, Freq: 460, Dir: 1}))
	stream.WriteString("launch!\r\n")

	d := NewDecoder()
	got := d.Feed(stream.Bytes())

	if len(got) != 2 {
		t.Fatalf("Expected 2 reports through the text, got %d (%+v)", len(got), got)
	}
	if got[0].Step != 1 || got[1].Step != 2 {
		t.Errorf("Expected steps 1 and 2, got %d and %d", got[0].Step, got[1].Step)
	}
}

func TestDecoderRejectsCorruptFrame(t *testing.T) {
	bad := encodeFrame(0, StepReport{Step: 1, Freq: 450, Dir: 1})
	bad[5] ^= 0x01 // flip a payload bit, CRC no longer matches

	stream := append(bad, encodeFrame(1, StepReport{Step: 2, Freq: 460, Dir: 1})...)

	d := NewDecoder()
	got := d.Feed(stream)

	if len(got) != 1 || got[0].Step != 2 {
		t.Errorf("Expected only the intact frame (step 2), got %+v", got)
	}
	if d.Discarded == 0 {
		t.Error("Expected the corrupt frame to be counted as discarded")
	}
}

func TestDecodeStepReportUnknownMessage(t *testing.T) {
	output := NewScratchOutput()
	EncodeVLQUint(output, 7)

	if _, err := DecodeStepReport(output.Result()); err != ErrUnknownMessage {
		t.Errorf("Expected ErrUnknownMessage, got %v", err)
	}
}
