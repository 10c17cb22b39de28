package protocol

import "errors"

var (
	ErrBadFrame       = errors.New("malformed frame")
	ErrUnknownMessage = errors.New("unknown message id")
)

// StepReport describes one sweep step as seen by the timer interrupt
type StepReport struct {
	Seq  uint8  // Frame sequence (low 4 bits), filled in by the decoder
	Step uint32 // Interrupts handled so far, starting at 1
	Freq int32  // Frequency programmed by this step (Hz)
	Dir  int32  // Direction of the next step, +1 or -1
}

// EncodeStepReport appends a complete frame, led by a sync byte, to output.
// seq is reduced to its low 4 bits.
func EncodeStepReport(output OutputBuffer, seq uint8, r StepReport) {
	output.Output([]byte{MessageValueSync})

	start := output.CurPosition()
	output.Output([]byte{0, MessageDest | (seq & MessageSeqMask)}) // length placeholder

	EncodeVLQUint(output, MsgStepReport)
	EncodeVLQUint(output, r.Step)
	EncodeVLQInt(output, r.Freq)
	EncodeVLQInt(output, r.Dir)

	msgLen := output.CurPosition() - start + MessageTrailerSize
	output.Update(start+MessagePositionLen, uint8(msgLen))

	crc := CRC16(output.DataSince(start))
	output.Output([]byte{uint8(crc >> 8), uint8(crc), MessageValueSync})
}

// DecodeStepReport parses the payload of a frame (between header and trailer)
func DecodeStepReport(payload []byte) (StepReport, error) {
	data := payload
	msgID, err := DecodeVLQUint(&data)
	if err != nil {
		return StepReport{}, err
	}
	if msgID != MsgStepReport {
		return StepReport{}, ErrUnknownMessage
	}

	var r StepReport
	if r.Step, err = DecodeVLQUint(&data); err != nil {
		return StepReport{}, err
	}
	if r.Freq, err = DecodeVLQInt(&data); err != nil {
		return StepReport{}, err
	}
	if r.Dir, err = DecodeVLQInt(&data); err != nil {
		return StepReport{}, err
	}
	if len(data) != 0 {
		return StepReport{}, ErrBadFrame
	}
	return r, nil
}
