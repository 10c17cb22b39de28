package protocol

// Decoder extracts step reports from a byte stream that may also carry
// text log lines or line noise. It is not safe for concurrent use.
type Decoder struct {
	input          *FifoBuffer
	isSynchronized bool

	// Discarded counts frames that passed the CRC but did not decode,
	// plus every loss of synchronisation.
	Discarded uint32
}

// NewDecoder creates a decoder that starts synchronised
func NewDecoder() *Decoder {
	return &Decoder{
		input:          NewFifoBuffer(MessageMax),
		isSynchronized: true,
	}
}

// Feed appends data to the decoder and returns every report it completes
func (d *Decoder) Feed(data []byte) []StepReport {
	var reports []StepReport
	for len(data) > 0 {
		n := d.input.Write(data)
		data = data[n:]
		reports = d.process(reports)

		if n == 0 && d.input.Free() == 0 {
			// A partial frame can never fill the buffer; drop it and resync
			d.input.Reset()
			d.setSynchronized(false)
		}
	}
	return reports
}

// process parses complete frames from the input buffer
func (d *Decoder) process(reports []StepReport) []StepReport {
	data := d.input.Data()
	total := len(data)

	for len(data) > 0 {
		if !d.isSynchronized {
			// Look for sync byte
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}

			if syncPos >= 0 {
				data = data[syncPos+1:]
				d.isSynchronized = true
			} else {
				data = nil
			}
			continue
		}

		// Skip leading sync bytes
		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.setSynchronized(false)
			continue
		}

		if len(data) < MessagePositionSeq+1 {
			break
		}
		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.setSynchronized(false)
			continue
		}

		// Wait for full message
		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.setSynchronized(false)
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.setSynchronized(false)
			continue
		}

		r, err := DecodeStepReport(data[MessageHeaderSize : msgLen-MessageTrailerSize])
		data = data[msgLen:]
		if err != nil {
			d.Discarded++
			continue
		}
		r.Seq = seq & MessageSeqMask
		reports = append(reports, r)
	}

	// Remove consumed bytes from input buffer
	d.input.Pop(total - len(data))
	return reports
}

func (d *Decoder) setSynchronized(val bool) {
	if !val && d.isSynchronized {
		d.Discarded++
	}
	d.isSynchronized = val
}
