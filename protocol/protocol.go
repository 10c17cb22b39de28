// Package protocol implements the siren's diagnostic telemetry framing.
//
// Frames borrow Klipper's block layout: a length byte, a sequence byte,
// a VLQ-encoded payload, a CRC16 and a 0x7E sync byte. The device also puts
// a sync byte in front of every frame so a reader sharing the UART with
// plain-text log lines can resynchronise on the next frame.
package protocol

// Protocol constants
const (
	MessageMax         = 512 // Maximum scratch buffer size
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	// Message sequence masks
	MessageSeqMask = 0x0F
)

// Message IDs carried as the first VLQ of a payload
const (
	MsgStepReport = 1
)
