package protocol

import "testing"

func TestCRC16(t *testing.T) {
	testCases := []struct {
		data     []byte
		expected uint16
	}{
		{data: []byte{}, expected: 0xFFFF},
		{data: []byte{0x00}, expected: 0x0F87},
		{data: []byte{0xFF}, expected: 0x00FF},
		{data: []byte{5, MessageDest}, expected: 0x9E81},
		{data: []byte("123456789"), expected: 0x6F91}, // CRC-16/MCRF4XX check value
	}

	for i, tc := range testCases {
		result := CRC16(tc.data)
		if result != tc.expected {
			t.Errorf("Test case %d: expected CRC16(%v) = 0x%04X, got 0x%04X", i, tc.data, tc.expected, result)
		}
	}
}

func TestCRC16Different(t *testing.T) {
	// Test that different inputs produce different outputs
	data1 := []byte{0x01, 0x02, 0x03}
	data2 := []byte{0x01, 0x02, 0x04}

	crc1 := CRC16(data1)
	crc2 := CRC16(data2)

	if crc1 == crc2 {
		t.Errorf("CRC16 collision: both inputs produced %04X", crc1)
	}
}
