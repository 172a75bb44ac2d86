package protocol

import "fmt"

// Encode builds a complete wire frame for the given command byte and
// parameter bytes.
//
// Frame structure:
//
//	[START][HEADER(3, raw)][CMD as nibble pair][PARAMS as nibble pairs][CHECKSUM as nibble pair][END]
//
// The checksum is the XOR fold of the raw command and parameter bytes. Both
// sides of the link use this function: the device for replies, the host for
// commands.
func Encode(header [HeaderSize]byte, command byte, params []byte) []byte {
	frame := make([]byte, 0, 1+HeaderSize+2*(1+len(params)+1)+1)

	frame = append(frame, StartOfMessage)
	frame = append(frame, header[:]...)

	checksum := command
	frame = appendNibbles(frame, command)
	for _, b := range params {
		checksum ^= b
		frame = appendNibbles(frame, b)
	}
	frame = appendNibbles(frame, checksum)

	frame = append(frame, EndOfMessage)

	return frame
}

// Decode parses and validates a complete wire frame, returning the command
// byte and parameter bytes.
//
// The frame must start with StartOfMessage, end with EndOfMessage, carry
// exactly the expected header, contain only valid nibbles in its body, and
// XOR-fold to zero once the trailing checksum is included.
func Decode(frame []byte, header [HeaderSize]byte) (command byte, params []byte, err error) {
	// Smallest frame: start + header + command pair + checksum pair + end.
	minSize := 1 + HeaderSize + 2 + 2 + 1
	if len(frame) < minSize {
		return 0, nil, fmt.Errorf("frame too short: got %d bytes, minimum is %d", len(frame), minSize)
	}

	if frame[0] != StartOfMessage {
		return 0, nil, fmt.Errorf("invalid start of message: got 0x%02X, expected 0x%02X", frame[0], StartOfMessage)
	}
	if frame[len(frame)-1] != EndOfMessage {
		return 0, nil, fmt.Errorf("invalid end of message: got 0x%02X, expected 0x%02X", frame[len(frame)-1], EndOfMessage)
	}

	for i := 0; i < HeaderSize; i++ {
		if frame[1+i] != header[i] {
			return 0, nil, fmt.Errorf("header mismatch at byte %d: got 0x%02X, expected 0x%02X", i, frame[1+i], header[i])
		}
	}

	body := frame[1+HeaderSize : len(frame)-1]
	if len(body)%2 != 0 {
		return 0, nil, fmt.Errorf("odd body length: %d wire bytes do not form whole nibble pairs", len(body))
	}

	decoded := make([]byte, 0, len(body)/2)
	var checksum byte
	for i := 0; i < len(body); i += 2 {
		hi, lo := body[i], body[i+1]
		if hi > 0x0F || lo > 0x0F {
			return 0, nil, fmt.Errorf("invalid nibble at wire offset %d", 1+HeaderSize+i)
		}
		b := hi<<4 | lo
		checksum ^= b
		decoded = append(decoded, b)
	}

	// Command byte plus checksum byte at minimum.
	if len(decoded) < 2 {
		return 0, nil, fmt.Errorf("invalid format: body holds %d decoded bytes, need at least 2", len(decoded))
	}
	if checksum != 0 {
		return 0, nil, fmt.Errorf("invalid checksum: fold is 0x%02X, expected 0x00", checksum)
	}

	// Strip the trailing checksum byte.
	return decoded[0], decoded[1 : len(decoded)-1], nil
}

// appendNibbles appends b as two wire bytes, high nibble first.
func appendNibbles(frame []byte, b byte) []byte {
	return append(frame, b>>4, b&0x0F)
}
