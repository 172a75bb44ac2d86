package bootloader

import (
	"bytes"
	"testing"

	"github.com/jfrohnhofen/electric-piano/protocol"
)

func TestParserFraming(t *testing.T) {
	ping := protocol.Encode(testHeader, protocol.CmdPing, nil)

	tests := []struct {
		name   string
		script []byte
		want   []reply
	}{
		{
			name:   "stray end token in idle is ignored",
			script: []byte{protocol.EndOfMessage},
			want:   nil,
		},
		{
			name:   "data bytes in idle are ignored",
			script: []byte{0x01, 0x02, 0x03},
			want:   nil,
		},
		{
			name:   "unrecognized control token is ignored",
			script: append([]byte{0xF5}, ping...),
			want:   []reply{wantSuccess()},
		},
		{
			name: "header mismatch",
			script: []byte{
				protocol.StartOfMessage,
				protocol.ManufacturerPrefix, 0x42, // wrong device ID
			},
			want: []reply{wantError(protocol.ErrHeaderMismatch)},
		},
		{
			name: "header mismatch on version byte",
			script: []byte{
				protocol.StartOfMessage,
				protocol.ManufacturerPrefix, protocol.DefaultDeviceID, 0x7F,
			},
			want: []reply{wantError(protocol.ErrHeaderMismatch)},
		},
		{
			name: "invalid nibble in body",
			script: []byte{
				protocol.StartOfMessage,
				protocol.ManufacturerPrefix, protocol.DefaultDeviceID, protocol.DefaultVersion,
				0x01, 0x10, // second byte is not a nibble
			},
			want: []reply{wantError(protocol.ErrInvalidNibble)},
		},
		{
			name: "end before body",
			script: []byte{
				protocol.StartOfMessage,
				protocol.ManufacturerPrefix, protocol.DefaultDeviceID,
				protocol.EndOfMessage,
			},
			want: []reply{wantError(protocol.ErrInvalidFormat)},
		},
		{
			name: "end after command byte only",
			script: []byte{
				protocol.StartOfMessage,
				protocol.ManufacturerPrefix, protocol.DefaultDeviceID, protocol.DefaultVersion,
				0x01, 0x00, // one decoded byte, no checksum byte
				protocol.EndOfMessage,
			},
			want: []reply{wantError(protocol.ErrInvalidFormat)},
		},
		{
			name:   "incomplete frame then new frame",
			script: append(ping[:6], ping...),
			want:   []reply{wantError(protocol.ErrIncompleteMessage), wantSuccess()},
		},
		{
			name:   "error resets parser for next frame",
			script: append([]byte{protocol.StartOfMessage, 0x13}, ping...),
			want:   []reply{wantError(protocol.ErrHeaderMismatch), wantSuccess()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := newTestMemory(t)
			replies, _ := runScript(t, mem, tt.script)
			checkReplies(t, replies, tt.want...)
		})
	}
}

// A body that exceeds the largest well-formed message must be cut off at
// capacity: further data bytes are rejected before the end token arrives.
func TestParserBodyOverflow(t *testing.T) {
	mem := newTestMemory(t)

	// One byte more than a full Write message (command + page number +
	// page + checksum).
	oversized := make([]byte, 1+1+mem.PageSize()+1)
	frame := protocol.Encode(testHeader, protocol.CmdWrite, oversized)

	replies, _ := runScript(t, mem, frame)
	checkReplies(t, replies, wantError(protocol.ErrInvalidPayloadSize))
	if mem.EraseCount() != 0 || mem.WriteCount() != 0 {
		t.Errorf("overflowing frame touched flash: %d erases, %d writes",
			mem.EraseCount(), mem.WriteCount())
	}
}

// The largest well-formed message fills the buffer exactly on its final
// nibble and must still be accepted. This pins down the order of the
// capacity check relative to the byte-completion increment.
func TestParserBodyAtExactCapacity(t *testing.T) {
	mem := newTestMemory(t)
	data := bytes.Repeat([]byte{0x5A}, mem.PageSize())

	replies, _ := runScript(t, mem, writeFrame(3, data))
	checkReplies(t, replies, wantSuccess())

	page, _ := mem.Page(3)
	if !bytes.Equal(page, data) {
		t.Error("full-capacity write was not programmed")
	}
}

// A dangling high nibble (odd number of data bytes) never completes a byte
// and is dropped silently, matching the reference device: the message is
// judged on the bytes that did complete.
func TestParserDanglingNibble(t *testing.T) {
	mem := newTestMemory(t)

	ping := protocol.Encode(testHeader, protocol.CmdPing, nil)
	frame := append([]byte{}, ping[:len(ping)-1]...)
	frame = append(frame, 0x01, protocol.EndOfMessage)

	replies, _ := runScript(t, mem, frame)
	checkReplies(t, replies, wantSuccess())
}

// A frame missing the low nibble of its checksum byte has only the command
// byte completed and is rejected as malformed.
func TestParserTruncatedChecksumByte(t *testing.T) {
	mem := newTestMemory(t)

	ping := protocol.Encode(testHeader, protocol.CmdPing, nil)
	frame := append([]byte{}, ping[:len(ping)-2]...) // drop low checksum nibble
	frame = append(frame, protocol.EndOfMessage)

	replies, _ := runScript(t, mem, frame)
	checkReplies(t, replies, wantError(protocol.ErrInvalidFormat))
}
