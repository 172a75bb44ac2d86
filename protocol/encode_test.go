package protocol

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testHeader = Header(DefaultDeviceID, DefaultVersion)

func TestEncodePing(t *testing.T) {
	frame := Encode(testHeader, CmdPing, nil)

	// Ping: start, 3 header bytes, command pair 0x01 0x00, checksum pair
	// 0x01 0x00 (fold of a single byte is that byte), end.
	want := []byte{
		StartOfMessage,
		ManufacturerPrefix, DefaultDeviceID, DefaultVersion,
		0x01, 0x00,
		0x01, 0x00,
		EndOfMessage,
	}
	if diff := cmp.Diff(want, frame); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeProducesOnlyValidWireBytes(t *testing.T) {
	params := make([]byte, 65)
	for i := range params {
		params[i] = byte(i * 7)
	}
	frame := Encode(testHeader, CmdWrite, params)

	if frame[0] != StartOfMessage {
		t.Fatalf("frame[0] = 0x%02X, want start token", frame[0])
	}
	if frame[len(frame)-1] != EndOfMessage {
		t.Fatalf("last byte = 0x%02X, want end token", frame[len(frame)-1])
	}
	for i, b := range frame[1+HeaderSize : len(frame)-1] {
		if b > 0x0F {
			t.Fatalf("body byte %d = 0x%02X, want a nibble", i, b)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		command byte
		params  []byte
	}{
		{name: "success reply, no params", command: ReplySuccess, params: nil},
		{name: "error reply", command: ReplyError, params: []byte{ErrInvalidChecksum}},
		{name: "verify data", command: ReplyVerifyData, params: []byte{0xAA}},
		{name: "read data, one page", command: ReplyReadData, params: bytes.Repeat([]byte{0x5A}, 64)},
		{name: "write command, page and data", command: CmdWrite, params: append([]byte{0x02}, bytes.Repeat([]byte{0xAA}, 64)...)},
		{name: "params covering all byte values", command: CmdWrite, params: func() []byte {
			p := make([]byte, 256)
			for i := range p {
				p[i] = byte(i)
			}
			return p
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := Encode(testHeader, tt.command, tt.params)

			command, params, err := Decode(frame, testHeader)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if command != tt.command {
				t.Errorf("command = 0x%02X, want 0x%02X", command, tt.command)
			}
			if !bytes.Equal(params, tt.params) {
				t.Errorf("params mismatch: got %d bytes, want %d bytes", len(params), len(tt.params))
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := Encode(testHeader, CmdPing, nil)

	corrupt := func(mutate func(f []byte)) []byte {
		f := append([]byte{}, valid...)
		mutate(f)
		return f
	}

	tests := []struct {
		name   string
		frame  []byte
		errMsg string
	}{
		{
			name:   "too short",
			frame:  valid[:5],
			errMsg: "frame too short",
		},
		{
			name:   "missing start token",
			frame:  corrupt(func(f []byte) { f[0] = 0x00 }),
			errMsg: "invalid start of message",
		},
		{
			name:   "missing end token",
			frame:  corrupt(func(f []byte) { f[len(f)-1] = 0x00 }),
			errMsg: "invalid end of message",
		},
		{
			name:   "wrong device id",
			frame:  corrupt(func(f []byte) { f[2] = 0x42 }),
			errMsg: "header mismatch",
		},
		{
			name:   "byte instead of nibble",
			frame:  corrupt(func(f []byte) { f[4] = 0x7F }),
			errMsg: "invalid nibble",
		},
		{
			name:   "flipped checksum nibble",
			frame:  corrupt(func(f []byte) { f[len(f)-2] ^= 0x01 }),
			errMsg: "invalid checksum",
		},
		{
			name: "dangling nibble",
			frame: append(append([]byte{}, valid[:len(valid)-1]...),
				0x01, EndOfMessage),
			errMsg: "odd body length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.frame, testHeader)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.errMsg)
			}
			if !bytes.Contains([]byte(err.Error()), []byte(tt.errMsg)) {
				t.Errorf("error = %v, want substring %q", err, tt.errMsg)
			}
		})
	}
}
