package transport

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestIOPairReadsScriptThenEOF(t *testing.T) {
	script := []byte{0xF0, 0x00, 0x70, 0xF7}
	var out bytes.Buffer
	tr := NewIOPair(bytes.NewReader(script), &out)

	for i, want := range script {
		b, err := tr.GetByte()
		if err != nil {
			t.Fatalf("GetByte #%d: %v", i, err)
		}
		if b != want {
			t.Errorf("byte #%d = 0x%02X, want 0x%02X", i, b, want)
		}
	}

	if _, err := tr.GetByte(); !errors.Is(err, io.EOF) {
		t.Errorf("GetByte past script returned %v, want io.EOF", err)
	}
}

func TestIOPutByteWritesThrough(t *testing.T) {
	var out bytes.Buffer
	tr := NewIOPair(bytes.NewReader(nil), &out)

	for _, b := range []byte{0xF0, 0x01, 0xF7} {
		if err := tr.PutByte(b); err != nil {
			t.Fatalf("PutByte(0x%02X): %v", b, err)
		}
	}

	// Writes are not buffered: every byte is visible immediately.
	if got := out.Bytes(); !bytes.Equal(got, []byte{0xF0, 0x01, 0xF7}) {
		t.Errorf("output = % X, want F0 01 F7", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("link down")
}

func TestIOPutByteReportsWriteError(t *testing.T) {
	tr := NewIOPair(bytes.NewReader(nil), failingWriter{})

	if err := tr.PutByte(0x00); err == nil {
		t.Error("PutByte on a failing writer returned nil")
	}
}

func TestIOWrapsReadWriter(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x42})

	tr := NewIO(&buf)
	b, err := tr.GetByte()
	if err != nil {
		t.Fatalf("GetByte: %v", err)
	}
	if b != 0x42 {
		t.Errorf("GetByte = 0x%02X, want 0x42", b)
	}
}
