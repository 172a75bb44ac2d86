// Package transport provides the byte-oriented link the bootloader protocol
// runs over.
//
// The protocol consumes and produces one byte at a time with blocking
// semantics and no idle timeout: a stalled link blocks the caller
// indefinitely. Transport captures exactly that contract. IO adapts any
// io.ReadWriter (net.Conn, bytes.Buffer, pipes), and Serial opens a real
// port for talking to hardware over a MIDI interface.
package transport

import (
	"bufio"
	"io"
)

// Transport is a blocking, byte-oriented link between host and device.
type Transport interface {
	// GetByte blocks until one byte is available and returns it.
	GetByte() (byte, error)

	// PutByte transmits one byte.
	PutByte(b byte) error
}

// IO adapts an io.ReadWriter to the Transport interface. Reads are
// buffered; writes go through unbuffered so replies are never held back.
type IO struct {
	r *bufio.Reader
	w io.Writer
}

// NewIO wraps a combined read/write stream such as a net.Conn.
func NewIO(rw io.ReadWriter) *IO {
	return NewIOPair(rw, rw)
}

// NewIOPair wraps separate read and write streams. Useful in tests where
// the input script and the captured output live in different buffers.
func NewIOPair(r io.Reader, w io.Writer) *IO {
	return &IO{r: bufio.NewReader(r), w: w}
}

// GetByte blocks until one byte can be read from the underlying stream.
func (t *IO) GetByte() (byte, error) {
	return t.r.ReadByte()
}

// PutByte writes one byte to the underlying stream.
func (t *IO) PutByte(b byte) error {
	_, err := t.w.Write([]byte{b})
	return err
}
