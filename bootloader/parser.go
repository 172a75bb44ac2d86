package bootloader

import "github.com/jfrohnhofen/electric-piano/protocol"

// Parser states. The parser rests in stateIdle between frames and returns
// there after every dispatch and every error.
type state int

const (
	stateIdle state = iota
	stateMatchingHeader
	stateReadingBody
	stateExpectingEnd
)

// feed advances the parser by one received byte. Bytes >= 0x80 are framing
// control tokens; only the start and end tokens are meaningful, anything
// else in that range is not produced by the protocol and is ignored. Bytes
// < 0x80 are data bytes.
func (b *Bootloader) feed(c byte) error {
	switch {
	case c < 0x80:
		return b.feedData(c)
	case c == protocol.StartOfMessage:
		// A start token inside a frame means the previous frame was
		// left unterminated. Advisory only: the new frame starts
		// regardless.
		var err error
		if b.state != stateIdle {
			err = b.replyError(protocol.ErrIncompleteMessage)
		}
		b.state = stateMatchingHeader
		b.headerPos = 0
		b.nibbles = 0
		b.checksum = 0
		b.buf = b.buf[:0]
		return err
	case c == protocol.EndOfMessage:
		return b.finish()
	}
	return nil
}

func (b *Bootloader) feedData(c byte) error {
	switch b.state {
	case stateMatchingHeader:
		if c != b.config.Header[b.headerPos] {
			b.state = stateIdle
			return b.replyError(protocol.ErrHeaderMismatch)
		}
		b.headerPos++
		if b.headerPos == protocol.HeaderSize {
			b.state = stateReadingBody
			b.nibbles = 0
		}

	case stateReadingBody:
		if c > 0x0F {
			b.state = stateIdle
			return b.replyError(protocol.ErrInvalidNibble)
		}
		if b.nibbles%2 == 0 {
			b.pending = c << 4
		} else {
			v := b.pending | c
			b.checksum ^= v
			b.buf = append(b.buf, v)
			// Capacity is checked after the completing nibble:
			// the largest well-formed message fills the buffer
			// exactly and still gets its end token accepted.
			if len(b.buf) == cap(b.buf) {
				b.state = stateExpectingEnd
			}
		}
		b.nibbles++

	case stateExpectingEnd:
		b.state = stateIdle
		return b.replyError(protocol.ErrInvalidPayloadSize)
	}
	return nil
}

// finish handles the end token: validate the accumulated message, verify
// the checksum fold, and dispatch. The parser is back in stateIdle on every
// path out of here.
func (b *Bootloader) finish() error {
	if b.state == stateIdle {
		// Stray end token.
		return nil
	}

	prev := b.state
	b.state = stateIdle

	// A frame whose body was never reached, or that carries fewer than
	// two decoded bytes, has no checksum to validate. A dangling high
	// nibble is dropped silently; the checksum catches real corruption.
	if prev == stateMatchingHeader || len(b.buf) <= 1 {
		return b.replyError(protocol.ErrInvalidFormat)
	}
	if b.checksum != 0 {
		return b.replyError(protocol.ErrInvalidChecksum)
	}

	msg := b.buf[:len(b.buf)-1] // strip checksum byte
	return b.dispatch(msg[0], msg[1:])
}
