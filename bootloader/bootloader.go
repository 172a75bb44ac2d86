package bootloader

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jfrohnhofen/electric-piano/flash"
	"github.com/jfrohnhofen/electric-piano/protocol"
	"github.com/jfrohnhofen/electric-piano/transport"
)

// Bootloader is the device-side protocol engine. It owns the parser state
// and the message buffer for exactly one in-flight message; no message
// survives past its dispatch or rejection.
//
// Bootloader is not safe for concurrent use: the protocol is strictly
// sequential and the engine is driven by a single loop.
type Bootloader struct {
	transport transport.Transport
	flash     flash.Programmer
	config    Config

	state     state
	buf       []byte // decoded message: command byte, payload, checksum byte
	headerPos int
	nibbles   int
	pending   byte // staged high nibble
	checksum  byte
	done      bool
	exited    bool
}

// New creates a Bootloader over the given transport and flash medium.
//
// Example:
//
//	mem, _ := flash.NewMemory(64, 128)
//	boot := bootloader.New(transport.NewIO(conn), mem,
//	    bootloader.WithDeviceID(0x70),
//	    bootloader.WithExitFunc(startApplication),
//	)
func New(t transport.Transport, f flash.Programmer, opts ...Option) *Bootloader {
	if t == nil {
		panic("transport cannot be nil")
	}
	if f == nil {
		panic("flash cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// One command byte, one page number byte, one page of data and the
	// trailing checksum byte. A body that fills this completely has hit
	// the largest well-formed message (a Write).
	capacity := 1 + 1 + f.PageSize() + 1

	return &Bootloader{
		transport: t,
		flash:     f,
		config:    cfg,
		state:     stateIdle,
		buf:       make([]byte, 0, capacity),
	}
}

// Run drives the bootloader until a Quit command arrives or the transport
// fails. Each iteration blocks on one byte; there is no idle timeout.
//
// On Quit the Success reply is fully transmitted first, then the configured
// exit callback fires at most once and Run returns nil. A transport error
// is returned as-is wrapped with context.
func (b *Bootloader) Run() error {
	b.config.Logger.WithFields(logrus.Fields{
		"device_id": fmt.Sprintf("0x%02X", b.config.Header[1]),
		"version":   b.config.Header[2],
		"page_size": b.flash.PageSize(),
		"pages":     b.flash.PageCount(),
	}).Info("bootloader ready")

	for !b.done {
		c, err := b.transport.GetByte()
		if err != nil {
			return fmt.Errorf("read transport: %w", err)
		}
		if err := b.feed(c); err != nil {
			return err
		}
	}

	b.config.Logger.Info("handing off to resident application")
	if !b.exited {
		b.exited = true
		if b.config.OnExit != nil {
			b.config.OnExit()
		}
	}
	return nil
}

// reply encodes and transmits one complete frame. All replies, success or
// error, leave through here.
func (b *Bootloader) reply(command byte, params []byte) error {
	frame := protocol.Encode(b.config.Header, command, params)
	for _, c := range frame {
		if err := b.transport.PutByte(c); err != nil {
			return fmt.Errorf("transmit reply: %w", err)
		}
	}
	return nil
}

func (b *Bootloader) replySuccess() error {
	return b.reply(protocol.ReplySuccess, nil)
}

func (b *Bootloader) replyError(code byte) error {
	b.config.Logger.WithField("code", protocol.ErrorName(code)).Debug("protocol error")
	if b.config.OnError != nil {
		b.config.OnError(code)
	}
	return b.reply(protocol.ReplyError, []byte{code})
}
