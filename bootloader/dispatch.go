package bootloader

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jfrohnhofen/electric-piano/protocol"
)

// dispatch validates a fully decoded message against its per-command
// contract and executes it. Validation order is fixed: payload size first,
// then page range, then the operation. A failing check replies with its
// error code and performs no flash access.
func (b *Bootloader) dispatch(command byte, payload []byte) error {
	switch command {
	case protocol.CmdPing:
		if len(payload) != 0 {
			return b.replyError(protocol.ErrInvalidPayloadSize)
		}
		return b.replySuccess()

	case protocol.CmdWrite:
		if len(payload) != b.flash.PageSize()+1 {
			return b.replyError(protocol.ErrInvalidPayloadSize)
		}
		page := int(payload[0])
		if page >= b.flash.PageCount() {
			return b.replyError(protocol.ErrInvalidPageNumber)
		}
		if err := b.writePage(page, payload[1:]); err != nil {
			return err
		}
		return b.replySuccess()

	case protocol.CmdRead:
		if len(payload) != 1 {
			return b.replyError(protocol.ErrInvalidPayloadSize)
		}
		page := int(payload[0])
		if page >= b.flash.PageCount() {
			return b.replyError(protocol.ErrInvalidPageNumber)
		}
		data, err := b.readPage(page)
		if err != nil {
			return err
		}
		return b.reply(protocol.ReplyReadData, data)

	case protocol.CmdVerify:
		if len(payload) != 1 {
			return b.replyError(protocol.ErrInvalidPayloadSize)
		}
		page := int(payload[0])
		if page >= b.flash.PageCount() {
			return b.replyError(protocol.ErrInvalidPageNumber)
		}
		sum, err := b.verifyPage(page)
		if err != nil {
			return err
		}
		return b.reply(protocol.ReplyVerifyData, []byte{sum})

	case protocol.CmdQuit:
		if len(payload) != 0 {
			return b.replyError(protocol.ErrInvalidPayloadSize)
		}
		// Reply before handoff: the success frame must be fully
		// transmitted before the loop stops.
		if err := b.replySuccess(); err != nil {
			return err
		}
		b.done = true
		return nil

	default:
		return b.replyError(protocol.ErrUnknownCommand)
	}
}

// writePage performs the erase-then-program sequence: erase the page, stage
// the data as 16-bit words, commit, and re-enable reads. The page is either
// left erased-and-rewritten or the underlying medium's own failure contract
// applies; there is no rollback.
func (b *Bootloader) writePage(page int, data []byte) error {
	if err := b.flash.PageErase(page); err != nil {
		return fmt.Errorf("erase page %d: %w", page, err)
	}
	for off := 0; off+1 < len(data); off += 2 {
		word := uint16(data[off]) | uint16(data[off+1])<<8
		if err := b.flash.PageFill(off, word); err != nil {
			return fmt.Errorf("fill page %d at offset %d: %w", page, off, err)
		}
	}
	if err := b.flash.PageWrite(page); err != nil {
		return fmt.Errorf("program page %d: %w", page, err)
	}
	if err := b.flash.ReadEnable(); err != nil {
		return fmt.Errorf("re-enable reads: %w", err)
	}

	b.config.Logger.WithFields(logrus.Fields{
		"page": page,
		"sum":  fmt.Sprintf("0x%02X", protocol.Checksum(data)),
	}).Debug("page programmed")
	return nil
}

// readPage copies the page's bytes verbatim into a fresh buffer.
func (b *Bootloader) readPage(page int) ([]byte, error) {
	data := make([]byte, b.flash.PageSize())
	for off := range data {
		c, err := b.flash.ReadByte(page, off)
		if err != nil {
			return nil, fmt.Errorf("read page %d at offset %d: %w", page, off, err)
		}
		data[off] = c
	}
	return data, nil
}

// verifyPage computes the XOR fold over every byte of the page.
func (b *Bootloader) verifyPage(page int) (byte, error) {
	var sum byte
	for off := 0; off < b.flash.PageSize(); off++ {
		c, err := b.flash.ReadByte(page, off)
		if err != nil {
			return 0, fmt.Errorf("read page %d at offset %d: %w", page, off, err)
		}
		sum ^= c
	}
	return sum, nil
}
