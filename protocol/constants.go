package protocol

// Framing tokens. All data bytes on the wire stay below 0x80; these two are
// the only control tokens the protocol produces.
const (
	// StartOfMessage is the MIDI SysEx start token (0xF0)
	StartOfMessage = 0xF0

	// EndOfMessage is the MIDI SysEx end token (0xF7)
	EndOfMessage = 0xF7
)

// Header layout. The header is sent raw (not nibble-split) directly after
// the start token.
const (
	// ManufacturerPrefix is the first header byte. 0x00 selects the
	// extended manufacturer ID space in MIDI SysEx.
	ManufacturerPrefix = 0x00

	// HeaderSize is the number of raw header bytes in every frame
	HeaderSize = 3
)

// Default header values. Both are deployment parameters, not protocol
// logic; they must match between host tool and device build.
const (
	// DefaultDeviceID identifies the electric-piano on the MIDI link
	DefaultDeviceID = 0x70

	// DefaultVersion is the current bootloader protocol revision
	DefaultVersion = 0x01
)

// Command codes sent by the host. Stable for host-tool compatibility.
const (
	// CmdPing checks that the bootloader is alive (no payload)
	CmdPing = 0x10

	// CmdWrite programs one flash page (payload: page number + page data)
	CmdWrite = 0x11

	// CmdRead reads back one flash page (payload: page number)
	CmdRead = 0x12

	// CmdVerify returns the XOR fold of one flash page (payload: page number)
	CmdVerify = 0x13

	// CmdQuit leaves the bootloader and starts the resident application
	CmdQuit = 0x14
)

// Reply codes sent by the device.
const (
	// ReplySuccess acknowledges a completed command (no parameters)
	ReplySuccess = 0x20

	// ReplyError reports a protocol or validation error (one parameter:
	// the error code)
	ReplyError = 0x21

	// ReplyReadData carries a full page of flash contents
	ReplyReadData = 0x22

	// ReplyVerifyData carries the one byte XOR fold of a page
	ReplyVerifyData = 0x23
)

// Error codes carried by ReplyError. The numeric values match the reference
// device firmware and must not be reordered.
const (
	ErrNone               = 0x00
	ErrHeaderMismatch     = 0x01
	ErrInvalidFormat      = 0x02
	ErrIncompleteMessage  = 0x03
	ErrInvalidNibble      = 0x04
	ErrInvalidChecksum    = 0x05
	ErrUnknownCommand     = 0x06
	ErrInvalidPayloadSize = 0x07
	ErrInvalidPageNumber  = 0x08
)

// Header assembles the raw header bytes for the given device ID and
// protocol version.
func Header(deviceID, version byte) [HeaderSize]byte {
	return [HeaderSize]byte{ManufacturerPrefix, deviceID, version}
}
