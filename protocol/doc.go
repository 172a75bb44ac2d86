// Package protocol implements the electric-piano bootloader wire format.
//
// The bootloader speaks MIDI System Exclusive messages so that it can share
// the instrument's MIDI link with regular traffic. Every message is framed
// by the SysEx start and end tokens and carries a three byte header that
// identifies the device and the protocol revision:
//
//	[0xF0][0x00][DEVICE_ID][VERSION][nibble pairs: CMD+PARAMS][nibble pair: CHECKSUM][0xF7]
//
// MIDI reserves bytes >= 0x80 for control tokens, so the command byte, the
// parameter bytes and the checksum are each split into two nibbles (high
// nibble first) before transmission. The header bytes are sent raw; they are
// constants below 0x80 by construction.
//
// # Checksum
//
// The checksum is the XOR fold of the raw (pre-split) command and parameter
// bytes. A receiver that XORs every decoded byte including the trailing
// checksum must end up at zero.
//
// # Building and parsing messages
//
// Encode builds a complete frame from a command byte and its parameters:
//
//	frame := protocol.Encode(protocol.Header(0x70, 0x01), protocol.CmdPing, nil)
//
// Decode is the inverse and validates framing, header and checksum:
//
//	cmd, params, err := protocol.Decode(frame, protocol.Header(0x70, 0x01))
//
// The device side uses Encode for replies and a streaming parser (package
// bootloader) for commands; the host side uses Encode for commands and
// Decode for replies.
package protocol
