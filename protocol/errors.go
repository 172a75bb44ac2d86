package protocol

import "fmt"

// ProtocolError represents an error reply received from the bootloader.
// Carries the raw error code from the ReplyError parameter byte.
type ProtocolError struct {
	// Operation is the command that failed
	Operation string

	// Code is the error code from the device
	Code byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, ErrorName(e.Code), e.Code)
}

// IsProtocolError returns true if the error is a ProtocolError.
func IsProtocolError(err error) bool {
	_, ok := err.(*ProtocolError)
	return ok
}

// ErrorName returns a human-readable name for a device error code.
func ErrorName(code byte) string {
	switch code {
	case ErrNone:
		return "no error"
	case ErrHeaderMismatch:
		return "header mismatch"
	case ErrInvalidFormat:
		return "invalid format"
	case ErrIncompleteMessage:
		return "incomplete message"
	case ErrInvalidNibble:
		return "invalid nibble"
	case ErrInvalidChecksum:
		return "invalid checksum"
	case ErrUnknownCommand:
		return "unknown command"
	case ErrInvalidPayloadSize:
		return "invalid payload size"
	case ErrInvalidPageNumber:
		return "invalid page number"
	default:
		return fmt.Sprintf("unknown error code 0x%02X", code)
	}
}
