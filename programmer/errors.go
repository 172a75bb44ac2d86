package programmer

import "fmt"

// PageOutOfRangeError indicates a page index beyond the device's flash.
type PageOutOfRangeError struct {
	Page      int
	PageCount int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d is out of range: device has pages 0-%d", e.Page, e.PageCount-1)
}

// VerifyMismatchError indicates that a written page read back with the
// wrong XOR fold.
type VerifyMismatchError struct {
	Page     int
	Expected byte
	Actual   byte
}

func (e *VerifyMismatchError) Error() string {
	return fmt.Sprintf("verify mismatch for page %d: expected 0x%02X, got 0x%02X",
		e.Page, e.Expected, e.Actual)
}
