package flash

// Programmer is the self-programming interface the bootloader core drives.
//
// All operations block until the underlying medium has completed them; there
// is no asynchronous completion signal to poll. Errors indicate a violated
// calling contract (page or offset out of range), not transient hardware
// states; hardware faults are outside this interface's failure model.
type Programmer interface {
	// PageSize returns the page size in bytes. Always even: data is
	// staged as 16-bit words.
	PageSize() int

	// PageCount returns the number of addressable pages. Valid page
	// indices are [0, PageCount).
	PageCount() int

	// PageErase erases the addressed page and blocks until the erase has
	// completed. An erased page reads back as all 0xFF.
	PageErase(page int) error

	// PageFill stages one 16-bit word into the page buffer at the given
	// byte offset. The low byte lands at offset, the high byte at
	// offset+1.
	PageFill(offset int, word uint16) error

	// PageWrite commits the staged page buffer to the addressed page and
	// blocks until programming has completed.
	PageWrite(page int) error

	// ReadEnable re-enables normal reads of the programmed region after
	// an erase or write. Must be called before ReadByte returns valid
	// data for a freshly programmed page.
	ReadEnable() error

	// ReadByte returns the byte at the given offset within a page.
	ReadByte(page, offset int) (byte, error)
}
