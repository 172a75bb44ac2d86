package flash

import "fmt"

// ErasedByte is the value every cell of an erased page reads back as.
const ErasedByte = 0xFF

// Memory is an in-memory Programmer used by tests and the simulator daemon.
// It enforces the same calling contract as real hardware: whole-page erase,
// word-granular staging into a single page buffer, whole-page commit.
//
// Memory additionally counts erase and program operations so tests can
// assert that rejected commands never touched the medium.
type Memory struct {
	pageSize  int
	pageCount int
	cells     []byte
	buffer    []byte

	erases int
	writes int
}

// NewMemory creates a simulated flash region with the given geometry.
// The page size must be positive and even; the page count must be positive.
// All pages start erased.
func NewMemory(pageSize, pageCount int) (*Memory, error) {
	if pageSize <= 0 || pageSize%2 != 0 {
		return nil, fmt.Errorf("page size must be positive and even, got %d", pageSize)
	}
	if pageCount <= 0 {
		return nil, fmt.Errorf("page count must be positive, got %d", pageCount)
	}

	m := &Memory{
		pageSize:  pageSize,
		pageCount: pageCount,
		cells:     make([]byte, pageSize*pageCount),
		buffer:    make([]byte, pageSize),
	}
	for i := range m.cells {
		m.cells[i] = ErasedByte
	}
	return m, nil
}

// PageSize returns the page size in bytes.
func (m *Memory) PageSize() int { return m.pageSize }

// PageCount returns the number of pages.
func (m *Memory) PageCount() int { return m.pageCount }

// PageErase erases the addressed page to all ErasedByte.
func (m *Memory) PageErase(page int) error {
	if page < 0 || page >= m.pageCount {
		return fmt.Errorf("page %d out of range [0, %d)", page, m.pageCount)
	}
	start := page * m.pageSize
	for i := start; i < start+m.pageSize; i++ {
		m.cells[i] = ErasedByte
	}
	m.erases++
	return nil
}

// PageFill stages one word into the page buffer.
func (m *Memory) PageFill(offset int, word uint16) error {
	if offset < 0 || offset+1 >= m.pageSize {
		return fmt.Errorf("word offset %d out of range [0, %d)", offset, m.pageSize)
	}
	if offset%2 != 0 {
		return fmt.Errorf("word offset %d is not word-aligned", offset)
	}
	m.buffer[offset] = byte(word)
	m.buffer[offset+1] = byte(word >> 8)
	return nil
}

// PageWrite commits the staged buffer to the addressed page.
func (m *Memory) PageWrite(page int) error {
	if page < 0 || page >= m.pageCount {
		return fmt.Errorf("page %d out of range [0, %d)", page, m.pageCount)
	}
	copy(m.cells[page*m.pageSize:], m.buffer)
	m.writes++
	return nil
}

// ReadEnable re-enables reads. A no-op for simulated memory.
func (m *Memory) ReadEnable() error { return nil }

// ReadByte returns the byte at the given offset within a page.
func (m *Memory) ReadByte(page, offset int) (byte, error) {
	if page < 0 || page >= m.pageCount {
		return 0, fmt.Errorf("page %d out of range [0, %d)", page, m.pageCount)
	}
	if offset < 0 || offset >= m.pageSize {
		return 0, fmt.Errorf("offset %d out of range [0, %d)", offset, m.pageSize)
	}
	return m.cells[page*m.pageSize+offset], nil
}

// Page returns a copy of the addressed page's contents.
func (m *Memory) Page(page int) ([]byte, error) {
	if page < 0 || page >= m.pageCount {
		return nil, fmt.Errorf("page %d out of range [0, %d)", page, m.pageCount)
	}
	out := make([]byte, m.pageSize)
	copy(out, m.cells[page*m.pageSize:])
	return out, nil
}

// Image returns a copy of the entire flash contents.
func (m *Memory) Image() []byte {
	out := make([]byte, len(m.cells))
	copy(out, m.cells)
	return out
}

// LoadImage replaces the flash contents with the given image. The image
// must be exactly PageSize*PageCount bytes.
func (m *Memory) LoadImage(img []byte) error {
	if len(img) != len(m.cells) {
		return fmt.Errorf("image size %d does not match flash size %d", len(img), len(m.cells))
	}
	copy(m.cells, img)
	return nil
}

// EraseCount returns the number of page erase operations performed.
func (m *Memory) EraseCount() int { return m.erases }

// WriteCount returns the number of page program operations performed.
func (m *Memory) WriteCount() int { return m.writes }
