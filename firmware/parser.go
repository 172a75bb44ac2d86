package firmware

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Intel HEX record layout constants.
const (
	// recordHeaderSize is count(1) + address(2) + type(1)
	recordHeaderSize = 4

	// recordChecksumSize is the trailing checksum byte
	recordChecksumSize = 1

	// minRecordBytes is the smallest decodable record (empty data)
	minRecordBytes = recordHeaderSize + recordChecksumSize
)

// Intel HEX record types.
const (
	recordData            = 0x00
	recordEOF             = 0x01
	recordExtendedSegment = 0x02
	recordStartSegment    = 0x03
	recordExtendedLinear  = 0x04
	recordStartLinear     = 0x05
)

// ErasedByte is the fill value for address ranges no record touches,
// matching the erased state of the flash.
const ErasedByte = 0xFF

// Load parses an Intel HEX file and slices it into pages for the given
// flash geometry.
//
// Example:
//
//	img, err := firmware.Load("firmware.hex", 64, 128)
func Load(path string, pageSize, pageCount int) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadReader(f, pageSize, pageCount)
}

// LoadReader parses Intel HEX records from any io.Reader. Useful for
// testing and reading from non-file sources.
func LoadReader(r io.Reader, pageSize, pageCount int) (*Image, error) {
	if pageSize <= 0 || pageCount <= 0 {
		return nil, fmt.Errorf("invalid flash geometry: page size %d, page count %d", pageSize, pageCount)
	}

	flashSize := pageSize * pageCount
	cells := make([]byte, flashSize)
	for i := range cells {
		cells[i] = ErasedByte
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	sawData := false
	sawEOF := false

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if sawEOF {
			return nil, fmt.Errorf("line %d: record after end-of-file record", lineNum)
		}

		rec, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		switch rec.typ {
		case recordData:
			end := int(rec.addr) + len(rec.data)
			if end > flashSize {
				return nil, fmt.Errorf("line %d: record ends at 0x%04X, beyond flash size 0x%04X",
					lineNum, end, flashSize)
			}
			copy(cells[rec.addr:], rec.data)
			sawData = true

		case recordEOF:
			sawEOF = true

		case recordExtendedSegment, recordExtendedLinear:
			// A zero extension selects the base segment some tools
			// emit anyway; anything else addresses memory the
			// device does not have.
			for _, b := range rec.data {
				if b != 0 {
					return nil, fmt.Errorf("line %d: nonzero extended address record (type 0x%02X)",
						lineNum, rec.typ)
				}
			}

		case recordStartSegment, recordStartLinear:
			// Entry-point records carry no flash data.

		default:
			return nil, fmt.Errorf("line %d: unsupported record type 0x%02X", lineNum, rec.typ)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !sawData {
		return nil, fmt.Errorf("no data records found")
	}

	return slicePages(cells, pageSize), nil
}

type record struct {
	addr uint16
	typ  byte
	data []byte
}

// parseRecord decodes and validates one ':'-prefixed Intel HEX record.
func parseRecord(line string) (*record, error) {
	if line[0] != ':' {
		return nil, fmt.Errorf("record must start with ':'")
	}

	raw, err := hex.DecodeString(line[1:])
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	if len(raw) < minRecordBytes {
		return nil, fmt.Errorf("record too short: got %d bytes, minimum is %d", len(raw), minRecordBytes)
	}

	count := int(raw[0])
	if len(raw) != recordHeaderSize+count+recordChecksumSize {
		return nil, fmt.Errorf("record length mismatch: got %d bytes, expected %d (header=%d + data=%d + checksum=%d)",
			len(raw), recordHeaderSize+count+recordChecksumSize, recordHeaderSize, count, recordChecksumSize)
	}

	var sum byte
	for _, b := range raw {
		sum += b
	}
	if sum != 0 {
		return nil, fmt.Errorf("checksum mismatch: record bytes sum to 0x%02X, expected 0x00", sum)
	}

	rec := &record{
		addr: uint16(raw[1])<<8 | uint16(raw[2]),
		typ:  raw[3],
		data: make([]byte, count),
	}
	copy(rec.data, raw[recordHeaderSize:recordHeaderSize+count])

	return rec, nil
}

// slicePages cuts the filled image into pages, dropping pages left fully
// erased.
func slicePages(cells []byte, pageSize int) *Image {
	img := &Image{PageSize: pageSize}

	for start := 0; start < len(cells); start += pageSize {
		chunk := cells[start : start+pageSize]

		erased := true
		for _, b := range chunk {
			if b != ErasedByte {
				erased = false
				break
			}
		}
		if erased {
			continue
		}

		data := make([]byte, pageSize)
		copy(data, chunk)
		img.Pages = append(img.Pages, &Page{
			Index: start / pageSize,
			Data:  data,
		})
	}

	return img
}
