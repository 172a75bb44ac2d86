// Package firmware loads avr-gcc Intel HEX output into flash-page images.
//
// # Format
//
// Each line is one record: a ':' prefix followed by hex-encoded bytes
// [COUNT(1)][ADDR(2, big-endian)][TYPE(1)][DATA(COUNT)][CHECKSUM(1)], where
// the checksum makes all record bytes sum to zero modulo 256. Only data
// (type 00) and end-of-file (type 01) records are meaningful for the small
// single-segment images the electric-piano uses; extended address records
// are rejected unless their value is zero.
//
// # Usage
//
//	img, err := firmware.Load("firmware.hex", 64, 128)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, page := range img.Pages {
//	    fmt.Printf("page %d: %d bytes\n", page.Index, len(page.Data))
//	}
//
// Load fills an erased (all 0xFF) image of pageSize*pageCount bytes, copies
// every data record into place, then slices the image into pages. Pages the
// records never touched stay all 0xFF and are omitted, so flashing skips
// them instead of rewriting erased flash.
//
// All errors include the line number of the offending record.
package firmware
