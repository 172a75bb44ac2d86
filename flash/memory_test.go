package flash

import (
	"bytes"
	"testing"
)

func TestNewMemoryValidatesGeometry(t *testing.T) {
	tests := []struct {
		name      string
		pageSize  int
		pageCount int
		wantErr   bool
	}{
		{name: "valid", pageSize: 64, pageCount: 128},
		{name: "small pages", pageSize: 2, pageCount: 1},
		{name: "odd page size", pageSize: 63, pageCount: 128, wantErr: true},
		{name: "zero page size", pageSize: 0, pageCount: 128, wantErr: true},
		{name: "negative page count", pageSize: 64, pageCount: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMemory(tt.pageSize, tt.pageCount)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMemory(%d, %d) error = %v, wantErr %v",
					tt.pageSize, tt.pageCount, err, tt.wantErr)
			}
		})
	}
}

func TestMemoryStartsErased(t *testing.T) {
	mem, err := NewMemory(8, 4)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}

	for page := 0; page < mem.PageCount(); page++ {
		for off := 0; off < mem.PageSize(); off++ {
			b, err := mem.ReadByte(page, off)
			if err != nil {
				t.Fatalf("ReadByte(%d, %d): %v", page, off, err)
			}
			if b != ErasedByte {
				t.Fatalf("byte (%d, %d) = 0x%02X, want 0x%02X", page, off, b, ErasedByte)
			}
		}
	}
}

func TestEraseFillWriteSequence(t *testing.T) {
	mem, err := NewMemory(8, 4)
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}

	if err := mem.PageErase(1); err != nil {
		t.Fatalf("PageErase: %v", err)
	}
	// Words land low byte first, matching the device's fill order.
	words := []uint16{0x2211, 0x4433, 0x6655, 0x8877}
	for i, w := range words {
		if err := mem.PageFill(i*2, w); err != nil {
			t.Fatalf("PageFill(%d): %v", i*2, err)
		}
	}
	if err := mem.PageWrite(1); err != nil {
		t.Fatalf("PageWrite: %v", err)
	}
	if err := mem.ReadEnable(); err != nil {
		t.Fatalf("ReadEnable: %v", err)
	}

	page, err := mem.Page(1)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	want := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}
	if !bytes.Equal(page, want) {
		t.Errorf("page 1 = % X, want % X", page, want)
	}

	// Neighbors stay erased.
	for _, neighbor := range []int{0, 2, 3} {
		page, _ := mem.Page(neighbor)
		if !bytes.Equal(page, bytes.Repeat([]byte{ErasedByte}, 8)) {
			t.Errorf("page %d changed: % X", neighbor, page)
		}
	}

	if mem.EraseCount() != 1 || mem.WriteCount() != 1 {
		t.Errorf("got %d erases and %d writes, want 1 and 1", mem.EraseCount(), mem.WriteCount())
	}
}

func TestEraseResetsPage(t *testing.T) {
	mem, _ := NewMemory(8, 2)

	mem.PageFill(0, 0xBEEF)
	mem.PageWrite(0)
	mem.PageErase(0)

	page, _ := mem.Page(0)
	if !bytes.Equal(page, bytes.Repeat([]byte{ErasedByte}, 8)) {
		t.Errorf("erased page = % X, want all 0x%02X", page, ErasedByte)
	}
}

func TestMemoryRangeChecks(t *testing.T) {
	mem, _ := NewMemory(8, 2)

	if err := mem.PageErase(2); err == nil {
		t.Error("PageErase(2) succeeded on a 2-page memory")
	}
	if err := mem.PageWrite(-1); err == nil {
		t.Error("PageWrite(-1) succeeded")
	}
	if err := mem.PageFill(7, 0x1234); err == nil {
		t.Error("PageFill(7) succeeded past the page end")
	}
	if err := mem.PageFill(1, 0x1234); err == nil {
		t.Error("PageFill(1) succeeded at unaligned offset")
	}
	if _, err := mem.ReadByte(0, 8); err == nil {
		t.Error("ReadByte(0, 8) succeeded past the page end")
	}
	if _, err := mem.Page(5); err == nil {
		t.Error("Page(5) succeeded on a 2-page memory")
	}
}

func TestImageRoundTrip(t *testing.T) {
	mem, _ := NewMemory(4, 2)

	img := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := mem.LoadImage(img); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if !bytes.Equal(mem.Image(), img) {
		t.Errorf("Image() = % X, want % X", mem.Image(), img)
	}

	if err := mem.LoadImage([]byte{1, 2, 3}); err == nil {
		t.Error("LoadImage accepted a wrongly sized image")
	}

	// Image returns a copy, not the live cells.
	snapshot := mem.Image()
	snapshot[0] = 0xFF
	if b, _ := mem.ReadByte(0, 0); b != 1 {
		t.Error("mutating the snapshot changed the flash contents")
	}
}
