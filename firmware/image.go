package firmware

// Image is a firmware image sliced into flash pages.
type Image struct {
	// PageSize is the flash page size the image was sliced for
	PageSize int

	// Pages are the pages to program, in ascending index order. Pages
	// the source records never touched are omitted.
	Pages []*Page
}

// Page is one flash page worth of firmware data.
type Page struct {
	// Index is the flash page number
	Index int

	// Data is exactly one page of bytes, padded with 0xFF where the
	// source records left gaps
	Data []byte
}

// Size returns the total number of bytes across all pages.
func (img *Image) Size() int {
	return len(img.Pages) * img.PageSize
}
