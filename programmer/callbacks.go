package programmer

import "time"

// Programming phases reported through Progress.
const (
	// PhaseConnecting means the programmer is pinging the bootloader
	PhaseConnecting = "connecting"

	// PhaseWriting means flash pages are being written (and verified)
	PhaseWriting = "writing"

	// PhaseStarting means the bootloader is being told to start the
	// resident application
	PhaseStarting = "starting"

	// PhaseComplete means the sequence finished successfully
	PhaseComplete = "complete"
)

// Progress contains information about the programming progress.
// Passed to ProgressCallback during Program.
type Progress struct {
	// Phase is one of the Phase* constants
	Phase string

	// CurrentPage is the number of pages completed so far
	CurrentPage int

	// TotalPages is the total number of pages to write
	TotalPages int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesWritten is the total number of bytes written so far
	BytesWritten int

	// ElapsedTime is the time elapsed since programming started
	ElapsedTime time.Duration
}

// ProgressCallback is called after each page during Program. Implementations
// should return quickly; the transfer blocks while the callback runs.
type ProgressCallback func(Progress)
