package programmer

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jfrohnhofen/electric-piano/protocol"
)

// Default flash geometry of the electric-piano's microcontroller. Override
// with WithPageGeometry when targeting a different part.
const (
	// DefaultPageSize is the flash page size in bytes
	DefaultPageSize = 64

	// DefaultPageCount is the number of flash pages
	DefaultPageCount = 128
)

// Config holds the programmer configuration.
type Config struct {
	// Header is the raw frame header shared with the device
	Header [protocol.HeaderSize]byte

	// PageSize is the device's flash page size in bytes
	PageSize int

	// PageCount is the device's number of flash pages
	PageCount int

	// ProgressCallback is called during programming to report progress
	// (optional)
	ProgressCallback ProgressCallback

	// Logger receives per-command debug logs
	Logger *logrus.Logger

	// CommandDelay is an optional pause between transmitting a command
	// and reading its reply, for slow MIDI interfaces
	CommandDelay time.Duration

	// VerifyAfterWrite enables page verification after each write
	VerifyAfterWrite bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Header:           protocol.Header(protocol.DefaultDeviceID, protocol.DefaultVersion),
		PageSize:         DefaultPageSize,
		PageCount:        DefaultPageCount,
		Logger:           logrus.StandardLogger(),
		VerifyAfterWrite: true,
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithDeviceID sets the device identifier carried in the frame header.
func WithDeviceID(id byte) Option {
	return func(c *Config) {
		c.Header[1] = id
	}
}

// WithVersion sets the protocol version carried in the frame header.
func WithVersion(version byte) Option {
	return func(c *Config) {
		c.Header[2] = version
	}
}

// WithPageGeometry sets the device's flash page size and page count.
//
// Example:
//
//	prog := programmer.New(port, programmer.WithPageGeometry(128, 256))
func WithPageGeometry(pageSize, pageCount int) Option {
	return func(c *Config) {
		if pageSize > 0 {
			c.PageSize = pageSize
		}
		if pageCount > 0 {
			c.PageCount = pageCount
		}
	}
}

// WithProgressCallback sets a callback to track programming progress.
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithCommandDelay sets a pause between sending a command and reading its
// reply. Some USB MIDI adapters drop bytes without it.
func WithCommandDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.CommandDelay = delay
		}
	}
}

// WithVerifyAfterWrite enables or disables page verification after each
// write. Default is true.
func WithVerifyAfterWrite(verify bool) Option {
	return func(c *Config) {
		c.VerifyAfterWrite = verify
	}
}
