package bootloader

import (
	"github.com/sirupsen/logrus"

	"github.com/jfrohnhofen/electric-piano/protocol"
)

// Config holds the bootloader configuration.
type Config struct {
	// Header is the raw frame header every message must carry
	Header [protocol.HeaderSize]byte

	// Logger receives per-reply debug logs and lifecycle info logs
	Logger *logrus.Logger

	// OnExit is invoked at most once after a Quit command's Success
	// reply has been transmitted (optional)
	OnExit func()

	// OnError is invoked with the error code of every Error reply
	// (optional, used by the simulator for metrics)
	OnError func(code byte)
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Header: protocol.Header(protocol.DefaultDeviceID, protocol.DefaultVersion),
		Logger: logrus.StandardLogger(),
	}
}

// Option is a functional option for configuring the Bootloader.
type Option func(*Config)

// WithDeviceID sets the device identifier carried in the frame header.
//
// Example:
//
//	boot := bootloader.New(t, mem, bootloader.WithDeviceID(0x70))
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

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithExitFunc sets the resident-application handoff callback. It fires at
// most once, after the Quit command's Success reply has been transmitted.
//
// Example:
//
//	boot := bootloader.New(t, mem, bootloader.WithExitFunc(func() {
//	    log.Info("starting application")
//	}))
func WithExitFunc(fn func()) Option {
	return func(c *Config) {
		c.OnExit = fn
	}
}

// WithErrorHook sets a callback invoked with the code of every Error reply.
func WithErrorHook(fn func(code byte)) Option {
	return func(c *Config) {
		c.OnError = fn
	}
}
