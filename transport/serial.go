package transport

import (
	"fmt"

	"github.com/FObersteiner/goserial"
)

// MIDIBaudRate is the fixed signalling rate of a MIDI link. Serial MIDI
// interfaces and the device's UART both run at this rate.
const MIDIBaudRate = 31250

// Serial is a Transport over a physical serial port.
type Serial struct {
	port *goserial.Port
	io   *IO
}

// OpenSerial opens the named serial port at the given baud rate. Pass
// MIDIBaudRate when talking to the device through a raw UART MIDI
// interface; USB MIDI adapters that present a regular serial port may
// require a different rate.
func OpenSerial(name string, baud int) (*Serial, error) {
	port, err := goserial.OpenPort(&goserial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("cannot open serial port %q: %w", name, err)
	}
	return &Serial{port: port, io: NewIO(port)}, nil
}

// GetByte blocks until one byte arrives on the port.
func (s *Serial) GetByte() (byte, error) {
	return s.io.GetByte()
}

// PutByte transmits one byte on the port.
func (s *Serial) PutByte(b byte) error {
	return s.io.PutByte(b)
}

// Close releases the port.
func (s *Serial) Close() error {
	return s.port.Close()
}
