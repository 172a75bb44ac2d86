// Package bootloader implements the device-resident side of the
// electric-piano flash bootloader: the frame parser, the command
// dispatcher and the flash page operations.
//
// # Overview
//
// The bootloader consumes one byte at a time from a transport, decodes
// framed, nibble-encoded messages, validates them, and executes flash
// operations:
//
//   - Ping: liveness check
//   - Write: erase-then-program one flash page
//   - Read: return one page's contents
//   - Verify: return the XOR fold of one page
//   - Quit: reply, stop the loop and hand control to the resident application
//
// # Basic Usage
//
//	mem, _ := flash.NewMemory(64, 128)
//	boot := bootloader.New(transport.NewIO(conn), mem,
//	    bootloader.WithExitFunc(startApplication),
//	)
//	if err := boot.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Run blocks, processing commands until a Quit command arrives or the
// transport fails. There is no idle timeout: a silent link blocks forever,
// matching the reference device.
//
// # Error Recovery
//
// Every malformed or invalid message produces exactly one Error reply with
// a specific code and resets the parser to its resting state. No protocol
// error terminates the loop; the only deliberate exit is Quit, whose
// Success reply is fully transmitted before the exit callback fires.
//
// # Hardware Independence
//
// The package touches no hardware directly. The byte link and the flash
// medium are injected as transport.Transport and flash.Programmer, so the
// same core runs against a UART on the device, a TCP socket in the
// simulator, and in-memory fakes in tests.
package bootloader
