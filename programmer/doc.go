// Package programmer provides the host-side client for the electric-piano
// flash bootloader.
//
// # Overview
//
// The package drives the complete reprogramming sequence over any
// transport.Transport:
//
//   - Ping the device to confirm the bootloader is listening
//   - Write firmware pages with erase-then-program semantics on the device
//   - Verify each page against the local XOR fold
//   - Quit the bootloader to start the freshly written application
//
// # Basic Usage
//
//	port, err := transport.OpenSerial("/dev/ttyUSB0", transport.MIDIBaudRate)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	img, err := firmware.Load("firmware.hex", 64, 128)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	prog := programmer.New(port)
//	if err := prog.Program(context.Background(), img); err != nil {
//	    log.Fatal(err)
//	}
//
// # Progress Tracking
//
// Track programming progress with a callback:
//
//	prog := programmer.New(port,
//	    programmer.WithProgressCallback(func(p programmer.Progress) {
//	        fmt.Printf("[%s] %.1f%% - page %d/%d\n",
//	            p.Phase, p.Percentage, p.CurrentPage, p.TotalPages)
//	    }),
//	)
//
// # Error Handling
//
// The package returns structured error types:
//   - PageOutOfRangeError: page index beyond the device's flash
//   - VerifyMismatchError: a page read back with the wrong XOR fold
//   - protocol.ProtocolError: the device replied with an error code
package programmer
