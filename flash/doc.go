// Package flash defines the self-programming capability consumed by the
// bootloader core and provides an in-memory implementation for tests and
// the simulator daemon.
//
// Flash is organized in fixed-size pages. Erase and program work on whole
// pages only: a write first erases the target page, then stages data into a
// page buffer one 16-bit word at a time, then commits the buffer in a single
// program operation. This mirrors the self-programming sequence of the AVR
// parts the electric-piano ships with.
//
// Production builds back the Programmer interface with real hardware
// access; tests and the simulator use Memory.
package flash
