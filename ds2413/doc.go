// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ds2413 drives the Maxim DS2413 dual channel addressable switch
// through the w1_ds2413 kernel driver.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/DS2413.pdf
//
// # State byte
//
// The driver's state attribute returns the PIO Access Read byte. The low
// nibble carries, from bit 0 up, the pin level of PIOA, the output latch of
// PIOA, the pin level of PIOB and the output latch of PIOB. The high nibble is
// the complement of the low one, which lets a corrupted read be detected.
//
// # Writing
//
// The output attribute is writable by root only. Writes therefore go through
// a PortWriter; ExecWriter runs a helper through sudo (see cmd/ds2413) and
// SysfsWriter writes the attribute directly when the process is privileged.
// Every write is preceded by a read, and latches missing from the Command keep
// their current value. The state is read back and checked after the write.
package ds2413
