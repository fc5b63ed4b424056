// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package w1

import "errors"

// Every error returned by the drivers built on this package wraps one of
// these.
var (
	// ErrRead is an attribute file that could not be read: missing device,
	// permissions or a bus error reported by the kernel.
	ErrRead = errors.New("read error")
	// ErrChecksum is data that failed its own integrity check.
	ErrChecksum = errors.New("checksum error")
	// ErrWrite is a rejected or failed write.
	ErrWrite = errors.New("write error")
)

// Fault classifies an error returned by a driver.
type Fault int

const (
	NoFault Fault = iota
	ReadFault
	ChecksumFault
	WriteFault
	// OtherFault is an error that wraps none of the sentinel errors.
	OtherFault
)

func (f Fault) String() string {
	switch f {
	case NoFault:
		return "none"
	case ReadFault:
		return "read"
	case ChecksumFault:
		return "checksum"
	case WriteFault:
		return "write"
	default:
		return "other"
	}
}

// FaultOf returns the Fault err belongs to.
func FaultOf(err error) Fault {
	switch {
	case err == nil:
		return NoFault
	case errors.Is(err, ErrChecksum):
		return ChecksumFault
	case errors.Is(err, ErrWrite):
		return WriteFault
	case errors.Is(err, ErrRead):
		return ReadFault
	default:
		return OtherFault
	}
}

// busError implements error and onewire.BusError.
//
// The faults are all reported by the slave or the kernel driver, never by
// the host, so they are bus errors in periph's sense.
type busError struct {
	err error
}

func (e *busError) Error() string  { return e.err.Error() }
func (e *busError) Unwrap() error  { return e.err }
func (e *busError) BusError() bool { return true }

// BusError marks err as an onewire.BusError.
func BusError(err error) error {
	return &busError{err: err}
}
