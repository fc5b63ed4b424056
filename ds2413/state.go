// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2413

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Channel is one of the two PIO channels.
type Channel int

const (
	A Channel = 0
	B Channel = 1
)

func (c Channel) String() string {
	if c == B {
		return "B"
	}
	return "A"
}

// State is the byte returned by a PIO Access Read.
type State byte

const (
	pioA   State = 0x01
	latchA State = 0x02
	pioB   State = 0x04
	latchB State = 0x08
)

// Valid reports whether the high nibble is the complement of the low one.
//
// An invalid State is a bus or device fault.
func (s State) Valid() bool {
	return ^s>>4 == s&0x0f
}

// PIO returns the sensed level of channel c.
func (s State) PIO(c Channel) gpio.Level {
	if c == B {
		return s&pioB != 0
	}
	return s&pioA != 0
}

// Latch returns the output latch of channel c. A High latch leaves the open
// drain output off.
func (s State) Latch(c Channel) gpio.Level {
	if c == B {
		return s&latchB != 0
	}
	return s&latchA != 0
}

// Port returns the four meaningful bits of s.
func (s State) Port() Port {
	return Port{
		PIOA:   bit(s.PIO(A)),
		LatchA: bit(s.Latch(A)),
		PIOB:   bit(s.PIO(B)),
		LatchB: bit(s.Latch(B)),
	}
}

// String returns the byte as two uppercase hex digits, e.g. "0x69".
func (s State) String() string {
	return fmt.Sprintf("0x%02X", byte(s))
}

// Port is the decoded form of a State, as sent to consumers.
type Port struct {
	PIOA   int `json:"pioA"`
	LatchA int `json:"latchA"`
	PIOB   int `json:"pioB"`
	LatchB int `json:"latchB"`
}

func bit(l gpio.Level) int {
	if l {
		return 1
	}
	return 0
}
