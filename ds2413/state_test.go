// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2413

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

func TestState_Valid(t *testing.T) {
	valid := 0
	for i := 0; i < 256; i++ {
		s := State(i)
		want := byte(i)>>4 == ^byte(i)&0x0f
		if s.Valid() != want {
			t.Errorf("%s.Valid() = %t", s, s.Valid())
		}
		if want {
			valid++
		}
	}
	// One valid byte per low nibble.
	if valid != 16 {
		t.Fatalf("expected 16 valid bytes, got %d", valid)
	}
	for _, s := range []State{0x69, 0x0f, 0xf0, 0x87, 0x5a} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []State{0x5b, 0x79, 0x00, 0xff} {
		if s.Valid() {
			t.Errorf("%s should be invalid", s)
		}
	}
}

func TestState_Port(t *testing.T) {
	var data = []struct {
		s    State
		port Port
	}{
		{0x69, Port{PIOA: 1, LatchA: 0, PIOB: 0, LatchB: 1}},
		{0x0f, Port{PIOA: 1, LatchA: 1, PIOB: 1, LatchB: 1}},
		{0xf0, Port{}},
		{0x87, Port{PIOA: 1, LatchA: 1, PIOB: 1, LatchB: 0}},
		{0xd2, Port{PIOA: 0, LatchA: 1, PIOB: 0, LatchB: 0}},
	}
	for _, line := range data {
		if diff := cmp.Diff(line.port, line.s.Port()); diff != "" {
			t.Errorf("%s.Port() mismatch (-want +got):\n%s", line.s, diff)
		}
	}
	s := State(0x69)
	if s.PIO(A) != gpio.High || s.Latch(A) != gpio.Low || s.PIO(B) != gpio.Low || s.Latch(B) != gpio.High {
		t.Fatal("unexpected levels")
	}
}

func TestState_String(t *testing.T) {
	if s := State(0x69).String(); s != "0x69" {
		t.Fatal(s)
	}
	if s := State(0x0f).String(); s != "0x0F" {
		t.Fatal(s)
	}
	if s := State(0xd2).String(); s != "0xD2" {
		t.Fatal(s)
	}
	if A.String() != "A" || B.String() != "B" {
		t.Fatal("channel names")
	}
}
