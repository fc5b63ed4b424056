// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2413

import (
	"context"
	"errors"
	"fmt"

	"github.com/GermanBionicSystems/w1node/w1"
	"periph.io/x/conn/v3"
)

var (
	// ErrBadRead is a state byte failing the complement check before a write.
	ErrBadRead = fmt.Errorf("%w: Bad Port Read", w1.ErrChecksum)
	// ErrBadVerify is a state byte failing the complement check after a write.
	ErrBadVerify = fmt.Errorf("%w: Bad Port Verify", w1.ErrChecksum)
)

// New returns a handle to the DS2413 id on bus. Writes go through w; when w
// is nil the device is read only.
func New(bus *w1.Bus, id string, w PortWriter) (*Dev, error) {
	if w1.FamilyOf(id) != w1.DS2413 {
		return nil, errors.New("ds2413: " + id + " is not a DS2413")
	}
	return &Dev{bus: bus, id: id, w: w}, nil
}

// Dev is a handle to a DS2413 served by the w1_ds2413 kernel driver.
//
// Dev caches nothing; every call goes to the device.
type Dev struct {
	bus *w1.Bus
	id  string
	w   PortWriter
}

func (d *Dev) String() string {
	return "DS2413{" + d.id + "}"
}

// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	return nil
}

// Read returns the current state, checked.
func (d *Dev) Read() (State, error) {
	return d.read(ErrBadRead)
}

// Write reads the current state, applies c on top of it and returns the
// state read back after the write.
func (d *Dev) Write(ctx context.Context, c Command) (State, error) {
	s, err := d.Read()
	if err != nil {
		return s, err
	}
	return d.Update(ctx, s, c)
}

// Update writes the latches requested by c, keeping those of current for the
// fields c leaves unspecified, then reads the state back and checks it.
//
// current must come from Read.
func (d *Dev) Update(ctx context.Context, current State, c Command) (State, error) {
	if d.w == nil {
		return current, fmt.Errorf("ds2413: %w: %s is read only", w1.ErrWrite, d.id)
	}
	a, b := c.Resolve(current)
	if err := d.w.Write(ctx, d.id, a, b); err != nil {
		if !errors.Is(err, w1.ErrWrite) {
			err = fmt.Errorf("ds2413: %w: %w", w1.ErrWrite, err)
		}
		return current, err
	}
	return d.read(ErrBadVerify)
}

func (d *Dev) read(bad error) (State, error) {
	data, err := d.bus.ReadAttr(d.id, "state")
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, w1.BusError(fmt.Errorf("ds2413: %w: empty state", w1.ErrRead))
	}
	s := State(data[0])
	if !s.Valid() {
		return s, w1.BusError(fmt.Errorf("ds2413: %w (state %s)", bad, s))
	}
	return s, nil
}

var _ conn.Resource = &Dev{}
