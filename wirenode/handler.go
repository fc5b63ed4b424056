// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package wirenode

import (
	"context"
	"fmt"

	"github.com/GermanBionicSystems/w1node/ds2413"
	"github.com/GermanBionicSystems/w1node/w1"
	"github.com/GermanBionicSystems/w1node/w1therm"
)

// Handler is one of Thermometer, Port or Unsupported.
type Handler interface {
	// Name is used as metrics label.
	Name() string
	handle(ctx context.Context, n *Node, req *request) Result
}

// Select returns the handler for family f. It does no I/O.
func Select(f w1.Family) Handler {
	switch {
	case f.Thermometer():
		return Thermometer{}
	case f == w1.DS2413:
		return Port{}
	default:
		return Unsupported{}
	}
}

// Thermometer reads the w1_slave file.
type Thermometer struct{}

func (Thermometer) Name() string { return "temperature" }

func (Thermometer) handle(ctx context.Context, n *Node, req *request) Result {
	d, err := w1therm.New(n.bus, req.id)
	var r w1therm.Reading
	if err == nil {
		r, err = d.Read()
	}
	if err != nil {
		n.warn(req, "Wirenode Temp Error", err)
		return Result{Status: NotAvailable(req.id), Err: err}
	}
	v := r.Value(n.cfg.Unit)
	return Result{
		Output: &Output{Topic: req.topic, Payload: v, Raw: r.Raw},
		Status: Status{Fill: Blue, Shape: Ring, Text: fmt.Sprintf("%s: %.3f", req.id, v)},
	}
}

// Port reads the DS2413 and, when the payload is a command, writes it.
type Port struct{}

func (Port) Name() string { return "port" }

func (Port) handle(ctx context.Context, n *Node, req *request) Result {
	d, err := ds2413.New(n.bus, req.id, n.writer)
	var s ds2413.State
	if err == nil {
		s, err = d.Read()
	}
	if err != nil {
		n.warn(req, "Wirenode Port Read Error", err)
		return Result{Status: NotAvailable(req.id), Err: err}
	}
	c, write, err := ds2413.ParseCommand(req.payload)
	if !write {
		return Result{
			Output: &Output{Topic: req.topic, Payload: s.Port()},
			Status: Status{Fill: Blue, Shape: Ring, Text: req.id + ": " + s.String()},
		}
	}
	if err == nil {
		s, err = d.Update(ctx, s, c)
	}
	if err != nil {
		n.warn(req, "Wirenode Port Write Error", err)
		return Result{Status: NotAvailable(req.id), Err: err}
	}
	return Result{
		Output: &Output{Topic: req.topic, Payload: s.Port()},
		Status: Status{Fill: Green, Shape: Ring, Text: req.id + ": " + s.String()},
	}
}

// Unsupported answers "TBD" for families without a driver.
type Unsupported struct{}

func (Unsupported) Name() string { return "unsupported" }

func (Unsupported) handle(ctx context.Context, n *Node, req *request) Result {
	return Result{
		Output: &Output{Topic: req.topic, Payload: "TBD"},
		Status: NotAvailable(req.id),
	}
}
