// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package wirenode

import (
	"strings"

	"github.com/GermanBionicSystems/w1node/w1"
)

// Message is an inbound request.
//
// A Payload that is a JSON array or object is a DS2413 write command;
// anything else, including nil, is a read request.
type Message struct {
	Identifier string `json:"identifier,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Payload    any    `json:"payload,omitempty"`
}

// Output is an outbound message.
//
// Payload is a float64 for thermometers, a ds2413.Port for the DS2413 and
// the string "TBD" for unsupported families.
type Output struct {
	Topic   string   `json:"topic"`
	Payload any      `json:"payload"`
	Raw     []string `json:"raw,omitempty"`
}

// Color is the fill of a status indicator.
type Color string

const (
	None  Color = ""
	Blue  Color = "blue"
	Green Color = "green"
	Red   Color = "red"
)

// Shape is the outline of a status indicator.
type Shape string

const (
	Ring Shape = "ring"
	Dot  Shape = "dot"
)

// Status reports the health of the last invocation. Every invocation
// replaces it.
type Status struct {
	Fill  Color  `json:"fill"`
	Shape Shape  `json:"shape"`
	Text  string `json:"text"`
}

// NotAvailable is the status left by a fault or an unsupported family.
func NotAvailable(id string) Status {
	return Status{Fill: Red, Shape: Ring, Text: id + ": NA"}
}

// Result is the outcome of one invocation. Output is nil when nothing is to
// be sent downstream.
type Result struct {
	Output *Output
	Status Status
	Err    error
}

// Fault classifies Err.
func (r *Result) Fault() w1.Fault {
	return w1.FaultOf(r.Err)
}

// ResolveIdentifier picks the device to talk to: the message's identifier,
// else the configured one, else the message topic.
func ResolveIdentifier(configured string, msg *Message) string {
	if id := strings.TrimSpace(msg.Identifier); id != "" {
		return id
	}
	if configured != "" {
		return configured
	}
	return strings.TrimSpace(msg.Topic)
}

// ResolveTopic picks the outbound topic: the configured name, else the
// incoming topic, else the identifier.
func ResolveTopic(name, topic, id string) string {
	if name != "" {
		return name
	}
	if topic != "" {
		return topic
	}
	return id
}
