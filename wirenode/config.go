// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package wirenode

import (
	"strings"

	"github.com/GermanBionicSystems/w1node/ds2413"
	"github.com/GermanBionicSystems/w1node/w1"
	"github.com/GermanBionicSystems/w1node/w1therm"
	"github.com/sirupsen/logrus"
)

// Config is set once per node.
type Config struct {
	// Identifier of the device, may be empty when messages carry it.
	Identifier string `yaml:"identifier"`
	// Name is the outbound topic when set.
	Name string `yaml:"name"`
	// Unit of thermometer readings; 1 is Celsius, 0 Fahrenheit.
	Unit w1therm.Unit `yaml:"format"`
}

// Opts contains the collaborators of a Node. Zero fields get defaults.
type Opts struct {
	// Bus defaults to w1.DefaultBus.
	Bus *w1.Bus
	// Writer defaults to an ExecWriter running the sudo helper.
	Writer ds2413.PortWriter
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
	// Metrics is optional.
	Metrics *Metrics
}

// New returns a Node for cfg. opts may be nil.
func New(cfg Config, opts *Opts) *Node {
	if opts == nil {
		opts = &Opts{}
	}
	cfg.Identifier = strings.TrimSpace(cfg.Identifier)
	n := &Node{
		cfg:     cfg,
		bus:     opts.Bus,
		writer:  opts.Writer,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
	if n.bus == nil {
		n.bus = w1.DefaultBus
	}
	if n.writer == nil {
		n.writer = &ds2413.ExecWriter{}
	}
	if n.log == nil {
		n.log = logrus.StandardLogger()
	}
	return n
}
