// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package wirenode

import (
	"context"
	"time"

	"github.com/GermanBionicSystems/w1node/ds2413"
	"github.com/GermanBionicSystems/w1node/w1"
	"github.com/sirupsen/logrus"
)

// Node handles the messages of one configured flow node.
//
// A Node holds no state between invocations and Handle may be called
// concurrently; the kernel serializes access to each device.
type Node struct {
	cfg     Config
	bus     *w1.Bus
	writer  ds2413.PortWriter
	log     logrus.FieldLogger
	metrics *Metrics
}

func (n *Node) String() string {
	if n.cfg.Name != "" {
		return "wirenode(" + n.cfg.Name + ")"
	}
	return "wirenode(" + n.cfg.Identifier + ")"
}

// Config returns the configuration n was built with.
func (n *Node) Config() Config {
	return n.cfg
}

// Handle performs the transaction msg asks for.
//
// It returns once the device has been dealt with; it always completes and
// never panics on device faults. ctx bounds the privileged write command
// only; file reads are not interruptible.
func (n *Node) Handle(ctx context.Context, msg Message) Result {
	start := time.Now()
	req := &request{id: ResolveIdentifier(n.cfg.Identifier, &msg), payload: msg.Payload}
	req.topic = ResolveTopic(n.cfg.Name, msg.Topic, req.id)
	req.family = w1.FamilyOf(req.id)
	h := Select(req.family)
	res := h.handle(ctx, n, req)
	n.metrics.observe(h, &res, time.Since(start))
	return res
}

// warn logs a fault the way the flow editor shows node warnings.
func (n *Node) warn(req *request, prefix string, err error) {
	n.log.WithFields(logrus.Fields{
		"identifier": req.id,
		"family":     req.family.String(),
		"fault":      w1.FaultOf(err).String(),
	}).Warn(prefix + ": " + err.Error())
}

type request struct {
	id      string
	topic   string
	family  w1.Family
	payload any
}
