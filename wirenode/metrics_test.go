// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package wirenode

import (
	"context"
	"testing"

	"github.com/GermanBionicSystems/w1node/w1"
	"github.com/GermanBionicSystems/w1node/w1therm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	bus := fakeBus(t, map[string]string{thermID + "/w1_slave": good})
	logger, _ := test.NewNullLogger()
	opts := &Opts{Bus: bus, Logger: logger, Metrics: m}
	ctx := context.Background()

	New(Config{Identifier: thermID, Unit: w1therm.Celsius}, opts).Handle(ctx, Message{})
	New(Config{Identifier: "28-000000000002"}, opts).Handle(ctx, Message{})
	New(Config{Identifier: "ff-000000000001"}, opts).Handle(ctx, Message{})
	New(Config{Identifier: "ff-000000000001"}, opts).Handle(ctx, Message{})

	var data = []struct {
		handler, outcome string
		count            float64
	}{
		{"temperature", "ok", 1},
		{"temperature", w1.ReadFault.String(), 1},
		{"unsupported", "tbd", 2},
		{"port", "ok", 0},
	}
	for _, line := range data {
		if v := testutil.ToFloat64(m.invocations.WithLabelValues(line.handler, line.outcome)); v != line.count {
			t.Errorf("%s/%s = %v, expected %v", line.handler, line.outcome, v, line.count)
		}
	}
	if c := testutil.CollectAndCount(m.duration); c != 2 {
		t.Errorf("expected 2 histograms, got %d", c)
	}

	if _, err := NewMetrics(reg); err == nil {
		t.Fatal("registering twice must fail")
	}
}
