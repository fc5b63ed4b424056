// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package wirenode

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts invocations per handler and outcome.
//
// Outcomes are "ok", "tbd" and the w1.Fault names.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wirenode",
			Name:      "invocations_total",
			Help:      "Handled messages by handler and outcome.",
		}, []string{"handler", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wirenode",
			Name:      "invocation_duration_seconds",
			Help:      "Time spent on the device per message.",
			Buckets:   []float64{.001, .01, .1, .25, .5, .75, 1, 2.5},
		}, []string{"handler"}),
	}
	for _, c := range []prometheus.Collector{m.invocations, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(h Handler, res *Result, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if res.Err != nil {
		outcome = res.Fault().String()
	} else if _, ok := h.(Unsupported); ok {
		outcome = "tbd"
	}
	m.invocations.WithLabelValues(h.Name(), outcome).Inc()
	m.duration.WithLabelValues(h.Name()).Observe(d.Seconds())
}
