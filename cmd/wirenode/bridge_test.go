// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"sync"
	"testing"

	"github.com/GermanBionicSystems/w1node/w1"
	"github.com/GermanBionicSystems/w1node/wirenode"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/go-cmp/cmp"
)

func TestDecodeMessage(t *testing.T) {
	var data = []struct {
		in   string
		want wirenode.Message
	}{
		{"", wirenode.Message{}},
		{"not json", wirenode.Message{}},
		{"1700000000000", wirenode.Message{Payload: 1700000000000.0}},
		{`{"a":1}`, wirenode.Message{Payload: map[string]any{"a": 1.0}}},
		{`[0,1]`, wirenode.Message{Payload: []any{0.0, 1.0}}},
		{`{"payload":{"b":0},"topic":"cmd"}`, wirenode.Message{Topic: "cmd", Payload: map[string]any{"b": 0.0}}},
		{`{"identifier":"3a-0000001d5c2a"}`, wirenode.Message{Identifier: "3a-0000001d5c2a"}},
		{`{"topic":5}`, wirenode.Message{Topic: "5"}},
	}
	for _, line := range data {
		if diff := cmp.Diff(line.want, decodeMessage([]byte(line.in))); diff != "" {
			t.Errorf("decodeMessage(%q) mismatch (-want +got):\n%s", line.in, diff)
		}
	}
}

func TestBridge_topic(t *testing.T) {
	b := &bridge{prefix: "w1"}
	if s := b.topic("outside"); s != "w1/outside" {
		t.Fatal(s)
	}
	if s := b.topic("outside", "status"); s != "w1/outside/status" {
		t.Fatal(s)
	}
}

func TestOnce(t *testing.T) {
	n := wirenode.New(wirenode.Config{Identifier: "ff-000000000001"}, &wirenode.Opts{Bus: &w1.Bus{Root: t.TempDir()}})
	if err := once(n, "t", `{"a":1}`); err != nil {
		t.Fatal(err)
	}
	if err := once(n, "t", `{`); err == nil {
		t.Fatal("bad payload should fail")
	}
	n = wirenode.New(wirenode.Config{Identifier: "28-0000070e41ac"}, &wirenode.Opts{Bus: &w1.Bus{Root: t.TempDir()}})
	if err := once(n, "", ""); w1.FaultOf(err) != w1.ReadFault {
		t.Fatalf("expected read fault, got %v", err)
	}
}

// fakeClient records published topics.
type fakeClient struct {
	mqtt.Client
	mu     sync.Mutex
	topics []string
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload any) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = append(c.topics, topic)
	return doneToken{}
}

type doneToken struct {
	mqtt.Token
}

func (doneToken) Wait() bool   { return true }
func (doneToken) Error() error { return nil }

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m *fakeMessage) Topic() string   { return m.topic }
func (m *fakeMessage) Payload() []byte { return m.payload }

func TestBridge_onMessage(t *testing.T) {
	n := wirenode.New(wirenode.Config{Identifier: "ff-000000000001"}, &wirenode.Opts{Bus: &w1.Bus{Root: t.TempDir()}})
	b := newBridge(&MQTTConfig{Broker: "tcp://127.0.0.1:1883", ClientID: "test", Prefix: "w1"}, map[string]*wirenode.Node{"x": n})
	c := &fakeClient{}
	b.client = c
	// The callback must return while the node is busy.
	b.locks["x"].Lock()
	b.onMessage("x")(nil, &fakeMessage{topic: "w1/x/in", payload: []byte(`{"a":1}`)})
	c.mu.Lock()
	if len(c.topics) != 0 {
		t.Fatalf("published while the node was busy: %v", c.topics)
	}
	c.mu.Unlock()
	b.locks["x"].Unlock()
	b.wg.Wait()
	if diff := cmp.Diff([]string{"w1/x/status", "w1/x"}, c.topics); diff != "" {
		t.Fatalf("published topics mismatch (-want +got):\n%s", diff)
	}
}
