// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/w1node/wirenode"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// bridge connects configured nodes to MQTT.
//
// For a node keyed k (its name, else its identifier):
//
//	<prefix>/<k>/in      inbound messages, JSON
//	<prefix>/<k>         outbound messages, JSON
//	<prefix>/<k>/status  status, JSON, retained
//
// Messages are handled off the MQTT client's goroutine, one at a time per node.
type bridge struct {
	client mqtt.Client
	prefix string
	nodes  map[string]*wirenode.Node
	locks  map[string]*sync.Mutex
	wg     sync.WaitGroup
}

func newBridge(cfg *MQTTConfig, nodes map[string]*wirenode.Node) *bridge {
	b := &bridge{prefix: cfg.Prefix, nodes: nodes, locks: make(map[string]*sync.Mutex, len(nodes))}
	for k := range nodes {
		b.locks[k] = &sync.Mutex{}
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		log.Info("Connected to MQTT broker")
		for k := range b.nodes {
			topic := b.topic(k, "in")
			if token := c.Subscribe(topic, 0, b.onMessage(k)); token.Wait() && token.Error() != nil {
				log.Errorf("Failed to subscribe to %s: %v", topic, token.Error())
			}
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warnf("MQTT connection lost: %v", err)
	})
	b.client = mqtt.NewClient(opts)
	return b
}

func (b *bridge) connect() {
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		log.Warn("Could not connect to MQTT initially, will retry in background: ", token.Error())
	}
}

func (b *bridge) close() {
	b.wg.Wait()
	b.client.Disconnect(250)
}

func (b *bridge) topic(key string, suffix ...string) string {
	t := b.prefix + "/" + key
	for _, s := range suffix {
		t += "/" + s
	}
	return t
}

func (b *bridge) onMessage(key string) mqtt.MessageHandler {
	return func(_ mqtt.Client, m mqtt.Message) {
		msg := decodeMessage(m.Payload())
		log.Debugf("MQTT RX %s: %s", m.Topic(), m.Payload())
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.run(key, msg)
		}()
	}
}

// poll sends a read request to every node each interval until ctx is done.
func (b *bridge) poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for k := range b.nodes {
				b.run(k, wirenode.Message{})
			}
		}
	}
}

func (b *bridge) run(key string, msg wirenode.Message) {
	mu := b.locks[key]
	mu.Lock()
	defer mu.Unlock()
	n := b.nodes[key]
	res := n.Handle(context.Background(), msg)
	b.publish(b.topic(key, "status"), true, res.Status)
	if res.Output != nil {
		b.publish(b.topic(key), false, res.Output)
	}
}

func (b *bridge) publish(topic string, retained bool, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Errorf("Failed to marshal %s: %v", topic, err)
		return
	}
	log.Debugf("MQTT PUB %s: %s", topic, payload)
	token := b.client.Publish(topic, 0, retained, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		log.Warnf("Failed to publish %s: %v", topic, err)
	}
}

// decodeMessage accepts a full message envelope, a bare JSON payload, or
// anything else as a read request.
func decodeMessage(data []byte) wirenode.Message {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return wirenode.Message{}
	}
	if m, ok := v.(map[string]any); ok {
		_, hasPayload := m["payload"]
		_, hasID := m["identifier"]
		_, hasTopic := m["topic"]
		if hasPayload || hasID || hasTopic {
			return wirenode.Message{
				Identifier: stringOf(m["identifier"]),
				Topic:      stringOf(m["topic"]),
				Payload:    m["payload"],
			}
		}
	}
	return wirenode.Message{Payload: v}
}

func stringOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
