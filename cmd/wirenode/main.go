// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// wirenode reads and writes 1-wire devices exposed by the Linux w1 sysfs
// interface.
//
// Without an MQTT broker it handles a single message built from the flags,
// prints the outbound message as JSON on stdout and the status on stderr:
//
//	wirenode -id 28-0000070e41ac -format C
//	wirenode -id 3a-0000001d5c2a -payload '{"a":0}'
//
// With mqtt.broker set in the configuration file (or MQTT_BROKER) it bridges
// every configured node to MQTT until interrupted.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GermanBionicSystems/w1node/ds2413"
	"github.com/GermanBionicSystems/w1node/w1"
	"github.com/GermanBionicSystems/w1node/w1therm"
	"github.com/GermanBionicSystems/w1node/wirenode"
	"github.com/mattn/go-colorable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"periph.io/x/host/v3"
)

func setupLogging(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func newWriter(cfg *Config, bus *w1.Bus) ds2413.PortWriter {
	if cfg.DirectWrite {
		return &ds2413.SysfsWriter{Bus: bus}
	}
	return &ds2413.ExecWriter{Command: cfg.WriteCommand}
}

func parseUnit(s string) (w1therm.Unit, error) {
	switch strings.ToUpper(s) {
	case "C", "1":
		return w1therm.Celsius, nil
	case "F", "0":
		return w1therm.Fahrenheit, nil
	}
	return 0, fmt.Errorf("unknown format %q, expected C or F", s)
}

func mainImpl() error {
	cfgPath := flag.String("config", "", "YAML configuration file")
	id := flag.String("id", "", "device identifier, e.g. 28-0000070e41ac")
	name := flag.String("name", "", "outbound topic")
	topic := flag.String("topic", "", "inbound topic")
	payload := flag.String("payload", "", "JSON payload; an object or array writes a DS2413")
	format := flag.String("format", "C", "temperature unit, C or F")
	root := flag.String("root", "", "w1 sysfs devices directory")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *root != "" {
		cfg.BusRoot = *root
	}
	setupLogging(cfg.LogLevel)

	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Debugf("periph host: %v", err)
	}

	bus := &w1.Bus{Root: cfg.BusRoot}
	opts := &wirenode.Opts{Bus: bus, Writer: newWriter(&cfg, bus), Logger: log.StandardLogger()}
	if cfg.MetricsAddr != "" {
		if opts.Metrics, err = wirenode.NewMetrics(prometheus.DefaultRegisterer); err != nil {
			return err
		}
		go serveMetrics(cfg.MetricsAddr)
	}

	if cfg.MQTT.Broker == "" {
		unit, err := parseUnit(*format)
		if err != nil {
			return err
		}
		return once(wirenode.New(wirenode.Config{Identifier: *id, Name: *name, Unit: unit}, opts), *topic, *payload)
	}
	if len(cfg.Nodes) == 0 {
		return errors.New("no nodes configured")
	}
	nodes := make(map[string]*wirenode.Node, len(cfg.Nodes))
	for i := range cfg.Nodes {
		nodes[nodeKey(&cfg.Nodes[i])] = wirenode.New(cfg.Nodes[i], opts)
	}
	return serve(&cfg, nodes)
}

// once handles a single message.
func once(n *wirenode.Node, topic, payload string) error {
	msg := wirenode.Message{Topic: topic}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &msg.Payload); err != nil {
			return fmt.Errorf("-payload: %w", err)
		}
	}
	res := n.Handle(context.Background(), msg)
	if err := wirenode.NewStatusPrinter(colorable.NewColorableStderr(), nil).Print(res.Status); err != nil {
		return err
	}
	if res.Output != nil {
		out, err := json.Marshal(res.Output)
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}
	return res.Err
}

func serve(cfg *Config, nodes map[string]*wirenode.Node) error {
	log.Infof("Starting wirenode with %d nodes on %s", len(nodes), cfg.BusRoot)
	b := newBridge(&cfg.MQTT, nodes)
	b.connect()
	defer b.close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if cfg.PollInterval > 0 {
		go b.poll(ctx, cfg.PollInterval)
	}
	<-ctx.Done()
	log.Info("Shutting down...")
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Infof("Serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Errorf("Metrics server: %v", err)
	}
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "wirenode: %s.\n", err)
		os.Exit(1)
	}
}
