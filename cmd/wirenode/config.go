// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/GermanBionicSystems/w1node/w1"
	"github.com/GermanBionicSystems/w1node/wirenode"
	"gopkg.in/yaml.v3"
)

// Config is the content of the YAML file given with -config.
type Config struct {
	BusRoot  string `yaml:"bus_root"`
	LogLevel string `yaml:"log_level"`
	// WriteCommand is the privileged helper, "w <id> <a> <b>" is appended.
	WriteCommand []string `yaml:"write_command"`
	// DirectWrite writes the output attribute in-process; needs root.
	DirectWrite  bool              `yaml:"direct_write"`
	MetricsAddr  string            `yaml:"metrics_addr"`
	PollInterval time.Duration     `yaml:"poll_interval"`
	MQTT         MQTTConfig        `yaml:"mqtt"`
	Nodes        []wirenode.Config `yaml:"nodes"`
}

// MQTTConfig enables the bridge when Broker is set.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Prefix   string `yaml:"prefix"`
}

func defaultConfig() Config {
	return Config{
		BusRoot:  w1.DefaultRoot,
		LogLevel: "info",
		MQTT: MQTTConfig{
			ClientID: "wirenode",
			Prefix:   "w1",
		},
	}
}

// loadConfig reads path when not empty, then applies the environment.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if v := os.Getenv("W1_BUS_ROOT"); v != "" {
		cfg.BusRoot = v
	}
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		cfg.MQTT.Broker = v
	}
	if v := os.Getenv("MQTT_USER"); v != "" {
		cfg.MQTT.Username = v
	}
	if v := os.Getenv("MQTT_PASS"); v != "" {
		cfg.MQTT.Password = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	seen := map[string]bool{}
	for i := range c.Nodes {
		k := nodeKey(&c.Nodes[i])
		if k == "" {
			return fmt.Errorf("node %d: needs an identifier or a name", i)
		}
		if seen[k] {
			return fmt.Errorf("node %d: duplicate %q", i, k)
		}
		seen[k] = true
	}
	if c.PollInterval < 0 {
		return fmt.Errorf("negative poll_interval %s", c.PollInterval)
	}
	return nil
}

// nodeKey names the MQTT topics of a node.
func nodeKey(n *wirenode.Config) string {
	if n.Name != "" {
		return n.Name
	}
	return n.Identifier
}
