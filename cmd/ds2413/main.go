// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// ds2413 sets the output latches of a DS2413 through sysfs.
//
// It is meant to be installed as /usr/local/bin/ds2413 and allowed in
// sudoers, so that an unprivileged wirenode can write the root only output
// attribute:
//
//	nodered ALL=(root) NOPASSWD: /usr/local/bin/ds2413
//
// Usage:
//
//	ds2413 [-root dir] w <identifier> <a> <b>
//	ds2413 [-root dir] r <identifier>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/GermanBionicSystems/w1node/ds2413"
	"github.com/GermanBionicSystems/w1node/w1"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

func mainImpl() error {
	root := flag.String("root", w1.DefaultRoot, "w1 sysfs devices directory")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-root dir] w <identifier> <a> <b>\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "       %s [-root dir] r <identifier>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		return errors.New("missing arguments")
	}
	id, err := checkID(args[1])
	if err != nil {
		return err
	}
	bus := &w1.Bus{Root: *root}
	w := &ds2413.SysfsWriter{Bus: bus}
	d, err := ds2413.New(bus, id, w)
	if err != nil {
		return err
	}

	switch args[0] {
	case "w":
		if len(args) != 4 {
			return errors.New("w takes <identifier> <a> <b>")
		}
		a, err := parseLevel(args[2])
		if err != nil {
			return err
		}
		b, err := parseLevel(args[3])
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"identifier": id, "a": a, "b": b}).Debug("writing output")
		return w.Write(context.Background(), id, a, b)
	case "r":
		s, err := d.Read()
		if err != nil {
			return err
		}
		out, err := json.Marshal(s.Port())
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", s, out)
		return nil
	default:
		flag.Usage()
		return fmt.Errorf("unknown mode %q", args[0])
	}
}

// idRE matches the kernel form 3a-0000001d5c2a and the dotted form
// 3a.0123456789[.ab], with a 10 or 12 digit serial.
var idRE = regexp.MustCompile(`^[[:xdigit:]]{2}(?:-(?:[[:xdigit:]]{10}|[[:xdigit:]]{12})|\.(?:[[:xdigit:]]{10}|[[:xdigit:]]{12})(?:\.[[:xdigit:]]{2})?)$`)

// checkID rejects anything that is not a well formed DS2413 identifier. The
// helper runs as root and the identifier becomes part of a path.
func checkID(id string) (string, error) {
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") || !idRE.MatchString(id) {
		return "", fmt.Errorf("invalid identifier %q", id)
	}
	if f := w1.FamilyOf(id); f != w1.DS2413 {
		return "", fmt.Errorf("%s is a %s, not a DS2413", id, f)
	}
	// A full ROM code carries a crc that can be checked.
	if _, err := w1.ParseAddress(id); errors.Is(err, w1.ErrChecksum) {
		return "", err
	}
	return id, nil
}

func parseLevel(s string) (gpio.Level, error) {
	switch s {
	case "0", "false":
		return gpio.Low, nil
	case "1", "true":
		return gpio.High, nil
	}
	return gpio.Low, fmt.Errorf("invalid latch value %q, expected 0 or 1", s)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "ds2413: %s.\n", err)
		os.Exit(1)
	}
}
