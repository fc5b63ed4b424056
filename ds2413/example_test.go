// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2413_test

import (
	"context"
	"fmt"
	"log"

	"github.com/GermanBionicSystems/w1node/ds2413"
	"github.com/GermanBionicSystems/w1node/w1"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Writes go through "sudo -n /usr/local/bin/ds2413".
	d, err := ds2413.New(w1.DefaultBus, "3a-0000001d5c2a", &ds2413.ExecWriter{})
	if err != nil {
		log.Fatal(err)
	}
	s, err := d.Read()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %+v\n", s, s.Port())

	// Turn the PIOA output transistor on, leave PIOB alone.
	low := gpio.Low
	if s, err = d.Write(context.Background(), ds2413.Command{A: &low}); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %+v\n", s, s.Port())
}
