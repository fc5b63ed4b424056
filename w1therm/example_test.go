// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package w1therm_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/w1node/w1"
	"github.com/GermanBionicSystems/w1node/w1therm"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// The w1-gpio and w1-therm kernel modules must be loaded.
	d, err := w1therm.New(w1.DefaultBus, "28-0000070e41ac")
	if err != nil {
		log.Fatal(err)
	}
	e := physic.Env{}
	if err := d.Sense(&e); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %s\n", d, e.Temperature)
}
