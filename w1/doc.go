// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package w1 contains the pieces shared by the drivers that talk to 1-wire
// slaves through the Linux w1 sysfs interface.
//
// The kernel exposes every slave found on a bus master as a directory named
// after its ROM code under /sys/bus/w1/devices. The family specific drivers
// (w1_therm, w1_ds2413) add attribute files to that directory; this package
// locates and reads them, and classifies what can go wrong while doing so.
//
// # Identifiers
//
// A slave is named by its family code followed by its serial number, for
// example "28-0000070e41ac" (kernel form) or "28.AC410E070000.74" (owfs form,
// optional trailing CRC). Only the first two characters are needed to pick a
// driver; see FamilyOf.
package w1
