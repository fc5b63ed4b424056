// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package w1node is a container for the 1-wire device drivers and the flow
// node built on them.
//
// The drivers talk to the Linux w1 subsystem through sysfs: w1therm for
// thermometers and ds2413 for the dual channel switch. Package wirenode
// dispatches flow messages to them, cmd/wirenode hosts it, and cmd/ds2413 is
// the privileged write helper.
package w1node
