// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package wirenode turns one inbound flow message into one 1-wire
// transaction and reports the outcome as an outbound message plus a status.
//
// The family code at the start of the identifier selects the handler:
// thermometers (10, 22, 28, 3b, 42) are read through w1therm, the DS2413
// (3a) is read or written through ds2413, and every other family gets the
// placeholder payload "TBD" without any I/O.
//
// Faults never escape Handle. They are logged as warnings, reported in
// Result.Err, and leave the status at "<identifier>: NA" with no outbound
// message.
package wirenode
