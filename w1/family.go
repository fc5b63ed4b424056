// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package w1

import (
	"strconv"
	"strings"
)

// Family code of the specific device type.
type Family byte

const (
	DS18S20  Family = 0x10
	DS1822   Family = 0x22
	DS18B20  Family = 0x28
	DS2413   Family = 0x3a
	DS1825   Family = 0x3b
	DS28EA00 Family = 0x42

	// Unknown is returned by FamilyOf when the identifier does not start with
	// two hex digits. No 1-wire device uses family code 0.
	Unknown Family = 0x00
)

func (f Family) String() string {
	switch f {
	case DS18S20:
		return "DS18S20"
	case DS1822:
		return "DS1822"
	case DS18B20:
		return "DS18B20"
	case DS2413:
		return "DS2413"
	case DS1825:
		return "DS1825"
	case DS28EA00:
		return "DS28EA00"
	default:
		return "unknown"
	}
}

// Code returns the two lowercase hex digits used in identifiers.
func (f Family) Code() string {
	const hex = "0123456789abcdef"
	return string([]byte{hex[f>>4], hex[f&0xf]})
}

// Thermometer reports whether the family is served by the kernel w1_therm
// driver and therefore exposes a w1_slave file.
func (f Family) Thermometer() bool {
	switch f {
	case DS18S20, DS1822, DS18B20, DS1825, DS28EA00:
		return true
	}
	return false
}

// FamilyOf returns the family encoded in the first two characters of id.
//
// Case is ignored. It returns Unknown when id is shorter than two characters
// or does not start with hex digits.
func FamilyOf(id string) Family {
	if len(id) < 2 {
		return Unknown
	}
	v, err := strconv.ParseUint(strings.ToLower(id[:2]), 16, 8)
	if err != nil {
		return Unknown
	}
	return Family(v)
}
