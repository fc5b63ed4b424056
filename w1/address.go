// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package w1

import (
	"encoding/hex"
	"fmt"
	"strings"

	"periph.io/x/conn/v3/onewire"
)

// ParseAddress converts an identifier into the 64-bit ROM code used by
// periph's onewire package: family code in the low byte, CRC in the high byte.
//
// Two spellings are accepted:
//
//	28-0000070e41ac      kernel sysfs, serial printed most significant byte first
//	28.AC410E070000[.74] owfs, serial in ROM order with optional CRC
//
// When the CRC is absent it is computed. When present it must match.
func ParseAddress(id string) (onewire.Address, error) {
	id = strings.TrimSpace(id)
	var sep byte
	switch {
	case len(id) > 2 && id[2] == '-':
		sep = '-'
	case len(id) > 2 && id[2] == '.':
		sep = '.'
	default:
		return 0, fmt.Errorf("w1: malformed identifier %q", id)
	}
	parts := strings.Split(id, string(sep))
	if len(parts) < 2 || len(parts) > 3 || (sep == '-' && len(parts) != 2) {
		return 0, fmt.Errorf("w1: malformed identifier %q", id)
	}
	fam, err := hex.DecodeString(parts[0])
	if err != nil || len(fam) != 1 {
		return 0, fmt.Errorf("w1: bad family code in %q", id)
	}
	serial, err := hex.DecodeString(parts[1])
	if err != nil || len(serial) != 6 {
		return 0, fmt.Errorf("w1: bad serial number in %q", id)
	}
	if sep == '-' {
		// The kernel prints the serial as a number.
		for i, j := 0, len(serial)-1; i < j; i, j = i+1, j-1 {
			serial[i], serial[j] = serial[j], serial[i]
		}
	}
	rom := append(fam, serial...)
	crc := onewire.CalcCRC(rom)
	if len(parts) == 3 {
		got, err := hex.DecodeString(parts[2])
		if err != nil || len(got) != 1 {
			return 0, fmt.Errorf("w1: bad crc in %q", id)
		}
		if got[0] != crc {
			return 0, fmt.Errorf("%w: identifier %q has crc %#02x, expected %#02x", ErrChecksum, id, got[0], crc)
		}
	}
	rom = append(rom, crc)
	var a onewire.Address
	for i := len(rom) - 1; i >= 0; i-- {
		a = a<<8 | onewire.Address(rom[i])
	}
	return a, nil
}

// FamilyOfAddress returns the family code held in the low byte of a.
func FamilyOfAddress(a onewire.Address) Family {
	return Family(a & 0xff)
}
