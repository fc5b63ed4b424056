// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package w1therm reads 1-wire thermometers (DS18S20, DS1822, DS18B20,
// DS1825, DS28EA00) through the w1_slave file of the kernel w1_therm driver.
//
// Reading w1_slave makes the kernel run a conversion and dump the scratchpad
// twice, once with the result of its CRC check and once with the decoded
// temperature in millidegrees Celsius:
//
//	72 01 4b 46 7f ff 0e 10 57 : crc=57 YES
//	72 01 4b 46 7f ff 0e 10 57 t=23125
//
// A reading is accepted only when the first line ends with YES.
package w1therm

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/GermanBionicSystems/w1node/w1"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

// Unit selects the scale a Reading is reported in.
type Unit int

const (
	Fahrenheit Unit = 0
	Celsius    Unit = 1
)

func (u Unit) String() string {
	if u == Celsius {
		return "C"
	}
	return "F"
}

// Reading is one decoded w1_slave dump.
type Reading struct {
	// Raw holds the first 9 space separated fields of the dump, the
	// scratchpad bytes as printed by the kernel. Kept for diagnostics.
	Raw []string
	// MilliC is the t= field.
	MilliC int64
	// Temperature is MilliC in periph units.
	Temperature physic.Temperature
}

// Value returns the temperature in the requested unit at full precision.
func (r *Reading) Value(u Unit) float64 {
	c := float64(r.MilliC) / 1000
	if u == Celsius {
		return c
	}
	return c*9/5 + 32
}

// ErrBadCRC is returned when the kernel flagged the scratchpad CRC as bad or
// the dump holds no temperature.
var ErrBadCRC = fmt.Errorf("%w: Bad CRC detected!", w1.ErrChecksum)

// The kernel's format is fixed: the CRC verdict closes the first line and the
// t= field closes the second.
var tempRE = regexp.MustCompile(`YES\n[^t]+t=(-*\d+)`)

// Bounds of a millidegree value that fits in a physic.Temperature.
const (
	maxMilliC = (math.MaxInt64 - int64(physic.ZeroCelsius)) / int64(physic.MilliKelvin)
	minMilliC = math.MinInt64 / int64(physic.MilliKelvin)
)

// Parse decodes the content of a w1_slave file.
func Parse(data []byte) (Reading, error) {
	s := string(data)
	raw := strings.Fields(s)
	if len(raw) > 9 {
		raw = raw[:9]
	}
	m := tempRE.FindStringSubmatch(s)
	if m == nil {
		return Reading{Raw: raw}, w1.BusError(ErrBadCRC)
	}
	v, err := strconv.ParseInt(m[1], 10, 64)
	if err == nil && (v > maxMilliC || v < minMilliC) {
		err = strconv.ErrRange
	}
	if err != nil {
		return Reading{Raw: raw}, w1.BusError(fmt.Errorf("%w (t=%s)", ErrBadCRC, m[1]))
	}
	return Reading{
		Raw:         raw,
		MilliC:      v,
		Temperature: physic.ZeroCelsius + physic.Temperature(v)*physic.MilliKelvin,
	}, nil
}

// New returns a handle to the thermometer id on bus.
//
// No I/O is done; a missing device is reported by the first Read.
func New(bus *w1.Bus, id string) (*Dev, error) {
	if !w1.FamilyOf(id).Thermometer() {
		return nil, errors.New("w1therm: " + id + " is not a thermometer")
	}
	return &Dev{bus: bus, id: id}, nil
}

// Dev is a handle to a thermometer served by the w1_therm kernel driver.
type Dev struct {
	bus *w1.Bus
	id  string
}

func (d *Dev) String() string {
	return w1.FamilyOf(d.id).String() + "{" + d.id + "}"
}

// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	return nil
}

// Read triggers a conversion and returns the decoded result.
//
// It blocks for the conversion time configured in the kernel driver, up to
// 750ms at 12 bits.
func (d *Dev) Read() (Reading, error) {
	data, err := d.bus.ReadAttr(d.id, "w1_slave")
	if err != nil {
		return Reading{}, err
	}
	return Parse(data)
}

// Sense implements physic.SenseEnv.
func (d *Dev) Sense(e *physic.Env) error {
	r, err := d.Read()
	if err != nil {
		return err
	}
	e.Temperature = r.Temperature
	return nil
}

// SenseContinuous implements physic.SenseEnv.
func (d *Dev) SenseContinuous(time.Duration) (<-chan physic.Env, error) {
	return nil, errors.New("w1therm: not implemented")
}

// Precision implements physic.SenseEnv.
//
// The kernel reports millidegrees whatever the resolution of the sensor.
func (d *Dev) Precision(e *physic.Env) {
	e.Temperature = physic.MilliKelvin
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
