// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2413

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GermanBionicSystems/w1node/w1"
	"periph.io/x/conn/v3/gpio"
)

// ErrBadCommand is returned by ParseCommand for a latch value that is
// neither 0, 1, false nor true. It counts as a failed write.
var ErrBadCommand = fmt.Errorf("ds2413: %w: bad command", w1.ErrWrite)

// Command holds the requested latch values. A nil field leaves the latch
// as it currently is.
type Command struct {
	A *gpio.Level
	B *gpio.Level
}

// Resolve fills the fields missing from c with the latches of current.
func (c Command) Resolve(current State) (a, b gpio.Level) {
	a, b = current.Latch(A), current.Latch(B)
	if c.A != nil {
		a = *c.A
	}
	if c.B != nil {
		b = *c.B
	}
	return a, b
}

func (c Command) String() string {
	return "{a:" + optString(c.A) + " b:" + optString(c.B) + "}"
}

// ParseCommand interprets a decoded message payload.
//
// A payload that is neither a JSON array nor a JSON object is a read
// request, for which ok is false. An array is [b, a]; an object has keys
// a and b, case insensitive, the lowercase one winning. Missing, null or
// out of range slots leave the latch unspecified.
func ParseCommand(payload any) (c Command, ok bool, err error) {
	switch p := payload.(type) {
	case []any:
		if len(p) > 0 {
			if c.B, err = level(p[0]); err != nil {
				return Command{}, true, err
			}
		}
		if len(p) > 1 {
			if c.A, err = level(p[1]); err != nil {
				return Command{}, true, err
			}
		}
		return c, true, nil
	case map[string]any:
		if c.A, err = lookup(p, "a"); err != nil {
			return Command{}, true, err
		}
		if c.B, err = lookup(p, "b"); err != nil {
			return Command{}, true, err
		}
		return c, true, nil
	case Command:
		return p, true, nil
	case *Command:
		if p == nil {
			return Command{}, false, nil
		}
		return *p, true, nil
	default:
		return Command{}, false, nil
	}
}

func lookup(m map[string]any, key string) (*gpio.Level, error) {
	if v, ok := m[key]; ok && v != nil {
		return level(v)
	}
	return level(m[strings.ToUpper(key)])
}

func level(v any) (*gpio.Level, error) {
	var l gpio.Level
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		l = gpio.Level(x)
	case gpio.Level:
		l = x
	case float64:
		if x != 0 && x != 1 {
			return nil, fmt.Errorf("%w: %v", ErrBadCommand, v)
		}
		l = x == 1
	case int:
		if x != 0 && x != 1 {
			return nil, fmt.Errorf("%w: %v", ErrBadCommand, v)
		}
		l = x == 1
	case json.Number:
		switch x {
		case "0":
		case "1":
			l = gpio.High
		default:
			return nil, fmt.Errorf("%w: %v", ErrBadCommand, v)
		}
	case string:
		switch strings.TrimSpace(x) {
		case "0":
		case "1":
			l = gpio.High
		default:
			return nil, fmt.Errorf("%w: %q", ErrBadCommand, x)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrBadCommand, v)
	}
	return &l, nil
}

func optString(l *gpio.Level) string {
	if l == nil {
		return "-"
	}
	return fmt.Sprint(bit(*l))
}
