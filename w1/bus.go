// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package w1

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultRoot is where the kernel lists the slaves of every bus master.
const DefaultRoot = "/sys/bus/w1/devices"

// Bus is a view of the w1 sysfs tree rooted at Root.
//
// Bus holds no state besides the path and can be shared freely. The kernel
// driver serializes access per slave.
type Bus struct {
	Root string
}

// DefaultBus is the bus found at DefaultRoot.
var DefaultBus = &Bus{Root: DefaultRoot}

func (b *Bus) String() string {
	return "w1(" + b.root() + ")"
}

// Path returns the path of attribute name of slave id.
func (b *Bus) Path(id, name string) string {
	return filepath.Join(b.root(), id, name)
}

// ReadAttr reads attribute name of slave id.
//
// Any failure wraps ErrRead.
func (b *Bus) ReadAttr(id, name string) ([]byte, error) {
	data, err := readFile(b.Path(id, name))
	if err != nil {
		return nil, BusError(fmt.Errorf("w1: %w: %w", ErrRead, err))
	}
	return data, nil
}

// WriteAttr writes data to attribute name of slave id. The process needs
// write permission on the attribute, which the kernel grants to root only.
//
// Any failure wraps ErrWrite.
func (b *Bus) WriteAttr(id, name string, data []byte) error {
	if err := writeFile(b.Path(id, name), data); err != nil {
		return BusError(fmt.Errorf("w1: %w: %w", ErrWrite, err))
	}
	return nil
}

func (b *Bus) root() string {
	if b == nil || b.Root == "" {
		return DefaultRoot
	}
	return b.Root
}

// writeFile opens without O_CREATE: a missing attribute means a missing
// device, not a file to create.
func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

var readFile = os.ReadFile
