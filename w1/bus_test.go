// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package w1

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"periph.io/x/conn/v3/onewire"
)

func TestBus_ReadAttr(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "3a-000000000001")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "state"), []byte{0x69}, 0o644); err != nil {
		t.Fatal(err)
	}
	b := &Bus{Root: root}
	data, err := b.ReadAttr("3a-000000000001", "state")
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 1 || data[0] != 0x69 {
		t.Fatalf("unexpected data %#v", data)
	}

	_, err = b.ReadAttr("3a-000000000002", "state")
	if !errors.Is(err, ErrRead) {
		t.Fatalf("expected read error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected the os error to be kept, got %v", err)
	}
	var be onewire.BusError
	if !errors.As(err, &be) || !be.BusError() {
		t.Fatalf("expected a bus error, got %T", err)
	}
	if FaultOf(err) != ReadFault {
		t.Fatal(FaultOf(err))
	}
}

func TestBus_ReadAttr_io(t *testing.T) {
	defer func() { readFile = os.ReadFile }()
	readFile = func(string) ([]byte, error) { return nil, syscall.EIO }
	_, err := DefaultBus.ReadAttr("28-0000070e41ac", "w1_slave")
	if !errors.Is(err, syscall.EIO) || !errors.Is(err, ErrRead) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestBus_WriteAttr(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "3a-000000000001")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "output")
	if err := os.WriteFile(out, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	b := &Bus{Root: root}
	if err := b.WriteAttr("3a-000000000001", "output", []byte{0x02}); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 0x02 {
		t.Fatalf("unexpected content %#v", got)
	}
	// Attributes are never created.
	err = b.WriteAttr("3a-000000000002", "output", []byte{0x02})
	if !errors.Is(err, ErrWrite) || FaultOf(err) != WriteFault {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestBus_Path(t *testing.T) {
	if p := DefaultBus.Path("28-0000070e41ac", "w1_slave"); p != "/sys/bus/w1/devices/28-0000070e41ac/w1_slave" {
		t.Fatal(p)
	}
	var b *Bus
	if p := b.Path("x", "y"); p != "/sys/bus/w1/devices/x/y" {
		t.Fatal(p)
	}
	if s := (&Bus{Root: "/tmp/w1"}).String(); s != "w1(/tmp/w1)" {
		t.Fatal(s)
	}
}

func TestFaultOf(t *testing.T) {
	var data = []struct {
		err   error
		fault Fault
		name  string
	}{
		{nil, NoFault, "none"},
		{ErrRead, ReadFault, "read"},
		{BusError(ErrChecksum), ChecksumFault, "checksum"},
		{errors.Join(errors.New("exit status 1"), ErrWrite), WriteFault, "write"},
		{errors.New("boom"), OtherFault, "other"},
	}
	for _, line := range data {
		if f := FaultOf(line.err); f != line.fault || f.String() != line.name {
			t.Errorf("FaultOf(%v) = %s, expected %s", line.err, f, line.name)
		}
	}
}
