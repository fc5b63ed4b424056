// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ds2413

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/GermanBionicSystems/w1node/w1"
	"periph.io/x/conn/v3/gpio"
)

// PortWriter sets the output latches of the DS2413 id.
//
// Any error is treated as a failed write; the state is not read back.
type PortWriter interface {
	Write(ctx context.Context, id string, a, b gpio.Level) error
}

// DefaultHelper is the command line used by ExecWriter when Command is
// empty. The helper must be allowed in sudoers with NOPASSWD.
var DefaultHelper = []string{"sudo", "-n", "/usr/local/bin/ds2413"}

// ExecWriter runs Command followed by "w <id> <a> <b>", a and b being 0 or 1.
// A non-zero exit status is a failed write.
type ExecWriter struct {
	Command []string
}

func (e *ExecWriter) String() string {
	return "exec(" + strings.Join(e.argv(), " ") + ")"
}

// Write implements PortWriter.
func (e *ExecWriter) Write(ctx context.Context, id string, a, b gpio.Level) error {
	argv := append(e.argv(), "w", id, fmt.Sprint(bit(a)), fmt.Sprint(bit(b)))
	cmd := execCommand(ctx, argv[0], argv[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(out.String()); msg != "" {
			return fmt.Errorf("ds2413: %w: %s: %w (%s)", w1.ErrWrite, strings.Join(argv, " "), err, msg)
		}
		return fmt.Errorf("ds2413: %w: %s: %w", w1.ErrWrite, strings.Join(argv, " "), err)
	}
	return nil
}

func (e *ExecWriter) argv() []string {
	if len(e.Command) == 0 {
		return append([]string(nil), DefaultHelper...)
	}
	return append([]string(nil), e.Command...)
}

// SysfsWriter writes the output attribute directly. The process must be
// root.
type SysfsWriter struct {
	Bus *w1.Bus
}

func (s *SysfsWriter) String() string {
	return "sysfs(" + s.Bus.String() + ")"
}

// Write implements PortWriter.
//
// Bit 0 of the byte drives PIOA and bit 1 PIOB.
func (s *SysfsWriter) Write(ctx context.Context, id string, a, b gpio.Level) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ds2413: %w: %w", w1.ErrWrite, err)
	}
	return s.Bus.WriteAttr(id, "output", []byte{byte(bit(b)<<1 | bit(a))})
}

var execCommand = exec.CommandContext

var _ PortWriter = &ExecWriter{}
var _ PortWriter = &SysfsWriter{}
