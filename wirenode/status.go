// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package wirenode

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// StatusPrinter renders statuses on a terminal using ANSI color codes, one
// line per status.
type StatusPrinter struct {
	w       io.Writer
	palette ansi256.Palette
	buf     bytes.Buffer
}

// NewStatusPrinter returns a StatusPrinter writing to w, or to stdout when w
// is nil. p defaults to ansi256.Default.
func NewStatusPrinter(w io.Writer, p *ansi256.Palette) *StatusPrinter {
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	if p == nil {
		p = ansi256.Default
	}
	return &StatusPrinter{w: w, palette: *p}
}

var fills = map[Color]color.NRGBA{
	Blue:  {0, 0, 255, 255},
	Green: {0, 192, 0, 255},
	Red:   {255, 0, 0, 255},
}

// Print writes s.
func (p *StatusPrinter) Print(s Status) error {
	p.buf.Reset()
	_, _ = p.buf.WriteString("\033[0m")
	if c, ok := fills[s.Fill]; ok {
		_, _ = io.WriteString(&p.buf, p.palette.Block(c))
		_, _ = p.buf.WriteString("\033[0m")
	} else {
		_ = p.buf.WriteByte(' ')
	}
	if s.Shape == Dot {
		_, _ = p.buf.WriteString(" ● ")
	} else {
		_, _ = p.buf.WriteString(" ○ ")
	}
	_, _ = p.buf.WriteString(s.Text)
	_, _ = p.buf.WriteString("\033[0m\n")
	_, err := p.buf.WriteTo(p.w)
	return err
}
