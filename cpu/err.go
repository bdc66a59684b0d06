// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"errors"

	"github.com/beevik/go6502core/translate"
)

var f = translate.From

// Fatal execution conditions
var (
	ErrUnknownOpcode = errors.New(f("unknown opcode"))
	ErrOutOfBounds   = errors.New(f("memory access out of bounds"))
	ErrUnimplemented = errors.New(f("instruction not implemented"))
)

// An Error is returned by Step and Run when execution cannot continue. It
// carries the condition together with the machine state at the time of the
// failure.
type Error struct {
	Err    error    // ErrUnknownOpcode, ErrOutOfBounds or ErrUnimplemented
	Opcode byte     // opcode being executed
	Addr   int      // address of the opcode, or the out-of-bounds address
	State  Snapshot // machine state when execution stopped
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrOutOfBounds):
		return f("%v (opcode $%02X) at $%05X [%v]", ErrOutOfBounds, e.Opcode, e.Addr, e.State)
	default:
		return f("%v $%02X at $%04X [%v]", e.Err, e.Opcode, e.Addr, e.State)
	}
}

// Unwrap returns the underlying condition.
func (e *Error) Unwrap() error {
	return e.Err
}
