// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Registers contains the state of all CPU registers.
type Registers struct {
	A  byte   // accumulator
	X  byte   // X indexing register
	Y  byte   // Y indexing register
	SP uint16 // stack pointer (an absolute memory address)
	PC uint16 // program counter
	PS Status // processor status flags
}

// Init puts the registers into their reset state. A, X, Y = 0. SP = $0100.
// PC = $FFFC. PS = 0.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.SP = stackReset
	r.PC = vectorReset
	r.PS.Clear()
}

// A Snapshot is a copy of the machine state at one moment, intended for
// diagnostics.
type Snapshot struct {
	PC     uint16
	SP     uint16
	A      byte
	X      byte
	Y      byte
	PS     Status
	Cycles uint64
	Halted bool
}

// Status returns the flag register in its 8-character display form.
func (s Snapshot) Status() string {
	return s.PS.String()
}

func (s Snapshot) String() string {
	return f("PC=$%04X SP=$%04X A=$%02X X=$%02X Y=$%02X PS=%s", s.PC, s.SP, s.A, s.X, s.Y, s.PS.String())
}
