// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Status is the processor status register. Each flag is an independent bit.
type Status byte

// Processor status flags
const (
	Carry            Status = 1 << 0 // C
	Zero             Status = 1 << 1 // Z
	InterruptDisable Status = 1 << 2 // I
	Decimal          Status = 1 << 3 // D
	Break            Status = 1 << 4 // B
	Overflow         Status = 1 << 6 // V
	Negative         Status = 1 << 7 // N

	allFlags = Carry | Zero | InterruptDisable | Decimal | Break | Overflow | Negative
)

var flagNames = []struct {
	flag Status
	name string
}{
	{Negative, "N"},
	{Overflow, "V"},
	{Break, "B"},
	{Decimal, "D"},
	{InterruptDisable, "I"},
	{Zero, "Z"},
	{Carry, "C"},
}

// FlagByName returns the status flag with the one-letter name (N, V, B, D,
// I, Z or C).
func FlagByName(name string) (Status, bool) {
	for _, n := range flagNames {
		if n.name == name {
			return n.flag, true
		}
	}
	return 0, false
}

// Clear resets all flags.
func (s *Status) Clear() {
	*s = 0
}

// Set sets flag 'flag' if 'on' is true. Otherwise it clears it.
func (s *Status) Set(flag Status, on bool) {
	if on {
		*s |= flag
	} else {
		*s &^= flag
	}
}

// Get returns true if the flag is set.
func (s Status) Get(flag Status) bool {
	return (s & flag) != 0
}

// Restore overwrites every flag from the byte 'b'.
func (s *Status) Restore(b byte) {
	*s = Status(b) & allFlags
}

// String returns the status as eight '0'/'1' characters, most significant
// bit first.
func (s Status) String() string {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		if s&(0x80>>i) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf[:])
}

// Flags returns the status as flag letters, with '-' for clear flags.
func (s Status) Flags() string {
	buf := make([]byte, len(flagNames))
	for i, n := range flagNames {
		if s.Get(n.flag) {
			buf[i] = n.name[0]
		} else {
			buf[i] = '-'
		}
	}
	return string(buf)
}

// Update the Zero and Negative flags based on the value of 'v'.
func (s *Status) updateNZ(v byte) {
	s.Set(Zero, v == 0)
	s.Set(Negative, (v&0x80) != 0)
}
