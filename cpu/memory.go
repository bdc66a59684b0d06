// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// MemorySize is the number of addressable bytes.
const MemorySize = 64 * 1024

// BoundsError reports an access to an address beyond the end of memory.
// It matches ErrOutOfBounds when tested with errors.Is.
type BoundsError int

func (e BoundsError) Error() string {
	return f("address $%05X out of bounds", int(e))
}

// Is reports whether err is ErrOutOfBounds.
func (e BoundsError) Is(err error) bool {
	return err == ErrOutOfBounds
}

// Memory represents the entire 16-bit address space as a single flat 64K
// buffer. Words are stored little-endian and never wrap around the end of
// the address space.
type Memory struct {
	b [MemorySize]byte
}

// NewMemory creates a new zero-filled 16-bit memory space.
func NewMemory() *Memory {
	return &Memory{}
}

// ReadByte reads a single byte from the address.
func (m *Memory) ReadByte(addr uint16) byte {
	return m.b[addr]
}

// WriteByte stores a byte at the address.
func (m *Memory) WriteByte(addr uint16, v byte) {
	m.b[addr] = v
}

// ReadWord reads a 16-bit little-endian value from addr and addr+1. Reading
// a word at $FFFF fails, since its high byte would lie at $10000.
func (m *Memory) ReadWord(addr uint16) (uint16, error) {
	if int(addr)+1 >= MemorySize {
		return 0, BoundsError(int(addr) + 1)
	}
	return uint16(m.b[addr]) | uint16(m.b[addr+1])<<8, nil
}

// WriteWord stores a 16-bit value at addr and addr+1, low byte first.
func (m *Memory) WriteWord(addr uint16, v uint16) error {
	if int(addr)+1 >= MemorySize {
		return BoundsError(int(addr) + 1)
	}
	m.b[addr] = byte(v & 0xff)
	m.b[addr+1] = byte(v >> 8)
	return nil
}

// LoadBytes copies len(b) bytes of memory starting at addr into b.
func (m *Memory) LoadBytes(addr uint16, b []byte) error {
	if int(addr)+len(b) > MemorySize {
		return BoundsError(MemorySize)
	}
	copy(b, m.b[addr:])
	return nil
}

// StoreBytes copies the contents of b into memory starting at addr.
func (m *Memory) StoreBytes(addr uint16, b []byte) error {
	if int(addr)+len(b) > MemorySize {
		return BoundsError(MemorySize)
	}
	copy(m.b[addr:], b)
	return nil
}

// Offset a zero-page address 'addr' by 'offset'. If the address
// exceeds the zero-page address space, wrap it.
func offsetZeroPage(addr byte, offset byte) uint16 {
	return uint16(addr + offset)
}

// Return the absolute address 'addr' + 'offset'. The sum is not wrapped;
// a result past $FFFF is reported as out of bounds.
func offsetAddress(addr uint16, offset byte) (uint16, error) {
	sum := int(addr) + int(offset)
	if sum >= MemorySize {
		return 0, BoundsError(sum)
	}
	return uint16(sum), nil
}

// Convert a 1- or 2-byte operand into an address.
func operandToAddress(operand []byte) uint16 {
	switch {
	case len(operand) == 1:
		return uint16(operand[0])
	case len(operand) == 2:
		return uint16(operand[0]) | uint16(operand[1])<<8
	}
	return 0
}
