// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6502 instruction set
// disassembler.
package disasm

import (
	"fmt"
	"strings"

	"github.com/beevik/go6502core/cpu"
)

// Disassembler formatting for addressing modes
var modeFormat = []string{
	"#$%s",    // IMM
	"%s",      // IMP
	"$%s",     // REL
	"$%s",     // ZPG
	"$%s,X",   // ZPX
	"$%s,Y",   // ZPY
	"$%s",     // ABS
	"$%s,X",   // ABX
	"$%s,Y",   // ABY
	"($%s)",   // IND
	"($%s,X)", // IDX
	"($%s),Y", // IDY
	"A",       // ACC
}

// Return a hexadecimal string representation of a little-endian operand,
// most significant byte first.
func hexString(b []byte) string {
	var sb strings.Builder
	for i := len(b) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%02X", b[i])
	}
	return sb.String()
}

// Read up to n bytes following addr. Bytes beyond the end of memory are
// omitted.
func operandBytes(m *cpu.Memory, addr uint16, n int) []byte {
	b := make([]byte, 0, n)
	for i := 1; i <= n && int(addr)+i < cpu.MemorySize; i++ {
		b = append(b, m.ReadByte(addr+uint16(i)))
	}
	return b
}

// Disassemble the machine code in memory 'm' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code.
func Disassemble(m *cpu.Memory, addr uint16) (line string, next uint16) {
	inst := cpu.GetInstructionSet().Lookup(m.ReadByte(addr))
	next = addr + uint16(inst.Length)

	if !inst.Known() {
		return inst.Name, next
	}

	operand := operandBytes(m, addr, int(inst.Length)-1)
	if len(operand) < int(inst.Length)-1 {
		return inst.Name + " ???", next
	}

	if inst.Mode == cpu.REL {
		// Convert relative offset to absolute address.
		braddr := int(addr) + int(inst.Length) + int(int8(operand[0]))
		operand = []byte{byte(braddr), byte(braddr >> 8)}
	}

	switch inst.Mode {
	case cpu.IMP:
		line = inst.Name
	case cpu.ACC:
		line = inst.Name + " " + modeFormat[cpu.ACC]
	default:
		line = inst.Name + " " + fmt.Sprintf(modeFormat[inst.Mode], hexString(operand))
	}
	return line, next
}

// CodeString returns the machine code bytes of the instruction at addr as
// space-separated hex pairs.
func CodeString(m *cpu.Memory, addr uint16) string {
	inst := cpu.GetInstructionSet().Lookup(m.ReadByte(addr))
	code := []string{fmt.Sprintf("%02X", inst.Opcode)}
	for _, b := range operandBytes(m, addr, int(inst.Length)-1) {
		code = append(code, fmt.Sprintf("%02X", b))
	}
	return strings.Join(code, " ")
}

// RegisterString returns a one-line rendering of a CPU snapshot.
func RegisterString(s cpu.Snapshot) string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s] SP=%04X PC=%04X",
		s.A, s.X, s.Y, s.PS.Flags(), s.SP, s.PC)
}
