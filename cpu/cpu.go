// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a 6502 instruction-execution engine running over
// a flat 64K memory.
package cpu

import "errors"

// CPU represents a single 6502 CPU. It contains a pointer to the
// memory associated with the CPU.
type CPU struct {
	Reg       Registers       // CPU registers
	Mem       *Memory         // assigned memory
	Cycles    uint64          // total executed CPU cycles
	LastPC    uint16          // address of the most recently fetched opcode
	InstSet   *InstructionSet // instruction set used by the CPU
	halted    bool            // a halt instruction has executed
	pcWrapped bool            // the program counter ran past $FFFF
	debugger  *Debugger
	storeByte func(cpu *CPU, addr uint16, v byte)
}

const (
	vectorReset = 0xfffc
	stackReset  = 0x0100
)

// NewCPU creates an emulated 6502 CPU bound to the specified memory. If mem
// is nil, a new zero-filled memory is allocated. All registers start at
// zero; call Reset or ResetTo before running.
func NewCPU(mem *Memory) *CPU {
	if mem == nil {
		mem = NewMemory()
	}
	return &CPU{
		Mem:       mem,
		InstSet:   GetInstructionSet(),
		storeByte: (*CPU).storeByteNormal,
	}
}

// Reset puts the CPU into its defined start state: SP = $0100, A = X = Y =
// 0, all flags clear, and PC = $FFFC. The cycle counter and halt state are
// cleared. Memory is left untouched.
func (cpu *CPU) Reset() {
	cpu.Reg.Init()
	cpu.Cycles = 0
	cpu.LastPC = 0
	cpu.halted = false
	cpu.pcWrapped = false
}

// ResetTo resets the CPU, stores 'start' in the reset vector at $FFFC, and
// loads the program counter from the vector.
func (cpu *CPU) ResetTo(start uint16) error {
	cpu.Reset()
	if err := cpu.Mem.WriteWord(vectorReset, start); err != nil {
		return err
	}
	pc, err := cpu.Mem.ReadWord(vectorReset)
	if err != nil {
		return err
	}
	cpu.Reg.PC = pc
	return nil
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
	cpu.pcWrapped = false
}

// Halted returns true once a halt (NOP) instruction has executed.
func (cpu *CPU) Halted() bool {
	return cpu.halted
}

// Snapshot captures the current machine state.
func (cpu *CPU) Snapshot() Snapshot {
	return Snapshot{
		PC:     cpu.Reg.PC,
		SP:     cpu.Reg.SP,
		A:      cpu.Reg.A,
		X:      cpu.Reg.X,
		Y:      cpu.Reg.Y,
		PS:     cpu.Reg.PS,
		Cycles: cpu.Cycles,
		Halted: cpu.halted,
	}
}

// GetInstruction returns the instruction opcode at the requested address.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := cpu.Mem.ReadByte(addr)
	return cpu.InstSet.Lookup(opcode)
}

// NextAddr returns the address of the next instruction following the
// instruction at addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	inst := cpu.GetInstruction(addr)
	return addr + uint16(inst.Length)
}

// Step the cpu by one instruction. A fatal condition is returned as an
// *Error and leaves the CPU state as it was when the condition arose.
// Stepping a halted CPU does nothing.
func (cpu *CPU) Step() error {
	if cpu.halted {
		return nil
	}

	cpu.LastPC = cpu.Reg.PC

	// Grab the next opcode at the current PC
	opcode, err := cpu.fetchByte()
	if err != nil {
		return cpu.fail(err, 0)
	}

	// Look up the instruction data for the opcode
	inst := cpu.InstSet.Lookup(opcode)
	switch {
	case !inst.known:
		return cpu.fail(ErrUnknownOpcode, opcode)
	case inst.fn == nil:
		return cpu.fail(ErrUnimplemented, opcode)
	}

	// Fetch the operand (if any), advancing the PC past each byte
	var buf [2]byte
	operand := buf[:inst.Length-1]
	for i := range operand {
		if operand[i], err = cpu.fetchByte(); err != nil {
			return cpu.fail(err, opcode)
		}
	}

	// Execute the instruction
	if err := inst.fn(cpu, inst, operand); err != nil {
		return cpu.fail(err, opcode)
	}
	cpu.Cycles += uint64(inst.Cycles)

	// Update the debugger so it can handle breakpoints.
	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}
	return nil
}

// Run steps the CPU until it halts or a fatal condition occurs. A clean
// halt returns nil.
func (cpu *CPU) Run() error {
	for !cpu.halted {
		if err := cpu.Step(); err != nil {
			return err
		}
	}
	return nil
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
	cpu.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger detaches the current debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeByte = (*CPU).storeByteNormal
}

// Wrap a fatal condition together with the current machine state.
func (cpu *CPU) fail(err error, opcode byte) error {
	e := &Error{
		Err:    err,
		Opcode: opcode,
		Addr:   int(cpu.LastPC),
		State:  cpu.Snapshot(),
	}
	var be BoundsError
	if errors.As(err, &be) {
		e.Addr = int(be)
	}
	return e
}

// Read the byte at PC and advance PC. Once PC has moved past $FFFF, every
// further fetch is out of bounds.
func (cpu *CPU) fetchByte() (byte, error) {
	if cpu.pcWrapped {
		return 0, BoundsError(MemorySize)
	}
	v := cpu.Mem.ReadByte(cpu.Reg.PC)
	cpu.Reg.PC++
	if cpu.Reg.PC == 0 {
		cpu.pcWrapped = true
	}
	return v, nil
}

// Resolve the effective address of a memory operand.
func (cpu *CPU) resolve(mode Mode, operand []byte) (uint16, error) {
	switch mode {
	case ZPG, ABS:
		return operandToAddress(operand), nil
	case ZPX:
		return offsetZeroPage(operand[0], cpu.Reg.X), nil
	case ZPY:
		return offsetZeroPage(operand[0], cpu.Reg.Y), nil
	case ABX:
		return offsetAddress(operandToAddress(operand), cpu.Reg.X)
	case ABY:
		return offsetAddress(operandToAddress(operand), cpu.Reg.Y)
	case IDX:
		return cpu.Mem.ReadWord(offsetZeroPage(operand[0], cpu.Reg.X))
	case IDY:
		addr, err := cpu.Mem.ReadWord(operandToAddress(operand))
		if err != nil {
			return 0, err
		}
		return offsetAddress(addr, cpu.Reg.Y)
	default:
		panic("Invalid addressing mode")
	}
}

// Load a byte value using the requested addressing mode and the operand to
// determine where to load it from.
func (cpu *CPU) load(mode Mode, operand []byte) (byte, error) {
	switch mode {
	case IMM:
		return operand[0], nil
	case ACC:
		return cpu.Reg.A, nil
	}
	addr, err := cpu.resolve(mode, operand)
	if err != nil {
		return 0, err
	}
	return cpu.Mem.ReadByte(addr), nil
}

// Store a byte value using the specified addressing mode and the
// instruction operand to determine where to store it.
func (cpu *CPU) store(mode Mode, operand []byte, v byte) error {
	if mode == ACC {
		cpu.Reg.A = v
		return nil
	}
	addr, err := cpu.resolve(mode, operand)
	if err != nil {
		return err
	}
	cpu.storeByte(cpu, addr, v)
	return nil
}

// Store the byte value 'v' at the address 'addr'.
func (cpu *CPU) storeByteNormal(addr uint16, v byte) {
	cpu.Mem.WriteByte(addr, v)
}

// Store the byte value 'v' at the address 'addr', notifying the debugger.
func (cpu *CPU) storeByteDebugger(addr uint16, v byte) {
	cpu.debugger.onDataStore(cpu, addr, v)
	cpu.Mem.WriteByte(addr, v)
}

// Push a value 'v' onto the stack. SP is a full address and wraps modulo
// 64K.
func (cpu *CPU) push(v byte) {
	cpu.storeByte(cpu, cpu.Reg.SP, v)
	cpu.Reg.SP--
}

// Push the address 'addr' onto the stack, high byte first.
func (cpu *CPU) pushAddress(addr uint16) {
	cpu.push(byte(addr >> 8))
	cpu.push(byte(addr))
}

// Pop a value from the stack and return it.
func (cpu *CPU) pop() byte {
	cpu.Reg.SP++
	return cpu.Mem.ReadByte(cpu.Reg.SP)
}

// Pop a 16-bit address off the stack.
func (cpu *CPU) popAddress() uint16 {
	lo := cpu.pop()
	hi := cpu.pop()
	return uint16(lo) | (uint16(hi) << 8)
}

// Load a value into a register and update Z/N from it.
func (cpu *CPU) loadRegister(reg *byte, inst *Instruction, operand []byte) error {
	v, err := cpu.load(inst.Mode, operand)
	if err != nil {
		return err
	}
	*reg = v
	cpu.Reg.PS.updateNZ(v)
	return nil
}

// Boolean AND
func (cpu *CPU) and(inst *Instruction, operand []byte) error {
	v, err := cpu.load(inst.Mode, operand)
	if err != nil {
		return err
	}
	cpu.Reg.A &= v
	cpu.Reg.PS.updateNZ(cpu.Reg.A)
	return nil
}

// Boolean XOR
func (cpu *CPU) eor(inst *Instruction, operand []byte) error {
	v, err := cpu.load(inst.Mode, operand)
	if err != nil {
		return err
	}
	cpu.Reg.A ^= v
	cpu.Reg.PS.updateNZ(cpu.Reg.A)
	return nil
}

// Boolean OR
func (cpu *CPU) ora(inst *Instruction, operand []byte) error {
	v, err := cpu.load(inst.Mode, operand)
	if err != nil {
		return err
	}
	cpu.Reg.A |= v
	cpu.Reg.PS.updateNZ(cpu.Reg.A)
	return nil
}

// Jump to subroutine
func (cpu *CPU) jsr(inst *Instruction, operand []byte) error {
	addr := operandToAddress(operand)
	cpu.pushAddress(cpu.Reg.PC - 1)
	cpu.SetPC(addr)
	return nil
}

// Load Accumulator
func (cpu *CPU) lda(inst *Instruction, operand []byte) error {
	return cpu.loadRegister(&cpu.Reg.A, inst, operand)
}

// Load the X register
func (cpu *CPU) ldx(inst *Instruction, operand []byte) error {
	return cpu.loadRegister(&cpu.Reg.X, inst, operand)
}

// Load the Y register
func (cpu *CPU) ldy(inst *Instruction, operand []byte) error {
	return cpu.loadRegister(&cpu.Reg.Y, inst, operand)
}

// Logical Shift Right
func (cpu *CPU) lsr(inst *Instruction, operand []byte) error {
	v, err := cpu.load(inst.Mode, operand)
	if err != nil {
		return err
	}
	cpu.Reg.PS.Set(Carry, (v&1) == 1)
	v = v >> 1
	cpu.Reg.PS.updateNZ(v)
	return cpu.store(inst.Mode, operand, v)
}

// No-operation. Halts the CPU.
func (cpu *CPU) nop(inst *Instruction, operand []byte) error {
	cpu.halted = true
	return nil
}

// Push Accumulator
func (cpu *CPU) pha(inst *Instruction, operand []byte) error {
	cpu.push(cpu.Reg.A)
	return nil
}

// Push Processor flags
func (cpu *CPU) php(inst *Instruction, operand []byte) error {
	cpu.push(byte(cpu.Reg.PS))
	return nil
}

// Pull (pop) Accumulator
func (cpu *CPU) pla(inst *Instruction, operand []byte) error {
	cpu.Reg.A = cpu.pop()
	cpu.Reg.PS.updateNZ(cpu.Reg.A)
	return nil
}

// Pull (pop) Processor flags
func (cpu *CPU) plp(inst *Instruction, operand []byte) error {
	cpu.Reg.PS.Restore(cpu.pop())
	return nil
}

// Return from Subroutine
func (cpu *CPU) rts(inst *Instruction, operand []byte) error {
	addr := cpu.popAddress()
	cpu.SetPC(addr + 1)
	cpu.pcWrapped = addr == 0xffff
	return nil
}

// Transfer Accumulator to X register
func (cpu *CPU) tax(inst *Instruction, operand []byte) error {
	cpu.Reg.X = cpu.Reg.A
	cpu.Reg.PS.updateNZ(cpu.Reg.X)
	return nil
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay(inst *Instruction, operand []byte) error {
	cpu.Reg.Y = cpu.Reg.A
	cpu.Reg.PS.updateNZ(cpu.Reg.Y)
	return nil
}

// Transfer the low byte of the stack pointer to X register
func (cpu *CPU) tsx(inst *Instruction, operand []byte) error {
	cpu.Reg.X = byte(cpu.Reg.SP)
	cpu.Reg.PS.updateNZ(cpu.Reg.X)
	return nil
}

// Transfer X register to Accumulator
func (cpu *CPU) txa(inst *Instruction, operand []byte) error {
	cpu.Reg.A = cpu.Reg.X
	cpu.Reg.PS.updateNZ(cpu.Reg.A)
	return nil
}

// Transfer X register to the low byte of the stack pointer
func (cpu *CPU) txs(inst *Instruction, operand []byte) error {
	cpu.Reg.SP = cpu.Reg.SP&0xff00 | uint16(cpu.Reg.X)
	return nil
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya(inst *Instruction, operand []byte) error {
	cpu.Reg.A = cpu.Reg.Y
	cpu.Reg.PS.updateNZ(cpu.Reg.A)
	return nil
}
