package cpu_test

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/beevik/go6502core/cpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadCPU stores a program given as hex bytes at 'origin' and resets the
// CPU to start there.
func loadCPU(t *testing.T, origin uint16, program string) *cpu.CPU {
	t.Helper()
	var digits strings.Builder
	for line := range strings.Lines(program) {
		line, _, _ = strings.Cut(line, ";")
		digits.WriteString(strings.Join(strings.Fields(line), ""))
	}
	code, err := hex.DecodeString(digits.String())
	require.NoError(t, err)

	c := cpu.NewCPU(nil)
	require.NoError(t, c.Mem.StoreBytes(origin, code))
	require.NoError(t, c.ResetTo(origin))
	return c
}

func runCPU(t *testing.T, origin uint16, program string) *cpu.CPU {
	t.Helper()
	c := loadCPU(t, origin, program)
	require.NoError(t, c.Run())
	return c
}

func expectPC(t *testing.T, cpu *cpu.CPU, pc uint16) {
	t.Helper()
	if cpu.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, cpu.Reg.PC)
	}
}

func expectCycles(t *testing.T, cpu *cpu.CPU, cycles uint64) {
	t.Helper()
	if cpu.Cycles != cycles {
		t.Errorf("Cycles incorrect. exp: %d, got: %d", cycles, cpu.Cycles)
	}
}

func expectACC(t *testing.T, cpu *cpu.CPU, acc byte) {
	t.Helper()
	if cpu.Reg.A != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, cpu.Reg.A)
	}
}

func expectX(t *testing.T, cpu *cpu.CPU, x byte) {
	t.Helper()
	if cpu.Reg.X != x {
		t.Errorf("X register incorrect. exp: $%02X, got: $%02X", x, cpu.Reg.X)
	}
}

func expectSP(t *testing.T, cpu *cpu.CPU, sp uint16) {
	t.Helper()
	if cpu.Reg.SP != sp {
		t.Errorf("stack pointer incorrect. exp: $%04X, got $%04X", sp, cpu.Reg.SP)
	}
}

func expectMem(t *testing.T, cpu *cpu.CPU, addr uint16, v byte) {
	t.Helper()
	got := cpu.Mem.ReadByte(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func expectFlags(t *testing.T, c *cpu.CPU, z, n bool) {
	t.Helper()
	if c.Reg.PS.Get(cpu.Zero) != z || c.Reg.PS.Get(cpu.Negative) != n {
		t.Errorf("Flags incorrect. exp: Z=%v N=%v, got: %s", z, n, c.Reg.PS.Flags())
	}
}

func TestReset(t *testing.T) {
	c := cpu.NewCPU(nil)
	c.Reg.A, c.Reg.X, c.Reg.Y = 1, 2, 3
	c.Reg.PS = 0xff
	c.Mem.WriteByte(0x2000, 0x99)

	c.Reset()
	expectPC(t, c, 0xfffc)
	expectSP(t, c, 0x0100)
	expectACC(t, c, 0)
	expectX(t, c, 0)
	assert.Equal(t, byte(0), c.Reg.Y)
	assert.Equal(t, "00000000", c.Snapshot().Status())
	expectMem(t, c, 0x2000, 0x99)
}

func TestResetTo(t *testing.T) {
	c := cpu.NewCPU(nil)
	require.NoError(t, c.ResetTo(0x1234))
	expectPC(t, c, 0x1234)
	expectMem(t, c, 0xfffc, 0x34)
	expectMem(t, c, 0xfffd, 0x12)
}

func TestAccumulator(t *testing.T) {
	c := runCPU(t, 0x1000, `
		A9 5E    ; LDA #$5E
		EA       ; NOP`)

	expectPC(t, c, 0x1003)
	expectCycles(t, c, 4)
	expectACC(t, c, 0x5e)
	assert.True(t, c.Halted())
}

func TestLoadNegative(t *testing.T) {
	c := runCPU(t, 0x1000, "A9 80 EA")
	expectACC(t, c, 0x80)
	expectFlags(t, c, false, true)
}

// Place the value 'v' where an instruction with addressing mode 'mode'
// will find it, with X = Y = 2, and return the operand bytes.
func placeOperand(t *testing.T, c *cpu.CPU, mode cpu.Mode, v byte) []byte {
	t.Helper()
	switch mode {
	case cpu.IMM:
		return []byte{v}
	case cpu.ZPG:
		c.Mem.WriteByte(0x10, v)
		return []byte{0x10}
	case cpu.ZPX, cpu.ZPY:
		c.Mem.WriteByte(0x12, v)
		return []byte{0x10}
	case cpu.ABS:
		c.Mem.WriteByte(0x3000, v)
		return []byte{0x00, 0x30}
	case cpu.ABX, cpu.ABY:
		c.Mem.WriteByte(0x3002, v)
		return []byte{0x00, 0x30}
	case cpu.IDX:
		require.NoError(t, c.Mem.WriteWord(0x22, 0x4000))
		c.Mem.WriteByte(0x4000, v)
		return []byte{0x20}
	case cpu.IDY:
		require.NoError(t, c.Mem.WriteWord(0x30, 0x4100))
		c.Mem.WriteByte(0x4102, v)
		return []byte{0x30}
	}
	t.Fatalf("unexpected mode %v", mode)
	return nil
}

func TestLoadFlagsEveryMode(t *testing.T) {
	values := []struct {
		v    byte
		z, n bool
	}{
		{0x00, true, false},
		{0x80, false, true},
		{0xff, false, true},
		{0x37, false, false},
	}

	for _, name := range []string{"LDA", "LDX", "LDY"} {
		for _, inst := range cpu.GetInstructionSet().GetInstructions(name) {
			for _, tc := range values {
				c := cpu.NewCPU(nil)
				c.Reset()
				c.Reg.X, c.Reg.Y = 2, 2

				code := []byte{inst.Opcode}
				code = append(code, placeOperand(t, c, inst.Mode, tc.v)...)
				code = append(code, 0xea)
				require.NoError(t, c.Mem.StoreBytes(0x1000, code))
				c.SetPC(0x1000)
				require.NoError(t, c.Run(), "%s %v", name, inst.Mode)

				var got byte
				switch name {
				case "LDA":
					got = c.Reg.A
				case "LDX":
					got = c.Reg.X
				case "LDY":
					got = c.Reg.Y
				}
				assert.Equal(t, tc.v, got, "%s %v", name, inst.Mode)
				assert.Equal(t, tc.z, c.Reg.PS.Get(cpu.Zero), "%s %v Z", name, inst.Mode)
				assert.Equal(t, tc.n, c.Reg.PS.Get(cpu.Negative), "%s %v N", name, inst.Mode)
			}
		}
	}
}

func TestZeroPageIndexWraps(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A2 02    ; LDX #$02
		B5 FF    ; LDA $FF,X
		A0 03    ; LDY #$03
		B6 FE    ; LDX $FE,Y
		EA`)
	c.Mem.WriteByte(0x01, 0x5a)
	c.Mem.WriteByte(0x101, 0xee)
	require.NoError(t, c.Run())
	expectACC(t, c, 0x5a)
	expectX(t, c, 0x5a)
}

func TestIndexedIndirectWraps(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A2 03    ; LDX #$03
		A1 FE    ; LDA ($FE,X)
		EA`)
	require.NoError(t, c.Mem.WriteWord(0x01, 0x2345))
	c.Mem.WriteByte(0x2345, 0x77)
	require.NoError(t, c.Run())
	expectACC(t, c, 0x77)
}

func TestIndexedIndirectPointerAtFF(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A1 FF    ; LDA ($FF,X)
		EA`)
	c.Mem.WriteByte(0xff, 0x00)
	c.Mem.WriteByte(0x100, 0x30)
	c.Mem.WriteByte(0x3000, 0x42)
	require.NoError(t, c.Run())
	expectACC(t, c, 0x42)
}

func TestIndirectIndexed(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A0 10    ; LDY #$10
		B1 40    ; LDA ($40),Y
		EA`)
	require.NoError(t, c.Mem.WriteWord(0x40, 0x20f8))
	c.Mem.WriteByte(0x2108, 0x19)
	require.NoError(t, c.Run())
	expectACC(t, c, 0x19)
}

func TestAbsoluteIndexOutOfBounds(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A2 01    ; LDX #$01
		BD FF FF ; LDA $FFFF,X
		EA`)
	err := c.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrOutOfBounds))

	var e *cpu.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, byte(0xbd), e.Opcode)
	assert.Equal(t, 0x10000, e.Addr)
	assert.False(t, c.Halted())
}

func TestIndirectIndexedOutOfBounds(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A0 02    ; LDY #$02
		B1 40    ; LDA ($40),Y
		EA`)
	require.NoError(t, c.Mem.WriteWord(0x40, 0xfffe))
	err := c.Run()
	assert.True(t, errors.Is(err, cpu.ErrOutOfBounds))
}

func TestIndirectIndexedPointerAtFF(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		B1 FF    ; LDA ($FF),Y
		EA`)
	// The pointer word at $FF spans $FF and $100, which is in bounds.
	require.NoError(t, c.Mem.WriteWord(0xff, 0x2000))
	require.NoError(t, c.Run())
	expectPC(t, c, 0x1003)
}

func TestLogic(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A9 F0    ; LDA #$F0
		09 0F    ; ORA #$0F
		29 3C    ; AND #$3C
		49 3C    ; EOR #$3C
		EA`)
	require.NoError(t, c.Step())
	require.NoError(t, c.Step())
	expectACC(t, c, 0xff)
	expectFlags(t, c, false, true)
	require.NoError(t, c.Step())
	expectACC(t, c, 0x3c)
	expectFlags(t, c, false, false)
	require.NoError(t, c.Step())
	expectACC(t, c, 0x00)
	expectFlags(t, c, true, false)
}

func TestLogicMemoryModes(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A2 01    ; LDX #$01
		A0 01    ; LDY #$01
		A9 01    ; LDA #$01
		05 10    ; ORA $10
		15 10    ; ORA $10,X
		0D 00 30 ; ORA $3000
		1D 00 30 ; ORA $3000,X
		19 01 30 ; ORA $3001,Y
		01 20    ; ORA ($20,X)
		11 30    ; ORA ($30),Y
		EA`)
	c.Mem.WriteByte(0x10, 0x02)
	c.Mem.WriteByte(0x11, 0x04)
	c.Mem.WriteByte(0x3000, 0x08)
	c.Mem.WriteByte(0x3001, 0x10)
	c.Mem.WriteByte(0x3002, 0x20)
	require.NoError(t, c.Mem.WriteWord(0x21, 0x4000))
	c.Mem.WriteByte(0x4000, 0x40)
	require.NoError(t, c.Mem.WriteWord(0x30, 0x40ff))
	c.Mem.WriteByte(0x4100, 0x80)
	require.NoError(t, c.Run())
	expectACC(t, c, 0xff)
	expectFlags(t, c, false, true)
}

func TestShiftRight(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A9 01    ; LDA #$01
		4A       ; LSR A
		46 10    ; LSR $10
		EA`)
	c.Mem.WriteByte(0x10, 0x81)
	c.Reg.PS.Set(cpu.Negative, true)

	require.NoError(t, c.Step())
	require.NoError(t, c.Step())
	expectACC(t, c, 0x00)
	assert.True(t, c.Reg.PS.Get(cpu.Carry))
	expectFlags(t, c, true, false)

	require.NoError(t, c.Step())
	expectMem(t, c, 0x10, 0x40)
	assert.True(t, c.Reg.PS.Get(cpu.Carry))
	expectFlags(t, c, false, false)
}

func TestShiftRightClearsNegative(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A9 FE    ; LDA #$FE
		4A       ; LSR A
		EA`)
	require.NoError(t, c.Run())
	expectACC(t, c, 0x7f)
	assert.False(t, c.Reg.PS.Get(cpu.Carry))
	expectFlags(t, c, false, false)
}

func TestShiftRightIndexed(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A2 04    ; LDX #$04
		56 10    ; LSR $10,X
		5E 00 30 ; LSR $3000,X
		4E 00 20 ; LSR $2000
		EA`)
	c.Mem.WriteByte(0x14, 0x04)
	c.Mem.WriteByte(0x3004, 0x08)
	c.Mem.WriteByte(0x2000, 0x03)
	require.NoError(t, c.Run())
	expectMem(t, c, 0x14, 0x02)
	expectMem(t, c, 0x3004, 0x04)
	expectMem(t, c, 0x2000, 0x01)
	assert.True(t, c.Reg.PS.Get(cpu.Carry))
}

func TestStack(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A9 11    ; LDA #$11
		48       ; PHA
		A9 12    ; LDA #$12
		48       ; PHA
		A9 13    ; LDA #$13
		48       ; PHA
		68       ; PLA
		8D 00 20 ; STA $2000 (unimplemented)`)

	for i := 0; i < 6; i++ {
		require.NoError(t, c.Step())
	}
	expectSP(t, c, 0x00fd)
	expectACC(t, c, 0x13)
	expectMem(t, c, 0x100, 0x11)
	expectMem(t, c, 0x0ff, 0x12)
	expectMem(t, c, 0x0fe, 0x13)

	require.NoError(t, c.Step())
	expectSP(t, c, 0x00fe)
	expectACC(t, c, 0x13)

	err := c.Step()
	assert.True(t, errors.Is(err, cpu.ErrUnimplemented))
}

func TestPullAccumulatorFlags(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A9 00    ; LDA #$00
		48       ; PHA
		A9 7F    ; LDA #$7F
		68       ; PLA
		EA`)
	require.NoError(t, c.Run())
	expectACC(t, c, 0x00)
	expectFlags(t, c, true, false)
	expectSP(t, c, 0x0100)
}

func TestPushPullStatus(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		08       ; PHP
		A9 80    ; LDA #$80
		28       ; PLP
		EA`)
	c.Reg.PS = cpu.Carry | cpu.Zero
	require.NoError(t, c.Run())
	expectMem(t, c, 0x0100, 0x03)
	expectSP(t, c, 0x0100)
	assert.Equal(t, cpu.Carry|cpu.Zero, c.Reg.PS)
	assert.Equal(t, "00000011", c.Snapshot().Status())
}

func TestPullStatusOverwritesAll(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A9 FF    ; LDA #$FF
		48       ; PHA
		28       ; PLP
		EA`)
	require.NoError(t, c.Run())
	assert.Equal(t, "11011111", c.Reg.PS.String())
}

func TestTransfers(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A9 80    ; LDA #$80
		AA       ; TAX
		A8       ; TAY
		A9 00    ; LDA #$00
		8A       ; TXA
		A9 00    ; LDA #$00
		98       ; TYA
		A2 00    ; LDX #$00
		EA`)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Step())
	}
	expectX(t, c, 0x80)
	assert.Equal(t, byte(0x80), c.Reg.Y)
	expectFlags(t, c, false, true)

	require.NoError(t, c.Step())
	require.NoError(t, c.Step())
	expectACC(t, c, 0x80)
	expectFlags(t, c, false, true)

	require.NoError(t, c.Step())
	require.NoError(t, c.Step())
	expectACC(t, c, 0x80)

	require.NoError(t, c.Run())
	expectX(t, c, 0x00)
	expectFlags(t, c, true, false)
}

func TestStackPointerTransfers(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		BA       ; TSX
		A2 80    ; LDX #$80
		9A       ; TXS
		EA`)
	require.NoError(t, c.Step())
	expectX(t, c, 0x00)
	expectFlags(t, c, true, false)

	require.NoError(t, c.Step())
	ps := c.Reg.PS
	require.NoError(t, c.Step())
	expectSP(t, c, 0x0180)
	assert.Equal(t, ps, c.Reg.PS)
}

func TestSubroutine(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		20 10 10 ; JSR $1010
		EA`)
	require.NoError(t, c.Mem.StoreBytes(0x1010, []byte{
		0xa9, 0x42, // LDA #$42
		0x60, // RTS
	}))

	require.NoError(t, c.Step())
	expectPC(t, c, 0x1010)
	expectSP(t, c, 0x00fe)
	expectMem(t, c, 0x0100, 0x10)
	expectMem(t, c, 0x00ff, 0x02)

	require.NoError(t, c.Run())
	expectACC(t, c, 0x42)
	expectPC(t, c, 0x1004)
	expectSP(t, c, 0x0100)
	expectCycles(t, c, 6+2+6+2)
}

func TestUnknownOpcode(t *testing.T) {
	c := loadCPU(t, 0x1000, "A9 01 FF EA")
	err := c.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrUnknownOpcode))

	var e *cpu.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, byte(0xff), e.Opcode)
	assert.Equal(t, 0x1002, e.Addr)
	assert.Equal(t, uint16(0x1003), e.State.PC)
	assert.Equal(t, byte(0x01), e.State.A)
	expectPC(t, c, 0x1003)
}

func TestUnimplementedOpcode(t *testing.T) {
	c := loadCPU(t, 0x1000, "69 01") // ADC #$01
	err := c.Step()
	assert.True(t, errors.Is(err, cpu.ErrUnimplemented))
	assert.False(t, errors.Is(err, cpu.ErrUnknownOpcode))
}

func TestFetchPastEndOfMemory(t *testing.T) {
	c := cpu.NewCPU(nil)
	c.Reset()
	require.NoError(t, c.Mem.StoreBytes(0xfffe, []byte{0xa9, 0x01}))
	c.SetPC(0xfffe)

	err := c.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, cpu.ErrOutOfBounds))
	expectACC(t, c, 0x01)

	var e *cpu.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 0x10000, e.Addr)
}

func TestOperandPastEndOfMemory(t *testing.T) {
	c := cpu.NewCPU(nil)
	c.Reset()
	c.Mem.WriteByte(0xffff, 0xa9)
	c.SetPC(0xffff)
	assert.True(t, errors.Is(c.Step(), cpu.ErrOutOfBounds))
}

func TestHalt(t *testing.T) {
	c := runCPU(t, 0x1000, "EA A9 01")
	assert.True(t, c.Halted())
	expectPC(t, c, 0x1001)

	require.NoError(t, c.Step())
	expectPC(t, c, 0x1001)
	expectCycles(t, c, 2)
	expectACC(t, c, 0)

	c.Reset()
	assert.False(t, c.Halted())
}

func TestEndToEndHighMemory(t *testing.T) {
	c := cpu.NewCPU(nil)
	require.NoError(t, c.Mem.StoreBytes(0xfff0, []byte{
		0xae, 0x80, 0x44, // LDX $4480
		0xea, // NOP
	}))
	c.Mem.WriteByte(0x4480, 0x37)
	require.NoError(t, c.ResetTo(0xfff0))
	require.NoError(t, c.Run())

	expectX(t, c, 0x37)
	expectFlags(t, c, false, false)
	assert.True(t, c.Halted())
}

func TestSnapshot(t *testing.T) {
	c := runCPU(t, 0x1000, "A9 80 AA EA")
	s := c.Snapshot()
	assert.Equal(t, uint16(0x1004), s.PC)
	assert.Equal(t, uint16(0x0100), s.SP)
	assert.Equal(t, byte(0x80), s.A)
	assert.Equal(t, byte(0x80), s.X)
	assert.Equal(t, "10000000", s.Status())
	assert.Equal(t, uint64(6), s.Cycles)
	assert.True(t, s.Halted)
}

type recorder struct {
	pcs    []uint16
	stores []uint16
}

func (r *recorder) OnBreakpoint(cpu *cpu.CPU, b *cpu.Breakpoint) {
	r.pcs = append(r.pcs, b.Address)
}

func (r *recorder) OnDataBreakpoint(cpu *cpu.CPU, b *cpu.DataBreakpoint) {
	r.stores = append(r.stores, b.Address)
}

func TestDebugger(t *testing.T) {
	c := loadCPU(t, 0x1000, `
		A9 11    ; LDA #$11
		48       ; PHA
		A9 22    ; LDA #$22
		48       ; PHA
		EA`)

	r := &recorder{}
	d := cpu.NewDebugger(r)
	d.AddBreakpoint(0x1003)
	d.AddBreakpoint(0x1002).Disabled = true
	d.AddConditionalDataBreakpoint(0x00ff, 0x22)
	d.AddDataBreakpoint(0x0100)
	c.AttachDebugger(d)

	require.NoError(t, c.Run())
	assert.Equal(t, []uint16{0x1003}, r.pcs)
	assert.Equal(t, []uint16{0x0100, 0x00ff}, r.stores)
	assert.Equal(t, 1, d.GetBreakpoint(0x1003).Hits)
	assert.Equal(t, 0, d.GetBreakpoint(0x1002).Hits)

	bps := d.GetBreakpoints()
	require.Len(t, bps, 2)
	assert.Equal(t, uint16(0x1002), bps[0].Address)

	assert.True(t, d.RemoveBreakpoint(0x1002))
	assert.False(t, d.RemoveBreakpoint(0x1002))
	assert.True(t, d.RemoveDataBreakpoint(0x0100))
	assert.Len(t, d.GetDataBreakpoints(), 1)

	c.DetachDebugger()
	require.NoError(t, c.ResetTo(0x1000))
	require.NoError(t, c.Run())
	assert.Len(t, r.pcs, 1)
}
