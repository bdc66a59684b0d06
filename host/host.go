// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that drives a 6502 CPU and
// its 64K of memory from a command monitor.
//
// Within the host it is possible to load raw machine code into memory,
// reset the CPU to a start address, run or step through the code, measure
// the number of CPU cycles elapsed, set address and data breakpoints, dump
// and modify the contents of memory, disassemble memory, manipulate CPU
// registers, and evaluate arbitrary expressions. Fatal execution errors are
// reported together with the machine state at the time of the failure.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/beevik/cmd"
	"github.com/beevik/go6502core/cpu"
	"github.com/beevik/go6502core/disasm"
	"github.com/beevik/go6502core/translate"
)

var f = translate.From

var errQuit = errors.New("exiting program")

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

type state int32

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
)

// A Host represents a 6502 CPU, its 64K of memory, a debugger, and a
// command monitor that drives them.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         *cpu.Memory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	lastCmd     *cmd.Command
	lastArgs    []string
	state       atomic.Int32
	eval        *exprEvaluator
	settings    *settings
}

// New creates a new host environment with a reset CPU and zeroed memory.
func New() *Host {
	h := &Host{
		eval:     newExprEvaluator(),
		settings: newSettings(),
	}

	// Create the emulated CPU and memory.
	h.mem = cpu.NewMemory()
	h.cpu = cpu.NewCPU(h.mem)
	h.cpu.Reset()

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// CPU returns the emulated CPU.
func (h *Host) CPU() *cpu.CPU {
	return h.cpu
}

// ResetTo resets the CPU and starts it at the address 'addr'.
func (h *Host) ResetTo(addr uint16) error {
	return h.cpu.ResetTo(addr)
}

// SetEcho selects whether commands read from non-interactive input are
// echoed to the output.
func (h *Host) SetEcho(on bool) {
	h.settings.Echo = on
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered. It returns false if
// a quit command was processed.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) bool {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	h.displayPC()

	err := h.processCommands()
	h.flush()
	return err == nil
}

// Process commands from the current input until it is exhausted or a quit
// command is entered.
func (h *Host) processCommands() error {
	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		if h.settings.Echo && !h.interactive && line != "" {
			h.printf("* %s\n", line)
		}

		var c *cmd.Command
		var args []string
		switch {
		case line != "":
			n, a, err := cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				h.println(f("Command not found."))
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				h.println(f("Command is ambiguous."))
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}

			switch n := n.(type) {
			case *cmd.Tree:
				n.DisplayHelp(h.output)
				h.flush()
				continue
			case *cmd.Command:
				c, args = n, a
			}
		case h.interactive && h.lastCmd != nil:
			c, args = h.lastCmd, h.lastArgs
		}

		if c == nil {
			continue
		}
		h.lastCmd, h.lastArgs = c, args

		handler, ok := c.Data.(func(*Host, *cmd.Command, []string) error)
		if !ok {
			continue
		}
		if err := handler(h, c, args); err != nil {
			return err
		}
	}
}

// Break interrupts a running CPU. It is safe to call from another
// goroutine.
func (h *Host) Break() {
	h.state.CompareAndSwap(int32(stateRunning), int32(stateProcessingCommands))
}

func (h *Host) setState(s state) {
	h.state.Store(int32(s))
}

func (h *Host) getState() state {
	return state(h.state.Load())
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprint(h.output, f(format, args...))
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
	}
}

// Parse an address argument, treating "." as the program counter.
func (h *Host) parseAddr(arg string) (uint16, error) {
	if arg == "." {
		return h.cpu.Reg.PC, nil
	}
	return h.parseExpr(arg)
}

func (h *Host) cmdBreakpointList(c *cmd.Command, args []string) error {
	h.println(f("Addr  Enabled  Hits"))
	h.println("----- -------  ----")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%04X %-5v    %d\n", b.Address, !b.Disabled, b.Hits)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if !h.debugger.RemoveBreakpoint(addr) {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	h.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c *cmd.Command, args []string) error {
	return h.enableBreakpoint(c, args, true)
}

func (h *Host) cmdBreakpointDisable(c *cmd.Command, args []string) error {
	return h.enableBreakpoint(c, args, false)
}

func (h *Host) enableBreakpoint(c *cmd.Command, args []string, enable bool) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	if enable {
		h.printf("Breakpoint at $%04X enabled.\n", addr)
	} else {
		h.printf("Breakpoint at $%04X disabled.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointList(c *cmd.Command, args []string) error {
	h.println(f("Addr  Enabled  Value  Hits"))
	h.println("----- -------  -----  ----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X %-5v    $%02X    %d\n", b.Address, !b.Disabled, b.Value, b.Hits)
		} else {
			h.printf("$%04X %-5v    <any>  %d\n", b.Address, !b.Disabled, b.Hits)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if len(args) > 1 {
		value, err := h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, byte(value))
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if !h.debugger.RemoveDataBreakpoint(addr) {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}
	h.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c *cmd.Command, args []string) error {
	return h.enableDataBreakpoint(c, args, true)
}

func (h *Host) cmdDataBreakpointDisable(c *cmd.Command, args []string) error {
	return h.enableDataBreakpoint(c, args, false)
}

func (h *Host) enableDataBreakpoint(c *cmd.Command, args []string, enable bool) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	if enable {
		h.printf("Data breakpoint at $%04X enabled.\n", addr)
	} else {
		h.printf("Data breakpoint at $%04X disabled.\n", addr)
	}
	return nil
}

func (h *Host) cmdDisassemble(c *cmd.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"$"}
	}

	var addr uint16
	switch args[0] {
	case "$":
		addr = h.settings.NextDisasmAddr
		if addr == 0 {
			addr = h.cpu.Reg.PC
		}
	default:
		a, err := h.parseAddr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := h.settings.DisasmLines
	if len(args) > 1 {
		l, err := h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr, 0)
		h.println(d)
		if next < addr {
			break
		}
		addr = next
	}

	h.settings.NextDisasmAddr = addr
	h.lastArgs = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEvaluate(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	expr := strings.Join(args, " ")
	v, err := h.eval.Eval(expr, h.registerVars())
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.printf("$%04X\n", uint16(v))
	return nil
}

func (h *Host) cmdExecute(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	file, err := os.Open(args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(args[0]), err)
		return nil
	}
	defer file.Close()

	input, interactive, lastCmd, lastArgs := h.input, h.interactive, h.lastCmd, h.lastArgs
	h.input, h.interactive = bufio.NewScanner(file), false
	err = h.processCommands()
	h.input, h.interactive, h.lastCmd, h.lastArgs = input, interactive, lastCmd, lastArgs
	return err
}

func (h *Host) cmdHelp(c *cmd.Command, args []string) error {
	if err := cmds.GetHelp(h.output, args); err != nil {
		h.printf("%v\n", err)
	}
	h.flush()
	return nil
}

func (h *Host) cmdLoad(c *cmd.Command, args []string) error {
	if len(args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	filename := args[0]
	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}

	addr, err := h.parseExpr(args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.load(filename, addr)
	return nil
}

func (h *Host) cmdMemoryDump(c *cmd.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"$"}
	}

	var addr uint16
	switch args[0] {
	case "$":
		addr = h.settings.NextMemDumpAddr
		if addr == 0 {
			addr = h.cpu.Reg.PC
		}
	default:
		a, err := h.parseAddr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(args) >= 2 {
		var err error
		bytes, err = h.parseExpr(args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + bytes
	h.lastArgs = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c *cmd.Command, args []string) error {
	if len(args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseAddr(args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	b := make([]byte, 0, len(args)-1)
	for _, arg := range args[1:] {
		v, err := h.parseExpr(arg)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		b = append(b, byte(v))
	}

	if err := h.mem.StoreBytes(addr, b); err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.settings.NextMemDumpAddr = addr
	return nil
}

func (h *Host) cmdQuit(c *cmd.Command, args []string) error {
	return errQuit
}

func (h *Host) cmdRegister(c *cmd.Command, args []string) error {
	if len(args) == 0 {
		d, _ := h.disassemble(h.cpu.Reg.PC, displayAll)
		h.println(d)
		return nil
	}

	if len(args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	name := strings.ToUpper(args[0])
	v, err := h.parseExpr(strings.Join(args[1:], " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	switch name {
	case "A":
		h.cpu.Reg.A = byte(v)
	case "X":
		h.cpu.Reg.X = byte(v)
	case "Y":
		h.cpu.Reg.Y = byte(v)
	case "SP":
		h.cpu.Reg.SP = v
		h.printf("Register SP set to $%04X.\n", v)
		return nil
	case "PC":
		h.cpu.SetPC(v)
		h.settings.NextDisasmAddr = v
		h.printf("Register PC set to $%04X.\n", v)
		return nil
	default:
		flag, ok := cpu.FlagByName(name)
		if !ok {
			h.printf("Unknown register '%s'.\n", args[0])
			return nil
		}
		h.cpu.Reg.PS.Set(flag, v != 0)
		h.printf("Flag %s set to %v.\n", name, v != 0)
		return nil
	}

	h.printf("Register %s set to $%02X.\n", name, byte(v))
	return nil
}

func (h *Host) cmdReset(c *cmd.Command, args []string) error {
	if len(args) > 0 {
		addr, err := h.parseExpr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if err := h.cpu.ResetTo(addr); err != nil {
			h.printf("%v\n", err)
			return nil
		}
	} else {
		h.cpu.Reset()
	}

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	h.printf("CPU reset. PC=$%04X.\n", h.cpu.Reg.PC)
	return nil
}

func (h *Host) cmdRun(c *cmd.Command, args []string) error {
	if len(args) > 0 {
		pc, err := h.parseAddr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(pc)
	}

	if h.cpu.Halted() {
		h.println(f("CPU is halted. Reset it to continue."))
		return nil
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.Reg.PC)

	h.setState(stateRunning)
	for h.getState() == stateRunning {
		h.step()
	}
	h.setState(stateProcessingCommands)

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdSet(c *cmd.Command, args []string) error {
	switch len(args) {
	case 0:
		h.println(f("Variables:"))
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayHelpText(c)

	default:
		key, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = errors.New(f("setting '%s' not found", key))
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			var v uint16
			v, err = h.parseExpr(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println(f("Setting updated."))
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStep(c *cmd.Command, args []string) error {
	// Parse the number of steps.
	count := 1
	if len(args) > 0 {
		n, err := h.parseExpr(args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}

	if h.cpu.Halted() {
		h.println(f("CPU is halted. Reset it to continue."))
		return nil
	}

	// Step the CPU count times.
	h.setState(stateRunning)
	for i := count - 1; i >= 0 && h.getState() == stateRunning; i-- {
		h.step()
		switch {
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	h.setState(stateProcessingCommands)

	h.settings.NextDisasmAddr = h.cpu.Reg.PC
	return nil
}

// Load a raw binary file into memory at 'addr' and reset the CPU to start
// there.
func (h *Host) load(filename string, addr uint16) {
	b, err := os.ReadFile(filename)
	if err != nil {
		h.printf("Failed to read '%s': %v\n", filepath.Base(filename), err)
		return
	}

	if err := h.mem.StoreBytes(addr, b); err != nil {
		h.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return
	}

	if err := h.cpu.ResetTo(addr); err != nil {
		h.printf("%v\n", err)
		return
	}

	h.settings.NextDisasmAddr = addr
	h.printf("Loaded '%s' to $%04X..$%04X.\n", filepath.Base(filename), addr, int(addr)+len(b)-1)
}

// Execute one instruction, reporting a halt or a fatal error and leaving
// the running state if either occurs.
func (h *Host) step() {
	err := h.cpu.Step()
	switch {
	case err != nil:
		h.reportError(err)
		h.setState(stateProcessingCommands)
	case h.cpu.Halted():
		h.printf("CPU halted at $%04X after %d cycles.\n", h.cpu.LastPC, h.cpu.Cycles)
		h.setState(stateProcessingCommands)
	}
}

func (h *Host) reportError(err error) {
	var e *cpu.Error
	if !errors.As(err, &e) {
		h.printf("ERROR: %v\n", err)
		return
	}

	switch {
	case errors.Is(e, cpu.ErrOutOfBounds):
		h.printf("ERROR: %v at $%05X (opcode $%02X at $%04X).\n", cpu.ErrOutOfBounds, e.Addr, e.Opcode, h.cpu.LastPC)
	default:
		h.printf("ERROR: %v $%02X at $%04X.\n", e.Err, e.Opcode, e.Addr)
	}
	h.println(disasm.RegisterString(e.State))
}

func (h *Host) onSettingsUpdate() {
	h.eval.hexMode = h.settings.HexMode
}

// Return the CPU registers as expression variables.
func (h *Host) registerVars() map[string]int64 {
	return map[string]int64{
		"a":  int64(h.cpu.Reg.A),
		"x":  int64(h.cpu.Reg.X),
		"y":  int64(h.cpu.Reg.Y),
		"sp": int64(h.cpu.Reg.SP),
		"pc": int64(h.cpu.Reg.PC),
	}
}

func (h *Host) parseExpr(expr string) (uint16, error) {
	v, err := h.eval.Eval(expr, h.registerVars())
	if err != nil {
		return 0, err
	}

	if v < 0 {
		v = 0x10000 + v
	}
	return uint16(v), nil
}

func (h *Host) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.mem, addr)

	str = fmt.Sprintf("%04X-   %-8s    %-15s", addr, disasm.CodeString(h.mem, addr), line)

	if (flags & displayRegisters) != 0 {
		str += " " + disasm.RegisterString(h.cpu.Snapshot())
	}

	if (flags & displayCycles) != 0 {
		str += f(" C=%-12d", h.cpu.Cycles)
	}

	return str, next
}

func (h *Host) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := uint32(addr0), 6, 32; a <= uint32(addr1); a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.mem.ReadByte(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := start
	for r := start; r < stop; r += 8 {
		addrToBuf(uint16(a), buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= uint32(addr0) && a <= uint32(addr1) {
				m := h.mem.ReadByte(uint16(a))
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) displayHelpText(c *cmd.Command) {
	if c.Usage != "" {
		c.DisplayUsage(h.output)
		h.flush()
	} else {
		h.println(f("<no help text>"))
	}
}

func (h *Host) onBreakpoint(cpu *cpu.CPU, b *cpu.Breakpoint) {
	h.setState(stateBreakpoint)
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.displayPC()
}

func (h *Host) onDataBreakpoint(cpu *cpu.CPU, b *cpu.DataBreakpoint) {
	h.setState(stateBreakpoint)
	h.printf("Data breakpoint hit on address $%04X.\n", b.Address)

	if cpu.LastPC != cpu.Reg.PC && h.interactive {
		d, _ := h.disassemble(cpu.LastPC, displayAll)
		h.println(d)
	}
}
