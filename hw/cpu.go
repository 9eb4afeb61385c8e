package hw

import (
	"io"

	"nestor/emu/log"
	"nestor/hw/hwio"
)

// Interrupt and reset vector locations.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// CPU is a cycle-accurate 2A03 (6502 core, no decimal mode, APU omitted).
// Every bus access ticks a shared master clock that also drives the PPU,
// so the two stay locked at the NTSC ratio of 3 PPU dots per CPU cycle
// without either side running ahead of the other.
type CPU struct {
	Bus *Bus

	RAM hwio.Mem `hwio:"offset=0x0,size=0x800,vsize=0x2000"`

	PPU *PPU
	DMA DMA

	input InputPorts

	tracer *tracer

	Cycles      int64 // completed CPU cycles since reset
	masterClock int64

	A, X, Y, SP uint8
	PC          uint16
	P           P

	// Interrupt lines. nmiFlag/prevNmiFlag are the raw /NMI level sampled
	// each cycle; needNmi/prevNeedNmi are the output of the edge detector
	// on that line. runIRQ/prevRunIRQ track the IRQ line gated by the
	// I-flag (true only while a source asserts IRQ and I is clear),
	// deliberately one cycle stale: it's the value at the end of
	// the second-to-last cycle that decides whether the next instruction
	// services an interrupt, giving SEI/CLI their one-instruction latency.
	nmiFlag, prevNmiFlag bool
	needNmi, prevNeedNmi bool
	runIRQ, prevRunIRQ   bool

	irqSources irqSource

	halted bool
}

func NewCPU(ppu *PPU) *CPU {
	cpu := &CPU{
		Bus: NewBus("cpu"),
		SP:  0xFD,
		PPU: ppu,
	}
	if ppu != nil {
		ppu.CPU = cpu
	}
	return cpu
}

// PlugInputDevice attaches an external controller-polling driver.
func (c *CPU) PlugInputDevice(dev InputDevice) {
	c.input.PlugDevice(dev)
}

func (c *CPU) InitBus() {
	hwio.MustInitRegs(c)
	c.Bus.MapBank(0x0000, c, 0)

	for off := uint16(0x2000); off < 0x4000; off += 8 {
		c.Bus.MapBank(off, c.PPU, 1)
	}

	c.DMA.InitBus(c)
	c.Bus.MapBank(0x4014, &c.DMA, 0)

	c.input.initBus()
	c.Bus.MapBank(0x4000, &c.input, 0)
}

func (c *CPU) Reset(soft bool) {
	if soft {
		c.SP -= 0x03
		c.P.set(FlagI)
	} else {
		c.A, c.X, c.Y = 0, 0, 0
		c.runIRQ = false
		c.SP = 0xFD
		c.P = FlagU
		c.P.set(FlagI)
	}

	c.DMA.reset()

	// Read the vector directly off the bus, so fetching it spends no CPU
	// cycles and doesn't advance the PPU.
	c.PC = c.Bus.Read16(ResetVector)

	c.Cycles = -1
	c.nmiFlag = false
	c.masterClock = ntscCPUDivider

	// The real chip burns 8 cycles after reset/power-on before fetching the
	// first opcode.
	for i := 0; i < 8; i++ {
		c.cycleBegin(true)
		c.cycleEnd(true)
	}
}

func (c *CPU) traceOp() {
	if c.tracer == nil {
		return
	}
	state := cpuState{A: c.A, X: c.X, Y: c.Y, P: c.P, SP: c.SP, Clock: c.Cycles, PC: c.PC}
	if c.PPU != nil {
		state.PPUCycle = uint32(c.PPU.Dot)
		state.Scanline = c.PPU.Scanline
	}
	c.tracer.write(state)
}

// Run executes instructions until at least ncycles CPU cycles have elapsed.
func (c *CPU) Run(ncycles int64) {
	until := c.Cycles + ncycles
	var opcode uint8
	for c.Cycles < until {
		opcode = c.Read8(c.PC)
		c.traceOp()
		c.PC++
		ops[opcode](c)

		if c.halted {
			break
		}
		if c.prevRunIRQ || c.prevNeedNmi {
			c.serviceInterrupt()
		}
	}

	if c.halted {
		log.ModCPU.WarnZ("CPU halted").Hex16("PC", c.PC).Hex8("opcode", opcode).End()
	}
}

func (c *CPU) halt()            { c.halted = true }
func (c *CPU) IsHalted() bool   { return c.halted }
func (c *CPU) CurrentCycle() int64 { return c.Cycles }

const (
	ntscStartClockCount = 6
	ntscEndClockCount   = 6
	ntscCPUDivider      = 12
	ppuDotsPerCPUCycle  = 3
	ppuOffset           = 1
)

func (c *CPU) cycleBegin(forRead bool) {
	if forRead {
		c.masterClock += ntscStartClockCount - 1
	} else {
		c.masterClock += ntscStartClockCount + 1
	}
	c.Cycles++

	if c.PPU != nil {
		c.PPU.Run(c.masterClock - ppuOffset)
	}
}

func (c *CPU) cycleEnd(forRead bool) {
	if forRead {
		c.masterClock += ntscEndClockCount + 1
	} else {
		c.masterClock += ntscEndClockCount - 1
	}

	if c.PPU != nil {
		c.PPU.Run(c.masterClock - ppuOffset)
	}

	c.handleInterrupts()
}

// tick consumes one CPU cycle without a bus access, used by DMA's
// halt/alignment cycles.
func (c *CPU) tick() {
	c.cycleBegin(true)
	c.cycleEnd(true)
}

func (c *CPU) Read8(addr uint16) uint8 {
	c.DMA.process()
	c.cycleBegin(true)
	val := c.Bus.Read8(addr, false)
	c.cycleEnd(true)
	return val
}

func (c *CPU) Write8(addr uint16, val uint8) {
	c.cycleBegin(false)
	c.Bus.Write8(addr, val)
	c.cycleEnd(false)
}

func (c *CPU) Read16(addr uint16) uint16 {
	lo := c.Read8(addr)
	hi := c.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) Write16(addr uint16, val uint16) {
	c.Write8(addr, uint8(val))
	c.Write8(addr+1, uint8(val>>8))
}

/* stack */

func (c *CPU) push8(val uint8) {
	c.Write8(0x0100+uint16(c.SP), val)
	c.SP--
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.Read8(0x0100 + uint16(c.SP))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

/* interrupt lines */

// irqSource identifies who is asserting the level-triggered IRQ line.
// The APU's frame-counter and DMC IRQs are out of scope; mapper is the
// only source that currently exists, but the bitmask shape is kept so a
// second source composes cleanly.
type irqSource uint8

const (
	IrqMapper irqSource = 1 << iota
)

func (c *CPU) SetIRQSource(src irqSource)   { c.irqSources |= src }
func (c *CPU) ClearIRQSource(src irqSource) { c.irqSources &^= src }

func (c *CPU) setNMIflag()   { c.nmiFlag = true }
func (c *CPU) clearNMIflag() { c.nmiFlag = false }

func (c *CPU) handleInterrupts() {
	c.prevNeedNmi = c.needNmi

	// Edge detector: /NMI polled during φ2 of each cycle, raising the
	// internal "need NMI" latch on a high-to-low transition. It stays
	// latched until the NMI is actually serviced.
	if !c.prevNmiFlag && c.nmiFlag {
		c.needNmi = true
	}
	c.prevNmiFlag = c.nmiFlag

	// IRQ is level-triggered, gated by the I flag, and deliberately kept
	// one cycle stale (see the CPU struct doc).
	c.prevRunIRQ = c.runIRQ
	c.runIRQ = c.irqSources != 0 && !c.P.has(FlagI)
}

func brk(cpu *CPU) {
	_ = cpu.Read8(cpu.PC) // dummy read of the byte after the opcode

	cpu.push16(cpu.PC + 1)

	p := cpu.P
	p.set(FlagB | FlagU)
	if cpu.needNmi {
		cpu.needNmi = false
		cpu.push8(uint8(p))
		cpu.P.set(FlagI)
		cpu.PC = cpu.Read16(NMIVector)
	} else {
		cpu.push8(uint8(p))
		cpu.P.set(FlagI)
		cpu.PC = cpu.Read16(IRQVector)
	}

	// The instruction at the interrupt handler's entry point must run
	// before any new NMI can hijack it.
	cpu.prevNeedNmi = false
}

func (c *CPU) serviceInterrupt() {
	c.Read8(c.PC)
	c.Read8(c.PC)

	c.push16(c.PC)

	if c.needNmi {
		c.needNmi = false
		p := c.P
		p.set(FlagU)
		c.push8(uint8(p))
		c.P.set(FlagI)
		c.PC = c.Read16(NMIVector)
	} else {
		p := c.P
		p.set(FlagU)
		c.push8(uint8(p))
		c.P.set(FlagI)
		c.PC = c.Read16(IRQVector)
	}
}

/* tracing */

func (c *CPU) SetTraceOutput(w io.Writer) {
	c.tracer = &tracer{w: w, d: c}
}

func (c *CPU) Disasm(pc uint16) DisasmOp {
	opcode := c.Bus.Peek8(pc)
	return disasmOps[opcode](c, pc)
}
