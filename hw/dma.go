package hw

import (
	"nestor/emu/log"
	"nestor/hw/hwio"
)

// DMA handles the OAM-DMA transfer triggered by a write to $4014, copying
// 256 bytes from a CPU page into PPU OAM over 513 or 514 CPU cycles.
// The APU's DMC-DMA unit is out of scope, so unlike the hardware, OAM-DMA
// here is never interleaved with a competing DMA request.
type DMA struct {
	cpu *CPU

	OAMDMA hwio.Reg8 `hwio:"offset=0x00,writeonly,wcb"`

	page       uint8
	addr       uint8
	data       uint8
	inProgress bool
	dummy      bool
}

func (dma *DMA) InitBus(cpu *CPU) {
	hwio.MustInitRegs(dma)
	dma.cpu = cpu
	dma.reset()
}

func (dma *DMA) reset() {
	dma.page = 0
	dma.addr = 0
	dma.data = 0
	dma.inProgress = false
	dma.dummy = true
}

func (dma *DMA) WriteOAMDMA(_, val uint8) {
	log.ModCPU.DebugZ("start OAM DMA transfer").Hex8("page", val).End()
	dma.page = val
	dma.addr = 0
	dma.inProgress = true
}

// process is called once per CPU cycle, before the cycle's own bus access,
// and runs the whole 513/514-cycle transfer to completion: the CPU that
// wrote $4014 is halted for the duration on real hardware, which we model
// by simply not returning control to Run until the transfer is done.
func (dma *DMA) process() {
	if !dma.inProgress {
		return
	}

	// DMA can only start on an even CPU cycle; an odd cycle count costs one
	// extra alignment cycle before the halt/dummy read. Both use tick, not
	// Read8: Read8 calls DMA.process() as its first statement, and with no
	// cycle elapsed yet that nested call would see the same inProgress/
	// Cycles state and recurse without bound.
	if dma.cpu.Cycles%2 != 0 {
		dma.cpu.tick()
	}
	// Halt/dummy cycle.
	dma.cpu.tick()

	for dma.addr != 0 || dma.dummy {
		dma.dummy = false
		addr := uint16(dma.page)<<8 | uint16(dma.addr)
		dma.data = dma.cpu.Bus.Read8(addr, false)
		dma.cpu.tick()
		dma.cpu.Bus.Write8(0x2004, dma.data)
		dma.cpu.tick()
		dma.addr++
	}

	dma.inProgress = false
	dma.dummy = true
}
