package mappers

import (
	"nestor/hw"
	"nestor/hw/hwio"
	"nestor/ines"
)

// nrom is mapper 0: no bank switching at all. PRG ROM is 16KB or 32KB and
// mirrored to fill $8000-$FFFF; CHR is a single fixed 8KB bank, ROM or RAM.
type nrom struct {
	base

	PRGROM hwio.Mem `hwio:"offset=0x8000,vsize=0x8000,readonly"`
}

func newNROM() hw.Mapper { return &nrom{} }

func (m *nrom) Name() string { return "NROM" }

func (m *nrom) Load(rom *ines.Rom, cpu *hw.CPU, ppu *hw.PPU) error {
	m.rom, m.cpu, m.ppu = rom, cpu, ppu

	hwio.MustInitRegs(m)
	m.PRGROM.Data = make([]uint8, len(rom.PRGROM))
	copy(m.PRGROM.Data, rom.PRGROM)
	cpu.Bus.MapBank(0x0000, m, 0)

	if rom.Battery {
		m.mapPRGRAM()
	}

	if !m.hasCHRRAM() {
		copy(ppu.PatternTables.Data, rom.CHRROM)
	}
	ppu.SetMirroring(rom.Mirroring)
	return nil
}

func init() { hw.RegisterMapper(0, hw.MapperDesc{Name: "NROM", New: newNROM}) }
