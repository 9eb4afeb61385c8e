package mappers

import (
	"nestor/hw"
	"nestor/hw/hwio"
	"nestor/ines"
)

// axrom is mapper 7: a write anywhere in $8000-$FFFF selects one of eight
// 32KB PRG banks and, unusually for a mapper, also picks which half of the
// PPU's nametable RAM every one of the four logical nametables aliases to
// (single-screen mirroring, bank chosen per write). CHR is always RAM.
type axrom struct {
	base

	PRGROM hwio.Manual `hwio:"offset=0x8000,size=0x8000,rcb,wcb"`

	prgBank int
}

func newAxROM() hw.Mapper { return &axrom{} }

func (m *axrom) Name() string { return "AxROM" }

func (m *axrom) Load(rom *ines.Rom, cpu *hw.CPU, ppu *hw.PPU) error {
	m.rom, m.cpu, m.ppu = rom, cpu, ppu
	if err := m.checkPRGSize(); err != nil {
		return err
	}

	hwio.MustInitRegs(m)
	cpu.Bus.MapBank(0x0000, m, 0)

	ppu.SetMirroring(ines.OnlyAScreen)
	return nil
}

func (m *axrom) ReadPRGROM(addr uint16, peek bool) uint8 {
	off := uint32(m.prgBank)*0x8000 + uint32(addr-0x8000)
	return m.rom.PRGROM[off]
}

func (m *axrom) WritePRGROM(addr uint16, val uint8) {
	n := len(m.rom.PRGROM) / 0x8000
	prev := m.prgBank
	m.prgBank = int(val&0x7) % n
	if prev != m.prgBank {
		modMapper.DebugZ("PRG bank switch").String("mapper", m.Name()).Int("bank", m.prgBank).End()
	}

	nt := ines.OnlyAScreen
	if val&0x10 != 0 {
		nt = ines.OnlyBScreen
	}
	m.ppu.SetMirroring(nt)
}

func init() { hw.RegisterMapper(7, hw.MapperDesc{Name: "AxROM", New: newAxROM}) }
