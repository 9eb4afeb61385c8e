package mappers

import (
	"nestor/hw"
	"nestor/hw/hwio"
	"nestor/ines"
)

// uxrom is mapper 2: a single write-only bank-select register scattered
// across all of $8000-$FFFF switches the 16KB PRG window at $8000-$BFFF;
// $C000-$FFFF is hardwired to the last bank. CHR is always RAM.
type uxrom struct {
	base

	PRGROM hwio.Manual `hwio:"offset=0x8000,size=0x8000,rcb,wcb"`

	bank int
	mask int
}

func newUxROM() hw.Mapper { return &uxrom{} }

func (m *uxrom) Name() string { return "UxROM" }

func (m *uxrom) Load(rom *ines.Rom, cpu *hw.CPU, ppu *hw.PPU) error {
	m.rom, m.cpu, m.ppu = rom, cpu, ppu
	if err := m.checkPRGSize(); err != nil {
		return err
	}
	m.mask = len(rom.PRGROM)/0x4000 - 1

	hwio.MustInitRegs(m)
	cpu.Bus.MapBank(0x0000, m, 0)

	if rom.Battery {
		m.mapPRGRAM()
	}
	ppu.SetMirroring(rom.Mirroring)
	return nil
}

func (m *uxrom) ReadPRGROM(addr uint16, peek bool) uint8 {
	if addr >= 0xC000 {
		base := uint32(len(m.rom.PRGROM) - 0x4000)
		return m.rom.PRGROM[base+uint32(addr-0xC000)]
	}
	base := uint32(m.bank) * 0x4000
	return m.rom.PRGROM[base+uint32(addr-0x8000)]
}

func (m *uxrom) WritePRGROM(addr uint16, val uint8) {
	prev := m.bank
	m.bank = int(val) & m.mask
	if prev != m.bank {
		modMapper.DebugZ("PRG bank switch").String("mapper", m.Name()).Int("bank", m.bank).End()
	}
}

func init() { hw.RegisterMapper(2, hw.MapperDesc{Name: "UxROM", New: newUxROM}) }
