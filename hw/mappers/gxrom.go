package mappers

import (
	"nestor/hw"
	"nestor/hw/hwio"
	"nestor/ines"
)

// gxrom is mapper 66: one write-only register spanning $8000-$FFFF picks
// both a 32KB PRG bank (bits 4-5) and an 8KB CHR ROM bank (bits 0-1).
type gxrom struct {
	base

	PRGROM hwio.Manual `hwio:"offset=0x8000,size=0x8000,rcb,wcb"`

	prgBank int
	chrBank int
}

func newGxROM() hw.Mapper { return &gxrom{} }

func (m *gxrom) Name() string { return "GxROM" }

func (m *gxrom) Load(rom *ines.Rom, cpu *hw.CPU, ppu *hw.PPU) error {
	m.rom, m.cpu, m.ppu = rom, cpu, ppu
	if err := m.checkPRGSize(); err != nil {
		return err
	}

	hwio.MustInitRegs(m)
	cpu.Bus.MapBank(0x0000, m, 0)

	if !m.hasCHRRAM() {
		m.mapCHRBank(0x0000, 0x2000, 0)
	}
	ppu.SetMirroring(rom.Mirroring)
	return nil
}

func (m *gxrom) ReadPRGROM(addr uint16, peek bool) uint8 {
	off := uint32(m.prgBank)*0x8000 + uint32(addr-0x8000)
	return m.rom.PRGROM[off]
}

func (m *gxrom) WritePRGROM(addr uint16, val uint8) {
	prevCHR, prevPRG := m.chrBank, m.prgBank
	m.chrBank = int(val & 0x3)
	m.prgBank = int((val >> 4) & 0x3) % (len(m.rom.PRGROM) / 0x8000)

	if prevCHR != m.chrBank && !m.hasCHRRAM() {
		m.mapCHRBank(0x0000, 0x2000, m.chrBank)
		modMapper.DebugZ("CHR bank switch").String("mapper", m.Name()).Int("bank", m.chrBank).End()
	}
	if prevPRG != m.prgBank {
		modMapper.DebugZ("PRG bank switch").String("mapper", m.Name()).Int("bank", m.prgBank).End()
	}
}

func init() { hw.RegisterMapper(66, hw.MapperDesc{Name: "GxROM", New: newGxROM}) }
