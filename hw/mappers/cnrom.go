package mappers

import (
	"nestor/hw"
	"nestor/hw/hwio"
	"nestor/ines"
)

// cnrom is mapper 3: PRG ROM is fixed (16KB or 32KB, mirrored), and a
// write anywhere in $8000-$FFFF selects one of up to four 8KB CHR ROM
// banks.
type cnrom struct {
	base

	PRGROM hwio.Manual `hwio:"offset=0x8000,size=0x8000,rcb,wcb"`

	chrBank int
}

func newCNROM() hw.Mapper { return &cnrom{} }

func (m *cnrom) Name() string { return "CNROM" }

func (m *cnrom) Load(rom *ines.Rom, cpu *hw.CPU, ppu *hw.PPU) error {
	m.rom, m.cpu, m.ppu = rom, cpu, ppu
	if err := m.checkPRGSize(); err != nil {
		return err
	}

	hwio.MustInitRegs(m)
	cpu.Bus.MapBank(0x0000, m, 0)

	if rom.Battery {
		m.mapPRGRAM()
	}
	if !m.hasCHRRAM() {
		m.mapCHRBank(0x0000, 0x2000, 0)
	}
	ppu.SetMirroring(rom.Mirroring)
	return nil
}

func (m *cnrom) ReadPRGROM(addr uint16, peek bool) uint8 {
	off := uint32(addr-0x8000) & uint32(len(m.rom.PRGROM)-1)
	return m.rom.PRGROM[off]
}

func (m *cnrom) WritePRGROM(addr uint16, val uint8) {
	prev := m.chrBank
	m.chrBank = int(val & 0x3)
	if prev != m.chrBank && !m.hasCHRRAM() {
		m.mapCHRBank(0x0000, 0x2000, m.chrBank)
		modMapper.DebugZ("CHR bank switch").String("mapper", m.Name()).Int("bank", m.chrBank).End()
	}
}

func init() { hw.RegisterMapper(3, hw.MapperDesc{Name: "CNROM", New: newCNROM}) }
