package mappers

import (
	"nestor/hw"
	"nestor/hw/hwio"
	"nestor/ines"
)

// mmc1 is mapper 1. Every write to $8000-$FFFF feeds one bit into a 5-bit
// serial shift register; on the fifth write the accumulated byte latches
// into one of four internal registers selected by the address range
// (control, CHR bank 0, CHR bank 1, PRG bank). A write with bit 7 set resets
// the shift register instead of shifting, and forces 16KB PRG mode with
// $C000 fixed to the last bank, matching power-on behavior.
type mmc1 struct {
	base

	PRGROM hwio.Manual `hwio:"offset=0x8000,size=0x8000,rcb,wcb"`

	shift  uint8
	shiftN uint8

	ctrl uint8 // bit0-1 mirroring, bit2-3 PRG mode, bit4 CHR mode
	chr0 uint8
	chr1 uint8
	prg  uint8
}

func newMMC1() hw.Mapper { return &mmc1{} }

func (m *mmc1) Name() string { return "MMC1" }

func (m *mmc1) prgMode() uint8 { return (m.ctrl >> 2) & 0x3 }
func (m *mmc1) chrMode() uint8 { return (m.ctrl >> 4) & 0x1 }

func (m *mmc1) Load(rom *ines.Rom, cpu *hw.CPU, ppu *hw.PPU) error {
	m.rom, m.cpu, m.ppu = rom, cpu, ppu
	if err := m.checkPRGSize(); err != nil {
		return err
	}

	hwio.MustInitRegs(m)
	cpu.Bus.MapBank(0x0000, m, 0)
	m.mapPRGRAM()

	m.ctrl = 0x0C // 16KB PRG mode, $C000 fixed to the last bank
	ppu.SetMirroring(ines.VertMirroring)
	if !m.hasCHRRAM() {
		m.remapCHR()
	}
	return nil
}

func (m *mmc1) ReadPRGROM(addr uint16, peek bool) uint8 {
	n := uint32(len(m.rom.PRGROM)) / 0x4000
	var bank uint32
	switch m.prgMode() {
	case 0, 1: // 32KB mode: ignore the low bit of the selected bank
		pair := uint32(m.prg &^ 1)
		if addr < 0xC000 {
			bank = pair
		} else {
			bank = pair + 1
		}
	case 2: // $8000 fixed to bank 0, $C000 switchable
		if addr < 0xC000 {
			bank = 0
		} else {
			bank = uint32(m.prg)
		}
	default: // 3: $8000 switchable, $C000 fixed to the last bank
		if addr < 0xC000 {
			bank = uint32(m.prg)
		} else {
			bank = n - 1
		}
	}
	bank %= n
	return m.rom.PRGROM[bank*0x4000+uint32(addr&0x3FFF)]
}

func (m *mmc1) WritePRGROM(addr uint16, val uint8) {
	if val&0x80 != 0 {
		m.shift, m.shiftN = 0, 0
		m.ctrl |= 0x0C
		return
	}

	m.shift |= (val & 1) << m.shiftN
	m.shiftN++
	if m.shiftN < 5 {
		return
	}
	data := m.shift
	m.shift, m.shiftN = 0, 0

	switch {
	case addr < 0xA000:
		m.writeCtrl(data)
	case addr < 0xC000:
		m.chr0 = data & 0x1F
		m.remapCHR()
	case addr < 0xE000:
		m.chr1 = data & 0x1F
		m.remapCHR()
	default:
		m.prg = data & 0xF
	}
}

func (m *mmc1) writeCtrl(data uint8) {
	m.ctrl = data & 0x1F
	switch data & 0x3 {
	case 0:
		m.ppu.SetMirroring(ines.OnlyAScreen)
	case 1:
		m.ppu.SetMirroring(ines.OnlyBScreen)
	case 2:
		m.ppu.SetMirroring(ines.VertMirroring)
	case 3:
		m.ppu.SetMirroring(ines.HorzMirroring)
	}
}

func (m *mmc1) remapCHR() {
	if m.hasCHRRAM() {
		return
	}
	if m.chrMode() == 0 {
		m.mapCHRBank(0x0000, 0x2000, int(m.chr0>>1))
	} else {
		m.mapCHRBank(0x0000, 0x1000, int(m.chr0))
		m.mapCHRBank(0x1000, 0x1000, int(m.chr1))
	}
}

func init() { hw.RegisterMapper(1, hw.MapperDesc{Name: "MMC1", New: newMMC1}) }
