package mappers

import (
	"nestor/hw"
	"nestor/hw/hwio"
	"nestor/ines"
)

// mmc3 is mapper 4. Two write-only registers at $8000/$8001 select which of
// eight bank-data targets (six CHR, two PRG) the next $8001 write updates;
// $A000 controls mirroring and PRG RAM write protection; $C000/$C001/$E000/
// $E001 drive a scanline counter that reloads on the PPU's first pattern
// fetch of a scanline (the rising A12 edge PPU.Run reports through
// OnA12Edge) and requests an IRQ when it reaches zero.
type mmc3 struct {
	base

	PRGROM hwio.Manual `hwio:"offset=0x8000,size=0x8000,rcb,wcb"`

	bankSelect uint8
	chrBank    [6]uint8
	prgBank    [2]uint8

	irqLatch   uint8
	irqCounter uint8
	irqReload  bool
	irqEnabled bool
	irqPending bool
}

func newMMC3() hw.Mapper { return &mmc3{} }

func (m *mmc3) Name() string { return "MMC3" }

func (m *mmc3) IRQPending() bool { return m.irqPending }

// OnA12Edge is called by the PPU on every rising A12 transition it observes
// while fetching from the pattern tables, which happens once per visible
// scanline during normal background+sprite rendering.
func (m *mmc3) OnA12Edge() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mmc3) Load(rom *ines.Rom, cpu *hw.CPU, ppu *hw.PPU) error {
	m.rom, m.cpu, m.ppu = rom, cpu, ppu
	if err := m.checkPRGSize(); err != nil {
		return err
	}

	hwio.MustInitRegs(m)
	cpu.Bus.MapBank(0x0000, m, 0)
	if rom.Battery {
		m.mapPRGRAM()
	}

	ppu.SetMirroring(rom.Mirroring)
	if !m.hasCHRRAM() {
		m.remapCHR()
	}
	return nil
}

func (m *mmc3) prgBankCount() uint32 { return uint32(len(m.rom.PRGROM)) / 0x2000 }

func (m *mmc3) ReadPRGROM(addr uint16, peek bool) uint8 {
	n := m.prgBankCount()
	slot := (addr - 0x8000) / 0x2000
	swapped := m.bankSelect&0x40 != 0

	var bank uint32
	switch slot {
	case 0:
		if swapped {
			bank = n - 2
		} else {
			bank = uint32(m.prgBank[0])
		}
	case 1:
		bank = uint32(m.prgBank[1])
	case 2:
		if swapped {
			bank = uint32(m.prgBank[0])
		} else {
			bank = n - 2
		}
	default:
		bank = n - 1
	}
	bank %= n
	return m.rom.PRGROM[bank*0x2000+uint32(addr&0x1FFF)]
}

func (m *mmc3) WritePRGROM(addr uint16, val uint8) {
	even := addr&1 == 0
	switch {
	case addr < 0xA000:
		if even {
			m.bankSelect = val
		} else {
			m.writeBankData(val)
		}
	case addr < 0xC000:
		if even {
			if val&1 == 0 {
				m.ppu.SetMirroring(ines.VertMirroring)
			} else {
				m.ppu.SetMirroring(ines.HorzMirroring)
			}
		} // odd: PRG RAM write-protect, not modeled
	case addr < 0xE000:
		if even {
			m.irqLatch = val
		} else {
			m.irqReload = true
		}
	default:
		if even {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) writeBankData(val uint8) {
	reg := m.bankSelect & 0x7
	if reg <= 5 {
		m.chrBank[reg] = val
		if !m.hasCHRRAM() {
			m.remapCHR()
		}
	} else {
		m.prgBank[reg-6] = val & 0x3F
	}
}

func (m *mmc3) remapCHR() {
	inverted := m.bankSelect&0x80 != 0
	lo, hi := uint16(0x0000), uint16(0x1000)
	if inverted {
		lo, hi = hi, lo
	}

	m.mapCHRBank(lo, 0x0800, int(m.chrBank[0]&^1))
	m.mapCHRBank(lo+0x0800, 0x0800, int(m.chrBank[1]&^1))
	for i, bank := range m.chrBank[2:6] {
		m.mapCHRBank(hi+uint16(i)*0x0400, 0x0400, int(bank))
	}
}

func init() { hw.RegisterMapper(4, hw.MapperDesc{Name: "MMC3", New: newMMC3}) }
