// Package mappers implements the cartridge boards that plug into the
// bus-contract defined by hw.Mapper: PRG/CHR bank switching, nametable
// mirroring control, and (for boards that need it) the scanline IRQ some
// mappers derive from the PPU's A12 address line.
package mappers

import (
	"fmt"

	"nestor/emu/log"
	"nestor/hw"
	"nestor/ines"
)

var modMapper = log.NewModule("mapper")

// base holds the plumbing every mapper needs: the cartridge image and
// handles to the CPU/PPU buses. Mappers embed it and fill rom/cpu/ppu at
// the top of Load.
type base struct {
	rom *ines.Rom
	cpu *hw.CPU
	ppu *hw.PPU

	prgRAM []uint8
}

// BatteryRAM returns the cartridge's battery-backed PRG RAM, or nil if the
// board has none mapped. hw.LoadCartridge's caller uses this (via the
// optional hw.BatteryBacked interface) to persist and restore save data.
func (b *base) BatteryRAM() []uint8 { return b.prgRAM }

func ispow2(n int) bool { return n > 0 && n&(n-1) == 0 }

func (b *base) checkPRGSize() error {
	if !ispow2(len(b.rom.PRGROM)) {
		return fmt.Errorf("mappers: PRG ROM size %d is not a power of two", len(b.rom.PRGROM))
	}
	return nil
}

// hasCHRRAM reports whether the cartridge ships no CHR ROM, meaning the
// PPU's own pattern-table RAM is the backing store and is never bank
// switched or aliased onto rom.CHRROM.
func (b *base) hasCHRRAM() bool { return len(b.rom.CHRROM) == 0 }

// mapCHRBank aliases a bankSize-byte window of the cartridge's CHR ROM onto
// the PPU bus at [addr, addr+bankSize), without copying: the PPU reads
// straight out of rom.CHRROM from then on. Callers only use this when
// !hasCHRRAM(); CHR RAM boards leave the PPU's default pattern-table RAM
// mapped as-is.
func (b *base) mapCHRBank(addr uint16, bankSize uint32, bank int) {
	n := len(b.rom.CHRROM) / int(bankSize)
	if n == 0 {
		n = 1
	}
	if bank < 0 {
		bank += n
	}
	bank %= n
	start := uint32(bank) * bankSize
	end := addr + uint16(bankSize) - 1
	b.ppu.Bus.Unmap(addr, end)
	b.ppu.Bus.MapMemorySlice(addr, end, b.rom.CHRROM[start:start+bankSize], true)
}

// mapPRGRAM gives battery-backed boards 8KB of RAM at $6000-$7FFF. Real
// boards vary this size; 8KB covers every board this package implements.
func (b *base) mapPRGRAM() []uint8 {
	ram := make([]uint8, 0x2000)
	b.cpu.Bus.MapMemorySlice(0x6000, 0x7FFF, ram, false)
	b.prgRAM = ram
	return ram
}
