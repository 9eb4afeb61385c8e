package hw_test

import (
	"testing"

	"nestor/hw"
	_ "nestor/hw/mappers"
	"nestor/ines"
)

// buildRom assembles a minimal, in-memory iNES-decoded Rom for mapper
// tests, sidestepping ines.ReadFrom entirely: mapper tests care about bank
// switching behavior, not header parsing (already covered by
// ines/ines_test.go).
func buildRom(mapperNum uint16, prgBanks, chrBanks int, mirroring ines.NTMirroring, battery bool) *ines.Rom {
	rom := &ines.Rom{
		MapperNumber: mapperNum,
		Mirroring:    mirroring,
		Battery:      battery,
		PRGROM:       make([]byte, prgBanks*0x4000),
		CHRROM:       make([]byte, chrBanks*0x2000),
	}
	for i := range rom.PRGROM {
		rom.PRGROM[i] = byte(i / 0x4000) // bank index repeated through the bank, for ReadPRGROM assertions
	}
	return rom
}

func newTestSystem(t *testing.T, rom *ines.Rom) (*hw.CPU, *hw.PPU, hw.Mapper) {
	t.Helper()
	ppu := hw.NewPPU()
	cpu := hw.NewCPU(ppu)
	cpu.InitBus()
	ppu.InitBus()

	m, err := hw.LoadCartridge(rom, cpu, ppu)
	if err != nil {
		t.Fatalf("LoadCartridge: %v", err)
	}
	return cpu, ppu, m
}

func TestNROMMirrorsFixedBanks(t *testing.T) {
	rom := buildRom(0, 2, 1, ines.HorzMirroring, false)
	cpu, _, m := newTestSystem(t, rom)

	if m.Name() != "NROM" {
		t.Fatalf("Name() = %q, want NROM", m.Name())
	}
	if got := cpu.Read8(0x8000); got != 0 {
		t.Errorf("$8000 = %d, want 0", got)
	}
	if got := cpu.Read8(0xC000); got != 1 {
		t.Errorf("$C000 = %d, want 1", got)
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	rom := buildRom(2, 4, 0, ines.VertMirroring, false)
	cpu, _, _ := newTestSystem(t, rom)

	// $C000-$FFFF is hardwired to the last bank regardless of the select.
	if got := cpu.Read8(0xC000); got != 3 {
		t.Errorf("$C000 = %d, want 3 (fixed last bank)", got)
	}

	cpu.Write8(0x8000, 2)
	if got := cpu.Read8(0x8000); got != 2 {
		t.Errorf("$8000 after bank switch = %d, want 2", got)
	}
	if got := cpu.Read8(0xC000); got != 3 {
		t.Errorf("$C000 after bank switch = %d, want 3 still", got)
	}
}

func TestBatteryRAMRoundTrip(t *testing.T) {
	rom := buildRom(0, 2, 1, ines.HorzMirroring, true)
	cpu, _, m := newTestSystem(t, rom)

	bb, ok := m.(hw.BatteryBacked)
	if !ok {
		t.Fatal("NROM does not implement BatteryBacked")
	}
	ram := bb.BatteryRAM()
	if ram == nil {
		t.Fatal("BatteryRAM() = nil for a battery-backed cartridge")
	}

	cpu.Write8(0x6000, 0x42)
	if ram[0] != 0x42 {
		t.Errorf("battery RAM[0] = %#x, want 0x42", ram[0])
	}
}

func TestNoBatteryRAMWhenNotRequested(t *testing.T) {
	rom := buildRom(0, 2, 1, ines.HorzMirroring, false)
	_, _, m := newTestSystem(t, rom)

	bb := m.(hw.BatteryBacked)
	if bb.BatteryRAM() != nil {
		t.Error("BatteryRAM() should be nil when rom.Battery is false")
	}
}

func TestMMC3PRGBankSelect(t *testing.T) {
	rom := buildRom(4, 8, 8, ines.HorzMirroring, false)
	cpu, _, m := newTestSystem(t, rom)

	if _, ok := m.(hw.IRQSource); !ok {
		t.Fatal("MMC3 does not implement IRQSource")
	}

	// Select register 6 (first swappable PRG bank) then set it to 8KB bank
	// 3, which lies in buildRom's 16KB bank 1.
	cpu.Write8(0x8000, 6)
	cpu.Write8(0x8001, 3)
	if got := cpu.Read8(0x8000); got != 1 {
		t.Errorf("$8000 after selecting PRG bank 3 = %d, want 1 (8KB bank 3 is in 16KB bank 1)", got)
	}

	// The last bank is always fixed at $E000-$FFFF.
	if got := cpu.Read8(0xE000); got != 7 {
		t.Errorf("$E000 = %d, want 7 (fixed last bank)", got)
	}
}

func TestMMC3IRQCounter(t *testing.T) {
	rom := buildRom(4, 8, 8, ines.HorzMirroring, false)
	cpu, _, m := newTestSystem(t, rom)

	irq := m.(hw.IRQSource)
	a12 := m.(hw.A12Notifier)

	// $C000 sets the reload latch, $C001 arms a reload on the next A12 edge.
	cpu.Write8(0xC000, 2) // reload latch = 2
	cpu.Write8(0xC001, 0) // force reload
	cpu.Write8(0xE001, 0) // enable IRQ

	a12.OnA12Edge() // counter was 0 and reload armed: reloads to 2
	if irq.IRQPending() {
		t.Fatal("IRQ pending immediately after reload to a nonzero latch")
	}
	a12.OnA12Edge() // counter: 2 -> 1
	if irq.IRQPending() {
		t.Fatal("IRQ pending with counter still nonzero")
	}
	a12.OnA12Edge() // counter: 1 -> 0, IRQ asserted
	if !irq.IRQPending() {
		t.Fatal("IRQ not pending once the counter reaches zero")
	}

	cpu.Write8(0xE000, 0) // acknowledge/disable
	if irq.IRQPending() {
		t.Fatal("IRQ still pending after acknowledging via $E000")
	}
}
