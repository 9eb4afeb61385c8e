package ines

import (
	"bytes"
	"testing"
)

// buildRom assembles a minimal, syntactically valid iNES image in memory:
// header + prgBanks*16KiB of PRG + chrBanks*8KiB of CHR, all zero-filled
// except the header, so tests don't depend on any file on disk.
func buildRom(prgBanks, chrBanks int, flags6, flags7 byte) []byte {
	buf := make([]byte, 16+prgBanks*16384+chrBanks*8192)
	copy(buf[:4], Magic)
	buf[4] = byte(prgBanks)
	buf[5] = byte(chrBanks)
	buf[6] = flags6
	buf[7] = flags7
	return buf
}

func TestReadFromBasic(t *testing.T) {
	raw := buildRom(2, 1, 0x12, 0x00) // mapper 1, horizontal mirroring, battery
	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}

	if len(rom.PRGROM) != 2*16384 {
		t.Errorf("PRGROM len = %d, want %d", len(rom.PRGROM), 2*16384)
	}
	if len(rom.CHRROM) != 1*8192 {
		t.Errorf("CHRROM len = %d, want %d", len(rom.CHRROM), 1*8192)
	}
	if rom.MapperNumber != 1 {
		t.Errorf("MapperNumber = %d, want 1", rom.MapperNumber)
	}
	if !rom.Battery {
		t.Error("Battery = false, want true")
	}
	if rom.Mirroring != HorzMirroring {
		t.Errorf("Mirroring = %v, want %v", rom.Mirroring, HorzMirroring)
	}
}

func TestReadFromVerticalMirroring(t *testing.T) {
	raw := buildRom(1, 1, 0x01, 0x00)
	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if rom.Mirroring != VertMirroring {
		t.Errorf("Mirroring = %v, want %v", rom.Mirroring, VertMirroring)
	}
}

func TestReadFromFourScreen(t *testing.T) {
	raw := buildRom(1, 1, 0x08, 0x00)
	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if rom.Mirroring != FourScreenMirroring {
		t.Errorf("Mirroring = %v, want %v", rom.Mirroring, FourScreenMirroring)
	}
}

func TestReadFromMapperNumberHighNibble(t *testing.T) {
	// Mapper 4 (MMC3): low nibble in flags6 bits 4-7, high nibble in flags7 bits 4-7.
	raw := buildRom(1, 1, 0x40, 0x00)
	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if rom.MapperNumber != 4 {
		t.Errorf("MapperNumber = %d, want 4", rom.MapperNumber)
	}

	raw = buildRom(1, 1, 0x00, 0x10) // mapper 16
	rom = new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if rom.MapperNumber != 16 {
		t.Errorf("MapperNumber = %d, want 16", rom.MapperNumber)
	}
}

func TestReadFromBadMagic(t *testing.T) {
	raw := buildRom(1, 1, 0, 0)
	raw[0] = 'X'
	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err == nil {
		t.Fatal("expected error for bad magic number")
	}
}

func TestReadFromTruncatedPRG(t *testing.T) {
	raw := buildRom(2, 0, 0, 0)
	raw = raw[:len(raw)-100] // no CHR, so this truncates into the PRG section
	rom := new(Rom)
	if _, err := rom.ReadFrom(bytes.NewReader(raw)); err == nil {
		t.Fatal("expected error for truncated PRG section")
	}
}
