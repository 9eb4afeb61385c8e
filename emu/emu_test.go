package emu

import (
	"testing"

	_ "nestor/hw/mappers"
	"nestor/ines"
)

func testRom(battery bool) *ines.Rom {
	return &ines.Rom{
		MapperNumber: 0,
		Mirroring:    ines.HorzMirroring,
		Battery:      battery,
		PRGROM:       make([]byte, 0x8000),
		CHRROM:       make([]byte, 0x2000),
	}
}

func TestSystemRequiresPowerOnBeforeRunning(t *testing.T) {
	s := NewSystem()
	if err := s.TickUntilVSync(); err == nil {
		t.Fatal("expected an error running before PowerOn")
	}
}

func TestSystemRequiresCartridge(t *testing.T) {
	s := NewSystem()
	s.PowerOn()
	if err := s.TickUntilVSync(); err != ErrNoCartridge {
		t.Fatalf("TickUntilVSync() = %v, want ErrNoCartridge", err)
	}
}

func TestSystemRunsAFrame(t *testing.T) {
	s := NewSystem()
	s.PowerOn()
	if err := s.InsertCartridge(testRom(false)); err != nil {
		t.Fatalf("InsertCartridge: %v", err)
	}
	if err := s.TickUntilVSync(); err != nil {
		t.Fatalf("TickUntilVSync: %v", err)
	}
	if s.FrameBuffer() == nil {
		t.Fatal("FrameBuffer() = nil")
	}
}

func TestSystemBatterySaveLoadRoundTrip(t *testing.T) {
	s := NewSystem()
	s.PowerOn()
	if err := s.InsertCartridge(testRom(true)); err != nil {
		t.Fatalf("InsertCartridge: %v", err)
	}

	save := s.BatterySave()
	if save == nil {
		t.Fatal("BatterySave() = nil for a battery-backed cartridge")
	}
	save[0] = 0x42

	s2 := NewSystem()
	s2.PowerOn()
	if err := s2.InsertCartridge(testRom(true)); err != nil {
		t.Fatalf("InsertCartridge: %v", err)
	}
	s2.BatteryLoad(save)

	if got := s2.BatterySave()[0]; got != 0x42 {
		t.Errorf("BatterySave()[0] after BatteryLoad = %#x, want 0x42", got)
	}
}

func TestSystemBatterySaveNilWithoutBattery(t *testing.T) {
	s := NewSystem()
	s.PowerOn()
	if err := s.InsertCartridge(testRom(false)); err != nil {
		t.Fatalf("InsertCartridge: %v", err)
	}
	if save := s.BatterySave(); save != nil {
		t.Errorf("BatterySave() = %v, want nil without a battery", save)
	}
}

func TestStdControllerPairSetButton(t *testing.T) {
	pads := &StdControllerPair{Pad1Connected: true, Pad2Connected: true}

	pads.SetButton(1, PadA, true)
	pads.SetButton(2, PadStart, true)

	s1, s2 := pads.LoadState()
	if s1&(1<<PadA) == 0 {
		t.Error("pad 1 PadA bit not set")
	}
	if s2&(1<<PadStart) == 0 {
		t.Error("pad 2 PadStart bit not set")
	}

	pads.SetButton(1, PadA, false)
	s1, _ = pads.LoadState()
	if s1&(1<<PadA) != 0 {
		t.Error("pad 1 PadA bit still set after release")
	}
}
