// Package emu wires the CPU, PPU and cartridge mapper together into a
// runnable NES and exposes the handful of calls a host (a window, a test
// harness, a headless CLI) needs: power it on, feed it a ROM, run it one
// frame at a time, read back the frame buffer, and push button state in.
package emu

import (
	"errors"

	"nestor/emu/log"
	"nestor/hw"
	"nestor/ines"
)

// System is a complete NES: CPU, PPU, and whatever mapper the currently
// inserted cartridge registered. It has no notion of a window, an audio
// device, or real time — advancing it is entirely the caller's doing.
type System struct {
	CPU *hw.CPU
	PPU *hw.PPU

	rom    *ines.Rom
	mapper hw.Mapper

	poweredOn bool
}

// NewSystem builds an NES with no cartridge inserted. Call PowerOn, then
// InsertCartridge, before running it.
func NewSystem() *System {
	ppu := hw.NewPPU()
	cpu := hw.NewCPU(ppu)
	return &System{CPU: cpu, PPU: ppu}
}

// PowerOn brings the CPU and PPU up from a cold start. It's safe to call
// again later (e.g. to simulate unplugging and replugging the console);
// doing so maps the CPU's and PPU's own memory and registers back over their
// default windows, which replaces any CHR banking and $2000-$2FFF mirroring
// the mapper set up. The inserted cartridge, its register state and its
// PRG mapping stay in place.
func (s *System) PowerOn() {
	s.CPU.InitBus()
	s.PPU.InitBus()
	s.CPU.Reset(false)
	s.PPU.PowerOn()
	s.poweredOn = true
	log.ModEmu.InfoZ("power on").End()
}

// Reset pulses the console's reset line, matching a power-on (soft=false)
// or a press of the physical reset button (soft=true). PowerOn must have
// been called at least once before Reset.
func (s *System) Reset(soft bool) {
	s.CPU.Reset(soft)
	s.PPU.Reset()
	log.ModEmu.InfoZ("reset").Bool("soft", soft).End()
}

var ErrNoCartridge = errors.New("emu: no cartridge inserted")

// InsertCartridge loads rom's mapper onto the CPU/PPU buses. Any
// previously inserted cartridge's mapper is discarded.
func (s *System) InsertCartridge(rom *ines.Rom) error {
	m, err := hw.LoadCartridge(rom, s.CPU, s.PPU)
	if err != nil {
		return err
	}
	s.rom = rom
	s.mapper = m
	log.ModEmu.InfoZ("cartridge inserted").
		String("mapper", m.Name()).
		Uint16("mapper-num", rom.MapperNumber).
		String("mirroring", rom.Mirroring.String()).
		End()
	return nil
}

// TickUntilVSync runs the CPU (and, lockstepped with it, the PPU) until the
// PPU completes a frame, i.e. until it wraps from the pre-render scanline
// (261) back to scanline 0. The frame buffer returned by FrameBuffer is only
// meaningful to read once this returns.
func (s *System) TickUntilVSync() error {
	if !s.poweredOn {
		return errors.New("emu: system not powered on")
	}
	if s.rom == nil {
		return ErrNoCartridge
	}

	s.PPU.FrameComplete = false
	for !s.PPU.FrameComplete {
		// Run in short bursts so a mapper's IRQ line (MMC3's scanline
		// counter, most commonly) gets noticed within a scanline or two of
		// being asserted, instead of only at the end of a whole frame.
		s.CPU.Run(114)
		s.syncMapperIRQ()
		if s.CPU.IsHalted() {
			return nil
		}
	}
	return nil
}

func (s *System) syncMapperIRQ() {
	src, ok := s.mapper.(hw.IRQSource)
	if !ok {
		return
	}
	if src.IRQPending() {
		s.CPU.SetIRQSource(hw.IrqMapper)
	} else {
		s.CPU.ClearIRQSource(hw.IrqMapper)
	}
}

// FrameBuffer returns the most recently rendered frame: 256x240 pixels, one
// 6-bit master-palette index per byte, row-major.
func (s *System) FrameBuffer() *[256 * 240]uint8 { return &s.PPU.FrameBuffer }

// PlugInputDevice attaches dev as the source of $4016/$4017 controller
// state. Typically a *StdControllerPair.
func (s *System) PlugInputDevice(dev hw.InputDevice) {
	s.CPU.PlugInputDevice(dev)
}

// BatterySave returns the cartridge's persisted RAM ($6000-$7FFF), or nil
// if the current cartridge has none. Callers write this to disk next to
// the ROM and feed it back via BatteryLoad after InsertCartridge.
func (s *System) BatterySave() []byte {
	bb, ok := s.mapper.(hw.BatteryBacked)
	if !ok {
		return nil
	}
	return bb.BatteryRAM()
}

// BatteryLoad restores previously saved PRG RAM into the current
// cartridge, if it has any and data is the right size.
func (s *System) BatteryLoad(data []byte) {
	bb, ok := s.mapper.(hw.BatteryBacked)
	if !ok {
		return
	}
	ram := bb.BatteryRAM()
	if ram == nil || len(data) != len(ram) {
		return
	}
	copy(ram, data)
}
