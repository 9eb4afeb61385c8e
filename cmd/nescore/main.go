package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"

	"nestor/emu"
	"nestor/emu/log"
	"nestor/hw"
	"nestor/ines"
)

func main() {
	cli, cmd := parseArgs(os.Args[1:])

	switch cmd {
	case "rom-infos </path/to/rom>", "rom-infos":
		runRomInfos(cli.RomInfos)
	case "settings":
		runSettings()
	default:
		runROM(cli.Run)
	}
}

func runRomInfos(ri RomInfos) {
	rom, err := ines.Open(ri.RomPath)
	checkf(err, "failed to load %s", ri.RomPath)

	desc, ok := hw.Registry[rom.MapperNumber]
	name := "unsupported"
	if ok {
		name = desc.Name
	}
	fmt := log.ModEmu
	fmt.InfoZ("rom info").
		String("path", ri.RomPath).
		Uint16("mapper", rom.MapperNumber).
		String("mapper-name", name).
		Int("prg-kb", len(rom.PRGROM)/1024).
		Int("chr-kb", len(rom.CHRROM)/1024).
		String("mirroring", rom.Mirroring.String()).
		Bool("battery", rom.Battery).
		End()
}

func runROM(run Run) {
	rom, err := ines.Open(run.RomPath)
	checkf(err, "failed to load %s", run.RomPath)

	sys := emu.NewSystem()
	if run.Trace != nil {
		sys.CPU.SetTraceOutput(run.Trace)
		defer run.Trace.Close()
	}

	sys.PowerOn()
	checkf(sys.InsertCartridge(rom), "failed to insert cartridge")

	if save, err := os.ReadFile(run.RomPath + ".sav"); err == nil {
		sys.BatteryLoad(save)
	}

	pads := &emu.StdControllerPair{Pad1Connected: true}
	sys.PlugInputDevice(pads)

	win, err := newWindow("nescore", run.Scale)
	checkf(err, "failed to create window")
	defer win.Close()

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	g.Go(func() error {
		select {
		case <-sigc:
			cancel()
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		defer cancel()
		for gctx.Err() == nil {
			quit := pumpEvents(pads)
			if quit {
				return nil
			}
			if err := sys.TickUntilVSync(); err != nil {
				return err
			}
			win.DrawFrame(sys.FrameBuffer())
		}
		return nil
	})

	_ = g.Wait()

	if save := sys.BatterySave(); save != nil {
		_ = os.WriteFile(run.RomPath+".sav", save, 0644)
	}
}

func runSettings() {
	cfg := emu.LoadConfigOrDefault()
	if err := showSettingsDialog(&cfg); err != nil {
		fatalf("settings dialog: %v", err)
	}
	checkf(emu.SaveConfig(cfg), "failed to save config")
}

// pumpEvents drains pending SDL events, updating pads from the keyboard and
// reporting whether the user asked to quit.
func pumpEvents(pads *emu.StdControllerPair) bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true
		case *sdl.KeyboardEvent:
			btn, ok := keymap[e.Keysym.Scancode]
			if !ok {
				continue
			}
			pads.SetButton(1, btn, e.State == sdl.PRESSED)
		}
	}
	return false
}

var keymap = map[sdl.Scancode]emu.StdPadButton{
	sdl.SCANCODE_K:      emu.PadA,
	sdl.SCANCODE_J:      emu.PadB,
	sdl.SCANCODE_RSHIFT: emu.PadSelect,
	sdl.SCANCODE_RETURN: emu.PadStart,
	sdl.SCANCODE_UP:     emu.PadUp,
	sdl.SCANCODE_DOWN:   emu.PadDown,
	sdl.SCANCODE_LEFT:   emu.PadLeft,
	sdl.SCANCODE_RIGHT:  emu.PadRight,
}
