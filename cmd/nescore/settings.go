package main

import (
	"fmt"

	"github.com/gotk3/gotk3/gtk"

	"nestor/emu"
)

func mustT[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// showSettingsDialog pops up a small GTK window for editing a Config's key
// bindings, one entry per pad-1 button. Grounded on the teacher's ui/
// package (gtk.go's build/must helpers, config_input.go's per-button
// property list), trimmed down to a plain grid of label+entry pairs since
// this repo has no .glade file to drive a gtk.Builder from.
func showSettingsDialog(cfg *emu.Config) error {
	if err := gtk.InitCheck(); err != nil {
		return fmt.Errorf("gtk init: %w", err)
	}

	win := mustT(gtk.WindowNew(gtk.WINDOW_TOPLEVEL))
	win.SetTitle("nescore settings")
	win.SetDefaultSize(280, 220)
	win.Connect("destroy", func() { gtk.MainQuit() })

	grid := mustT(gtk.GridNew())
	grid.SetRowSpacing(6)
	grid.SetColumnSpacing(12)
	grid.SetBorderWidth(12)
	win.Add(grid)

	if cfg.Input.Pad1Keys == nil {
		cfg.Input.Pad1Keys = emu.DefaultInputConfig().Pad1Keys
	}

	buttons := []string{"Up", "Down", "Left", "Right", "A", "B", "Select", "Start"}
	entries := make(map[string]*gtk.Entry, len(buttons))

	for i, btn := range buttons {
		label := mustT(gtk.LabelNew(btn))
		label.SetHAlign(gtk.ALIGN_START)
		grid.Attach(label, 0, i, 1, 1)

		entry := mustT(gtk.EntryNew())
		entry.SetText(cfg.Input.Pad1Keys[btn])
		grid.Attach(entry, 1, i, 1, 1)
		entries[btn] = entry
	}

	save := mustT(gtk.ButtonNewWithLabel("Save"))
	save.Connect("clicked", func() {
		for btn, entry := range entries {
			text, err := entry.GetText()
			if err == nil && text != "" {
				cfg.Input.Pad1Keys[btn] = text
			}
		}
		gtk.MainQuit()
	})
	grid.Attach(save, 0, len(buttons), 2, 1)

	win.ShowAll()
	gtk.Main()
	return nil
}
