package hw

import (
	"testing"

	"nestor/ines"
)

func newMirroringTestPPU() *PPU {
	p := NewPPU()
	p.InitBus()
	return p
}

func TestSetMirroringHorizontal(t *testing.T) {
	p := newMirroringTestPPU()
	p.SetMirroring(ines.HorzMirroring)

	p.ppuWrite(0x2000, 0xAA) // nt0
	p.ppuWrite(0x2800, 0xBB) // nt2, second physical bank

	if got := p.ppuRead(0x2400, false); got != 0xAA {
		t.Errorf("$2400 (nt1, mirrors nt0 in horizontal mode) = %#x, want 0xAA", got)
	}
	if got := p.ppuRead(0x2C00, false); got != 0xBB {
		t.Errorf("$2C00 (nt3, mirrors nt2 in horizontal mode) = %#x, want 0xBB", got)
	}
}

func TestSetMirroringVertical(t *testing.T) {
	p := newMirroringTestPPU()
	p.SetMirroring(ines.VertMirroring)

	p.ppuWrite(0x2000, 0x11)
	p.ppuWrite(0x2400, 0x22)

	if got := p.ppuRead(0x2800, false); got != 0x11 {
		t.Errorf("$2800 (nt2, mirrors nt0 in vertical mode) = %#x, want 0x11", got)
	}
	if got := p.ppuRead(0x2C00, false); got != 0x22 {
		t.Errorf("$2C00 (nt3, mirrors nt1 in vertical mode) = %#x, want 0x22", got)
	}
}

// TestSetMirroring3000Window exercises the $3000-$3EFF alias fixed onto
// SetMirroring: the PPU's own ppuRead/ppuWrite mask addresses into
// $0000-$3FFF but don't fold $3000-$3EFF down to $2000-$2EFF themselves, so
// SetMirroring has to map that window explicitly.
func TestSetMirroring3000Window(t *testing.T) {
	p := newMirroringTestPPU()
	p.SetMirroring(ines.HorzMirroring)

	p.ppuWrite(0x2000, 0x55)
	if got := p.ppuRead(0x3000, false); got != 0x55 {
		t.Errorf("$3000 = %#x, want 0x55 (mirrors $2000)", got)
	}

	p.ppuWrite(0x2C00, 0x66)
	if got := p.ppuRead(0x3C00, false); got != 0x66 {
		t.Errorf("$3C00 = %#x, want 0x66 (mirrors $2C00)", got)
	}

	// The final window is only 0x300 bytes ($3C00-$3EFF); addresses inside
	// it still mirror $2C00-$2EFF.
	p.ppuWrite(0x2CFF, 0x77)
	if got := p.ppuRead(0x3CFF, false); got != 0x77 {
		t.Errorf("$3CFF = %#x, want 0x77 (mirrors $2CFF)", got)
	}
}

func TestSetMirroringSingleScreen(t *testing.T) {
	p := newMirroringTestPPU()
	p.SetMirroring(ines.OnlyAScreen)

	p.ppuWrite(0x2000, 0x99)
	for _, addr := range []uint16{0x2400, 0x2800, 0x2C00, 0x3000, 0x3800} {
		if got := p.ppuRead(addr, false); got != 0x99 {
			t.Errorf("%#x = %#x, want 0x99 (single-screen-a mirrors everywhere)", addr, got)
		}
	}
}
