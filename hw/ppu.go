package hw

import (
	"nestor/emu/log"
	"nestor/hw/hwio"
	"nestor/ines"
)

// PPU is a cycle-accurate 2C02: a 341-dot by 262-scanline raster state
// machine driven dot-by-dot from CPU.Run via PPU.Run, which advances PPU
// time to whatever point the shared master clock has reached. It owns its
// own address bus ($0000-$3FFF): pattern tables (from the mapper's CHR, or
// the fallback RAM below when a cartridge has none), nametables (mirrored
// per the mapper), and palette RAM.
type PPU struct {
	Bus    *Bus
	CPU    *CPU
	mapper Mapper

	PatternTables hwio.Mem `hwio:"offset=0x0000,size=0x2000"`
	NameTables    hwio.Mem `hwio:"offset=0x2000,size=0x800,vsize=0x1000"`
	Palettes      hwio.Mem `hwio:"offset=0x3F00,size=0x20,vsize=0x100"`

	// CPU-visible registers, mapped at $2000-$2007 and mirrored every 8
	// bytes up to $3FFF by CPU.InitBus.
	PPUCTRL   hwio.Reg8 `hwio:"bank=1,offset=0x0,writeonly,wcb"`
	PPUMASK   hwio.Reg8 `hwio:"bank=1,offset=0x1,writeonly,wcb"`
	PPUSTATUS hwio.Reg8 `hwio:"bank=1,offset=0x2,readonly,rcb"`
	OAMADDR   hwio.Reg8 `hwio:"bank=1,offset=0x3,writeonly,wcb"`
	OAMDATA   hwio.Reg8 `hwio:"bank=1,offset=0x4,rcb,wcb"`
	PPUSCROLL hwio.Reg8 `hwio:"bank=1,offset=0x5,writeonly,wcb"`
	PPUADDR   hwio.Reg8 `hwio:"bank=1,offset=0x6,writeonly,wcb"`
	PPUDATA   hwio.Reg8 `hwio:"bank=1,offset=0x7,rcb,wcb"`

	Scanline int // 0-261
	Dot      int // 0-340
	FrameOdd bool

	nextDot       int64
	FrameComplete bool

	// Loopy registers.
	v, t       uint16
	fineX      uint8
	writeToggle bool

	dataBuf uint8 // $2007 read-delay buffer
	ioLatch uint8 // last byte written to any PPU register, open-bus bits 0-4 of $2002

	writeIgnoreUntil int64 // CPU.Cycles before which CTRL/MASK/SCROLL/ADDR writes are dropped; <0 disables the window

	suppressVBLThisFrame bool

	// Background pipeline.
	ntByte, atByte     uint8
	ptLo, ptHi         uint8
	bgShiftLo, bgShiftHi uint16
	bgAttrLo, bgAttrHi   uint16

	// OAM and sprite pipeline.
	OAM       [256]uint8
	secOAM    [32]uint8
	secOAMLen int
	spriteZeroInLine bool

	sprites     [8]spriteUnit
	spriteCount int

	a12Prev     bool
	a12LowCount int

	FrameBuffer [256 * 240]uint8 // 6-bit master-palette index per pixel
}

type spriteUnit struct {
	shiftLo, shiftHi uint8
	attr             uint8
	counter          uint8
	isSprite0        bool
}

// resetWriteIgnoreCycles is the length of the reset-warmup window during
// which writes to CTRL/MASK/SCROLL/ADDR are dropped. Per the hardware notes,
// this applies only after Reset, never after PowerOn.
const resetWriteIgnoreCycles = 29658

// masterClocksPerDot is how many of CPU's masterClock units elapse per PPU
// dot: the CPU burns ntscCPUDivider units per cycle over ppuDotsPerCPUCycle
// dots.
const masterClocksPerDot = ntscCPUDivider / ppuDotsPerCPUCycle

func NewPPU() *PPU {
	return &PPU{
		Bus: NewBus("ppu"),
	}
}

func (p *PPU) InitBus() {
	hwio.MustInitRegs(p)
	p.Bus.MapBank(0x0000, p, 0)
}

// PlugMapper gives the PPU a handle to the cartridge mapper, used for the
// A12 edge hook that feeds scanline-counting IRQ mappers like MMC3.
func (p *PPU) PlugMapper(m Mapper) { p.mapper = m }

// SetMirroring reconfigures the $2000-$2FFF nametable window to alias the
// PPU's 2KiB of nametable RAM per mode. Mappers call this once from Load,
// and again on the fly for boards (like AxROM) that switch single-screen
// banks at runtime.
func (p *PPU) SetMirroring(mode ines.NTMirroring) {
	nt := p.NameTables.Data
	a, b := nt[0:0x400], nt[0x400:0x800]

	var nt0, nt1, nt2, nt3 []uint8
	switch mode {
	case ines.VertMirroring:
		nt0, nt1, nt2, nt3 = a, b, a, b
	case ines.OnlyAScreen:
		nt0, nt1, nt2, nt3 = a, a, a, a
	case ines.OnlyBScreen:
		nt0, nt1, nt2, nt3 = b, b, b, b
	case ines.FourScreenMirroring:
		// Cartridge nametable RAM is not modeled: four-screen boards get
		// the vertical layout over the PPU's own 2KiB, so $2800/$2C00
		// alias $2000/$2400 and only two tables are distinct.
		nt0, nt1, nt2, nt3 = a, b, a, b
	default: // HorzMirroring
		nt0, nt1, nt2, nt3 = a, a, b, b
	}

	p.Bus.Unmap(0x2000, 0x2FFF)
	p.mapNametable(0x2000, nt0)
	p.mapNametable(0x2400, nt1)
	p.mapNametable(0x2800, nt2)
	p.mapNametable(0x2C00, nt3)

	// $3000-$3EFF mirrors $2000-$2EFF; the PPU's own bus access at those
	// addresses (ppuRead/ppuWrite) doesn't fold them down itself, so the
	// window needs its own aliases. The last one stops at $3EFF, 256 bytes
	// short of a full 1KiB bank.
	p.Bus.Unmap(0x3000, 0x3EFF)
	p.mapNametable(0x3000, nt0)
	p.mapNametable(0x3400, nt1)
	p.mapNametable(0x3800, nt2)
	p.Bus.MapMemorySlice(0x3C00, 0x3EFF, nt3[:0x300], false)
}

func (p *PPU) mapNametable(addr uint16, bank []uint8) {
	p.Bus.MapMemorySlice(addr, addr+0x3FF, bank, false)
}

func (p *PPU) PowerOn() {
	p.Scanline, p.Dot = 0, 0
	p.FrameOdd = false
	p.nextDot = 0
	p.v, p.t, p.fineX = 0, 0, 0
	p.writeToggle = false
	p.dataBuf, p.ioLatch = 0, 0
	p.writeIgnoreUntil = -1
	p.PPUSTATUS.Value = 1<<statusVBlankBit | 1<<statusOverflowBit
	p.PPUCTRL.Value = 0
	p.PPUMASK.Value = 0
}

// Reset preserves PPUSTATUS's low bits and clears CTRL/MASK, matching the
// documented reset behavior; PowerOn does not apply the write-ignore window,
// only Reset does (the source's comments tie the window to reset, not to
// initial power-up).
func (p *PPU) Reset() {
	p.PPUCTRL.Value = 0
	p.PPUMASK.Value = 0
	p.writeToggle = false
	if p.CPU != nil {
		p.writeIgnoreUntil = p.CPU.CurrentCycle() + resetWriteIgnoreCycles
	}
}

func (p *PPU) writesIgnored() bool {
	return p.writeIgnoreUntil >= 0 && p.CPU != nil && p.CPU.CurrentCycle() < p.writeIgnoreUntil
}

// Run advances the PPU to targetClock, expressed in CPU masterClock units.
func (p *PPU) Run(targetClock int64) {
	for p.nextDot <= targetClock {
		p.tick()
		p.nextDot += masterClocksPerDot
	}
}

func (p *PPU) renderingEnabled() bool {
	return p.PPUMASK.GetBit(maskShowBgBit) || p.PPUMASK.GetBit(maskShowSpritesBit)
}

func (p *PPU) tick() {
	p.renderDot()
	p.advanceDot()
}

func (p *PPU) advanceDot() {
	p.Dot++
	if p.Scanline == 261 && p.Dot == 339 && p.FrameOdd && p.renderingEnabled() {
		p.Dot = 0
		p.Scanline = 0
		p.FrameOdd = !p.FrameOdd
		p.FrameComplete = true
		return
	}
	if p.Dot > 340 {
		p.Dot = 0
		p.Scanline++
		if p.Scanline > 261 {
			p.Scanline = 0
			p.FrameOdd = !p.FrameOdd
			p.FrameComplete = true
		}
	}
}

func (p *PPU) renderDot() {
	isRenderLine := p.Scanline <= 239 || p.Scanline == 261

	if isRenderLine {
		p.backgroundStep()
	}
	if p.Scanline <= 239 {
		p.spriteEvalStep()
	}
	if p.Scanline <= 239 && p.Dot >= 1 && p.Dot <= 256 {
		p.composePixel()
	}
	if p.Dot >= 2 && p.Dot <= 257 {
		p.stepSpriteCounters()
	}

	switch {
	case p.Scanline == 241 && p.Dot == 1:
		p.enterVBlank()
	case p.Scanline == 261 && p.Dot == 1:
		p.PPUSTATUS.ClearBits(1<<statusVBlankBit | 1<<statusSprite0Bit | 1<<statusOverflowBit)
		p.suppressVBLThisFrame = false
	}
}

func (p *PPU) enterVBlank() {
	if p.suppressVBLThisFrame {
		return
	}
	p.PPUSTATUS.SetBit(statusVBlankBit)
	if p.PPUCTRL.GetBit(ctrlNMIEnableBit) && p.CPU != nil {
		p.CPU.setNMIflag()
	}
}

/* background pipeline: NT/AT/pattern fetch, coarse/fine increment, shifters */

func (p *PPU) backgroundStep() {
	dot := p.Dot

	if (dot >= 2 && dot < 258) || (dot >= 321 && dot < 338) {
		p.shiftBG()
	}

	if dot >= 1 && dot < 258 {
		switch (dot - 1) % 8 {
		case 0:
			p.reloadBGShifters()
			p.ntByte = p.fetchNTByte()
		case 2:
			p.atByte = p.fetchATByte()
		case 4:
			p.ptLo = p.fetchBGPatternByte(false)
		case 6:
			p.ptHi = p.fetchBGPatternByte(true)
		case 7:
			p.incrementCoarseX()
		}
	} else if dot >= 321 && dot < 337 {
		switch (dot - 321) % 8 {
		case 0:
			p.reloadBGShifters()
			p.ntByte = p.fetchNTByte()
		case 2:
			p.atByte = p.fetchATByte()
		case 4:
			p.ptLo = p.fetchBGPatternByte(false)
		case 6:
			p.ptHi = p.fetchBGPatternByte(true)
		case 7:
			p.incrementCoarseX()
		}
	} else if dot >= 337 && dot <= 340 {
		if (dot-337)%2 == 0 {
			p.fetchNTByte() // throwaway
		}
	}

	if dot == 256 {
		p.incrementY()
	}
	if dot == 257 {
		p.copyHorizontalBits()
	}
	if p.Scanline == 261 && dot >= 280 && dot <= 304 {
		p.copyVerticalBits()
	}
}

func (p *PPU) fetchNTByte() uint8 {
	addr := uint16(0x2000) | (p.v & 0x0FFF)
	return p.ppuRead(addr, false)
}

func (p *PPU) fetchATByte() uint8 {
	addr := uint16(0x23C0) | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	raw := p.ppuRead(addr, false)
	shift := ((p.v >> 4) & 0x04) | (p.v & 0x02)
	return (raw >> shift) & 0x03
}

func (p *PPU) bgPatternTableBase() uint16 {
	if p.PPUCTRL.GetBit(ctrlBgPTBit) {
		return 0x1000
	}
	return 0x0000
}

func (p *PPU) fetchBGPatternByte(high bool) uint8 {
	fineY := (p.v >> 12) & 0x07
	addr := p.bgPatternTableBase() | uint16(p.ntByte)<<4 | fineY
	if high {
		addr |= 8
	}
	p.notifyA12(addr)
	return p.ppuRead(addr, false)
}

func (p *PPU) incrementCoarseX() {
	if !p.renderingEnabled() {
		return
	}
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if !p.renderingEnabled() {
		return
	}
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) copyHorizontalBits() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) copyVerticalBits() {
	if !p.renderingEnabled() {
		return
	}
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

func (p *PPU) reloadBGShifters() {
	p.bgShiftLo = (p.bgShiftLo &^ 0x00FF) | uint16(p.ptLo)
	p.bgShiftHi = (p.bgShiftHi &^ 0x00FF) | uint16(p.ptHi)

	var loFill, hiFill uint16
	if p.atByte&1 != 0 {
		loFill = 0xFF
	}
	if p.atByte&2 != 0 {
		hiFill = 0xFF
	}
	p.bgAttrLo = (p.bgAttrLo &^ 0x00FF) | loFill
	p.bgAttrHi = (p.bgAttrHi &^ 0x00FF) | hiFill
}

func (p *PPU) shiftBG() {
	p.bgShiftLo <<= 1
	p.bgShiftHi <<= 1
	p.bgAttrLo <<= 1
	p.bgAttrHi <<= 1
}

func (p *PPU) bgPixel() (pixel, palette uint8) {
	if !p.PPUMASK.GetBit(maskShowBgBit) {
		return 0, 0
	}
	if p.Dot <= 8 && !p.PPUMASK.GetBit(maskShowBgLeftBit) {
		return 0, 0
	}
	shift := uint(15 - p.fineX)
	lo := uint8((p.bgShiftLo >> shift) & 1)
	hi := uint8((p.bgShiftHi >> shift) & 1)
	pixel = hi<<1 | lo
	if pixel == 0 {
		return 0, 0
	}
	plo := uint8((p.bgAttrLo >> shift) & 1)
	phi := uint8((p.bgAttrHi >> shift) & 1)
	return pixel, phi<<1 | plo
}

/* sprite evaluation and fetch */

func (p *PPU) spriteHeight() int {
	if p.PPUCTRL.GetBit(ctrlSpriteSize16Bit) {
		return 16
	}
	return 8
}

func (p *PPU) spriteEvalStep() {
	switch {
	case p.Dot >= 1 && p.Dot <= 64:
		if p.Dot%2 == 0 {
			p.secOAM[p.Dot/2-1] = 0xFF
		}
	case p.Dot == 65:
		p.evaluateSprites()
	case p.Dot == 257:
		p.fetchSpritesForNextScanline()
	}
}

// evaluateSprites scans primary OAM for sprites visible on the upcoming
// scanline. Real hardware does this two dots at a time with a well-known
// diagonal overflow bug (out of scope per the spec); this does the
// equivalent work in one pass on dot 65, which produces the same secondary
// OAM contents and overflow flag without modeling the per-dot OAM bus.
func (p *PPU) evaluateSprites() {
	if !p.renderingEnabled() {
		return
	}
	height := p.spriteHeight()
	p.secOAMLen = 0
	p.spriteZeroInLine = false

	matches := 0
	for i := 0; i < 64; i++ {
		y := int(p.OAM[i*4])
		row := p.Scanline - y
		if row < 0 || row >= height {
			continue
		}
		if matches < 8 {
			copy(p.secOAM[matches*4:matches*4+4], p.OAM[i*4:i*4+4])
			if i == 0 {
				p.spriteZeroInLine = true
			}
			p.secOAMLen++
		} else {
			p.PPUSTATUS.SetBit(statusOverflowBit)
			break
		}
		matches++
	}
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= (b >> i) & 1
	}
	return r
}

func (p *PPU) fetchSpritesForNextScanline() {
	height := p.spriteHeight()
	for i := 0; i < p.secOAMLen; i++ {
		y := p.secOAM[i*4+0]
		tile := p.secOAM[i*4+1]
		attr := p.secOAM[i*4+2]
		x := p.secOAM[i*4+3]

		row := p.Scanline - int(y)
		if attr&0x80 != 0 { // vertical flip
			row = height - 1 - row
		}

		var addr uint16
		if height == 16 {
			table := uint16(tile&1) << 12
			tileIdx := uint16(tile &^ 1)
			if row >= 8 {
				tileIdx++
				row -= 8
			}
			addr = table | tileIdx<<4 | uint16(row)
		} else {
			table := uint16(0)
			if p.PPUCTRL.GetBit(ctrlSpritePTBit) {
				table = 0x1000
			}
			addr = table | uint16(tile)<<4 | uint16(row)
		}

		p.notifyA12(addr)
		lo := p.ppuRead(addr, false)
		hi := p.ppuRead(addr+8, false)
		if attr&0x40 != 0 { // horizontal flip
			lo, hi = reverseBits(lo), reverseBits(hi)
		}

		p.sprites[i] = spriteUnit{
			shiftLo:   lo,
			shiftHi:   hi,
			attr:      attr,
			counter:   x,
			isSprite0: i == 0 && p.spriteZeroInLine,
		}
	}
	p.spriteCount = p.secOAMLen
	dummy := uint16(0x0FF0)
	if height == 16 || p.PPUCTRL.GetBit(ctrlSpritePTBit) {
		dummy = 0x1FF0
	}
	for i := p.secOAMLen; i < 8; i++ {
		p.sprites[i] = spriteUnit{}
		// Empty slots still fetch tile $FF, so A12 moves on lines with
		// no sprites too.
		if p.renderingEnabled() {
			p.notifyA12(dummy)
		}
	}
}

func (p *PPU) stepSpriteCounters() {
	for i := 0; i < p.spriteCount; i++ {
		s := &p.sprites[i]
		if s.counter > 0 {
			s.counter--
		} else {
			s.shiftLo <<= 1
			s.shiftHi <<= 1
		}
	}
}

func (p *PPU) spritePixel() (pixel, palette, priority uint8, isZero bool) {
	if !p.PPUMASK.GetBit(maskShowSpritesBit) {
		return 0, 0, 0, false
	}
	if p.Dot <= 8 && !p.PPUMASK.GetBit(maskShowSprLeftBit) {
		return 0, 0, 0, false
	}
	for i := 0; i < p.spriteCount; i++ {
		s := &p.sprites[i]
		if s.counter != 0 {
			continue
		}
		hi := (s.shiftHi >> 7) & 1
		lo := (s.shiftLo >> 7) & 1
		px := hi<<1 | lo
		if px == 0 {
			continue
		}
		pal := (s.attr & 0x03) + 4
		pr := (s.attr >> 5) & 1
		return px, pal, pr, s.isSprite0
	}
	return 0, 0, 0, false
}

/* pixel composition */

func (p *PPU) composePixel() {
	bgPx, bgPal := p.bgPixel()
	sprPx, sprPal, sprPriority, sprIsZero := p.spritePixel()

	var outPal, outPx uint8
	switch {
	case bgPx == 0 && sprPx == 0:
		outPal, outPx = 0, 0
	case bgPx == 0:
		outPal, outPx = sprPal, sprPx
	case sprPx == 0:
		outPal, outPx = bgPal, bgPx
	default:
		if sprPriority == 0 {
			outPal, outPx = sprPal, sprPx
		} else {
			outPal, outPx = bgPal, bgPx
		}
		if sprIsZero && p.Dot >= 1 && p.Dot <= 255 &&
			p.PPUMASK.GetBit(maskShowBgBit) && p.PPUMASK.GetBit(maskShowSpritesBit) {
			p.PPUSTATUS.SetBit(statusSprite0Bit)
		}
	}

	addr := uint16(0x3F00) | uint16(outPal)<<2 | uint16(outPx)
	idx := p.ppuRead(addr, false) & 0x3F

	x := p.Dot - 1
	y := p.Scanline
	p.FrameBuffer[y*256+x] = idx
}

/* PPU-side memory map: pattern tables, nametable mirrors, palette aliasing */

func (p *PPU) ppuRead(addr uint16, peek bool) uint8 {
	addr &= 0x3FFF
	if addr >= 0x3F00 {
		v := p.Bus.Read8(paletteAddr(addr), peek)
		if p.PPUMASK.GetBit(maskGrayscaleBit) {
			v &= 0x30
		}
		return v
	}
	return p.Bus.Read8(addr, peek)
}

func (p *PPU) ppuWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	if addr >= 0x3F00 {
		addr = paletteAddr(addr)
	}
	p.Bus.Write8(addr, val)
}

// paletteAddr folds the $3F00-$3FFF mirrors down to the 32-byte palette RAM
// and aliases the four backdrop-color slots ($3F10/$14/$18/$1C) onto their
// universal-background counterparts ($3F00/$04/$08/$0C).
func paletteAddr(addr uint16) uint16 {
	a := addr & 0x1F
	if a >= 0x10 && a&0x03 == 0 {
		a &^= 0x10
	}
	return 0x3F00 | a
}

// notifyA12 feeds the mapper's A12 edge counter (MMC3 and similar): a rising
// edge only counts after the line has been held low for at least 8 PPU
// accesses, filtering the glitchy transitions that happen mid-fetch.
func (p *PPU) notifyA12(addr uint16) {
	high := addr&0x1000 != 0
	if high {
		if !p.a12Prev && p.a12LowCount >= 8 {
			if n, ok := p.mapper.(A12Notifier); ok {
				n.OnA12Edge()
			}
		}
		p.a12LowCount = 0
	} else {
		p.a12LowCount++
	}
	p.a12Prev = high
}

/* CPU-visible register callbacks */

const (
	ctrlVramIncr32Bit  uint = 2
	ctrlSpritePTBit    uint = 3
	ctrlBgPTBit        uint = 4
	ctrlSpriteSize16Bit uint = 5
	ctrlNMIEnableBit   uint = 7

	maskGrayscaleBit   uint = 0
	maskShowBgLeftBit  uint = 1
	maskShowSprLeftBit uint = 2
	maskShowBgBit      uint = 3
	maskShowSpritesBit uint = 4

	statusOverflowBit uint = 5
	statusSprite0Bit  uint = 6
	statusVBlankBit   uint = 7

	openBusMask uint8 = 0x1F
)

func (p *PPU) WritePPUCTRL(old, val uint8) {
	p.ioLatch = val
	if p.writesIgnored() {
		p.PPUCTRL.Value = old
		return
	}

	wasEnabled := old&(1<<ctrlNMIEnableBit) != 0
	p.PPUCTRL.Value = val

	// Toggling the NMI-enable bit high while VBL is already set raises NMI
	// immediately, without waiting for the next VBL onset; clearing it low
	// cancels a pending-but-unserviced NMI.
	if !wasEnabled && val&(1<<ctrlNMIEnableBit) != 0 && p.PPUSTATUS.GetBit(statusVBlankBit) {
		if p.CPU != nil {
			p.CPU.setNMIflag()
		}
	} else if val&(1<<ctrlNMIEnableBit) == 0 && p.CPU != nil {
		p.CPU.clearNMIflag()
	}

	p.t = (p.t &^ 0x0C00) | (uint16(val)&0x03)<<10
}

func (p *PPU) WritePPUMASK(old, val uint8) {
	p.ioLatch = val
	if p.writesIgnored() {
		p.PPUMASK.Value = old
		return
	}
	p.PPUMASK.Value = val
}

func (p *PPU) ReadPPUSTATUS(_ uint8) uint8 {
	ret := (p.PPUSTATUS.Value &^ openBusMask) | (p.ioLatch & openBusMask)

	if p.Scanline == 241 {
		switch p.Dot {
		case 0:
			p.suppressVBLThisFrame = true
			if p.CPU != nil {
				p.CPU.clearNMIflag()
			}
		case 1, 2:
			p.suppressVBLThisFrame = true
		}
	}

	p.PPUSTATUS.ClearBit(statusVBlankBit)
	p.writeToggle = false
	if p.CPU != nil {
		p.CPU.clearNMIflag()
	}
	return ret
}

func (p *PPU) WriteOAMADDR(old, val uint8) { p.ioLatch = val }

func (p *PPU) WriteOAMDATA(old, val uint8) {
	p.ioLatch = val
	p.OAM[p.OAMADDR.Value] = val
	p.OAMADDR.Value++
}

func (p *PPU) ReadOAMDATA(_ uint8) uint8 {
	return p.OAM[p.OAMADDR.Value]
}

func (p *PPU) WritePPUSCROLL(old, val uint8) {
	p.ioLatch = val
	if p.writesIgnored() {
		return
	}
	if !p.writeToggle {
		p.fineX = val & 0x07
		p.t = (p.t &^ 0x001F) | uint16(val>>3)
	} else {
		p.t = (p.t &^ 0x73E0) | (uint16(val&0x07) << 12) | (uint16(val&0xF8) << 2)
	}
	p.writeToggle = !p.writeToggle
}

func (p *PPU) WritePPUADDR(old, val uint8) {
	p.ioLatch = val
	if p.writesIgnored() {
		return
	}
	if !p.writeToggle {
		p.t = (p.t &^ 0x7F00) | (uint16(val)&0x3F)<<8
	} else {
		p.t = (p.t &^ 0x00FF) | uint16(val)
		p.v = p.t
	}
	p.writeToggle = !p.writeToggle
}

func (p *PPU) incrementVRAMAddrForIO() {
	if p.renderingEnabled() && (p.Scanline <= 239 || p.Scanline == 261) {
		// Hardware glitch: during rendering, $2007 access ticks the same
		// coarse-X/fine-Y increments a normal fetch would, instead of the
		// ordinary +1/+32.
		p.incrementCoarseX()
		p.incrementY()
		return
	}
	if p.PPUCTRL.GetBit(ctrlVramIncr32Bit) {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

func (p *PPU) ReadPPUDATA(_ uint8) uint8 {
	addr := p.v & 0x3FFF
	var ret uint8
	if addr < 0x3F00 {
		ret = p.dataBuf
		p.dataBuf = p.ppuRead(addr, false)
	} else {
		ret = p.ppuRead(addr, false)
		p.dataBuf = p.ppuRead(addr&0x2FFF, false)
	}
	p.incrementVRAMAddrForIO()
	log.ModPPU.DebugZ("VRAM read").Hex16("addr", addr).Hex8("val", ret).End()
	return ret
}

func (p *PPU) WritePPUDATA(old, val uint8) {
	p.ioLatch = val
	addr := p.v & 0x3FFF
	p.ppuWrite(addr, val)
	p.incrementVRAMAddrForIO()
	log.ModPPU.DebugZ("VRAM write").Hex16("addr", addr).Hex8("val", val).End()
}
