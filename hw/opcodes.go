package hw

// ops is the opcode dispatch table: a flat, tagged array indexed by opcode
// byte, in the spirit of a jump table rather than a name-keyed map, so
// dispatch is a single indexed call with no hashing or allocation. Every
// one of the 256 official and unofficial opcodes has an entry: unofficial
// opcodes (the stable, documented 6502 instruction set is all this core
// implements) are wired to a same-size, same-timing NOP instead of their
// real silicon side effects.
var ops [256]func(*CPU)

/* ALU / load / store helpers, addressing-mode agnostic */

func (c *CPU) lda(v uint8) { c.A = v; c.P.setNZ(v) }
func (c *CPU) ldx(v uint8) { c.X = v; c.P.setNZ(v) }
func (c *CPU) ldy(v uint8) { c.Y = v; c.P.setNZ(v) }

func (c *CPU) ora(v uint8) { c.A |= v; c.P.setNZ(c.A) }
func (c *CPU) and(v uint8) { c.A &= v; c.P.setNZ(c.A) }
func (c *CPU) eor(v uint8) { c.A ^= v; c.P.setNZ(c.A) }

func (c *CPU) adc(v uint8) {
	carry := uint16(0)
	if c.P.has(FlagC) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	c.P.setCV(c.A, v, sum)
	c.A = uint8(sum)
	c.P.setNZ(c.A)
}

func (c *CPU) sbc(v uint8) { c.adc(^v) }

func (c *CPU) cmp(reg, v uint8) {
	c.P.setIf(FlagC, reg >= v)
	c.P.setNZ(reg - v)
}

func (c *CPU) bitop(v uint8) {
	c.P.setIf(FlagZ, c.A&v == 0)
	c.P.setIf(FlagN, v&0x80 != 0)
	c.P.setIf(FlagV, v&0x40 != 0)
}

func (c *CPU) asl(v uint8) uint8 {
	c.P.setIf(FlagC, v&0x80 != 0)
	v <<= 1
	c.P.setNZ(v)
	return v
}

func (c *CPU) lsr(v uint8) uint8 {
	c.P.setIf(FlagC, v&0x01 != 0)
	v >>= 1
	c.P.setNZ(v)
	return v
}

func (c *CPU) rol(v uint8) uint8 {
	carryIn := uint8(0)
	if c.P.has(FlagC) {
		carryIn = 1
	}
	c.P.setIf(FlagC, v&0x80 != 0)
	v = v<<1 | carryIn
	c.P.setNZ(v)
	return v
}

func (c *CPU) ror(v uint8) uint8 {
	carryIn := uint8(0)
	if c.P.has(FlagC) {
		carryIn = 0x80
	}
	c.P.setIf(FlagC, v&0x01 != 0)
	v = v>>1 | carryIn
	c.P.setNZ(v)
	return v
}

func (c *CPU) inc(v uint8) uint8 { v++; c.P.setNZ(v); return v }
func (c *CPU) dec(v uint8) uint8 { v--; c.P.setNZ(v); return v }

// rmw reads addr, applies f, writes the result back — with the
// dummy-write-then-real-write cycle pair every read-modify-write
// instruction performs on real hardware.
func (c *CPU) rmw(addr uint16, f func(uint8) uint8) {
	v := c.Read8(addr)
	c.Write8(addr, v) // dummy write-back of the unmodified value
	v = f(v)
	c.Write8(addr, v)
}

func (c *CPU) branch(cond bool) {
	off := int8(c.fetch8())
	if !cond {
		return
	}
	c.Read8(c.PC) // branch taken: one extra cycle
	newPC := uint16(int32(c.PC) + int32(off))
	if (c.PC & 0xFF00) != (newPC & 0xFF00) {
		c.Read8(c.PC) // crossed a page: one more
	}
	c.PC = newPC
}

/* nop placeholders matching the size/timing of the opcode they stand in
for, used by every unofficial opcode slot. */

func nopImp(c *CPU) { c.Read8(c.PC) }
func nopImm(c *CPU) { c.fetch8() }
func nopZpg(c *CPU) { c.Read8(c.addrZpg()) }
func nopZpx(c *CPU) { c.Read8(c.addrZpx()) }
func nopAbs(c *CPU) { c.Read8(c.addrAbs()) }
func nopAbx(c *CPU) { c.Read8(c.addrAbx()) }

func init() {
	for i := range ops {
		ops[i] = nopImp
	}

	/* load/store */
	ops[0xA9] = func(c *CPU) { c.lda(c.fetch8()) }
	ops[0xA5] = func(c *CPU) { c.lda(c.Read8(c.addrZpg())) }
	ops[0xB5] = func(c *CPU) { c.lda(c.Read8(c.addrZpx())) }
	ops[0xAD] = func(c *CPU) { c.lda(c.Read8(c.addrAbs())) }
	ops[0xBD] = func(c *CPU) { c.lda(c.Read8(c.addrAbx())) }
	ops[0xB9] = func(c *CPU) { c.lda(c.Read8(c.addrAby())) }
	ops[0xA1] = func(c *CPU) { c.lda(c.Read8(c.addrIzx())) }
	ops[0xB1] = func(c *CPU) { c.lda(c.Read8(c.addrIzy())) }

	ops[0xA2] = func(c *CPU) { c.ldx(c.fetch8()) }
	ops[0xA6] = func(c *CPU) { c.ldx(c.Read8(c.addrZpg())) }
	ops[0xB6] = func(c *CPU) { c.ldx(c.Read8(c.addrZpy())) }
	ops[0xAE] = func(c *CPU) { c.ldx(c.Read8(c.addrAbs())) }
	ops[0xBE] = func(c *CPU) { c.ldx(c.Read8(c.addrAby())) }

	ops[0xA0] = func(c *CPU) { c.ldy(c.fetch8()) }
	ops[0xA4] = func(c *CPU) { c.ldy(c.Read8(c.addrZpg())) }
	ops[0xB4] = func(c *CPU) { c.ldy(c.Read8(c.addrZpx())) }
	ops[0xAC] = func(c *CPU) { c.ldy(c.Read8(c.addrAbs())) }
	ops[0xBC] = func(c *CPU) { c.ldy(c.Read8(c.addrAbx())) }

	ops[0x85] = func(c *CPU) { c.Write8(c.addrZpg(), c.A) }
	ops[0x95] = func(c *CPU) { c.Write8(c.addrZpx(), c.A) }
	ops[0x8D] = func(c *CPU) { c.Write8(c.addrAbs(), c.A) }
	ops[0x9D] = func(c *CPU) { c.Write8(c.addrAbxW(), c.A) }
	ops[0x99] = func(c *CPU) { c.Write8(c.addrAbyW(), c.A) }
	ops[0x81] = func(c *CPU) { c.Write8(c.addrIzx(), c.A) }
	ops[0x91] = func(c *CPU) { c.Write8(c.addrIzyW(), c.A) }

	ops[0x86] = func(c *CPU) { c.Write8(c.addrZpg(), c.X) }
	ops[0x96] = func(c *CPU) { c.Write8(c.addrZpy(), c.X) }
	ops[0x8E] = func(c *CPU) { c.Write8(c.addrAbs(), c.X) }

	ops[0x84] = func(c *CPU) { c.Write8(c.addrZpg(), c.Y) }
	ops[0x94] = func(c *CPU) { c.Write8(c.addrZpx(), c.Y) }
	ops[0x8C] = func(c *CPU) { c.Write8(c.addrAbs(), c.Y) }

	/* transfers */
	ops[0xAA] = func(c *CPU) { c.X = c.A; c.P.setNZ(c.X) }
	ops[0x8A] = func(c *CPU) { c.A = c.X; c.P.setNZ(c.A) }
	ops[0xA8] = func(c *CPU) { c.Y = c.A; c.P.setNZ(c.Y) }
	ops[0x98] = func(c *CPU) { c.A = c.Y; c.P.setNZ(c.A) }
	ops[0xBA] = func(c *CPU) { c.X = c.SP; c.P.setNZ(c.X) }
	ops[0x9A] = func(c *CPU) { c.SP = c.X }

	/* increment/decrement registers */
	ops[0xE8] = func(c *CPU) { c.X++; c.P.setNZ(c.X) }
	ops[0xCA] = func(c *CPU) { c.X--; c.P.setNZ(c.X) }
	ops[0xC8] = func(c *CPU) { c.Y++; c.P.setNZ(c.Y) }
	ops[0x88] = func(c *CPU) { c.Y--; c.P.setNZ(c.Y) }

	/* ALU, accumulator */
	ops[0x09] = func(c *CPU) { c.ora(c.fetch8()) }
	ops[0x05] = func(c *CPU) { c.ora(c.Read8(c.addrZpg())) }
	ops[0x15] = func(c *CPU) { c.ora(c.Read8(c.addrZpx())) }
	ops[0x0D] = func(c *CPU) { c.ora(c.Read8(c.addrAbs())) }
	ops[0x1D] = func(c *CPU) { c.ora(c.Read8(c.addrAbx())) }
	ops[0x19] = func(c *CPU) { c.ora(c.Read8(c.addrAby())) }
	ops[0x01] = func(c *CPU) { c.ora(c.Read8(c.addrIzx())) }
	ops[0x11] = func(c *CPU) { c.ora(c.Read8(c.addrIzy())) }

	ops[0x29] = func(c *CPU) { c.and(c.fetch8()) }
	ops[0x25] = func(c *CPU) { c.and(c.Read8(c.addrZpg())) }
	ops[0x35] = func(c *CPU) { c.and(c.Read8(c.addrZpx())) }
	ops[0x2D] = func(c *CPU) { c.and(c.Read8(c.addrAbs())) }
	ops[0x3D] = func(c *CPU) { c.and(c.Read8(c.addrAbx())) }
	ops[0x39] = func(c *CPU) { c.and(c.Read8(c.addrAby())) }
	ops[0x21] = func(c *CPU) { c.and(c.Read8(c.addrIzx())) }
	ops[0x31] = func(c *CPU) { c.and(c.Read8(c.addrIzy())) }

	ops[0x49] = func(c *CPU) { c.eor(c.fetch8()) }
	ops[0x45] = func(c *CPU) { c.eor(c.Read8(c.addrZpg())) }
	ops[0x55] = func(c *CPU) { c.eor(c.Read8(c.addrZpx())) }
	ops[0x4D] = func(c *CPU) { c.eor(c.Read8(c.addrAbs())) }
	ops[0x5D] = func(c *CPU) { c.eor(c.Read8(c.addrAbx())) }
	ops[0x59] = func(c *CPU) { c.eor(c.Read8(c.addrAby())) }
	ops[0x41] = func(c *CPU) { c.eor(c.Read8(c.addrIzx())) }
	ops[0x51] = func(c *CPU) { c.eor(c.Read8(c.addrIzy())) }

	ops[0x69] = func(c *CPU) { c.adc(c.fetch8()) }
	ops[0x65] = func(c *CPU) { c.adc(c.Read8(c.addrZpg())) }
	ops[0x75] = func(c *CPU) { c.adc(c.Read8(c.addrZpx())) }
	ops[0x6D] = func(c *CPU) { c.adc(c.Read8(c.addrAbs())) }
	ops[0x7D] = func(c *CPU) { c.adc(c.Read8(c.addrAbx())) }
	ops[0x79] = func(c *CPU) { c.adc(c.Read8(c.addrAby())) }
	ops[0x61] = func(c *CPU) { c.adc(c.Read8(c.addrIzx())) }
	ops[0x71] = func(c *CPU) { c.adc(c.Read8(c.addrIzy())) }

	ops[0xE9] = func(c *CPU) { c.sbc(c.fetch8()) }
	ops[0xE5] = func(c *CPU) { c.sbc(c.Read8(c.addrZpg())) }
	ops[0xF5] = func(c *CPU) { c.sbc(c.Read8(c.addrZpx())) }
	ops[0xED] = func(c *CPU) { c.sbc(c.Read8(c.addrAbs())) }
	ops[0xFD] = func(c *CPU) { c.sbc(c.Read8(c.addrAbx())) }
	ops[0xF9] = func(c *CPU) { c.sbc(c.Read8(c.addrAby())) }
	ops[0xE1] = func(c *CPU) { c.sbc(c.Read8(c.addrIzx())) }
	ops[0xF1] = func(c *CPU) { c.sbc(c.Read8(c.addrIzy())) }

	ops[0xC9] = func(c *CPU) { c.cmp(c.A, c.fetch8()) }
	ops[0xC5] = func(c *CPU) { c.cmp(c.A, c.Read8(c.addrZpg())) }
	ops[0xD5] = func(c *CPU) { c.cmp(c.A, c.Read8(c.addrZpx())) }
	ops[0xCD] = func(c *CPU) { c.cmp(c.A, c.Read8(c.addrAbs())) }
	ops[0xDD] = func(c *CPU) { c.cmp(c.A, c.Read8(c.addrAbx())) }
	ops[0xD9] = func(c *CPU) { c.cmp(c.A, c.Read8(c.addrAby())) }
	ops[0xC1] = func(c *CPU) { c.cmp(c.A, c.Read8(c.addrIzx())) }
	ops[0xD1] = func(c *CPU) { c.cmp(c.A, c.Read8(c.addrIzy())) }

	ops[0xE0] = func(c *CPU) { c.cmp(c.X, c.fetch8()) }
	ops[0xE4] = func(c *CPU) { c.cmp(c.X, c.Read8(c.addrZpg())) }
	ops[0xEC] = func(c *CPU) { c.cmp(c.X, c.Read8(c.addrAbs())) }

	ops[0xC0] = func(c *CPU) { c.cmp(c.Y, c.fetch8()) }
	ops[0xC4] = func(c *CPU) { c.cmp(c.Y, c.Read8(c.addrZpg())) }
	ops[0xCC] = func(c *CPU) { c.cmp(c.Y, c.Read8(c.addrAbs())) }

	ops[0x24] = func(c *CPU) { c.bitop(c.Read8(c.addrZpg())) }
	ops[0x2C] = func(c *CPU) { c.bitop(c.Read8(c.addrAbs())) }

	/* shifts/rotates, accumulator form */
	ops[0x0A] = func(c *CPU) { c.A = c.asl(c.A) }
	ops[0x4A] = func(c *CPU) { c.A = c.lsr(c.A) }
	ops[0x2A] = func(c *CPU) { c.A = c.rol(c.A) }
	ops[0x6A] = func(c *CPU) { c.A = c.ror(c.A) }

	/* shifts/rotates, memory form (read-modify-write) */
	ops[0x06] = func(c *CPU) { c.rmw(c.addrZpg(), c.asl) }
	ops[0x16] = func(c *CPU) { c.rmw(c.addrZpx(), c.asl) }
	ops[0x0E] = func(c *CPU) { c.rmw(c.addrAbs(), c.asl) }
	ops[0x1E] = func(c *CPU) { c.rmw(c.addrAbxW(), c.asl) }

	ops[0x46] = func(c *CPU) { c.rmw(c.addrZpg(), c.lsr) }
	ops[0x56] = func(c *CPU) { c.rmw(c.addrZpx(), c.lsr) }
	ops[0x4E] = func(c *CPU) { c.rmw(c.addrAbs(), c.lsr) }
	ops[0x5E] = func(c *CPU) { c.rmw(c.addrAbxW(), c.lsr) }

	ops[0x26] = func(c *CPU) { c.rmw(c.addrZpg(), c.rol) }
	ops[0x36] = func(c *CPU) { c.rmw(c.addrZpx(), c.rol) }
	ops[0x2E] = func(c *CPU) { c.rmw(c.addrAbs(), c.rol) }
	ops[0x3E] = func(c *CPU) { c.rmw(c.addrAbxW(), c.rol) }

	ops[0x66] = func(c *CPU) { c.rmw(c.addrZpg(), c.ror) }
	ops[0x76] = func(c *CPU) { c.rmw(c.addrZpx(), c.ror) }
	ops[0x6E] = func(c *CPU) { c.rmw(c.addrAbs(), c.ror) }
	ops[0x7E] = func(c *CPU) { c.rmw(c.addrAbxW(), c.ror) }

	ops[0xE6] = func(c *CPU) { c.rmw(c.addrZpg(), c.inc) }
	ops[0xF6] = func(c *CPU) { c.rmw(c.addrZpx(), c.inc) }
	ops[0xEE] = func(c *CPU) { c.rmw(c.addrAbs(), c.inc) }
	ops[0xFE] = func(c *CPU) { c.rmw(c.addrAbxW(), c.inc) }

	ops[0xC6] = func(c *CPU) { c.rmw(c.addrZpg(), c.dec) }
	ops[0xD6] = func(c *CPU) { c.rmw(c.addrZpx(), c.dec) }
	ops[0xCE] = func(c *CPU) { c.rmw(c.addrAbs(), c.dec) }
	ops[0xDE] = func(c *CPU) { c.rmw(c.addrAbxW(), c.dec) }

	/* branches */
	ops[0x10] = func(c *CPU) { c.branch(!c.P.has(FlagN)) }
	ops[0x30] = func(c *CPU) { c.branch(c.P.has(FlagN)) }
	ops[0x50] = func(c *CPU) { c.branch(!c.P.has(FlagV)) }
	ops[0x70] = func(c *CPU) { c.branch(c.P.has(FlagV)) }
	ops[0x90] = func(c *CPU) { c.branch(!c.P.has(FlagC)) }
	ops[0xB0] = func(c *CPU) { c.branch(c.P.has(FlagC)) }
	ops[0xD0] = func(c *CPU) { c.branch(!c.P.has(FlagZ)) }
	ops[0xF0] = func(c *CPU) { c.branch(c.P.has(FlagZ)) }

	/* flags */
	ops[0x18] = func(c *CPU) { c.P.clear(FlagC) }
	ops[0x38] = func(c *CPU) { c.P.set(FlagC) }
	ops[0x58] = func(c *CPU) { c.P.clear(FlagI) }
	ops[0x78] = func(c *CPU) { c.P.set(FlagI) }
	ops[0xB8] = func(c *CPU) { c.P.clear(FlagV) }
	ops[0xD8] = func(c *CPU) { c.P.clear(FlagD) }
	ops[0xF8] = func(c *CPU) { c.P.set(FlagD) }

	/* stack */
	ops[0x48] = func(c *CPU) { c.push8(c.A) }
	ops[0x68] = func(c *CPU) { c.Read8(c.PC); c.A = c.pull8(); c.P.setNZ(c.A) }
	ops[0x08] = func(c *CPU) { c.push8(uint8(c.P | FlagB | FlagU)) }
	ops[0x28] = func(c *CPU) {
		c.Read8(c.PC)
		p := P(c.pull8())
		c.P = (p &^ (FlagB)) | FlagU
	}

	/* jumps/calls */
	ops[0x4C] = func(c *CPU) { c.PC = c.addrAbs() }
	ops[0x6C] = func(c *CPU) { c.PC = c.addrInd() }
	ops[0x20] = func(c *CPU) {
		addrLo := c.fetch8()
		c.Read8(0x0100 + uint16(c.SP)) // internal stack-peek cycle
		c.push16(c.PC)
		hi := c.fetch8()
		c.PC = uint16(hi)<<8 | uint16(addrLo)
	}
	ops[0x60] = func(c *CPU) {
		c.Read8(c.PC)
		c.PC = c.pull16()
		c.Read8(c.PC)
		c.PC++
	}
	ops[0x40] = func(c *CPU) {
		c.Read8(c.PC)
		p := P(c.pull8())
		c.P = (p &^ FlagB) | FlagU
		c.PC = c.pull16()
	}
	ops[0x00] = brk

	/* no-op */
	ops[0xEA] = nopImp

	/* every remaining slot is an unofficial opcode: tag it to the correct
	size/timing NOP for its real addressing mode, per instruction set. */
	for _, op := range []uint8{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		ops[op] = nopImp
	}
	for _, op := range []uint8{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		ops[op] = nopImm
	}
	for _, op := range []uint8{0x04, 0x44, 0x64} {
		ops[op] = nopZpg
	}
	for _, op := range []uint8{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		ops[op] = nopZpx
	}
	ops[0x0C] = nopAbs
	for _, op := range []uint8{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		ops[op] = nopAbx
	}
	// STP/JAM/KIL opcodes halt the CPU on real unofficial silicon; since
	// nothing in a ROM relies on resuming from them, model the halt too.
	for _, op := range []uint8{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		ops[op] = (*CPU).halt
	}
	// Remaining unofficial opcodes (SLO/RLA/SRE/RRA/SAX/LAX/DCP/ISC/ANC/
	// ALR/ARR/ANE/LXA/SBX/SHA/SHX/SHY/TAS/USBC and friends) share their
	// byte length and base cycle count with one of LDA/STA's addressing
	// modes; route each to the matching NOP shape.
	illegalAsZpg := []uint8{0x07, 0x27, 0x47, 0x67, 0x87, 0xA7, 0xC7, 0xE7}
	for _, op := range illegalAsZpg {
		ops[op] = nopZpg
	}
	illegalAsZpx := []uint8{0x17, 0x37, 0x57, 0x77, 0x97, 0xB7, 0xD7, 0xF7}
	for _, op := range illegalAsZpx {
		ops[op] = nopZpx
	}
	illegalAsAbs := []uint8{0x0F, 0x2F, 0x4F, 0x6F, 0x8F, 0xAF, 0xCF, 0xEF}
	for _, op := range illegalAsAbs {
		ops[op] = nopAbs
	}
	illegalAsAbx := []uint8{0x1F, 0x3F, 0x5F, 0x7F, 0x9F, 0xBF, 0xDF, 0xFF, 0x9E, 0x9C, 0x9B}
	for _, op := range illegalAsAbx {
		ops[op] = nopAbx
	}
	illegalAsAby := []uint8{0x1B, 0x3B, 0x5B, 0x7B, 0xBB, 0xDB, 0xFB}
	for _, op := range illegalAsAby {
		ops[op] = func(c *CPU) { c.Read8(c.addrAby()) }
	}
	illegalAsImm := []uint8{0x0B, 0x2B, 0x4B, 0x6B, 0x8B, 0xAB, 0xCB, 0xEB}
	for _, op := range illegalAsImm {
		ops[op] = nopImm
	}
	illegalAsIzx := []uint8{0x03, 0x23, 0x43, 0x63, 0x83, 0xA3, 0xC3, 0xE3}
	for _, op := range illegalAsIzx {
		ops[op] = func(c *CPU) { c.Read8(c.addrIzx()) }
	}
	illegalAsIzy := []uint8{0x13, 0x33, 0x53, 0x73, 0x93, 0xB3, 0xD3, 0xF3}
	for _, op := range illegalAsIzy {
		ops[op] = func(c *CPU) { c.Read8(c.addrIzyW()) }
	}
}
