package hw

// Addressing-mode resolvers. Each one performs exactly the bus accesses
// (and therefore burns exactly the cycles) the real 6502 does for that
// mode, including the dummy reads that give indexed/indirect addressing
// its well-known extra-cycle-on-page-cross behavior. Instruction bodies
// call one of these to get an operand address (or, for imm, a value
// directly) and are otherwise oblivious to addressing mode.

func (c *CPU) fetch8() uint8 {
	v := c.Read8(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) addrZpg() uint16 {
	return uint16(c.fetch8())
}

func (c *CPU) addrZpx() uint16 {
	base := c.fetch8()
	c.Read8(uint16(base)) // dummy read at the unindexed address
	return uint16(base + c.X)
}

func (c *CPU) addrZpy() uint16 {
	base := c.fetch8()
	c.Read8(uint16(base))
	return uint16(base + c.Y)
}

func (c *CPU) addrAbs() uint16 {
	return c.fetch16()
}

// addrAbx/addrAby resolve absolute,X/Y for a READ instruction: the extra
// cycle only happens if indexing crosses a page.
func (c *CPU) addrAbx() uint16 {
	base := c.fetch16()
	addr := base + uint16(c.X)
	if (base & 0xFF00) != (addr & 0xFF00) {
		c.Read8((base & 0xFF00) | (addr & 0xFF)) // dummy read, wrong page
	}
	return addr
}

func (c *CPU) addrAby() uint16 {
	base := c.fetch16()
	addr := base + uint16(c.Y)
	if (base & 0xFF00) != (addr & 0xFF00) {
		c.Read8((base & 0xFF00) | (addr & 0xFF))
	}
	return addr
}

// addrAbxW/addrAbyW resolve absolute,X/Y for a WRITE or read-modify-write
// instruction: the dummy read always happens, page-crossing or not.
func (c *CPU) addrAbxW() uint16 {
	base := c.fetch16()
	addr := base + uint16(c.X)
	c.Read8((base & 0xFF00) | (addr & 0xFF))
	return addr
}

func (c *CPU) addrAbyW() uint16 {
	base := c.fetch16()
	addr := base + uint16(c.Y)
	c.Read8((base & 0xFF00) | (addr & 0xFF))
	return addr
}

// addrIzx resolves (zp,X): indexed indirect.
func (c *CPU) addrIzx() uint16 {
	zp := c.fetch8()
	c.Read8(uint16(zp)) // dummy read before the index is applied
	ptr := zp + c.X
	lo := c.Read8(uint16(ptr))
	hi := c.Read8(uint16(ptr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// addrIzy resolves (zp),Y for a READ instruction.
func (c *CPU) addrIzy() uint16 {
	zp := c.fetch8()
	lo := c.Read8(uint16(zp))
	hi := c.Read8(uint16(zp + 1))
	base := uint16(hi)<<8 | uint16(lo)
	addr := base + uint16(c.Y)
	if (base & 0xFF00) != (addr & 0xFF00) {
		c.Read8((base & 0xFF00) | (addr & 0xFF))
	}
	return addr
}

// addrIzyW resolves (zp),Y for a WRITE instruction (always the extra cycle).
func (c *CPU) addrIzyW() uint16 {
	zp := c.fetch8()
	lo := c.Read8(uint16(zp))
	hi := c.Read8(uint16(zp + 1))
	base := uint16(hi)<<8 | uint16(lo)
	addr := base + uint16(c.Y)
	c.Read8((base & 0xFF00) | (addr & 0xFF))
	return addr
}

// addrInd resolves the operand of JMP (ind), including the page-wrap bug:
// if the pointer's low byte is 0xFF, the high byte is fetched from the
// start of the same page instead of the next one.
func (c *CPU) addrInd() uint16 {
	ptr := c.fetch16()
	lo := c.Read8(ptr)
	hi := c.Read8((ptr & 0xFF00) | ((ptr + 1) & 0xFF))
	return uint16(hi)<<8 | uint16(lo)
}
