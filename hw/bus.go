package hw

import "nestor/hw/hwio"

// Bus wraps an hwio.Table with the open-bus latch behavior of the real
// hardware: any address that isn't backed by RAM, a register or cartridge
// logic returns whatever byte last traveled across the bus, instead of
// zero. Both the CPU bus ($0000-$FFFF) and the PPU bus ($0000-$3FFF) use
// one of these.
type Bus struct {
	Table *hwio.Table
	latch uint8
}

func NewBus(name string) *Bus {
	return &Bus{Table: hwio.NewTable(name)}
}

func (b *Bus) MapBank(addr uint16, bank any, bankNum int) { b.Table.MapBank(addr, bank, bankNum) }
func (b *Bus) UnmapBank(addr uint16, bank any, bankNum int) {
	b.Table.UnmapBank(addr, bank, bankNum)
}
func (b *Bus) Unmap(begin, end uint16) { b.Table.Unmap(begin, end) }
func (b *Bus) MapMemorySlice(addr, end uint16, mem []uint8, readonly bool) {
	b.Table.MapMemorySlice(addr, end, mem, readonly)
}
func (b *Bus) FetchPointer(addr uint16) []uint8 { return b.Table.FetchPointer(addr) }

// Read8 reads addr, falling back to the open-bus latch when nothing is
// mapped there. A non-peek read of a mapped address refreshes the latch
// with the value that comes back; peeks and unmapped reads leave it as is.
func (b *Bus) Read8(addr uint16, peek bool) uint8 {
	if b.Table.Mapped(addr) {
		val := b.Table.Read8(addr, peek)
		if !peek {
			b.latch = val
		}
		return val
	}
	return b.latch
}

func (b *Bus) Peek8(addr uint16) uint8 { return b.Read8(addr, true) }

func (b *Bus) Write8(addr uint16, val uint8) {
	b.latch = val
	b.Table.Write8(addr, val)
}

func (b *Bus) Read16(addr uint16) uint16 { return hwio.Read16(b, addr) }
func (b *Bus) Write16(addr uint16, val uint16) { hwio.Write16(b, addr, val) }
