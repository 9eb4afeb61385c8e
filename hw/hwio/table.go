package hwio

import (
	"fmt"

	"nestor/emu/log"
)

// logUnmapped controls whether stray reads/writes to unmapped addresses are
// logged. It's noisy on NES since open-bus reads are routine, so it's kept
// off by default.
const logUnmapped = false

// BankIO8 is implemented by anything that can be mapped onto a Table:
// Reg8, Mem (through Mem.bankAt) and Manual all satisfy it.
type BankIO8 interface {
	// Read8 reads a byte from the given address. If peek is true, the read
	// must not have any side effect (used by debuggers/tracers).
	Read8(addr uint16, peek bool) uint8
	Write8(addr uint16, val uint8)
}

func Write16(b BankIO8, addr uint16, val uint16) {
	b.Write8(addr, uint8(val))
	b.Write8(addr+1, uint8(val>>8))
}

func Read16(b BankIO8, addr uint16) uint16 {
	lo := b.Read8(addr, false)
	hi := b.Read8(addr+1, false)
	return uint16(hi)<<8 | uint16(lo)
}

// Table routes 16-bit bus accesses to whatever BankIO8 is mapped at each
// address. The teacher's original used a radix tree to keep the mapping
// sparse; the NES address space is only 64K so a flat array is simpler and
// just as fast, at the cost of 64K*pointer-size of (mostly nil) memory.
type Table struct {
	Name string

	slots [0x10000]BankIO8
}

func NewTable(name string) *Table {
	t := &Table{Name: name}
	return t
}

func (t *Table) Reset() {
	for i := range t.slots {
		t.slots[i] = nil
	}
}

// MapBank maps every hwio-tagged field of bank (struct or pointer to struct)
// belonging to bankNum at addr+offset. See parseTag in tags.go for the full
// tag vocabulary.
func (t *Table) MapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.MapMem(addr+reg.offset, r)
		case *Reg8:
			t.MapReg8(addr+reg.offset, r)
		case *Manual:
			t.MapManual(addr+reg.offset, r)
		default:
			panic(fmt.Errorf("hwio: invalid reg type: %T", r))
		}
	}
}

func (t *Table) UnmapBank(addr uint16, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}

	for _, reg := range regs {
		switch r := reg.regPtr.(type) {
		case *Mem:
			t.Unmap(addr+reg.offset, addr+reg.offset+uint16(r.VSize)-1)
		case *Reg8:
			t.Unmap(addr+reg.offset, addr+reg.offset)
		case *Manual:
			t.Unmap(addr+reg.offset, addr+reg.offset+uint16(r.Size)-1)
		default:
			panic(fmt.Errorf("hwio: invalid reg type: %T", r))
		}
	}
}

func (t *Table) mapRange(addr uint16, size int, io BankIO8) {
	for i := 0; i < size; i++ {
		t.slots[addr+uint16(i)] = io
	}
}

func (t *Table) MapReg8(addr uint16, io *Reg8) {
	t.mapRange(addr, 1, io)
}

func (t *Table) MapManual(addr uint16, io *Manual) {
	t.mapRange(addr, io.Size, io)
}

func (t *Table) MapMem(addr uint16, mem *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Hex16("size", uint16(mem.VSize)).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	t.mapRange(addr, mem.VSize, mem.bankAt(addr))
}

// MapMemorySlice maps the byte slice mem (shared, not copied) across
// [addr, end], mirroring it if end-addr+1 exceeds len(mem). This is how
// nametable mirroring is implemented: mappers remap the same underlying
// slice across different bus windows.
func (t *Table) MapMemorySlice(addr, end uint16, mem []uint8, readonly bool) {
	log.ModHwIo.DebugZ("mapping slice").
		Hex16("addr", addr).
		Hex16("end", end).
		String("bus", t.Name).
		Bool("ro", readonly).
		End()

	var flags MemFlags
	if readonly {
		flags |= MemFlag8ReadOnly
	}
	t.MapMem(addr, &Mem{
		Data:  mem,
		Flags: flags,
		VSize: int(end-addr) + 1,
	})
}

func (t *Table) Unmap(begin, end uint16) {
	for a := begin; ; a++ {
		t.slots[a] = nil
		if a == end {
			break
		}
	}
}

// Read8 forwards to the device mapped at addr. Unmapped addresses return
// open bus zero.
func (t *Table) Read8(addr uint16, peek bool) uint8 {
	io := t.slots[addr]
	if io == nil {
		if logUnmapped && !peek {
			log.ModHwIo.ErrorZ("unmapped Read8").
				String("name", t.Name).
				Hex16("addr", addr).
				End()
		}
		return 0
	}
	return io.Read8(addr, peek)
}

func (t *Table) Peek8(addr uint16) uint8 {
	return t.Read8(addr, true)
}

// Mapped reports whether any device is mapped at addr.
func (t *Table) Mapped(addr uint16) bool {
	return t.slots[addr] != nil
}

func (t *Table) Write8(addr uint16, val uint8) {
	io := t.slots[addr]
	if io == nil {
		if logUnmapped {
			log.ModHwIo.ErrorZ("unmapped Write8").
				String("name", t.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return
	}
	if mb, ok := io.(*memBank); ok {
		// Inlined fast path: flag the error without imposing a virtual
		// call on every read-write memory access.
		if !mb.Write8CheckRO(addr, val) {
			log.ModHwIo.ErrorZ("Write8 to read-only address").
				String("name", t.Name).
				Hex16("addr", addr).
				Hex8("val", val).
				End()
		}
		return
	}
	io.Write8(addr, val)
}

func (t *Table) FetchPointer(addr uint16) []uint8 {
	if mb, ok := t.slots[addr].(*memBank); ok {
		return mb.FetchPointer(addr)
	}
	return nil
}
