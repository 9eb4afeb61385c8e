package hwio

// MemFlags configures the access restrictions of a Mem region.
type MemFlags uint8

const (
	MemFlagNone       MemFlags = 0
	MemFlag8ReadOnly  MemFlags = 1 << iota
	MemFlag8WriteOnly MemFlags = 1 << iota
)

// Mem is a linear byte-addressable memory region that can be mapped onto a
// Table. VSize lets a region be virtually larger than the backing Data slice
// (mirroring): addresses are reduced modulo len(Data).
type Mem struct {
	Name  string
	Data  []uint8
	Flags MemFlags
	VSize int
}

// memBank adapts a Mem to BankIO8, translating bus addresses relative to
// base (the address the Mem was mapped at) into indices into Data, wrapping
// around when VSize is larger than len(Data) (mirroring).
type memBank struct {
	m    *Mem
	base uint16
}

func (m *Mem) bankAt(base uint16) BankIO8 {
	return &memBank{m: m, base: base}
}

func (b *memBank) index(addr uint16) int {
	off := int(addr - b.base)
	return off % len(b.m.Data)
}

func (b *memBank) Read8(addr uint16, peek bool) uint8 {
	if b.m.Flags&MemFlag8WriteOnly != 0 && !peek {
		return 0
	}
	return b.m.Data[b.index(addr)]
}

func (b *memBank) Write8(addr uint16, val uint8) {
	if b.m.Flags&MemFlag8ReadOnly != 0 {
		return
	}
	b.m.Data[b.index(addr)] = val
}

// Write8CheckRO reports whether the write was allowed, so Table can flag
// stray writes to read-only regions without paying for a function call on
// the common read-write path.
func (b *memBank) Write8CheckRO(addr uint16, val uint8) bool {
	if b.m.Flags&MemFlag8ReadOnly != 0 {
		return false
	}
	b.m.Data[b.index(addr)] = val
	return true
}

func (b *memBank) FetchPointer(addr uint16) []uint8 {
	return b.m.Data[b.index(addr):]
}
