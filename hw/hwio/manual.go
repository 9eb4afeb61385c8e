package hwio

// Manual is an escape hatch for register banks that want full control over
// a range of addresses (e.g. a mapper's bank-select window) instead of the
// per-byte Reg8/Mem machinery. ReadCb/WriteCb receive the bus address
// unmodified.
type Manual struct {
	Name string
	Size int

	ReadCb  func(addr uint16, peek bool) uint8
	WriteCb func(addr uint16, val uint8)
}

func (m *Manual) Read8(addr uint16, peek bool) uint8 {
	if m.ReadCb == nil {
		return 0
	}
	return m.ReadCb(addr, peek)
}

func (m *Manual) Write8(addr uint16, val uint8) {
	if m.WriteCb != nil {
		m.WriteCb(addr, val)
	}
}
