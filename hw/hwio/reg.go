// Package hwio provides the small memory-mapped I/O framework used to wire
// CPU- and PPU-visible registers onto an address bus: fixed byte registers
// (Reg8), linear memory regions (Mem), and a Table that routes reads/writes
// to whichever is mapped at a given address.
package hwio

import (
	"fmt"

	"nestor/emu/log"
)

// RWFlags restricts which direction of access a Reg8 allows.
type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = 1 << iota
	WriteOnlyFlag
)

// Reg8 is a single byte register that can be mapped onto a Table. ReadCb,
// WriteCb and PeekCb, when set, let a register have side effects: a write
// stores Value first and then calls WriteCb with the old and new values,
// while ReadCb and PeekCb receive Value and their result is returned in
// its place. Peek8 never runs side effects: it calls PeekCb if present,
// falling back to the raw Value, never ReadCb.
type Reg8 struct {
	Name   string
	Value  uint8
	RoMask uint8 // bits that Write8 may not change

	Flags   RWFlags
	ReadCb  func(val uint8) uint8
	PeekCb  func(val uint8) uint8
	WriteCb func(old, val uint8)
}

func (reg Reg8) String() string {
	s := fmt.Sprintf("%s{%02x", reg.Name, reg.Value)
	if reg.ReadCb != nil {
		s += ",r!"
	}
	if reg.WriteCb != nil {
		s += ",w!"
	}
	return s + "}"
}

func (reg *Reg8) write(val uint8) {
	old := reg.Value
	reg.Value = (reg.Value & reg.RoMask) | (val &^ reg.RoMask)
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}

func (reg *Reg8) Write8(addr uint16, val uint8) {
	if reg.Flags&ReadOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid Write8 to readonly reg").
			String("name", reg.Name).
			Hex16("addr", addr).
			End()
		return
	}
	reg.write(val)
}

func (reg *Reg8) Read8(addr uint16, peek bool) uint8 {
	if peek {
		return reg.Peek8(addr)
	}
	if reg.Flags&WriteOnlyFlag != 0 {
		log.ModHwIo.ErrorZ("invalid Read8 from writeonly reg").
			String("name", reg.Name).
			Hex16("addr", addr).
			End()
		return 0
	}
	if reg.ReadCb != nil {
		return reg.ReadCb(reg.Value)
	}
	return reg.Value
}

// Peek8 reads the register without triggering any read side effect.
func (reg *Reg8) Peek8(addr uint16) uint8 {
	if reg.PeekCb != nil {
		return reg.PeekCb(reg.Value)
	}
	return reg.Value
}

/* bit helpers, used liberally by PPUCTRL/PPUMASK/PPUSTATUS-style registers */

func (reg *Reg8) GetBit(n uint) bool   { return reg.Value&(1<<n) != 0 }
func (reg *Reg8) GetBiti(n uint) uint8 { return (reg.Value >> n) & 1 }
func (reg *Reg8) SetBit(n uint)        { reg.Value |= 1 << n }
func (reg *Reg8) ClearBit(n uint)      { reg.Value &^= 1 << n }
func (reg *Reg8) SetBits(mask uint8)   { reg.Value |= mask }
func (reg *Reg8) ClearBits(mask uint8) { reg.Value &^= mask }
