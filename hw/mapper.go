package hw

import (
	"strconv"

	"nestor/ines"
)

// Mapper is the contract a cartridge mapper implements against the CPU and
// PPU buses. Load is called once at cartridge-insertion time to map PRG/CHR
// ROM and set up initial nametable mirroring; afterwards the mapper is only
// driven by ordinary bus reads/writes routed to whatever it mapped (typical
// for PRG-ROM bank-select registers) and, for mappers that need it, by the
// PPU address-line edge notifier below.
type Mapper interface {
	// Load wires the cartridge's PRG/CHR ROM and initial mirroring onto the
	// CPU and PPU buses.
	Load(rom *ines.Rom, cpu *CPU, ppu *PPU) error

	// Name identifies the mapper, for logs and save-state headers.
	Name() string
}

// A12Notifier is implemented by mappers that watch the PPU's A12 address
// line to count scanlines (MMC3 and similar). The PPU calls OnA12Edge on
// each rising edge it observes while fetching from the pattern tables, once
// A12 has stayed low for at least 8 of those fetches (see PPU.notifyA12).
type A12Notifier interface {
	OnA12Edge()
}

// IRQSource is implemented by mappers that can assert the shared IRQ line.
type IRQSource interface {
	IRQPending() bool
}

// BatteryBacked is implemented by mappers that map battery-backed PRG RAM.
// BatteryRAM returns nil when the mapper mapped no PRG RAM for the cartridge
// being emulated: NROM, UxROM, CNROM and MMC3 map it only when rom.Battery
// is true, MMC1 always maps it, AxROM and GxROM never do.
type BatteryBacked interface {
	BatteryRAM() []uint8
}

// MapperDesc names a registered mapper constructor, keyed by iNES mapper
// number in the Registry.
type MapperDesc struct {
	Name string
	New  func() Mapper
}

// Registry maps an iNES mapper number to its constructor. Mappers under
// hw/mappers register themselves here via init().
var Registry = map[uint16]MapperDesc{}

func RegisterMapper(num uint16, desc MapperDesc) {
	Registry[num] = desc
}

// LoadCartridge looks up rom's mapper number in Registry and wires it onto
// cpu/ppu.
func LoadCartridge(rom *ines.Rom, cpu *CPU, ppu *PPU) (Mapper, error) {
	desc, ok := Registry[rom.MapperNumber]
	if !ok {
		return nil, unsupportedMapperError{rom.MapperNumber}
	}
	m := desc.New()
	if err := m.Load(rom, cpu, ppu); err != nil {
		return nil, err
	}
	ppu.PlugMapper(m)
	return m, nil
}

type unsupportedMapperError struct{ num uint16 }

func (e unsupportedMapperError) Error() string {
	return "hw: unsupported mapper number " + strconv.Itoa(int(e.num))
}
