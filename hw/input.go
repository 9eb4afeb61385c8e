package hw

import "nestor/hw/hwio"

// InputDevice is the interface a controller-polling driver implements to
// feed button state into the emulated $4016/$4017 shift registers. Polling
// real input (keyboard, gamepad) is an external collaborator; the core only
// needs this interface.
type InputDevice interface {
	// LoadState captures the current button state of both controller
	// ports as NES-format shift-register bytes.
	LoadState() (port1, port2 uint8)
}

// InputPorts implements the $4016 (write: strobe, read: port 1 shift
// register) and $4017 (read: port 2 shift register) controller latch.
type InputPorts struct {
	In  hwio.Reg8 `hwio:"offset=0x16,rcb,wcb"`
	Out hwio.Reg8 `hwio:"offset=0x17,rcb"`

	dev InputDevice

	prevStrobe, strobe bool
	state              [2]uint8
}

func (ip *InputPorts) initBus() {
	hwio.MustInitRegs(ip)
}

func (ip *InputPorts) PlugDevice(dev InputDevice) {
	ip.dev = dev
}

func (ip *InputPorts) latch(port uint8) uint8 {
	ret := ip.state[port] & 1
	ip.state[port] >>= 1
	// After the 8 real buttons are exhausted, a standard controller reports
	// 1 forever.
	ip.state[port] |= 0x80
	return 0x40 | ret
}

func (ip *InputPorts) loadState() {
	if ip.dev == nil {
		ip.state[0] = 0x40
		ip.state[1] = 0x40
		return
	}
	ip.state[0], ip.state[1] = ip.dev.LoadState()
}

// In: $4016 write (strobe), $4016 read (port 1).
func (ip *InputPorts) WriteIn(old, val uint8) {
	ip.prevStrobe = ip.strobe
	ip.strobe = val&1 == 1
	if ip.prevStrobe && !ip.strobe {
		ip.loadState()
	}
}

func (ip *InputPorts) ReadIn(_ uint8) uint8 {
	if ip.strobe {
		ip.loadState()
	}
	return ip.latch(0)
}

// Out: $4017 read (port 2). The real $4017 write goes to the APU frame
// counter, which is out of scope here, so this offset is read-only.
func (ip *InputPorts) ReadOut(_ uint8) uint8 {
	if ip.strobe {
		ip.loadState()
	}
	return ip.latch(1)
}
