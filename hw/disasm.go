package hw

import "fmt"

// disasmOps backs CPU.Disasm, used only by the execution tracer: it must
// never have side effects, so every byte it reads goes through Bus.Peek8.
var disasmOps [256]func(cpu *CPU, pc uint16) DisasmOp

func peek8(c *CPU, pc uint16) uint8  { return c.Bus.Peek8(pc) }
func peek16(c *CPU, pc uint16) uint16 {
	return uint16(c.Bus.Peek8(pc+1))<<8 | uint16(c.Bus.Peek8(pc))
}

func dis(name string, nbytes int, oper func(c *CPU, pc uint16) string) func(*CPU, uint16) DisasmOp {
	return func(c *CPU, pc uint16) DisasmOp {
		buf := make([]byte, nbytes)
		for i := range buf {
			buf[i] = peek8(c, pc+uint16(i))
		}
		op := DisasmOp{Opcode: name, PC: pc, Buf: buf}
		if oper != nil {
			op.Oper = oper(c, pc)
		}
		return op
	}
}

func opImp(name string) func(*CPU, uint16) DisasmOp     { return dis(name, 1, nil) }
func opAcc(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 1, func(c *CPU, pc uint16) string { return "A" })
}
func opImm(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 2, func(c *CPU, pc uint16) string { return fmt.Sprintf("#$%02X", peek8(c, pc+1)) })
}
func opZpg(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 2, func(c *CPU, pc uint16) string { return fmt.Sprintf("$%02X", peek8(c, pc+1)) })
}
func opZpx(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 2, func(c *CPU, pc uint16) string { return fmt.Sprintf("$%02X,X", peek8(c, pc+1)) })
}
func opZpy(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 2, func(c *CPU, pc uint16) string { return fmt.Sprintf("$%02X,Y", peek8(c, pc+1)) })
}
func opAbs(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 3, func(c *CPU, pc uint16) string { return fmt.Sprintf("$%04X", peek16(c, pc+1)) })
}
func opAbx(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 3, func(c *CPU, pc uint16) string { return fmt.Sprintf("$%04X,X", peek16(c, pc+1)) })
}
func opAby(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 3, func(c *CPU, pc uint16) string { return fmt.Sprintf("$%04X,Y", peek16(c, pc+1)) })
}
func opInd(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 3, func(c *CPU, pc uint16) string { return fmt.Sprintf("($%04X)", peek16(c, pc+1)) })
}
func opIzx(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 2, func(c *CPU, pc uint16) string { return fmt.Sprintf("($%02X,X)", peek8(c, pc+1)) })
}
func opIzy(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 2, func(c *CPU, pc uint16) string { return fmt.Sprintf("($%02X),Y", peek8(c, pc+1)) })
}
func opRel(name string) func(*CPU, uint16) DisasmOp {
	return dis(name, 2, func(c *CPU, pc uint16) string {
		off := int8(peek8(c, pc+1))
		return fmt.Sprintf("$%04X", uint16(int32(pc)+2+int32(off)))
	})
}

func init() {
	for i := range disasmOps {
		disasmOps[i] = opImp("NOP")
	}

	set := func(op uint8, f func(*CPU, uint16) DisasmOp) { disasmOps[op] = f }

	set(0xA9, opImm("LDA"))
	set(0xA5, opZpg("LDA"))
	set(0xB5, opZpx("LDA"))
	set(0xAD, opAbs("LDA"))
	set(0xBD, opAbx("LDA"))
	set(0xB9, opAby("LDA"))
	set(0xA1, opIzx("LDA"))
	set(0xB1, opIzy("LDA"))
	set(0xA2, opImm("LDX"))
	set(0xA6, opZpg("LDX"))
	set(0xB6, opZpy("LDX"))
	set(0xAE, opAbs("LDX"))
	set(0xBE, opAby("LDX"))
	set(0xA0, opImm("LDY"))
	set(0xA4, opZpg("LDY"))
	set(0xB4, opZpx("LDY"))
	set(0xAC, opAbs("LDY"))
	set(0xBC, opAbx("LDY"))
	set(0x85, opZpg("STA"))
	set(0x95, opZpx("STA"))
	set(0x8D, opAbs("STA"))
	set(0x9D, opAbx("STA"))
	set(0x99, opAby("STA"))
	set(0x81, opIzx("STA"))
	set(0x91, opIzy("STA"))
	set(0x86, opZpg("STX"))
	set(0x96, opZpy("STX"))
	set(0x8E, opAbs("STX"))
	set(0x84, opZpg("STY"))
	set(0x94, opZpx("STY"))
	set(0x8C, opAbs("STY"))

	set(0xAA, opImp("TAX"))
	set(0x8A, opImp("TXA"))
	set(0xA8, opImp("TAY"))
	set(0x98, opImp("TYA"))
	set(0xBA, opImp("TSX"))
	set(0x9A, opImp("TXS"))
	set(0xE8, opImp("INX"))
	set(0xCA, opImp("DEX"))
	set(0xC8, opImp("INY"))
	set(0x88, opImp("DEY"))

	set(0x09, opImm("ORA"))
	set(0x05, opZpg("ORA"))
	set(0x15, opZpx("ORA"))
	set(0x0D, opAbs("ORA"))
	set(0x1D, opAbx("ORA"))
	set(0x19, opAby("ORA"))
	set(0x01, opIzx("ORA"))
	set(0x11, opIzy("ORA"))

	set(0x29, opImm("AND"))
	set(0x25, opZpg("AND"))
	set(0x35, opZpx("AND"))
	set(0x2D, opAbs("AND"))
	set(0x3D, opAbx("AND"))
	set(0x39, opAby("AND"))
	set(0x21, opIzx("AND"))
	set(0x31, opIzy("AND"))

	set(0x49, opImm("EOR"))
	set(0x45, opZpg("EOR"))
	set(0x55, opZpx("EOR"))
	set(0x4D, opAbs("EOR"))
	set(0x5D, opAbx("EOR"))
	set(0x59, opAby("EOR"))
	set(0x41, opIzx("EOR"))
	set(0x51, opIzy("EOR"))

	set(0x69, opImm("ADC"))
	set(0x65, opZpg("ADC"))
	set(0x75, opZpx("ADC"))
	set(0x6D, opAbs("ADC"))
	set(0x7D, opAbx("ADC"))
	set(0x79, opAby("ADC"))
	set(0x61, opIzx("ADC"))
	set(0x71, opIzy("ADC"))

	set(0xE9, opImm("SBC"))
	set(0xE5, opZpg("SBC"))
	set(0xF5, opZpx("SBC"))
	set(0xED, opAbs("SBC"))
	set(0xFD, opAbx("SBC"))
	set(0xF9, opAby("SBC"))
	set(0xE1, opIzx("SBC"))
	set(0xF1, opIzy("SBC"))

	set(0xC9, opImm("CMP"))
	set(0xC5, opZpg("CMP"))
	set(0xD5, opZpx("CMP"))
	set(0xCD, opAbs("CMP"))
	set(0xDD, opAbx("CMP"))
	set(0xD9, opAby("CMP"))
	set(0xC1, opIzx("CMP"))
	set(0xD1, opIzy("CMP"))
	set(0xE0, opImm("CPX"))
	set(0xE4, opZpg("CPX"))
	set(0xEC, opAbs("CPX"))
	set(0xC0, opImm("CPY"))
	set(0xC4, opZpg("CPY"))
	set(0xCC, opAbs("CPY"))

	set(0x24, opZpg("BIT"))
	set(0x2C, opAbs("BIT"))

	set(0x0A, opAcc("ASL"))
	set(0x06, opZpg("ASL"))
	set(0x16, opZpx("ASL"))
	set(0x0E, opAbs("ASL"))
	set(0x1E, opAbx("ASL"))
	set(0x4A, opAcc("LSR"))
	set(0x46, opZpg("LSR"))
	set(0x56, opZpx("LSR"))
	set(0x4E, opAbs("LSR"))
	set(0x5E, opAbx("LSR"))
	set(0x2A, opAcc("ROL"))
	set(0x26, opZpg("ROL"))
	set(0x36, opZpx("ROL"))
	set(0x2E, opAbs("ROL"))
	set(0x3E, opAbx("ROL"))
	set(0x6A, opAcc("ROR"))
	set(0x66, opZpg("ROR"))
	set(0x76, opZpx("ROR"))
	set(0x6E, opAbs("ROR"))
	set(0x7E, opAbx("ROR"))

	set(0xE6, opZpg("INC"))
	set(0xF6, opZpx("INC"))
	set(0xEE, opAbs("INC"))
	set(0xFE, opAbx("INC"))
	set(0xC6, opZpg("DEC"))
	set(0xD6, opZpx("DEC"))
	set(0xCE, opAbs("DEC"))
	set(0xDE, opAbx("DEC"))

	set(0x10, opRel("BPL"))
	set(0x30, opRel("BMI"))
	set(0x50, opRel("BVC"))
	set(0x70, opRel("BVS"))
	set(0x90, opRel("BCC"))
	set(0xB0, opRel("BCS"))
	set(0xD0, opRel("BNE"))
	set(0xF0, opRel("BEQ"))

	set(0x18, opImp("CLC"))
	set(0x38, opImp("SEC"))
	set(0x58, opImp("CLI"))
	set(0x78, opImp("SEI"))
	set(0xB8, opImp("CLV"))
	set(0xD8, opImp("CLD"))
	set(0xF8, opImp("SED"))

	set(0x48, opImp("PHA"))
	set(0x68, opImp("PLA"))
	set(0x08, opImp("PHP"))
	set(0x28, opImp("PLP"))

	set(0x4C, opAbs("JMP"))
	set(0x6C, opInd("JMP"))
	set(0x20, opAbs("JSR"))
	set(0x60, opImp("RTS"))
	set(0x40, opImp("RTI"))
	set(0x00, opImp("BRK"))
	set(0xEA, opImp("NOP"))
}
