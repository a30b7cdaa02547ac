package cpu

// Instruction is one decoded opcode slot: the mnemonic that names its
// handler, the addressing mode that resolves its operand, and the base
// cycle cost. Indexing by raw opcode this way replaces a 256-arm switch
// with a table lookup plus one switch over ~70 mnemonics.
type Instruction struct {
	Mnemonic string
	Mode     AddressingMode
	Cycles   uint8
}

// opcodeTable is the full legal-plus-unofficial 6502 decode table. An
// empty Mnemonic marks a slot with no defined opcode.
var opcodeTable = [256]Instruction{
	0x00: {"BRK", Implied, 7},
	0x01: {"ORA", IndexedIndirect, 6},
	0x03: {"SLO", IndexedIndirect, 8},
	0x04: {"NOP", ZeroPage, 3},
	0x05: {"ORA", ZeroPage, 3},
	0x06: {"ASL", ZeroPage, 5},
	0x07: {"SLO", ZeroPage, 5},
	0x08: {"PHP", Implied, 3},
	0x09: {"ORA", Immediate, 2},
	0x0A: {"ASL", Accumulator, 2},
	0x0C: {"NOP", Absolute, 4},
	0x0D: {"ORA", Absolute, 4},
	0x0E: {"ASL", Absolute, 6},
	0x0F: {"SLO", Absolute, 6},

	0x10: {"BPL", Relative, 2},
	0x11: {"ORA", IndirectIndexed, 5},
	0x13: {"SLO", IndirectIndexed, 8},
	0x14: {"NOP", ZeroPageX, 4},
	0x15: {"ORA", ZeroPageX, 4},
	0x16: {"ASL", ZeroPageX, 6},
	0x17: {"SLO", ZeroPageX, 6},
	0x18: {"CLC", Implied, 2},
	0x19: {"ORA", AbsoluteY, 4},
	0x1A: {"NOP", Implied, 2},
	0x1B: {"SLO", AbsoluteY, 7},
	0x1C: {"NOP", AbsoluteX, 4},
	0x1D: {"ORA", AbsoluteX, 4},
	0x1E: {"ASL", AbsoluteX, 7},
	0x1F: {"SLO", AbsoluteX, 7},

	0x20: {"JSR", Absolute, 6},
	0x21: {"AND", IndexedIndirect, 6},
	0x23: {"RLA", IndexedIndirect, 8},
	0x24: {"BIT", ZeroPage, 3},
	0x25: {"AND", ZeroPage, 3},
	0x26: {"ROL", ZeroPage, 5},
	0x27: {"RLA", ZeroPage, 5},
	0x28: {"PLP", Implied, 4},
	0x29: {"AND", Immediate, 2},
	0x2A: {"ROL", Accumulator, 2},
	0x2C: {"BIT", Absolute, 4},
	0x2D: {"AND", Absolute, 4},
	0x2E: {"ROL", Absolute, 6},
	0x2F: {"RLA", Absolute, 6},

	0x30: {"BMI", Relative, 2},
	0x31: {"AND", IndirectIndexed, 5},
	0x33: {"RLA", IndirectIndexed, 8},
	0x34: {"NOP", ZeroPageX, 4},
	0x35: {"AND", ZeroPageX, 4},
	0x36: {"ROL", ZeroPageX, 6},
	0x37: {"RLA", ZeroPageX, 6},
	0x38: {"SEC", Implied, 2},
	0x39: {"AND", AbsoluteY, 4},
	0x3A: {"NOP", Implied, 2},
	0x3B: {"RLA", AbsoluteY, 7},
	0x3C: {"NOP", AbsoluteX, 4},
	0x3D: {"AND", AbsoluteX, 4},
	0x3E: {"ROL", AbsoluteX, 7},
	0x3F: {"RLA", AbsoluteX, 7},

	0x40: {"RTI", Implied, 6},
	0x41: {"EOR", IndexedIndirect, 6},
	0x43: {"SRE", IndexedIndirect, 8},
	0x44: {"NOP", ZeroPage, 3},
	0x45: {"EOR", ZeroPage, 3},
	0x46: {"LSR", ZeroPage, 5},
	0x47: {"SRE", ZeroPage, 5},
	0x48: {"PHA", Implied, 3},
	0x49: {"EOR", Immediate, 2},
	0x4A: {"LSR", Accumulator, 2},
	0x4C: {"JMP", Absolute, 3},
	0x4D: {"EOR", Absolute, 4},
	0x4E: {"LSR", Absolute, 6},
	0x4F: {"SRE", Absolute, 6},

	0x50: {"BVC", Relative, 2},
	0x51: {"EOR", IndirectIndexed, 5},
	0x53: {"SRE", IndirectIndexed, 8},
	0x54: {"NOP", ZeroPageX, 4},
	0x55: {"EOR", ZeroPageX, 4},
	0x56: {"LSR", ZeroPageX, 6},
	0x57: {"SRE", ZeroPageX, 6},
	0x58: {"CLI", Implied, 2},
	0x59: {"EOR", AbsoluteY, 4},
	0x5A: {"NOP", Implied, 2},
	0x5B: {"SRE", AbsoluteY, 7},
	0x5C: {"NOP", AbsoluteX, 4},
	0x5D: {"EOR", AbsoluteX, 4},
	0x5E: {"LSR", AbsoluteX, 7},
	0x5F: {"SRE", AbsoluteX, 7},

	0x60: {"RTS", Implied, 6},
	0x61: {"ADC", IndexedIndirect, 6},
	0x63: {"RRA", IndexedIndirect, 8},
	0x64: {"NOP", ZeroPage, 3},
	0x65: {"ADC", ZeroPage, 3},
	0x66: {"ROR", ZeroPage, 5},
	0x67: {"RRA", ZeroPage, 5},
	0x68: {"PLA", Implied, 4},
	0x69: {"ADC", Immediate, 2},
	0x6A: {"ROR", Accumulator, 2},
	0x6C: {"JMP", Indirect, 5},
	0x6D: {"ADC", Absolute, 4},
	0x6E: {"ROR", Absolute, 6},
	0x6F: {"RRA", Absolute, 6},

	0x70: {"BVS", Relative, 2},
	0x71: {"ADC", IndirectIndexed, 5},
	0x73: {"RRA", IndirectIndexed, 8},
	0x74: {"NOP", ZeroPageX, 4},
	0x75: {"ADC", ZeroPageX, 4},
	0x76: {"ROR", ZeroPageX, 6},
	0x77: {"RRA", ZeroPageX, 6},
	0x78: {"SEI", Implied, 2},
	0x79: {"ADC", AbsoluteY, 4},
	0x7A: {"NOP", Implied, 2},
	0x7B: {"RRA", AbsoluteY, 7},
	0x7C: {"NOP", AbsoluteX, 4},
	0x7D: {"ADC", AbsoluteX, 4},
	0x7E: {"ROR", AbsoluteX, 7},
	0x7F: {"RRA", AbsoluteX, 7},

	0x80: {"NOP", Immediate, 2},
	0x81: {"STA", IndexedIndirect, 6},
	0x82: {"NOP", Immediate, 2},
	0x83: {"SAX", IndexedIndirect, 6},
	0x84: {"STY", ZeroPage, 3},
	0x85: {"STA", ZeroPage, 3},
	0x86: {"STX", ZeroPage, 3},
	0x87: {"SAX", ZeroPage, 3},
	0x88: {"DEY", Implied, 2},
	0x89: {"NOP", Immediate, 2},
	0x8A: {"TXA", Implied, 2},
	0x8C: {"STY", Absolute, 4},
	0x8D: {"STA", Absolute, 4},
	0x8E: {"STX", Absolute, 4},
	0x8F: {"SAX", Absolute, 4},

	0x90: {"BCC", Relative, 2},
	0x91: {"STA", IndirectIndexed, 6},
	0x94: {"STY", ZeroPageX, 4},
	0x95: {"STA", ZeroPageX, 4},
	0x96: {"STX", ZeroPageY, 4},
	0x97: {"SAX", ZeroPageY, 4},
	0x98: {"TYA", Implied, 2},
	0x99: {"STA", AbsoluteY, 5},
	0x9A: {"TXS", Implied, 2},
	0x9D: {"STA", AbsoluteX, 5},

	0xA0: {"LDY", Immediate, 2},
	0xA1: {"LDA", IndexedIndirect, 6},
	0xA2: {"LDX", Immediate, 2},
	0xA3: {"LAX", IndexedIndirect, 6},
	0xA4: {"LDY", ZeroPage, 3},
	0xA5: {"LDA", ZeroPage, 3},
	0xA6: {"LDX", ZeroPage, 3},
	0xA7: {"LAX", ZeroPage, 3},
	0xA8: {"TAY", Implied, 2},
	0xA9: {"LDA", Immediate, 2},
	0xAA: {"TAX", Implied, 2},
	0xAC: {"LDY", Absolute, 4},
	0xAD: {"LDA", Absolute, 4},
	0xAE: {"LDX", Absolute, 4},
	0xAF: {"LAX", Absolute, 4},

	0xB0: {"BCS", Relative, 2},
	0xB1: {"LDA", IndirectIndexed, 5},
	0xB3: {"LAX", IndirectIndexed, 5},
	0xB4: {"LDY", ZeroPageX, 4},
	0xB5: {"LDA", ZeroPageX, 4},
	0xB6: {"LDX", ZeroPageY, 4},
	0xB7: {"LAX", ZeroPageY, 4},
	0xB8: {"CLV", Implied, 2},
	0xB9: {"LDA", AbsoluteY, 4},
	0xBA: {"TSX", Implied, 2},
	0xBC: {"LDY", AbsoluteX, 4},
	0xBD: {"LDA", AbsoluteX, 4},
	0xBE: {"LDX", AbsoluteY, 4},
	0xBF: {"LAX", AbsoluteY, 4},

	0xC0: {"CPY", Immediate, 2},
	0xC1: {"CMP", IndexedIndirect, 6},
	0xC2: {"NOP", Immediate, 2},
	0xC3: {"DCP", IndexedIndirect, 8},
	0xC4: {"CPY", ZeroPage, 3},
	0xC5: {"CMP", ZeroPage, 3},
	0xC6: {"DEC", ZeroPage, 5},
	0xC7: {"DCP", ZeroPage, 5},
	0xC8: {"INY", Implied, 2},
	0xC9: {"CMP", Immediate, 2},
	0xCA: {"DEX", Implied, 2},
	0xCC: {"CPY", Absolute, 4},
	0xCD: {"CMP", Absolute, 4},
	0xCE: {"DEC", Absolute, 6},
	0xCF: {"DCP", Absolute, 6},

	0xD0: {"BNE", Relative, 2},
	0xD1: {"CMP", IndirectIndexed, 5},
	0xD3: {"DCP", IndirectIndexed, 8},
	0xD4: {"NOP", ZeroPageX, 4},
	0xD5: {"CMP", ZeroPageX, 4},
	0xD6: {"DEC", ZeroPageX, 6},
	0xD7: {"DCP", ZeroPageX, 6},
	0xD8: {"CLD", Implied, 2},
	0xD9: {"CMP", AbsoluteY, 4},
	0xDA: {"NOP", Implied, 2},
	0xDB: {"DCP", AbsoluteY, 7},
	0xDC: {"NOP", AbsoluteX, 4},
	0xDD: {"CMP", AbsoluteX, 4},
	0xDE: {"DEC", AbsoluteX, 7},
	0xDF: {"DCP", AbsoluteX, 7},

	0xE0: {"CPX", Immediate, 2},
	0xE1: {"SBC", IndexedIndirect, 6},
	0xE2: {"NOP", Immediate, 2},
	0xE3: {"ISB", IndexedIndirect, 8},
	0xE4: {"CPX", ZeroPage, 3},
	0xE5: {"SBC", ZeroPage, 3},
	0xE6: {"INC", ZeroPage, 5},
	0xE7: {"ISB", ZeroPage, 5},
	0xE8: {"INX", Implied, 2},
	0xE9: {"SBC", Immediate, 2},
	0xEA: {"NOP", Implied, 2},
	0xEB: {"SBC", Immediate, 2},
	0xEC: {"CPX", Absolute, 4},
	0xED: {"SBC", Absolute, 4},
	0xEE: {"INC", Absolute, 6},
	0xEF: {"ISB", Absolute, 6},

	0xF0: {"BEQ", Relative, 2},
	0xF1: {"SBC", IndirectIndexed, 5},
	0xF3: {"ISB", IndirectIndexed, 8},
	0xF4: {"NOP", ZeroPageX, 4},
	0xF5: {"SBC", ZeroPageX, 4},
	0xF6: {"INC", ZeroPageX, 6},
	0xF7: {"ISB", ZeroPageX, 6},
	0xF8: {"SED", Implied, 2},
	0xF9: {"SBC", AbsoluteY, 4},
	0xFA: {"NOP", Implied, 2},
	0xFB: {"ISB", AbsoluteY, 7},
	0xFC: {"NOP", AbsoluteX, 4},
	0xFD: {"SBC", AbsoluteX, 4},
	0xFE: {"INC", AbsoluteX, 7},
	0xFF: {"ISB", AbsoluteX, 7},
}

// pageCrossPenalty reports whether a page boundary crossing on this
// instruction's indexed/indirect-indexed operand costs an extra cycle.
// Store instructions and the read-modify-write unofficial opcodes already
// carry their worst-case cost in the table, so only plain reads earn the
// conditional penalty.
func pageCrossPenalty(mnemonic string) bool {
	switch mnemonic {
	case "LDA", "LDX", "LDY", "LAX", "EOR", "AND", "ORA", "ADC", "SBC", "CMP", "NOP":
		return true
	default:
		return false
	}
}
