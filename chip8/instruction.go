package chip8

import "fmt"

/// Op identifies a decoded instruction.
///
type Op int

const (
	OpInvalid Op = iota
	OpCLS         // 00E0
	OpRET         // 00EE
	OpJP          // 1NNN
	OpCALL        // 2NNN
	OpSEByte      // 3XKK
	OpSNEByte     // 4XKK
	OpSEReg       // 5XY0
	OpLDByte      // 6XKK
	OpADDByte     // 7XKK
	OpLDReg       // 8XY0
	OpOR          // 8XY1
	OpAND         // 8XY2
	OpADDReg      // 8XY4
	OpSUB         // 8XY5
	OpSNEReg      // 9XY0
	OpLDI         // ANNN
	OpJPV0        // BNNN
	OpRND         // CXKK
	OpDRW         // DXYN
	OpLDXDT       // FX07
	OpLDDTX       // FX15
	OpADDI        // FX1E
	OpLDF         // FX29
	OpLDB         // FX33
	OpSTORE       // FX55
	OpRESTORE     // FX65
)

/// Instruction is a decoded 16-bit CHIP-8 instruction. Only the operands
/// used by Op are meaningful.
///
type Instruction struct {
	Op Op

	/// X and Y register operands.
	///
	X, Y byte

	/// N is the low nibble, used as a row count by DRW.
	///
	N byte

	/// KK is the low byte immediate.
	///
	KK byte

	/// NNN is the 12-bit address operand.
	///
	NNN uint16

	/// Raw is the undecoded instruction.
	///
	Raw uint16
}

/// Decode the two bytes of an instruction. The four nibbles of the
/// instruction select the operation, the rest are operands.
///
func Decode(hi, lo byte) Instruction {
	a, b, c, d := hi>>4, hi&0xF, lo>>4, lo&0xF

	inst := Instruction{
		X:   b,
		Y:   c,
		N:   d,
		KK:  lo,
		NNN: uint16(b)<<8 | uint16(lo),
		Raw: uint16(hi)<<8 | uint16(lo),
	}

	switch {
	case a == 0x0 && b == 0x0 && c == 0xE && d == 0x0:
		inst.Op = OpCLS
	case a == 0x0 && b == 0x0 && c == 0xE && d == 0xE:
		inst.Op = OpRET
	case a == 0x1:
		inst.Op = OpJP
	case a == 0x2:
		inst.Op = OpCALL
	case a == 0x3:
		inst.Op = OpSEByte
	case a == 0x4:
		inst.Op = OpSNEByte
	case a == 0x5 && d == 0x0:
		inst.Op = OpSEReg
	case a == 0x6:
		inst.Op = OpLDByte
	case a == 0x7:
		inst.Op = OpADDByte
	case a == 0x8 && d == 0x0:
		inst.Op = OpLDReg
	case a == 0x8 && d == 0x1:
		inst.Op = OpOR
	case a == 0x8 && d == 0x2:
		inst.Op = OpAND
	case a == 0x8 && d == 0x4:
		inst.Op = OpADDReg
	case a == 0x8 && d == 0x5:
		inst.Op = OpSUB
	case a == 0x9 && d == 0x0:
		inst.Op = OpSNEReg
	case a == 0xA:
		inst.Op = OpLDI
	case a == 0xB:
		inst.Op = OpJPV0
	case a == 0xC:
		inst.Op = OpRND
	case a == 0xD:
		inst.Op = OpDRW
	case a == 0xF && c == 0x0 && d == 0x7:
		inst.Op = OpLDXDT
	case a == 0xF && c == 0x1 && d == 0x5:
		inst.Op = OpLDDTX
	case a == 0xF && c == 0x1 && d == 0xE:
		inst.Op = OpADDI
	case a == 0xF && c == 0x2 && d == 0x9:
		inst.Op = OpLDF
	case a == 0xF && c == 0x3 && d == 0x3:
		inst.Op = OpLDB
	case a == 0xF && c == 0x5 && d == 0x5:
		inst.Op = OpSTORE
	case a == 0xF && c == 0x6 && d == 0x5:
		inst.Op = OpRESTORE
	default:
		inst.Op = OpInvalid
	}

	return inst
}

/// String disassembles the instruction.
///
func (inst Instruction) String() string {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case OpCLS:
		return "CLS"
	case OpRET:
		return "RET"
	case OpJP:
		return fmt.Sprintf("JP     #%04X", inst.NNN)
	case OpCALL:
		return fmt.Sprintf("CALL   #%04X", inst.NNN)
	case OpSEByte:
		return fmt.Sprintf("SE     V%X, #%02X", x, inst.KK)
	case OpSNEByte:
		return fmt.Sprintf("SNE    V%X, #%02X", x, inst.KK)
	case OpSEReg:
		return fmt.Sprintf("SE     V%X, V%X", x, y)
	case OpLDByte:
		return fmt.Sprintf("LD     V%X, #%02X", x, inst.KK)
	case OpADDByte:
		return fmt.Sprintf("ADD    V%X, #%02X", x, inst.KK)
	case OpLDReg:
		return fmt.Sprintf("LD     V%X, V%X", x, y)
	case OpOR:
		return fmt.Sprintf("OR     V%X, V%X", x, y)
	case OpAND:
		return fmt.Sprintf("AND    V%X, V%X", x, y)
	case OpADDReg:
		return fmt.Sprintf("ADD    V%X, V%X", x, y)
	case OpSUB:
		return fmt.Sprintf("SUB    V%X, V%X", x, y)
	case OpSNEReg:
		return fmt.Sprintf("SNE    V%X, V%X", x, y)
	case OpLDI:
		return fmt.Sprintf("LD     I, #%04X", inst.NNN)
	case OpJPV0:
		return fmt.Sprintf("JP     V0, #%04X", inst.NNN)
	case OpRND:
		return fmt.Sprintf("RND    V%X, #%02X", x, inst.KK)
	case OpDRW:
		return fmt.Sprintf("DRW    V%X, V%X, %d", x, y, inst.N)
	case OpLDXDT:
		return fmt.Sprintf("LD     V%X, DT", x)
	case OpLDDTX:
		return fmt.Sprintf("LD     DT, V%X", x)
	case OpADDI:
		return fmt.Sprintf("ADD    I, V%X", x)
	case OpLDF:
		return fmt.Sprintf("LD     F, V%X", x)
	case OpLDB:
		return fmt.Sprintf("LD     B, V%X", x)
	case OpSTORE:
		return fmt.Sprintf("LD     [I], V%X", x)
	case OpRESTORE:
		return fmt.Sprintf("LD     V%X, [I]", x)
	}

	// unknown or unsupported instruction
	return fmt.Sprintf("??     #%04X", inst.Raw)
}
