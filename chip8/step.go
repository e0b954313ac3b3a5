package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

/// Step the CHIP-8 virtual machine a single instruction, then update the
/// timers. Once a step has failed the machine is halted and every later
/// call returns the same fault until it is reset.
///
func (vm *CHIP_8) Step() error {
	if vm.fault != nil {
		return vm.fault
	}

	inst, err := vm.fetch()
	if err == nil {
		if vm.logger != nil {
			vm.logger.Debug("exec",
				log.Hex("pc", vm.PC),
				log.Hex("opcode", inst.Raw),
				log.String("instr", inst.String()))
		}
		if vm.Trace != nil {
			vm.Trace.Log(fmt.Sprintf("%04X -", vm.PC), inst.String())
		}

		err = vm.execute(inst)
	}

	if err != nil {
		vm.fault = &Fault{Address: vm.PC, Opcode: inst.Raw, Err: err}

		if vm.logger != nil {
			vm.logger.Error("Machine halted", log.Err(vm.fault))
		}

		return vm.fault
	}

	// increment the cycle count
	vm.Cycles++

	vm.tick()

	return nil
}

/// Fetch and decode the instruction at the program counter.
///
func (vm *CHIP_8) fetch() (Instruction, error) {
	if int(vm.PC)+1 >= MemorySize {
		return Instruction{}, fmt.Errorf("%w: program counter #%04X", ErrOutOfBounds, vm.PC)
	}

	return Decode(vm.Memory[vm.PC], vm.Memory[vm.PC+1]), nil
}

/// Execute a decoded instruction. Instructions that don't set the
/// program counter themselves advance it past the instruction.
///
func (vm *CHIP_8) execute(inst Instruction) error {
	x, y := inst.X, inst.Y

	switch inst.Op {
	case OpCLS:
		vm.cls()
	case OpRET:
		return vm.ret()
	case OpJP:
		vm.PC = inst.NNN
		return nil
	case OpJPV0:
		vm.PC = inst.NNN + uint16(vm.V[0])
		return nil
	case OpCALL:
		return vm.call(inst.NNN)
	case OpSEByte:
		vm.skipIf(vm.V[x] == inst.KK)
		return nil
	case OpSNEByte:
		vm.skipIf(vm.V[x] != inst.KK)
		return nil
	case OpSEReg:
		vm.skipIf(vm.V[x] == vm.V[y])
		return nil
	case OpSNEReg:
		vm.skipIf(vm.V[x] != vm.V[y])
		return nil
	case OpLDByte:
		vm.V[x] = inst.KK
	case OpADDByte:
		vm.V[x] += inst.KK
	case OpLDReg:
		vm.V[x] = vm.V[y]
	case OpOR:
		vm.V[x] |= vm.V[y]
	case OpAND:
		vm.V[x] &= vm.V[y]
	case OpADDReg:
		vm.addXY(x, y)
	case OpSUB:
		vm.subXY(x, y)
	case OpRND:
		vm.V[x] = byte(vm.rng.Intn(256)) & inst.KK
	case OpLDI:
		vm.I = inst.NNN
	case OpADDI:
		if err := vm.addIX(x); err != nil {
			return err
		}
	case OpLDF:
		vm.I = uint16(vm.V[x]&0xF) * 5
	case OpLDB:
		if err := vm.loadB(x); err != nil {
			return err
		}
	case OpSTORE:
		if err := vm.saveRegs(x); err != nil {
			return err
		}
	case OpRESTORE:
		if err := vm.loadRegs(x); err != nil {
			return err
		}
	case OpDRW:
		if err := vm.drw(x, y, inst.N); err != nil {
			return err
		}
	case OpLDXDT:
		vm.V[x] = vm.DT
	case OpLDDTX:
		vm.DT = vm.V[x]
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOpcode, inst)
	}

	vm.next()

	return nil
}

/// Advance past the current instruction.
///
func (vm *CHIP_8) next() {
	vm.PC += 2
}

/// Skip the next instruction if the condition holds.
///
func (vm *CHIP_8) skipIf(condition bool) {
	if condition {
		vm.PC += 4
	} else {
		vm.PC += 2
	}
}

/// Clear the video display memory.
///
func (vm *CHIP_8) cls() {
	vm.Video = [Width * Height]byte{}
	vm.Redraw = true
}

/// call a subroutine at address.
///
func (vm *CHIP_8) call(address uint16) error {
	if vm.SP >= StackSize {
		return fmt.Errorf("%w: %d nested calls", ErrStackOverflow, vm.SP)
	}

	// push the address of the call, ret skips over it
	vm.Stack[vm.SP] = vm.PC
	vm.SP++

	vm.PC = address

	return nil
}

/// return from subroutine.
///
func (vm *CHIP_8) ret() error {
	if vm.SP == 0 {
		return ErrStackUnderflow
	}

	vm.SP--
	vm.PC = vm.Stack[vm.SP] + 2

	return nil
}

/// add vy to vx and set carry.
///
func (vm *CHIP_8) addXY(x, y byte) {
	sum := uint16(vm.V[x]) + uint16(vm.V[y])

	vm.V[x] = byte(sum)

	if sum > 0xFF {
		vm.V[0xF] = 1
	} else {
		vm.V[0xF] = 0
	}
}

/// subtract vy from vx, set carry if no borrow.
///
func (vm *CHIP_8) subXY(x, y byte) {
	vx, vy := vm.V[x], vm.V[y]

	vm.V[x] = vx - vy

	if vx < vy {
		vm.V[0xF] = 0
	} else {
		vm.V[0xF] = 1
	}
}

/// add vx to i.
///
func (vm *CHIP_8) addIX(x byte) error {
	i := uint32(vm.I) + uint32(vm.V[x])
	if i >= MemorySize {
		return fmt.Errorf("%w: I = #%04X", ErrOutOfBounds, i)
	}

	vm.I = uint16(i)

	return nil
}

/// load address with BCD of vx.
///
func (vm *CHIP_8) loadB(x byte) error {
	if err := vm.checkRange(vm.I, 3); err != nil {
		return err
	}

	n := vm.V[x]

	vm.Memory[vm.I+0] = n / 100
	vm.Memory[vm.I+1] = n / 10 % 10
	vm.Memory[vm.I+2] = n % 10

	return nil
}

/// save registers v0..vx to I.
///
func (vm *CHIP_8) saveRegs(x byte) error {
	if err := vm.checkRange(vm.I, uint16(x)+1); err != nil {
		return err
	}

	copy(vm.Memory[vm.I:], vm.V[:x+1])

	return nil
}

/// load registers v0..vx from I.
///
func (vm *CHIP_8) loadRegs(x byte) error {
	if err := vm.checkRange(vm.I, uint16(x)+1); err != nil {
		return err
	}

	copy(vm.V[:x+1], vm.Memory[vm.I:])

	return nil
}

/// checkRange fails unless n bytes starting at address are all in memory.
///
func (vm *CHIP_8) checkRange(address, n uint16) error {
	if uint32(address)+uint32(n) > MemorySize {
		return fmt.Errorf("%w: %d bytes at #%04X", ErrOutOfBounds, n, address)
	}

	return nil
}
