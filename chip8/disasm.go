package chip8

import "fmt"

/// Disassemble the CHIP-8 instruction at an address.
///
func (vm *CHIP_8) Disassemble(i uint16) string {
	if int(i) >= MemorySize-1 {
		return ""
	}

	inst := Decode(vm.Memory[i], vm.Memory[i+1])

	// end of program memory?
	if inst.Raw == 0 {
		return fmt.Sprintf("%04X -", i)
	}

	return fmt.Sprintf("%04X - %s", i, inst)
}

/// Registers returns one line per register describing the current state
/// of the machine.
///
func (vm *CHIP_8) Registers() []string {
	lines := make([]string, 0, 24)

	for i, v := range vm.V {
		lines = append(lines, fmt.Sprintf("V%X - #%02X", i, v))
	}

	lines = append(lines,
		fmt.Sprintf("PC - #%04X", vm.PC),
		fmt.Sprintf("SP - #%02X", vm.SP),
		fmt.Sprintf("I  - #%04X", vm.I),
		fmt.Sprintf("DT - #%02X", vm.DT),
		fmt.Sprintf("ST - #%02X", vm.ST),
	)

	// return addresses, innermost call last
	for i := uint(0); i < vm.SP; i++ {
		lines = append(lines, fmt.Sprintf("S%X - #%04X", i, vm.Stack[i]))
	}

	return lines
}
