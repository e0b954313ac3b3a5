package main

import (
	"fmt"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/log"
)

/// logHelp writes the key bindings to the log.
///
func (e *emulator) logHelp() {
	for _, line := range []string{
		"Virtual keys:",
		"  1-2-3-4",
		"  Q-W-E-R",
		"  A-S-D-F",
		"  Z-X-C-V",
		"Emulation keys:",
		"  ESC      - Quit",
		"  BS       - Reboot (CTRL to reboot paused)",
		"  F1       - Help",
		"  F2       - Reload ROM",
		"  F3       - Load ROM",
		"  F5/SPACE - Pause",
		"  F6       - Step",
		"  F8       - Registers",
		"  F12      - Screenshot",
		"  [ ]      - Speed",
	} {
		e.logger.Info(line)
	}
}

/// logAssembly writes the disassembled instructions around the CHIP-8
/// program counter.
///
func (e *emulator) logAssembly() {
	start := e.vm.PC
	if start >= chip8.ProgramStart+6 {
		start -= 6
	}

	for i := uint16(0); i < 16; i += 2 {
		line := e.vm.Disassemble(start + i)
		if line == "" {
			break
		}

		if start+i == e.vm.PC {
			line = "> " + line
		} else {
			line = "  " + line
		}

		e.logger.Info(line)
	}
}

/// logRegisters writes the current value of all CHIP-8 registers.
///
func (e *emulator) logRegisters() {
	for _, line := range e.vm.Registers() {
		e.logger.Info(line)
	}
}

/// logTrace writes the most recently executed instructions.
///
func (e *emulator) logTrace() {
	if e.vm.Trace == nil {
		return
	}

	for _, line := range e.vm.Trace.Lines() {
		e.logger.Error(line)
	}
}

func (e *emulator) logSpeed() {
	e.logger.Info("Speed changed", log.String("speed", fmt.Sprintf("%d/s", e.vm.Speed)))
}

/// step executes a single instruction while paused.
///
func (e *emulator) step() {
	if e.vm.Halted() != nil {
		return
	}

	if err := e.vm.Step(); err != nil {
		e.halt(err)
		return
	}

	e.logAssembly()
}

/// halt reports the fault that stopped the machine.
///
func (e *emulator) halt(err error) {
	e.logger.Error("Emulation stopped", log.Err(err))
	e.logTrace()
	e.logRegisters()

	e.paused = true
	e.setTitle("halted")
}

/// reload the current ROM from disk.
///
func (e *emulator) reload() {
	if e.file == "" {
		return
	}

	if err := e.load(e.file); err != nil {
		e.logger.Error("Reloading ROM failed", log.Err(err))
	}
}
