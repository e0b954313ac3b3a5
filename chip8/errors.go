package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedOpcode is returned for instructions the interpreter
	// doesn't execute.
	ErrUnsupportedOpcode = errors.New("unsupported opcode")

	// ErrStackOverflow is returned when calling with a full stack.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrOutOfBounds is returned when an address or coordinate falls
	// outside of memory or the display.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrProgramTooLarge is returned when loading a program that doesn't
	// fit in memory.
	ErrProgramTooLarge = errors.New("program too large")
)

// Fault halts the machine. It records where execution stopped and why.
type Fault struct {
	// Address of the faulting instruction.
	Address uint16

	// Opcode is the faulting instruction, zero if it couldn't be fetched.
	Opcode uint16

	Err error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%04X - %04X: %v", f.Address, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
