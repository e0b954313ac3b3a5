package chip8

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"
)

const (
	/// MemorySize is the number of addressable bytes.
	///
	MemorySize = 0x1000

	/// ProgramStart is where programs are loaded and execution begins.
	///
	ProgramStart = 0x200

	/// MaxProgramSize is the largest program that fits in memory.
	///
	MaxProgramSize = MemorySize - ProgramStart

	/// Width and Height of the display in pixels.
	///
	Width  = 64
	Height = 32

	/// StackSize is the maximum depth of nested subroutine calls.
	///
	StackSize = 32

	/// DefaultSpeed is the number of instructions per second executed
	/// by Process when no speed is configured.
	///
	DefaultSpeed = 700

	minSpeed  = 100
	maxSpeed  = 5000
	speedStep = 100
)

/// Config holds the optional settings of a CHIP-8 virtual machine. The
/// zero value is a valid configuration.
///
type Config struct {
	/// Edges selects what happens to sprite pixels drawn off screen.
	///
	Edges Edges

	/// Seed for the random number generator. Zero seeds from the clock.
	///
	Seed int64

	/// Speed in instructions per second used by Process.
	///
	Speed int64

	/// Clock returns the current time. Defaults to time.Now.
	///
	Clock func() time.Time

	/// Logger receives executed instructions at debug level and faults
	/// at error level. May be nil.
	///
	Logger *log.Logger

	/// TraceDepth is the number of executed instructions remembered for
	/// post-mortem inspection. Zero disables tracing.
	///
	TraceDepth int
}

/// CHIP_8 virtual machine emulator.
///
type CHIP_8 struct {
	/// Memory addressable by CHIP-8. The first 80 bytes hold the font
	/// sprites and programs are loaded at 0x200.
	///
	Memory [MemorySize]byte

	/// Video memory for CHIP-8 (64x32). Each byte is a single pixel that
	/// is either 0 or 1, stored row-major.
	///
	Video [Width * Height]byte

	/// PC is the program counter. All programs begin at 0x200.
	///
	PC uint16

	/// SP is the number of return addresses on the stack.
	///
	SP uint

	/// Stack of return addresses saved by CALL.
	///
	Stack [StackSize]uint16

	/// I is the address register.
	///
	I uint16

	/// V are the 16 virtual registers. VF doubles as the flag register.
	///
	V [16]byte

	/// DT and ST are the delay and sound timers, counting down at 60 Hz.
	///
	DT byte
	ST byte

	/// Keys hold the current state for the 16-key pad keys.
	///
	Keys [16]bool

	/// Redraw is set whenever the display changes. The consumer clears it
	/// once the display has been refreshed.
	///
	Redraw bool

	/// Speed is the number of instructions per second executed by Process.
	///
	Speed int64

	/// Clock is the time when emulation began.
	///
	Clock time.Time

	/// Cycles is how many instructions have been executed since Clock.
	///
	Cycles int64

	/// Trace holds the most recently executed instructions, or nil.
	///
	Trace *Trace

	program  []byte
	lastTick time.Time
	fault    error

	edges  Edges
	now    func() time.Time
	rng    *rand.Rand
	logger *log.Logger
}

/// New creates a CHIP-8 virtual machine with an empty program.
///
func New(cfg Config) *CHIP_8 {
	vm := &CHIP_8{
		Speed:  cfg.Speed,
		edges:  cfg.Edges,
		now:    cfg.Clock,
		logger: cfg.Logger,
	}

	if vm.Speed <= 0 {
		vm.Speed = DefaultSpeed
	}
	if vm.now == nil {
		vm.now = time.Now
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	vm.rng = rand.New(rand.NewSource(seed))

	if cfg.TraceDepth > 0 {
		vm.Trace = NewTrace(cfg.TraceDepth)
	}

	vm.Reset()

	return vm
}

/// Load a program into memory at 0x200 and reset the machine.
///
func (vm *CHIP_8) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, %d available", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	vm.program = append(vm.program[:0], program...)
	vm.Reset()

	return nil
}

/// LoadFile reads a ROM file and loads it.
///
func (vm *CHIP_8) LoadFile(file string) error {
	program, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	return vm.Load(program)
}

/// Reset the CHIP-8 virtual machine and reload the current program.
///
func (vm *CHIP_8) Reset() {
	vm.Memory = [MemorySize]byte{}

	// font sprites live at the start of memory
	copy(vm.Memory[:], Font[:])
	copy(vm.Memory[ProgramStart:], vm.program)

	// reset video memory and keys
	vm.Video = [Width * Height]byte{}
	vm.Keys = [16]bool{}
	vm.Redraw = true

	// reset program counter and stack
	vm.PC = ProgramStart
	vm.SP = 0
	vm.Stack = [StackSize]uint16{}

	// reset address and virtual registers
	vm.I = 0
	vm.V = [16]byte{}

	// reset timer registers
	vm.DT = 0
	vm.ST = 0

	// reset the clock and cycles executed
	vm.Clock = vm.now()
	vm.lastTick = vm.Clock
	vm.Cycles = 0

	vm.fault = nil

	if vm.Trace != nil {
		vm.Trace.Reset()
	}
}

/// Halted returns the fault that stopped the machine, or nil if it is
/// still able to run.
///
func (vm *CHIP_8) Halted() error {
	return vm.fault
}

/// PressKey emulates a CHIP-8 key being pressed.
///
func (vm *CHIP_8) PressKey(key uint) {
	if key < 16 {
		vm.Keys[key] = true
	}
}

/// ReleaseKey emulates a CHIP-8 key being released.
///
func (vm *CHIP_8) ReleaseKey(key uint) {
	if key < 16 {
		vm.Keys[key] = false
	}
}

/// Pixel returns true if the pixel at x, y is lit. Coordinates off
/// screen are never lit.
///
func (vm *CHIP_8) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= Width || y >= Height {
		return false
	}

	return vm.Video[y*Width+x] != 0
}

/// IncSpeed increases the number of instructions executed per second.
///
func (vm *CHIP_8) IncSpeed() {
	vm.setSpeed(vm.Speed + speedStep)
}

/// DecSpeed decreases the number of instructions executed per second.
///
func (vm *CHIP_8) DecSpeed() {
	vm.setSpeed(vm.Speed - speedStep)
}

func (vm *CHIP_8) setSpeed(speed int64) {
	if speed < minSpeed {
		speed = minSpeed
	}
	if speed > maxSpeed {
		speed = maxSpeed
	}

	vm.Speed = speed

	// restart the clock so Process doesn't try to catch up
	vm.Clock = vm.now()
	vm.Cycles = 0
}
