package chip8

import "time"

/// TimerPeriod is how often the delay and sound timers count down.
///
const TimerPeriod = time.Second / 60

/// tick counts both timers down once if a timer period has passed since
/// they were last decremented. Timers stop at zero.
///
func (vm *CHIP_8) tick() {
	now := vm.now()

	if now.Sub(vm.lastTick) < TimerPeriod {
		return
	}

	if vm.DT > 0 {
		vm.DT--
	}
	if vm.ST > 0 {
		vm.ST--
	}

	vm.lastTick = now
}

/// Process CHIP-8 emulation. This will execute until the clock is caught
/// up with the configured speed. While paused, cycles are counted without
/// stepping so that resuming doesn't run a burst of instructions.
///
func (vm *CHIP_8) Process(paused bool) error {
	elapsed := vm.now().Sub(vm.Clock)

	// calculate how many cycles should have been executed
	count := int64(elapsed) * vm.Speed / int64(time.Second)

	if paused {
		vm.Cycles = count
		return nil
	}

	for vm.Cycles < count {
		if err := vm.Step(); err != nil {
			return err
		}
	}

	return nil
}
