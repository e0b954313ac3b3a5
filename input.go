package main

import (
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// processEvents from SDL and map keys to the CHIP-8 VM. Returns false
/// once the user quits.
///
func (e *emulator) processEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch ev := event.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			key, mapped := KeyMap[ev.Keysym.Scancode]

			if ev.Type == sdl.KEYUP {
				if mapped {
					e.vm.ReleaseKey(key)
				}
				continue
			}

			if mapped {
				e.vm.PressKey(key)
				continue
			}

			// emulation keys don't auto-repeat
			if ev.Repeat != 0 {
				continue
			}

			if !e.emulationKey(ev.Keysym) {
				return false
			}
		}
	}

	return true
}

// emulationKey handles a key not mapped to the CHIP-8 keypad. Returns
// false if the key quits.
func (e *emulator) emulationKey(sym sdl.Keysym) bool {
	switch sym.Scancode {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_BACKSPACE:
		// holding control during reset will reboot paused
		e.reset(sym.Mod&sdl.KMOD_CTRL != 0)
	case sdl.SCANCODE_F1, sdl.SCANCODE_H:
		e.logHelp()
	case sdl.SCANCODE_F2:
		e.reload()
	case sdl.SCANCODE_F3:
		e.open()
	case sdl.SCANCODE_LEFTBRACKET:
		e.vm.DecSpeed()
		e.logSpeed()
	case sdl.SCANCODE_RIGHTBRACKET:
		e.vm.IncSpeed()
		e.logSpeed()
	case sdl.SCANCODE_F5, sdl.SCANCODE_SPACE:
		e.togglePause()
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if e.paused {
			e.step()
		}
	case sdl.SCANCODE_F8:
		e.logRegisters()
	case sdl.SCANCODE_F12:
		e.screenshot()
	}

	return true
}
