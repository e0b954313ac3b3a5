package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/faiface/mainthread"
	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

// emulator is the SDL front end driving a single virtual machine.
type emulator struct {
	opts   options
	logger *log.Logger

	/// The CHIP-8 virtual machine.
	///
	vm *chip8.CHIP_8

	/// The SDL Window and Renderer.
	///
	window   *sdl.Window
	renderer *sdl.Renderer
	screen   *screen

	/// The ROM file currently loaded.
	///
	file string

	/// True if pausing emulation (single stepping).
	///
	paused bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	logger := newLogger(opts.Debug || opts.Trace, opts.Quiet)
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
			os.Exit(2)
		}
		logger.Fatal(err.Error())
	}

	vm := chip8.New(opts.machineConfig(logger))

	if opts.Headless {
		if err := runHeadless(opts, logger, vm); err != nil {
			logger.Error("Emulation failed", log.Err(err))
			os.Exit(1)
		}
		return
	}

	e := &emulator{
		opts:   opts,
		logger: logger,
		vm:     vm,
		file:   opts.ROM,
	}

	// SDL must be driven from the main thread
	mainthread.Run(func() {
		mainthread.Call(func() {
			err = e.run()
		})
	})

	if err != nil {
		logger.Error("Emulator failed", log.Err(err))
		os.Exit(1)
	}
}

// run opens the window and loops until it is closed.
func (e *emulator) run() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer sdl.Quit()

	// keep pixels sharp when the screen is stretched
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	w := int32(chip8.Width * e.opts.Scale)
	h := int32(chip8.Height * e.opts.Scale)

	var err error
	if e.window, e.renderer, err = sdl.CreateWindowAndRenderer(w, h, sdl.WINDOW_SHOWN); err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer e.window.Destroy()
	defer e.renderer.Destroy()

	if e.screen, err = newScreen(e.renderer); err != nil {
		return err
	}
	defer e.screen.destroy()

	if e.file == "" {
		if !e.open() {
			return nil
		}
	} else if err := e.load(e.file); err != nil {
		return err
	}

	// set processor speed and refresh rate
	clock := time.NewTicker(time.Millisecond * 3)
	defer clock.Stop()
	frame := time.NewTicker(time.Second / 60)
	defer frame.Stop()

	// loop until window closed or user quit
	for e.processEvents() {
		select {
		case <-frame.C:
			e.refresh()
		case <-clock.C:
			e.process()
		}
	}

	return nil
}

// load a ROM file into the virtual machine.
func (e *emulator) load(file string) error {
	if err := e.vm.LoadFile(file); err != nil {
		return err
	}

	e.file = file
	e.paused = false
	e.setTitle("")

	e.logger.Info("Loaded ROM",
		log.String("file", file),
		log.Int("speed", int(e.vm.Speed)),
		log.String("edges", e.opts.Edges.String()))

	return nil
}

// open asks for a ROM file and loads it. It returns false if the user
// cancelled.
func (e *emulator) open() bool {
	for {
		file, err := dialog.File().Filter("CHIP-8 ROM", "ch8", "c8").Title("Load CHIP-8 ROM").Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				e.logger.Error("Opening file dialog failed", log.Err(err))
			}
			return false
		}

		if err := e.load(file); err != nil {
			e.logger.Error("Loading ROM failed", log.Err(err))
			continue
		}

		return true
	}
}

// process runs the virtual machine until it has caught up with the clock.
func (e *emulator) process() {
	if e.vm.Halted() != nil {
		return
	}

	if err := e.vm.Process(e.paused); err != nil {
		e.halt(err)
	}
}

// refresh redraws the window.
func (e *emulator) refresh() {
	if e.vm.Redraw {
		if err := e.screen.refresh(e.vm); err != nil {
			e.logger.Error("Updating screen failed", log.Err(err))
		}
		e.vm.Redraw = false
	}

	e.renderer.Clear()
	if err := e.screen.copy(e.renderer); err != nil {
		e.logger.Error("Copying screen failed", log.Err(err))
	}
	e.renderer.Present()
}

// reset reboots the loaded ROM.
func (e *emulator) reset(paused bool) {
	e.vm.Reset()
	e.paused = paused
	e.setTitle("")

	e.logger.Info("Reset", log.String("file", e.file))
}

// togglePause pauses or resumes emulation.
func (e *emulator) togglePause() {
	if e.vm.Halted() != nil {
		return
	}

	e.paused = !e.paused
	if e.paused {
		e.setTitle("paused")
	} else {
		e.setTitle("")
	}
}

func (e *emulator) setTitle(state string) {
	title := "CHIP-8"
	if e.file != "" {
		title += " - " + filepath.Base(e.file)
	}
	if state != "" {
		title += " [" + state + "]"
	}

	e.window.SetTitle(title)
}
