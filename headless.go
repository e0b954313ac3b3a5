package main

import (
	"fmt"
	"os"
	"time"

	"github.com/massung/chip-8/chip8"
	"github.com/massung/chip-8/video"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// runHeadless runs the ROM for a number of instructions without a window
// and prints the display to stdout.
func runHeadless(opts options, logger *log.Logger, vm *chip8.CHIP_8) error {
	if err := vm.LoadFile(opts.ROM); err != nil {
		return err
	}

	logger.Debug("Running headless",
		log.String("file", opts.ROM),
		log.Int("steps", opts.Steps))

	var runErr error
	for i := 0; i < opts.Steps && runErr == nil; i++ {
		runErr = vm.Step()
	}

	on, off := textPixels(int(os.Stdout.Fd()))
	if err := video.WriteText(os.Stdout, vm, on, off); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}

	if opts.Screenshot != "" {
		if err := saveScreenshot(opts.Screenshot, vm, opts.Scale); err != nil {
			return err
		}
		logger.Info("Saved screenshot", log.String("file", opts.Screenshot))
	}

	if runErr != nil {
		if vm.Trace != nil {
			for _, line := range vm.Trace.Lines() {
				logger.Error(line)
			}
		}
		return runErr
	}

	return nil
}

// textPixels returns the strings used for lit and unlit pixels. Terminals
// get block characters, doubled when wide enough to keep the aspect ratio.
func textPixels(fd int) (string, string) {
	if !term.IsTerminal(fd) {
		return "#", "."
	}

	if w, _, err := term.GetSize(fd); err == nil && w >= 2*chip8.Width {
		return "██", "  "
	}
	return "█", " "
}

// screenshotName returns a file name for a screenshot taken at t.
func screenshotName(t time.Time) string {
	return fmt.Sprintf("chip8-%s.png", t.Format("20060102-150405"))
}

// saveScreenshot writes the display to a PNG file.
func saveScreenshot(name string, d video.Display, scale int) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating screenshot: %w", err)
	}

	if err := video.WritePNG(f, d, scale); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// screenshot saves the window contents.
func (e *emulator) screenshot() {
	name := e.opts.Screenshot
	if name == "" {
		name = screenshotName(time.Now())
	}

	if err := saveScreenshot(name, e.vm, e.opts.Scale); err != nil {
		e.logger.Error("Saving screenshot failed", log.Err(err))
		return
	}

	e.logger.Info("Saved screenshot", log.String("file", name))
}
