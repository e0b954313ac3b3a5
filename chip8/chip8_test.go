package chip8

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2020, 1, 7, 2, 16, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// newTestVM returns a machine with the instruction words loaded at 0x200
// and a clock that only moves when the test advances it.
func newTestVM(t *testing.T, words ...uint16) (*CHIP_8, *fakeClock) {
	t.Helper()

	return newConfigVM(t, Config{Seed: 1}, words...)
}

// newConfigVM is newTestVM with an explicit configuration. The clock of
// the configuration is always replaced by a fake one.
func newConfigVM(t *testing.T, cfg Config, words ...uint16) (*CHIP_8, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	cfg.Clock = clock.Now
	vm := New(cfg)

	program := make([]byte, 0, len(words)*2)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}
	assert.NoError(t, vm.Load(program))

	return vm, clock
}

func TestNew(t *testing.T) {
	vm := New(Config{})

	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, uint(0), vm.SP)
	assert.Equal(t, uint16(0), vm.I)
	assert.Equal(t, byte(0), vm.DT)
	assert.Equal(t, byte(0), vm.ST)
	assert.Equal(t, int64(DefaultSpeed), vm.Speed)
	assert.True(t, vm.Trace == nil)
	assert.NoError(t, vm.Halted())

	for i, b := range Font {
		assert.Equal(t, b, vm.Memory[i])
	}
	for i := len(Font); i < MemorySize; i++ {
		assert.Equal(t, byte(0), vm.Memory[i])
	}
	for _, p := range vm.Video {
		assert.Equal(t, byte(0), p)
	}
}

func TestFontLayout(t *testing.T) {
	// every glyph is 5 rows, 4 pixels wide
	for digit := 0; digit < 16; digit++ {
		for row := 0; row < 5; row++ {
			assert.Equal(t, byte(0), Font[digit*5+row]&0x0F)
		}
	}

	// 0 is a closed box
	assert.Equal(t, byte(0xF0), Font[0])
	assert.Equal(t, byte(0x90), Font[1])
	assert.Equal(t, byte(0xF0), Font[4])
}

func TestLoad(t *testing.T) {
	vm, _ := newTestVM(t, 0x6142)

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(0x42), vm.V[1])

	// dirty the machine, then load a new program
	vm.I = 0x300
	vm.DT = 9
	vm.Video[10] = 1
	vm.PressKey(3)
	vm.Memory[0x300] = 0xAA

	assert.NoError(t, vm.Load([]byte{0x12, 0x34}))
	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, uint16(0), vm.I)
	assert.Equal(t, byte(0), vm.V[1])
	assert.Equal(t, byte(0), vm.DT)
	assert.Equal(t, byte(0), vm.Video[10])
	assert.False(t, vm.Keys[3])
	assert.Equal(t, byte(0), vm.Memory[0x300])
	assert.Equal(t, byte(0x12), vm.Memory[0x200])
	assert.Equal(t, byte(0x34), vm.Memory[0x201])
	assert.Equal(t, byte(0), vm.Memory[0x202])
	assert.Equal(t, Font[0], vm.Memory[0])
}

func TestLoadTooLarge(t *testing.T) {
	vm, _ := newTestVM(t, 0x6142)

	err := vm.Load(make([]byte, MaxProgramSize+1))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrProgramTooLarge))

	// the machine is untouched
	assert.Equal(t, byte(0x61), vm.Memory[0x200])

	// the largest program fills memory exactly
	program := make([]byte, MaxProgramSize)
	program[len(program)-1] = 0xEE
	assert.NoError(t, vm.Load(program))
	assert.Equal(t, byte(0xEE), vm.Memory[MemorySize-1])
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(file, []byte{0x00, 0xE0}, 0o644))

	vm := New(Config{})
	assert.NoError(t, vm.LoadFile(file))
	assert.Equal(t, byte(0xE0), vm.Memory[0x201])

	err := vm.LoadFile(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	vm, _ := newTestVM(t, 0x6042, 0xA300, 0xF055)

	for i := 0; i < 3; i++ {
		assert.NoError(t, vm.Step())
	}
	assert.Equal(t, byte(0x42), vm.Memory[0x300])

	vm.Reset()

	// program memory is restored, scratch memory is cleared
	assert.Equal(t, uint16(ProgramStart), vm.PC)
	assert.Equal(t, byte(0x60), vm.Memory[0x200])
	assert.Equal(t, byte(0), vm.Memory[0x300])
	assert.Equal(t, byte(0), vm.V[0])
	assert.Equal(t, int64(0), vm.Cycles)
}

func TestKeys(t *testing.T) {
	vm := New(Config{})

	vm.PressKey(0xA)
	assert.True(t, vm.Keys[0xA])

	vm.ReleaseKey(0xA)
	assert.False(t, vm.Keys[0xA])

	// out of range keys are ignored
	vm.PressKey(16)
	vm.ReleaseKey(99)
	for _, k := range vm.Keys {
		assert.False(t, k)
	}
}

func TestPixel(t *testing.T) {
	vm := New(Config{})
	vm.Video[2*Width+5] = 1

	assert.True(t, vm.Pixel(5, 2))
	assert.False(t, vm.Pixel(2, 5))
	assert.False(t, vm.Pixel(-1, 0))
	assert.False(t, vm.Pixel(Width, 0))
	assert.False(t, vm.Pixel(0, Height))
}

func TestSpeed(t *testing.T) {
	vm := New(Config{Speed: 200})
	assert.Equal(t, int64(200), vm.Speed)

	vm.IncSpeed()
	assert.Equal(t, int64(300), vm.Speed)

	vm.DecSpeed()
	vm.DecSpeed()
	vm.DecSpeed()
	assert.Equal(t, int64(minSpeed), vm.Speed)

	vm.Speed = maxSpeed
	vm.IncSpeed()
	assert.Equal(t, int64(maxSpeed), vm.Speed)
}
