package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestClearScreen(t *testing.T) {
	vm, _ := newTestVM(t, 0x00E0)
	vm.Video[0] = 1
	vm.Video[len(vm.Video)-1] = 1
	vm.Redraw = false

	assert.NoError(t, vm.Step())
	for _, p := range vm.Video {
		assert.Equal(t, byte(0), p)
	}
	assert.True(t, vm.Redraw)
	assert.Equal(t, uint16(0x202), vm.PC)
}

func TestDrawTwiceRestores(t *testing.T) {
	// draw the 0 glyph at 10,5 twice
	vm, _ := newTestVM(t, 0x600A, 0x6105, 0xA000, 0xD015, 0xD015)

	for i := 0; i < 3; i++ {
		assert.NoError(t, vm.Step())
	}
	vm.Redraw = false

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(0), vm.V[0xF])
	assert.True(t, vm.Redraw)

	// top row of the 0 glyph is 1111
	for x := 10; x < 14; x++ {
		assert.True(t, vm.Pixel(x, 5))
	}
	assert.False(t, vm.Pixel(14, 5))

	// middle rows are 1001
	assert.True(t, vm.Pixel(10, 6))
	assert.False(t, vm.Pixel(11, 6))
	assert.False(t, vm.Pixel(12, 6))
	assert.True(t, vm.Pixel(13, 6))

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(1), vm.V[0xF])
	for _, p := range vm.Video {
		assert.Equal(t, byte(0), p)
	}
	assert.Equal(t, uint16(0x20A), vm.PC)
}

func TestDrawCollision(t *testing.T) {
	vm, _ := newTestVM(t, 0xA000, 0xD011)

	// a lit pixel outside the sprite doesn't collide
	vm.Video[4] = 1
	vm.V[0xF] = 1

	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(0), vm.V[0xF])
	assert.True(t, vm.Pixel(4, 0))

	// a lit pixel under a set sprite bit does, and is turned off
	vm.PC = 0x202
	vm.Video = [Width * Height]byte{}
	vm.Video[2] = 1

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(1), vm.V[0xF])
	assert.False(t, vm.Pixel(2, 0))
	assert.True(t, vm.Pixel(0, 0))
	assert.True(t, vm.Pixel(1, 0))
	assert.True(t, vm.Pixel(3, 0))
}

func TestDrawFlagAsCoordinate(t *testing.T) {
	// VF holds the x coordinate, it is read before being cleared
	vm, _ := newTestVM(t, 0x6F03, 0x6E00, 0xA000, 0xDFE1)

	for i := 0; i < 4; i++ {
		assert.NoError(t, vm.Step())
	}

	assert.False(t, vm.Pixel(2, 0))
	for x := 3; x < 7; x++ {
		assert.True(t, vm.Pixel(x, 0))
	}
	assert.Equal(t, byte(0), vm.V[0xF])
}

func TestDrawZeroRows(t *testing.T) {
	vm, _ := newTestVM(t, 0xD010)
	vm.V[0xF] = 1

	assert.NoError(t, vm.Step())
	assert.Equal(t, byte(0), vm.V[0xF])
	for _, p := range vm.Video {
		assert.Equal(t, byte(0), p)
	}
}

// drawing the 0 glyph at 62,30 hangs off the right and bottom edges
var edgeProgram = []uint16{0x603E, 0x611E, 0xA000, 0xD015}

func TestDrawWrapEdges(t *testing.T) {
	vm, _ := newConfigVM(t, Config{Edges: WrapEdges}, edgeProgram...)

	for range edgeProgram {
		assert.NoError(t, vm.Step())
	}

	// top row wraps horizontally
	assert.True(t, vm.Pixel(62, 30))
	assert.True(t, vm.Pixel(63, 30))
	assert.True(t, vm.Pixel(0, 30))
	assert.True(t, vm.Pixel(1, 30))
	assert.False(t, vm.Pixel(2, 30))

	// third row wraps vertically to the top
	assert.True(t, vm.Pixel(62, 0))
	assert.False(t, vm.Pixel(63, 0))
	assert.False(t, vm.Pixel(0, 0))
	assert.True(t, vm.Pixel(1, 0))

	// last row lands on y=2
	assert.True(t, vm.Pixel(62, 2))
	assert.True(t, vm.Pixel(1, 2))
}

func TestDrawClipEdges(t *testing.T) {
	vm, _ := newConfigVM(t, Config{Edges: ClipEdges}, edgeProgram...)

	for range edgeProgram {
		assert.NoError(t, vm.Step())
	}

	assert.True(t, vm.Pixel(62, 30))
	assert.True(t, vm.Pixel(63, 30))
	assert.True(t, vm.Pixel(62, 31))
	assert.False(t, vm.Pixel(0, 30))
	assert.False(t, vm.Pixel(1, 30))
	assert.False(t, vm.Pixel(62, 0))
	assert.False(t, vm.Pixel(1, 0))
}

func TestDrawFaultEdges(t *testing.T) {
	vm, _ := newConfigVM(t, Config{Edges: FaultEdges}, edgeProgram...)
	vm.V[0xF] = 7

	for range edgeProgram[:3] {
		assert.NoError(t, vm.Step())
	}

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, byte(7), vm.V[0xF])
	for _, p := range vm.Video {
		assert.Equal(t, byte(0), p)
	}

	// a sprite that touches the bottom right corner still fits
	vm, _ = newConfigVM(t, Config{Edges: FaultEdges}, 0x6038, 0x611B, 0xA000, 0xD015)
	for i := 0; i < 4; i++ {
		assert.NoError(t, vm.Step())
	}
	assert.True(t, vm.Pixel(56, 27))
	assert.True(t, vm.Pixel(59, 31))
}

func TestDrawSpriteOutOfMemory(t *testing.T) {
	vm, _ := newTestVM(t, 0xAFFE, 0xD013)

	assert.NoError(t, vm.Step())

	err := vm.Step()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestParseEdges(t *testing.T) {
	tests := []struct {
		input    string
		expected Edges
	}{
		{"wrap", WrapEdges},
		{"CLIP", ClipEdges},
		{"Fault", FaultEdges},
	}

	for _, tt := range tests {
		edges, err := ParseEdges(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.expected, edges)
	}

	_, err := ParseEdges("bounce")
	assert.Error(t, err)

	assert.Equal(t, "clip", ClipEdges.String())
	assert.Equal(t, "Edges(9)", Edges(9).String())
}
