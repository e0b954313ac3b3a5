package chip8

import (
	"fmt"
	"strings"
)

/// Edges is the policy for sprite pixels that fall off the display.
///
type Edges int

const (
	/// WrapEdges wraps pixels around to the opposite edge.
	///
	WrapEdges Edges = iota

	/// ClipEdges drops pixels that are off screen.
	///
	ClipEdges

	/// FaultEdges halts the machine when a sprite doesn't fit on screen.
	///
	FaultEdges
)

var edgeNames = [...]string{
	WrapEdges:  "wrap",
	ClipEdges:  "clip",
	FaultEdges: "fault",
}

func (e Edges) String() string {
	if e < 0 || int(e) >= len(edgeNames) {
		return fmt.Sprintf("Edges(%d)", int(e))
	}
	return edgeNames[e]
}

/// ParseEdges converts the name of an edge policy to its value.
///
func ParseEdges(s string) (Edges, error) {
	for e, name := range edgeNames {
		if strings.EqualFold(s, name) {
			return Edges(e), nil
		}
	}

	return WrapEdges, fmt.Errorf("unsupported edge policy '%s'", s)
}

/// draw a sprite at I to video memory at vx, vy. Each sprite row is
/// combined with the display by exclusive-or, VF is set if any lit pixel
/// was turned off.
///
func (vm *CHIP_8) drw(x, y, n byte) error {
	if err := vm.checkRange(vm.I, uint16(n)); err != nil {
		return err
	}

	// read the coordinates before VF is cleared, x or y may be VF
	ox, oy := int(vm.V[x]), int(vm.V[y])

	if vm.edges == FaultEdges && n > 0 && (ox+8 > Width || oy+int(n) > Height) {
		return fmt.Errorf("%w: %dx%d sprite at %d,%d", ErrOutOfBounds, 8, n, ox, oy)
	}

	vm.V[0xF] = 0

	for i, s := range vm.Memory[vm.I : vm.I+uint16(n)] {
		for j := 0; j < 8; j++ {
			if s&(0x80>>j) == 0 {
				continue
			}

			px, py, ok := vm.clip(ox+j, oy+i)
			if !ok {
				continue
			}

			p := &vm.Video[py*Width+px]

			// collision if the pixel is turned off
			if *p != 0 {
				vm.V[0xF] = 1
			}

			*p ^= 1
		}
	}

	vm.Redraw = true

	return nil
}

/// clip maps a pixel to the display according to the edge policy. It
/// returns false if the pixel isn't drawn.
///
func (vm *CHIP_8) clip(x, y int) (int, int, bool) {
	if vm.edges == WrapEdges {
		return x % Width, y % Height, true
	}

	return x, y, x < Width && y < Height
}
