// Package video converts the CHIP-8 display into images and text.
package video

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/massung/chip-8/chip8"
	"golang.org/x/image/draw"
)

// Display is anything holding a CHIP-8 sized monochrome display.
type Display interface {
	Pixel(x, y int) bool
}

// Palette holds the unlit and lit pixel colors.
var Palette = color.Palette{
	color.RGBA{143, 145, 133, 255},
	color.RGBA{17, 29, 43, 255},
}

// Image returns the display as a paletted image, one image pixel per
// CHIP-8 pixel.
func Image(d Display) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, chip8.Width, chip8.Height), Palette)

	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			if d.Pixel(x, y) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}

	return img
}

// Render converts the display into dst, stretching it to fill the bounds
// of dst without filtering.
func Render(dst draw.Image, d Display) {
	src := Image(d)

	if dst.Bounds().Size() == src.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
		return
	}

	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// Scale returns the display as an RGBA image, each CHIP-8 pixel being a
// scale x scale square.
func Scale(d Display, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, chip8.Width*scale, chip8.Height*scale))
	Render(img, d)

	return img
}

// WritePNG encodes the display as a PNG image.
func WritePNG(w io.Writer, d Display, scale int) error {
	if err := png.Encode(w, Scale(d, scale)); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// WriteText writes the display as lines of text, using on and off for
// every lit and unlit pixel.
func WriteText(w io.Writer, d Display, on, off string) error {
	buf := bufio.NewWriter(w)

	for y := 0; y < chip8.Height; y++ {
		for x := 0; x < chip8.Width; x++ {
			if d.Pixel(x, y) {
				_, _ = buf.WriteString(on)
			} else {
				_, _ = buf.WriteString(off)
			}
		}
		_ = buf.WriteByte('\n')
	}

	return buf.Flush()
}
