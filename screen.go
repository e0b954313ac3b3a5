package main

import (
	"fmt"
	"image"

	"github.com/massung/chip-8/chip8"
	"github.com/massung/chip-8/video"
	"github.com/veandco/go-sdl2/sdl"
)

/// screen is the streaming texture holding the CHIP-8 video memory.
///
type screen struct {
	texture *sdl.Texture
	img     *image.RGBA
}

/// newScreen creates the texture for the CHIP-8 video memory.
///
func newScreen(renderer *sdl.Renderer) (*screen, error) {
	texture, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGBA32), sdl.TEXTUREACCESS_STREAMING, chip8.Width, chip8.Height)
	if err != nil {
		return nil, fmt.Errorf("creating screen texture: %w", err)
	}

	return &screen{
		texture: texture,
		img:     image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height)),
	}, nil
}

/// refresh the texture with the CHIP-8 video memory.
///
func (s *screen) refresh(d video.Display) error {
	video.Render(s.img, d)

	return s.texture.Update(nil, s.img.Pix, s.img.Stride)
}

/// copy the texture to the render target, stretched to fit.
///
func (s *screen) copy(renderer *sdl.Renderer) error {
	return renderer.Copy(s.texture, nil, nil)
}

func (s *screen) destroy() {
	s.texture.Destroy()
}
