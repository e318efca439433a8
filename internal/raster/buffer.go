package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrUnsupportedImage reports a buffer that cannot enter the pipeline:
// zero-sized, or with a channel count other than 1 or 3.
var ErrUnsupportedImage = errors.New("unsupported image")

// Buffer is an immutable 2D grid of 8-bit intensity samples.
//
// Channels is 1 (grayscale) or 3 (color). Pix holds Channels bytes per pixel
// in row-major order, top-left origin. The grayscale plane is derived once at
// construction and cached; filters read the plane and never write to a Buffer.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8

	gray []float64 // cached luminance plane, 0..255
}

// New creates a grayscale Buffer from a float64 luminance plane.
//
// Values are clamped to [0,255] and rounded to the nearest integer. The plane
// must hold width*height samples.
func New(width, height int, plane []float64) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrUnsupportedImage, width, height)
	}
	if len(plane) != width*height {
		return nil, fmt.Errorf("plane length %d does not match %dx%d", len(plane), width, height)
	}
	pix := make([]uint8, width*height)
	gray := make([]float64, width*height)
	for i, v := range plane {
		pix[i] = clampByte(v)
		gray[i] = float64(pix[i])
	}
	return &Buffer{Width: width, Height: height, Channels: 1, Pix: pix, gray: gray}, nil
}

// FromImage builds a Buffer from a decoded image.
//
// Color images become 3-channel Buffers; *image.Gray sources stay single
// channel. The grayscale plane is computed with BT.601 luminance weights
// (0.299*R + 0.587*G + 0.114*B), matching the conversion every filter
// expects.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrUnsupportedImage, width, height)
	}

	if g, ok := img.(*image.Gray); ok {
		buf := &Buffer{
			Width:    width,
			Height:   height,
			Channels: 1,
			Pix:      make([]uint8, width*height),
			gray:     make([]float64, width*height),
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				v := g.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y
				buf.Pix[y*width+x] = v
				buf.gray[y*width+x] = float64(v)
			}
		}
		return buf, nil
	}

	buf := &Buffer{
		Width:    width,
		Height:   height,
		Channels: 3,
		Pix:      make([]uint8, width*height*3),
		gray:     make([]float64, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			i := (y*width + x) * 3
			buf.Pix[i] = r8
			buf.Pix[i+1] = g8
			buf.Pix[i+2] = b8
			buf.gray[y*width+x] = 0.299*float64(r8) + 0.587*float64(g8) + 0.114*float64(b8)
		}
	}
	return buf, nil
}

// Gray returns the cached luminance plane in row-major order, values 0..255.
//
// The returned slice is shared; callers must treat it as read-only.
func (b *Buffer) Gray() []float64 {
	return b.gray
}

// GrayAt returns the luminance at (x, y) with replicate-edge padding:
// out-of-bounds coordinates are clamped to the nearest in-bounds pixel.
func (b *Buffer) GrayAt(x, y int) float64 {
	if x < 0 {
		x = 0
	} else if x >= b.Width {
		x = b.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= b.Height {
		y = b.Height - 1
	}
	return b.gray[y*b.Width+x]
}

// ToImage converts the Buffer to a standard library image for encoding or
// handoff to a rendering surface.
func (b *Buffer) ToImage() image.Image {
	if b.Channels == 1 {
		img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
		copy(img.Pix, b.Pix)
		return img
	}
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for p := 0; p < b.Width*b.Height; p++ {
		src := p * 3
		dst := p * 4
		img.Pix[dst] = b.Pix[src]
		img.Pix[dst+1] = b.Pix[src+1]
		img.Pix[dst+2] = b.Pix[src+2]
		img.Pix[dst+3] = 255
	}
	return img
}

// At returns the pixel at (x, y) as a color. Coordinates must be in bounds.
func (b *Buffer) At(x, y int) color.Color {
	if b.Channels == 1 {
		return color.Gray{Y: b.Pix[y*b.Width+x]}
	}
	i := (y*b.Width + x) * 3
	return color.RGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: 255}
}

// Equal reports whether two Buffers have identical dimensions, channel
// counts, and samples.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil || b.Width != other.Width || b.Height != other.Height || b.Channels != other.Channels {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
