package raster

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Export encodes a Buffer to disk. The encoding is chosen from the target
// file extension: .png, .jpg/.jpeg (quality 95), or .bmp.
func Export(buf *Buffer, path string) error {
	var encoder imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encoder = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		encoder = imgio.JPEGEncoder(95)
	case ".bmp":
		encoder = imgio.BMPEncoder()
	default:
		return fmt.Errorf("unsupported export format: %s", filepath.Ext(path))
	}

	if err := imgio.Save(path, buf.ToImage(), encoder); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// ScaleForDisplay resizes an image to fit within a display box while
// preserving aspect ratio. A small image grows to fill the box and a large
// one shrinks, so on-screen sizing stays consistent. The result is at least
// 1x1.
func ScaleForDisplay(img image.Image, displayW, displayH int) image.Image {
	if displayW < 1 {
		displayW = 1
	}
	if displayH < 1 {
		displayH = 1
	}

	b := img.Bounds()
	scale := min(float64(displayW)/float64(b.Dx()), float64(displayH)/float64(b.Dy()))
	if scale <= 0 {
		scale = 1.0
	}

	newW := int(float64(b.Dx()) * scale)
	newH := int(float64(b.Dy()) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	return imaging.Resize(img, newW, newH, imaging.Lanczos)
}

// Overlay tints the pixels marked in a binary edge map over the source image.
//
// edges must be a single-channel map with the same dimensions as src; any
// sample above 127 counts as an edge. tintHex is a "#RRGGBB" color and
// strength in (0,1] controls the blend toward the tint (1 paints the edge
// pixels in the pure tint color).
func Overlay(src, edges *Buffer, tintHex string, strength float64) (image.Image, error) {
	if edges.Channels != 1 {
		return nil, fmt.Errorf("edge map must be single-channel, got %d channels", edges.Channels)
	}
	if src.Width != edges.Width || src.Height != edges.Height {
		return nil, fmt.Errorf("edge map %dx%d does not match source %dx%d",
			edges.Width, edges.Height, src.Width, src.Height)
	}

	tint, err := colorful.Hex(tintHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tint color: %w", err)
	}
	if strength <= 0 || strength > 1 {
		return nil, fmt.Errorf("overlay strength %g outside (0,1]", strength)
	}

	out := image.NewRGBA(image.Rect(0, 0, src.Width, src.Height))
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			c := src.At(x, y)
			if edges.Pix[y*edges.Width+x] > 127 {
				base, _ := colorful.MakeColor(opaque(c))
				blended := base.BlendRgb(tint, strength).Clamped()
				r, g, b := blended.RGB255()
				c = color.RGBA{R: r, G: g, B: b, A: 255}
			}
			out.Set(x, y, c)
		}
	}
	return out, nil
}

// opaque strips alpha so colorful.MakeColor never sees a transparent pixel.
func opaque(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}
}
