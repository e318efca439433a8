package filter

import (
	"fmt"
	"math"

	"github.com/ironsheep/edge-explorer-mcp/internal/kernel"
	"github.com/ironsheep/edge-explorer-mcp/internal/raster"
)

// ApplyCanny produces a binary edge map from an image.
//
// Stages, each completing over the full buffer before the next begins:
//
//  1. Gaussian blur with the configured aperture and sigma. A blur aperture
//     of 1 skips the blur entirely.
//  2. Gradient magnitude and direction via the 3x3 Sobel pair.
//  3. Non-maximum suppression along the gradient direction, quantized to
//     four sectors.
//  4. Double threshold: magnitude strictly above upper is a strong edge,
//     strictly above lower is weak, the rest are suppressed. The strict
//     comparison keeps zero-gradient pixels out even at a threshold of 0.
//  5. Hysteresis: weak edges 8-connected to a strong edge (directly or
//     through other promoted weak edges) are promoted; the rest are dropped.
//
// Every output sample is 0 or 255. params must already have passed
// Validate(Canny, params).
func ApplyCanny(img *raster.Buffer, params Params) (*raster.Buffer, error) {
	width, height := img.Width, img.Height
	plane := img.Gray()

	if params.BlurKernelSize > 1 {
		g, err := kernel.Gaussian(params.BlurKernelSize, params.Sigma)
		if err != nil {
			return nil, fmt.Errorf("failed to build blur kernel: %w", err)
		}
		plane = convolve(plane, width, height, g)
	}

	kx, ky, err := kernel.Sobel(3, kernel.DirBoth)
	if err != nil {
		return nil, fmt.Errorf("failed to build sobel kernel: %w", err)
	}
	gx := convolve(plane, width, height, kx)
	gy := convolve(plane, width, height, ky)

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for i := range magnitude {
		magnitude[i] = math.Sqrt(gx[i]*gx[i] + gy[i]*gy[i])
		direction[i] = math.Atan2(gy[i], gx[i])
	}

	suppressed := suppressNonMaxima(magnitude, direction, width, height)

	edges := hysteresis(suppressed, width, height,
		float64(params.LowerThreshold), float64(params.UpperThreshold))

	return raster.New(width, height, edges)
}

// suppressNonMaxima thins gradient ridges to single-pixel width by zeroing
// every pixel that is not a local maximum along its gradient direction. The
// one-pixel border is zeroed; a border pixel has no complete neighbor pair
// to compare against.
func suppressNonMaxima(magnitude, direction []float64, width, height int) []float64 {
	out := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]

			// Quantize the angle to 4 sectors over [0, 180).
			angle := direction[i] * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var n1, n2 float64
			switch {
			case angle < 22.5 || angle >= 157.5: // horizontal gradient
				n1 = magnitude[i-1]
				n2 = magnitude[i+1]
			case angle < 67.5: // rising diagonal
				n1 = magnitude[i-width+1]
				n2 = magnitude[i+width-1]
			case angle < 112.5: // vertical gradient
				n1 = magnitude[i-width]
				n2 = magnitude[i+width]
			default: // falling diagonal
				n1 = magnitude[i-width-1]
				n2 = magnitude[i+width+1]
			}

			if mag >= n1 && mag >= n2 {
				out[i] = mag
			}
		}
	}
	return out
}

// hysteresis classifies suppressed magnitudes against the double threshold
// and promotes weak edges reachable from strong ones through 8-connected
// chains. Promotion walks a queue seeded with the strong edges, so a weak
// edge any distance from a strong edge survives as long as the chain is
// unbroken.
func hysteresis(suppressed []float64, width, height int, lower, upper float64) []float64 {
	const (
		none   = 0
		weak   = 1
		strong = 2
	)

	class := make([]uint8, width*height)
	queue := make([]int, 0, width)
	for i, v := range suppressed {
		// Strictly above, not at: a lower threshold of 0 must still leave
		// flat zero-gradient regions suppressed.
		switch {
		case v > upper:
			class[i] = strong
			queue = append(queue, i)
		case v > lower:
			class[i] = weak
		}
	}

	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x := i % width
		y := i / width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				n := ny*width + nx
				if class[n] == weak {
					class[n] = strong
					queue = append(queue, n)
				}
			}
		}
	}

	out := make([]float64, width*height)
	for i, c := range class {
		if c == strong {
			out[i] = 255
		}
	}
	return out
}
