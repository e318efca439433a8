package filter

import (
	"fmt"
	"math"

	"github.com/ironsheep/edge-explorer-mcp/internal/kernel"
	"github.com/ironsheep/edge-explorer-mcp/internal/raster"
)

// ApplySobel computes the Sobel gradient response of an image.
//
// The gradient is taken along the axis selected by params.Direction; for
// DirBoth the response is the magnitude sqrt(Gx²+Gy²), for a single axis it
// is the absolute gradient. The response is linearly rescaled so the minimum
// maps to 0 and the maximum to 255; a flat image yields an all-zero buffer.
//
// params must already have passed Validate(Sobel, params).
func ApplySobel(img *raster.Buffer, params Params) (*raster.Buffer, error) {
	kx, ky, err := kernel.Sobel(params.KernelSize, params.Direction)
	if err != nil {
		return nil, fmt.Errorf("failed to build sobel kernel: %w", err)
	}

	response := sobelResponse(img, kx, ky)
	normalize(response)
	return raster.New(img.Width, img.Height, response)
}

// ApplyLaplacian convolves an image with the discrete Laplacian of the given
// aperture, takes the absolute response, and rescales it to 0-255.
//
// params must already have passed Validate(Laplacian, params).
func ApplyLaplacian(img *raster.Buffer, params Params) (*raster.Buffer, error) {
	k, err := kernel.Laplacian(params.KernelSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build laplacian kernel: %w", err)
	}

	response := convolve(img.Gray(), img.Width, img.Height, k)
	for i, v := range response {
		response[i] = math.Abs(v)
	}
	normalize(response)
	return raster.New(img.Width, img.Height, response)
}

// sobelResponse computes the per-pixel gradient response for the kernels
// present: magnitude when both are given, absolute gradient otherwise.
func sobelResponse(img *raster.Buffer, kx, ky *kernel.Kernel) []float64 {
	plane := img.Gray()
	var gx, gy []float64
	if kx != nil {
		gx = convolve(plane, img.Width, img.Height, kx)
	}
	if ky != nil {
		gy = convolve(plane, img.Width, img.Height, ky)
	}

	response := make([]float64, img.Width*img.Height)
	switch {
	case gx != nil && gy != nil:
		for i := range response {
			response[i] = math.Sqrt(gx[i]*gx[i] + gy[i]*gy[i])
		}
	case gx != nil:
		for i := range response {
			response[i] = math.Abs(gx[i])
		}
	default:
		for i := range response {
			response[i] = math.Abs(gy[i])
		}
	}
	return response
}

// convolve applies a kernel to a luminance plane with replicate-edge padding
// and returns a new plane of the same size.
func convolve(plane []float64, width, height int, k *kernel.Kernel) []float64 {
	out := make([]float64, width*height)
	halfW := k.Width / 2
	halfH := k.Height / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for ky := 0; ky < k.Height; ky++ {
				py := clamp(y+ky-halfH, 0, height-1)
				for kx := 0; kx < k.Width; kx++ {
					px := clamp(x+kx-halfW, 0, width-1)
					sum += plane[py*width+px] * k.At(kx, ky)
				}
			}
			out[y*width+x] = sum
		}
	}
	return out
}

// normalize linearly rescales a plane in place so min maps to 0 and max to
// 255. A constant plane becomes all zeros.
func normalize(plane []float64) {
	lo, hi := plane[0], plane[0]
	for _, v := range plane[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		for i := range plane {
			plane[i] = 0
		}
		return
	}
	scale := 255 / (hi - lo)
	for i := range plane {
		plane[i] = (plane[i] - lo) * scale
	}
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
