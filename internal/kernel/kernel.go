// Package kernel constructs the discrete convolution kernels used by the
// edge-detection filters: Gaussian smoothing kernels, Sobel derivative pairs,
// and Laplacian stencils.
//
// Kernels are small rectangular float64 matrices. Higher-order Sobel and
// Laplacian apertures are built by iterative self-convolution of the standard
// 3x3 (or 1D) bases, the separable extension used by common image libraries,
// so the weights for any odd aperture match the classic operators.
package kernel

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize reports an aperture that cannot form a kernel: even,
// negative, or outside the supported range.
var ErrInvalidSize = errors.New("invalid kernel size")

// MaxAperture is the largest supported kernel size.
const MaxAperture = 31

// Direction selects which Sobel gradient(s) to compute.
type Direction int

const (
	// DirX requests the horizontal gradient only.
	DirX Direction = iota
	// DirY requests the vertical gradient only.
	DirY
	// DirBoth requests both gradients, combined as a magnitude.
	DirBoth
)

// String returns the lowercase name used in parameter values and logs.
func (d Direction) String() string {
	switch d {
	case DirX:
		return "x"
	case DirY:
		return "y"
	case DirBoth:
		return "both"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Kernel is a rectangular convolution matrix in row-major order.
//
// Width and Height are its dimensions; Sobel aperture-1 kernels are the only
// non-square case (1x3 and 3x1).
type Kernel struct {
	Width  int
	Height int
	Values []float64
}

// At returns the weight at column x, row y.
func (k *Kernel) At(x, y int) float64 {
	return k.Values[y*k.Width+x]
}

// Sum returns the sum of all weights. Smoothing kernels sum to 1, derivative
// kernels to 0.
func (k *Kernel) Sum() float64 {
	var sum float64
	for _, v := range k.Values {
		sum += v
	}
	return sum
}

// checkOdd rejects apertures that are even, below 1, or above MaxAperture.
func checkOdd(size int) error {
	if size < 1 || size > MaxAperture {
		return fmt.Errorf("%w: %d outside [1,%d]", ErrInvalidSize, size, MaxAperture)
	}
	if size%2 == 0 {
		return fmt.Errorf("%w: %d is even", ErrInvalidSize, size)
	}
	return nil
}

// Gaussian builds a normalized size x size Gaussian smoothing kernel.
//
// size must be odd and in [1,31]. If sigma <= 0 it is derived from the size
// using sigma = 0.3*((size-1)*0.5 - 1) + 0.8, so larger apertures smooth
// proportionally more. The weights sum to 1. A size of 1 yields the identity
// kernel.
func Gaussian(size int, sigma float64) (*Kernel, error) {
	if err := checkOdd(size); err != nil {
		return nil, err
	}
	if sigma <= 0 {
		sigma = 0.3*((float64(size)-1)*0.5-1) + 0.8
	}

	k := &Kernel{Width: size, Height: size, Values: make([]float64, size*size)}
	half := size / 2
	var sum float64
	for y := -half; y <= half; y++ {
		for x := -half; x <= half; x++ {
			v := math.Exp(-float64(x*x+y*y) / (2 * sigma * sigma))
			k.Values[(y+half)*size+(x+half)] = v
			sum += v
		}
	}
	for i := range k.Values {
		k.Values[i] /= sum
	}
	return k, nil
}

// Sobel builds the derivative kernel(s) for the requested direction and
// aperture.
//
// Aperture 1 uses the plain central-difference kernels (1x3 for X, 3x1 for
// Y). Aperture 3 is the classic Sobel pair. Larger odd apertures are grown by
// full self-convolution with the 3x3 smoothing base, matching the standard
// higher-order Sobel extension.
//
// kx is nil when direction is DirY, ky is nil when direction is DirX.
func Sobel(size int, direction Direction) (kx, ky *Kernel, err error) {
	if err := checkOdd(size); err != nil {
		return nil, nil, err
	}
	switch direction {
	case DirX, DirY, DirBoth:
	default:
		return nil, nil, fmt.Errorf("unknown sobel direction %d", int(direction))
	}

	if direction == DirX || direction == DirBoth {
		kx = sobelAxis(size, false)
	}
	if direction == DirY || direction == DirBoth {
		ky = sobelAxis(size, true)
	}
	return kx, ky, nil
}

// sobelAxis builds a single directional Sobel kernel of the given aperture.
func sobelAxis(size int, vertical bool) *Kernel {
	if size == 1 {
		k := &Kernel{Width: 3, Height: 1, Values: []float64{-1, 0, 1}}
		if vertical {
			k = transpose(k)
		}
		return k
	}

	smooth := []float64{1, 2, 1}
	deriv := []float64{-1, 0, 1}
	for n := 3; n < size; n += 2 {
		smooth = convolve1D(smooth, []float64{1, 2, 1})
		deriv = convolve1D(deriv, []float64{1, 2, 1})
	}

	k := outer(smooth, deriv) // derivative along rows: X gradient
	if vertical {
		k = transpose(k)
	}
	return k
}

// Laplacian builds the discrete Laplacian kernel of the given aperture.
//
// size 1 yields the standard 4-neighbor 3x3 stencil. For odd sizes >= 3 the
// kernel is Dxx + Dyy built from the 1D second-derivative base [1 -2 1] and
// smoothing base [1 2 1], extended by self-convolution for higher apertures.
// Every valid Laplacian kernel sums to 0.
func Laplacian(size int) (*Kernel, error) {
	if err := checkOdd(size); err != nil {
		return nil, err
	}
	if size == 1 {
		return &Kernel{Width: 3, Height: 3, Values: []float64{
			0, 1, 0,
			1, -4, 1,
			0, 1, 0,
		}}, nil
	}

	smooth := []float64{1, 2, 1}
	deriv2 := []float64{1, -2, 1}
	for n := 3; n < size; n += 2 {
		smooth = convolve1D(smooth, []float64{1, 2, 1})
		deriv2 = convolve1D(deriv2, []float64{1, 2, 1})
	}

	dxx := outer(smooth, deriv2)
	dyy := transpose(dxx)
	k := &Kernel{Width: size, Height: size, Values: make([]float64, size*size)}
	for i := range k.Values {
		k.Values[i] = dxx.Values[i] + dyy.Values[i]
	}
	return k, nil
}

// convolve1D returns the full discrete convolution of two 1D kernels.
// The result length is len(a)+len(b)-1.
func convolve1D(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// outer builds a 2D kernel as the outer product of a column and a row vector.
func outer(col, row []float64) *Kernel {
	k := &Kernel{Width: len(row), Height: len(col), Values: make([]float64, len(row)*len(col))}
	for y, cv := range col {
		for x, rv := range row {
			k.Values[y*k.Width+x] = cv * rv
		}
	}
	return k
}

// transpose swaps a kernel's rows and columns.
func transpose(k *Kernel) *Kernel {
	t := &Kernel{Width: k.Height, Height: k.Width, Values: make([]float64, len(k.Values))}
	for y := 0; y < k.Height; y++ {
		for x := 0; x < k.Width; x++ {
			t.Values[x*t.Width+y] = k.Values[y*k.Width+x]
		}
	}
	return t
}
