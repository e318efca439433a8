package filter

import (
	"fmt"

	"github.com/ironsheep/edge-explorer-mcp/internal/kernel"
)

// Kind identifies an edge-detection algorithm. Exactly one is active in a
// pipeline at a time.
type Kind int

const (
	// Sobel computes first-derivative gradients.
	Sobel Kind = iota
	// Laplacian computes the second derivative.
	Laplacian
	// Canny produces a binary edge map via non-maximum suppression and
	// hysteresis thresholding.
	Canny
)

// String returns the lowercase algorithm name used in tool arguments.
func (k Kind) String() string {
	switch k {
	case Sobel:
		return "sobel"
	case Laplacian:
		return "laplacian"
	case Canny:
		return "canny"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindFromString parses an algorithm name as it appears in tool arguments.
func KindFromString(name string) (Kind, error) {
	switch name {
	case "sobel":
		return Sobel, nil
	case "laplacian":
		return Laplacian, nil
	case "canny":
		return Canny, nil
	default:
		return 0, fmt.Errorf("unknown algorithm: %q", name)
	}
}

// Parameter names accepted by Params.Set.
const (
	ParamKernelSize     = "kernelSize"
	ParamDirection      = "direction"
	ParamLowerThreshold = "lowerThreshold"
	ParamUpperThreshold = "upperThreshold"
	ParamBlurKernelSize = "blurKernelSize"
	ParamSigma          = "sigma"
)

// Params is the union of every algorithm's parameter fields. Which fields
// are meaningful depends on the Kind the set is validated against; the rest
// are ignored.
//
// Params is a value type: copies are independent, so a snapshot stored in a
// Result cannot be altered by later edits.
type Params struct {
	// KernelSize is the Sobel/Laplacian aperture: odd, in [1,31].
	KernelSize int `json:"kernel_size"`

	// Direction selects the Sobel gradient axis.
	Direction kernel.Direction `json:"direction"`

	// LowerThreshold is the Canny weak-edge cutoff, 0-255.
	LowerThreshold int `json:"lower_threshold"`

	// UpperThreshold is the Canny strong-edge cutoff, 0-255 and not below
	// LowerThreshold.
	UpperThreshold int `json:"upper_threshold"`

	// BlurKernelSize is the Canny pre-blur aperture: odd, >= 1. A value of
	// 1 disables the blur.
	BlurKernelSize int `json:"blur_kernel_size"`

	// Sigma is the Gaussian sigma for the Canny pre-blur; 0 derives it
	// from the blur aperture.
	Sigma float64 `json:"sigma"`
}

// Defaults returns the documented default parameter set for an algorithm.
// These are the values the pipeline resets to when the algorithm changes.
func Defaults(kind Kind) Params {
	switch kind {
	case Laplacian:
		return Params{KernelSize: 3}
	case Canny:
		return Params{
			LowerThreshold: 50,
			UpperThreshold: 150,
			BlurKernelSize: 5,
			Sigma:          1.0,
		}
	default: // Sobel
		return Params{KernelSize: 3, Direction: kernel.DirBoth}
	}
}

// Set assigns a named parameter from a numeric value, the shape every UI
// control and tool argument reduces to. Direction is numeric here too:
// 0 = x, 1 = y, 2 = both. Returns ErrUnknownParameter for names no
// algorithm defines; range checking is Validate's job, not Set's.
func (p *Params) Set(name string, value float64) error {
	switch name {
	case ParamKernelSize:
		p.KernelSize = int(value)
	case ParamDirection:
		p.Direction = kernel.Direction(int(value))
	case ParamLowerThreshold:
		p.LowerThreshold = int(value)
	case ParamUpperThreshold:
		p.UpperThreshold = int(value)
	case ParamBlurKernelSize:
		p.BlurKernelSize = int(value)
	case ParamSigma:
		p.Sigma = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return nil
}

// Validate checks a parameter set against an algorithm's rules. It is a pure
// check: no field is coerced or clamped, and a failure identifies the first
// offending field.
//
// On success the set may be passed to the matching Apply function. An
// unvalidated or stale set must never reach the engine.
func Validate(kind Kind, p Params) error {
	switch kind {
	case Sobel:
		if err := validateAperture(ParamKernelSize, p.KernelSize); err != nil {
			return err
		}
		switch p.Direction {
		case kernel.DirX, kernel.DirY, kernel.DirBoth:
		default:
			return invalidParam(ParamDirection, float64(p.Direction), "must be x, y, or both")
		}
	case Laplacian:
		if err := validateAperture(ParamKernelSize, p.KernelSize); err != nil {
			return err
		}
	case Canny:
		if p.LowerThreshold < 0 || p.LowerThreshold > 255 {
			return invalidParam(ParamLowerThreshold, float64(p.LowerThreshold), "must be between 0 and 255")
		}
		if p.UpperThreshold < 0 || p.UpperThreshold > 255 {
			return invalidParam(ParamUpperThreshold, float64(p.UpperThreshold), "must be between 0 and 255")
		}
		if p.UpperThreshold < p.LowerThreshold {
			return &ValidationError{
				Field:  ParamUpperThreshold,
				Value:  float64(p.UpperThreshold),
				Reason: fmt.Sprintf("must not be below lowerThreshold (%d)", p.LowerThreshold),
				err:    ErrInvalidThresholdOrder,
			}
		}
		if p.BlurKernelSize < 1 || p.BlurKernelSize > kernel.MaxAperture {
			return invalidParam(ParamBlurKernelSize, float64(p.BlurKernelSize),
				fmt.Sprintf("must be between 1 and %d", kernel.MaxAperture))
		}
		if p.BlurKernelSize%2 == 0 {
			return invalidParam(ParamBlurKernelSize, float64(p.BlurKernelSize), "must be odd")
		}
		if p.Sigma < 0 {
			return invalidParam(ParamSigma, p.Sigma, "must not be negative")
		}
	default:
		return fmt.Errorf("unknown algorithm kind %d", int(kind))
	}
	return nil
}

func validateAperture(field string, size int) error {
	if size < 1 || size > kernel.MaxAperture {
		return invalidParam(field, float64(size),
			fmt.Sprintf("must be between 1 and %d", kernel.MaxAperture))
	}
	if size%2 == 0 {
		return invalidParam(field, float64(size), "must be odd")
	}
	return nil
}
