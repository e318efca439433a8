package filter

import (
	"errors"
	"testing"

	"github.com/ironsheep/edge-explorer-mcp/internal/kernel"
)

func TestValidate_DefaultsAreValid(t *testing.T) {
	for _, kind := range []Kind{Sobel, Laplacian, Canny} {
		if err := Validate(kind, Defaults(kind)); err != nil {
			t.Errorf("defaults for %s fail validation: %v", kind, err)
		}
	}
}

func TestValidate_RejectsEvenKernelSizes(t *testing.T) {
	for _, kind := range []Kind{Sobel, Laplacian} {
		for _, size := range []int{0, 2, 4, 16, 30} {
			p := Defaults(kind)
			p.KernelSize = size
			err := Validate(kind, p)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("%s kernelSize=%d: got %v, want ErrInvalidParameter", kind, size, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != ParamKernelSize {
				t.Errorf("%s kernelSize=%d: error does not name kernelSize", kind, size)
			}
		}
	}
}

func TestValidate_AcceptsOddKernelSizes(t *testing.T) {
	for size := 1; size <= 31; size += 2 {
		p := Defaults(Sobel)
		p.KernelSize = size
		if err := Validate(Sobel, p); err != nil {
			t.Errorf("kernelSize=%d: unexpected error %v", size, err)
		}
	}
}

func TestValidate_RejectsOversizedKernel(t *testing.T) {
	p := Defaults(Laplacian)
	p.KernelSize = 33
	if err := Validate(Laplacian, p); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
}

func TestValidate_RejectsBadDirection(t *testing.T) {
	p := Defaults(Sobel)
	p.Direction = kernel.Direction(7)
	err := Validate(Sobel, p)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("got %v, want ErrInvalidParameter", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != ParamDirection {
		t.Error("error does not name direction field")
	}
}

func TestValidate_RejectsReversedThresholds(t *testing.T) {
	p := Defaults(Canny)
	p.LowerThreshold = 50
	p.UpperThreshold = 10

	err := Validate(Canny, p)
	if !errors.Is(err, ErrInvalidThresholdOrder) {
		t.Fatalf("got %v, want ErrInvalidThresholdOrder", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != ParamUpperThreshold {
		t.Error("error does not name upperThreshold field")
	}
}

func TestValidate_EqualThresholdsAllowed(t *testing.T) {
	p := Defaults(Canny)
	p.LowerThreshold = 100
	p.UpperThreshold = 100
	if err := Validate(Canny, p); err != nil {
		t.Errorf("equal thresholds should validate, got %v", err)
	}
}

func TestValidate_CannyRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
	}{
		{"lower below 0", func(p *Params) { p.LowerThreshold = -1 }, ParamLowerThreshold},
		{"lower above 255", func(p *Params) { p.LowerThreshold = 256; p.UpperThreshold = 256 }, ParamLowerThreshold},
		{"upper above 255", func(p *Params) { p.UpperThreshold = 300 }, ParamUpperThreshold},
		{"even blur kernel", func(p *Params) { p.BlurKernelSize = 4 }, ParamBlurKernelSize},
		{"zero blur kernel", func(p *Params) { p.BlurKernelSize = 0 }, ParamBlurKernelSize},
		{"negative sigma", func(p *Params) { p.Sigma = -0.5 }, ParamSigma},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Defaults(Canny)
			tt.mutate(&p)
			err := Validate(Canny, p)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("got %v, want ErrInvalidParameter", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Errorf("error names field %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidate_ZeroSigmaAllowed(t *testing.T) {
	// Sigma 0 means "derive from the blur aperture", not an error.
	p := Defaults(Canny)
	p.Sigma = 0
	if err := Validate(Canny, p); err != nil {
		t.Errorf("sigma=0 should validate, got %v", err)
	}
}

func TestValidate_IsPure(t *testing.T) {
	p := Defaults(Canny)
	p.UpperThreshold = 10 // below lower: invalid
	before := p
	_ = Validate(Canny, p)
	if p != before {
		t.Error("Validate mutated the parameter set")
	}
}

func TestParams_Set(t *testing.T) {
	p := Defaults(Canny)
	if err := p.Set(ParamLowerThreshold, 30); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if p.LowerThreshold != 30 {
		t.Errorf("LowerThreshold = %d, want 30", p.LowerThreshold)
	}

	if err := p.Set(ParamSigma, 2.5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if p.Sigma != 2.5 {
		t.Errorf("Sigma = %g, want 2.5", p.Sigma)
	}

	if err := p.Set("bogus", 1); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("got %v, want ErrUnknownParameter", err)
	}
}

func TestDefaults(t *testing.T) {
	sobel := Defaults(Sobel)
	if sobel.KernelSize != 3 || sobel.Direction != kernel.DirBoth {
		t.Errorf("sobel defaults: %+v", sobel)
	}

	lap := Defaults(Laplacian)
	if lap.KernelSize != 3 {
		t.Errorf("laplacian defaults: %+v", lap)
	}

	canny := Defaults(Canny)
	if canny.LowerThreshold != 50 || canny.UpperThreshold != 150 ||
		canny.BlurKernelSize != 5 || canny.Sigma != 1.0 {
		t.Errorf("canny defaults: %+v", canny)
	}
}

func TestKindFromString(t *testing.T) {
	for _, kind := range []Kind{Sobel, Laplacian, Canny} {
		got, err := KindFromString(kind.String())
		if err != nil || got != kind {
			t.Errorf("KindFromString(%q) = %v, %v", kind.String(), got, err)
		}
	}
	if _, err := KindFromString("prewitt"); err == nil {
		t.Error("expected error for unknown algorithm name")
	}
}
