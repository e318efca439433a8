package pipeline

import (
	"errors"
	"testing"

	"github.com/ironsheep/edge-explorer-mcp/internal/filter"
	"github.com/ironsheep/edge-explorer-mcp/internal/kernel"
	"github.com/ironsheep/edge-explorer-mcp/internal/raster"
)

// stepImage builds a grayscale buffer with a vertical step edge at stepX.
func stepImage(t *testing.T, width, height, stepX int) *raster.Buffer {
	t.Helper()
	plane := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := stepX; x < width; x++ {
			plane[y*width+x] = 255
		}
	}
	buf, err := raster.New(width, height, plane)
	if err != nil {
		t.Fatalf("failed to build test image: %v", err)
	}
	return buf
}

// flatImage builds a uniform grayscale buffer.
func flatImage(t *testing.T, width, height int, value float64) *raster.Buffer {
	t.Helper()
	plane := make([]float64, width*height)
	for i := range plane {
		plane[i] = value
	}
	buf, err := raster.New(width, height, plane)
	if err != nil {
		t.Fatalf("failed to build test image: %v", err)
	}
	return buf
}

func TestController_StartsIdle(t *testing.T) {
	c := NewController()
	if c.State() != Idle {
		t.Errorf("state = %s, want idle", c.State())
	}
	if c.Algorithm() != filter.Sobel {
		t.Errorf("algorithm = %s, want sobel", c.Algorithm())
	}
	if result, _ := c.CurrentResult(); result != nil {
		t.Error("idle controller has a result")
	}
}

func TestController_RecomputeWhileIdle(t *testing.T) {
	c := NewController()
	if err := c.Recompute(); !errors.Is(err, ErrNoImage) {
		t.Errorf("got %v, want ErrNoImage", err)
	}
}

func TestController_LoadImageComputesResult(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(stepImage(t, 8, 8, 4)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if c.State() != Ready {
		t.Errorf("state = %s, want ready", c.State())
	}
	result, err := c.CurrentResult()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result == nil || result.Kind != filter.Sobel {
		t.Fatalf("result = %+v, want sobel result", result)
	}
	if result.Edges.Width != 8 || result.Edges.Height != 8 {
		t.Errorf("result dimensions %dx%d, want 8x8", result.Edges.Width, result.Edges.Height)
	}
}

func TestController_LoadImageRejectsNil(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(nil); !errors.Is(err, raster.ErrUnsupportedImage) {
		t.Errorf("got %v, want ErrUnsupportedImage", err)
	}
	if c.State() != Idle {
		t.Errorf("state = %s, want idle after rejected load", c.State())
	}
}

func TestController_FlatImageSobelIsAllZero(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(flatImage(t, 4, 4, 128)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	result, _ := c.CurrentResult()
	for i, v := range result.Edges.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %d, want all zeros for a flat image", i, v)
		}
	}
}

func TestController_SetAlgorithmResetsAndRecomputes(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(stepImage(t, 8, 8, 4)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	// Move sobel away from its defaults first.
	if err := c.SetParameter(filter.ParamKernelSize, 5); err != nil {
		t.Fatalf("SetParameter failed: %v", err)
	}

	if err := c.SetAlgorithm(filter.Canny); err != nil {
		t.Fatalf("SetAlgorithm failed: %v", err)
	}

	if got, want := c.Parameters(), filter.Defaults(filter.Canny); got != want {
		t.Errorf("parameters = %+v, want canny defaults %+v", got, want)
	}

	// A new result must exist without any further SetParameter call.
	result, err := c.CurrentResult()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result == nil || result.Kind != filter.Canny {
		t.Fatalf("result kind = %v, want canny", result)
	}

	// Switching back restores the sobel defaults, not the edited value.
	if err := c.SetAlgorithm(filter.Sobel); err != nil {
		t.Fatalf("SetAlgorithm failed: %v", err)
	}
	if got := c.Parameters(); got.KernelSize != 3 {
		t.Errorf("kernelSize = %d, want default 3", got.KernelSize)
	}
}

func TestController_InvalidEditKeepsLastResult(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(stepImage(t, 8, 8, 4)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if err := c.SetAlgorithm(filter.Canny); err != nil {
		t.Fatalf("SetAlgorithm failed: %v", err)
	}
	good, _ := c.CurrentResult()

	// Reversed thresholds: lower 50 stays, upper drops below it.
	err := c.SetParameter(filter.ParamUpperThreshold, 10)
	if !errors.Is(err, filter.ErrInvalidThresholdOrder) {
		t.Fatalf("got %v, want ErrInvalidThresholdOrder", err)
	}
	if c.State() != Invalid {
		t.Errorf("state = %s, want invalid", c.State())
	}

	result, resErr := c.CurrentResult()
	if result != good {
		t.Error("previous result not retained after invalid edit")
	}
	if !errors.Is(resErr, filter.ErrInvalidThresholdOrder) {
		t.Errorf("CurrentResult error = %v, want the validation failure", resErr)
	}

	// A corrective edit returns to Ready with a fresh result.
	if err := c.SetParameter(filter.ParamUpperThreshold, 200); err != nil {
		t.Fatalf("SetParameter failed: %v", err)
	}
	if c.State() != Ready {
		t.Errorf("state = %s, want ready after corrective edit", c.State())
	}
	if _, resErr := c.CurrentResult(); resErr != nil {
		t.Errorf("unexpected error after corrective edit: %v", resErr)
	}
}

func TestController_EvenKernelSizeRejected(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(stepImage(t, 8, 8, 4)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	good, _ := c.CurrentResult()

	err := c.SetParameter(filter.ParamKernelSize, 4)
	if !errors.Is(err, filter.ErrInvalidParameter) {
		t.Fatalf("got %v, want ErrInvalidParameter", err)
	}
	if c.State() != Invalid {
		t.Errorf("state = %s, want invalid", c.State())
	}
	if result, _ := c.CurrentResult(); result != good {
		t.Error("previous result not retained")
	}
}

func TestController_UnknownParameterLeavesStateAlone(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(stepImage(t, 8, 8, 4)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	err := c.SetParameter("bogus", 1)
	if !errors.Is(err, filter.ErrUnknownParameter) {
		t.Fatalf("got %v, want ErrUnknownParameter", err)
	}
	if c.State() != Ready {
		t.Errorf("state = %s, want ready", c.State())
	}
}

func TestController_RecomputeIsIdempotent(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(stepImage(t, 8, 8, 4)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	first, _ := c.CurrentResult()

	if err := c.Recompute(); err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	second, _ := c.CurrentResult()

	if first != second {
		t.Error("recompute with unchanged inputs replaced the result")
	}
}

func TestController_RecomputeAfterParameterChange(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(stepImage(t, 12, 12, 6)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	first, _ := c.CurrentResult()

	if err := c.SetParameter(filter.ParamDirection, float64(kernel.DirX)); err != nil {
		t.Fatalf("SetParameter failed: %v", err)
	}
	second, _ := c.CurrentResult()

	if first == second {
		t.Error("parameter change did not produce a new result")
	}
	if second.Params.Direction != kernel.DirX {
		t.Errorf("result direction = %s, want x", second.Params.Direction)
	}
}

func TestController_LoadImageDiscardsOldResult(t *testing.T) {
	c := NewController()
	if err := c.LoadImage(stepImage(t, 8, 8, 4)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	first, _ := c.CurrentResult()

	// Same parameters, different image: the result must be recomputed.
	if err := c.LoadImage(flatImage(t, 8, 8, 50)); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	second, _ := c.CurrentResult()

	if first == second {
		t.Error("result not recomputed for the new image")
	}
	for i, v := range second.Edges.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %d, want zero response on the new flat image", i, v)
		}
	}
}

func TestController_DeterministicAcrossRecomputes(t *testing.T) {
	c := NewController()
	img := stepImage(t, 10, 10, 5)
	if err := c.LoadImage(img); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	first, _ := c.CurrentResult()

	// Force a real recompute by bouncing a parameter away and back.
	if err := c.SetParameter(filter.ParamKernelSize, 5); err != nil {
		t.Fatalf("SetParameter failed: %v", err)
	}
	if err := c.SetParameter(filter.ParamKernelSize, 3); err != nil {
		t.Fatalf("SetParameter failed: %v", err)
	}
	second, _ := c.CurrentResult()

	if first == second {
		t.Fatal("expected a fresh result after parameter bounce")
	}
	if !first.Edges.Equal(second.Edges) {
		t.Error("identical inputs produced different edge maps")
	}
}

func TestController_DefaultParameters(t *testing.T) {
	c := NewController()
	if got, want := c.DefaultParameters(filter.Canny), filter.Defaults(filter.Canny); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
