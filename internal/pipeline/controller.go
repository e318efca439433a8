// Package pipeline orchestrates the validate-filter-produce cycle behind a
// single recompute entry point.
//
// The Controller owns the currently loaded image, the active algorithm and
// its parameter set, and the last successfully computed result. A
// presentation shell drives it through LoadImage, SetAlgorithm, and
// SetParameter; each call synchronously revalidates and refilters before
// returning, so the caller always observes a consistent result. The
// Scheduler offers an optional asynchronous variant for expensive
// computations.
package pipeline

import (
	"errors"
	"sync"

	"github.com/ironsheep/edge-explorer-mcp/internal/filter"
	"github.com/ironsheep/edge-explorer-mcp/internal/raster"
)

// ErrNoImage reports an operation that needs a loaded image while the
// controller is Idle.
var ErrNoImage = errors.New("no image loaded")

// State is the controller's lifecycle state.
type State int

const (
	// Idle means no image is loaded.
	Idle State = iota
	// Ready means an image is loaded and the last result matches the
	// current parameter set.
	Ready
	// Invalid means the current parameter set failed validation; the last
	// good result is retained from before the bad edit.
	Invalid
)

// String returns the state name for logs and status responses.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Controller holds the active algorithm selection, its parameter set, and
// the last good filter result, and recomputes on every change.
//
// All methods are safe for concurrent use. The held image and results are
// immutable, so accessors hand out shared references, never copies.
type Controller struct {
	mu      sync.Mutex
	state   State
	img     *raster.Buffer
	kind    filter.Kind
	params  filter.Params
	last    *filter.Result
	lastErr error // validation failure while Invalid, nil otherwise
}

// NewController creates an Idle controller with the Sobel algorithm selected
// and its defaults staged, ready for the first LoadImage.
func NewController() *Controller {
	return &Controller{
		state:  Idle,
		kind:   filter.Sobel,
		params: filter.Defaults(filter.Sobel),
	}
}

// LoadImage replaces the held image wholesale, resets the parameter set to
// the active algorithm's defaults, and recomputes. Any prior result is
// discarded; it described a different image.
func (c *Controller) LoadImage(img *raster.Buffer) error {
	if img == nil {
		return raster.ErrUnsupportedImage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.img = img
	c.params = filter.Defaults(c.kind)
	c.last = nil
	return c.recomputeLocked()
}

// SetAlgorithm switches the active algorithm, resets the parameter set to
// its defaults, and recomputes immediately, so a new result is available
// without any further SetParameter call.
func (c *Controller) SetAlgorithm(kind filter.Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.kind = kind
	c.params = filter.Defaults(kind)
	if c.state == Idle {
		return nil
	}
	return c.recomputeLocked()
}

// SetParameter assigns one named parameter and recomputes. An unknown
// parameter name is rejected without touching the staged set; a value that
// fails validation moves the controller to Invalid while the last good
// result stays available.
func (c *Controller) SetParameter(name string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	staged := c.params
	if err := staged.Set(name, value); err != nil {
		return err
	}
	c.params = staged
	if c.state == Idle {
		return nil
	}
	return c.recomputeLocked()
}

// Recompute runs validate-then-filter on the current inputs. It is
// idempotent: identical inputs produce an identical result, and a repeat
// call with unchanged inputs reuses the held result rather than recomputing.
func (c *Controller) Recompute() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle {
		return ErrNoImage
	}
	return c.recomputeLocked()
}

// recomputeLocked is the single validate-filter-store path. The caller holds
// c.mu and has verified an image is present.
func (c *Controller) recomputeLocked() error {
	if err := filter.Validate(c.kind, c.params); err != nil {
		c.state = Invalid
		c.lastErr = err
		return err
	}

	if c.last.SameInputs(c.kind, c.params) {
		c.state = Ready
		c.lastErr = nil
		return nil
	}

	result, err := filter.Apply(c.kind, c.img, c.params)
	if err != nil {
		c.state = Invalid
		c.lastErr = err
		return err
	}

	c.state = Ready
	c.last = result
	c.lastErr = nil
	return nil
}

// CurrentResult returns the last good result, or nil if none has been
// computed yet. When the controller is Invalid the retained result is
// returned together with the validation error that caused the transition.
func (c *Controller) CurrentResult() (*filter.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.lastErr
}

// DefaultParameters returns the documented defaults for an algorithm without
// touching the controller state.
func (c *Controller) DefaultParameters(kind filter.Kind) filter.Params {
	return filter.Defaults(kind)
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Algorithm returns the active algorithm kind.
func (c *Controller) Algorithm() filter.Kind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

// Parameters returns a copy of the staged parameter set, which may not have
// passed validation yet.
func (c *Controller) Parameters() filter.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// Image returns the held image, or nil while Idle.
func (c *Controller) Image() *raster.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.img
}

// Inputs snapshots the current (image, algorithm, parameters) triple for an
// out-of-band computation such as a Scheduler submission.
func (c *Controller) Inputs() (*raster.Buffer, filter.Kind, filter.Params, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle {
		return nil, 0, filter.Params{}, ErrNoImage
	}
	return c.img, c.kind, c.params, nil
}
