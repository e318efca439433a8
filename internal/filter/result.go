package filter

import (
	"fmt"

	"github.com/ironsheep/edge-explorer-mcp/internal/raster"
)

// Result wraps a computed edge map together with the algorithm and parameter
// set that produced it. The provenance fields make Results comparable for
// cache-key equality and let an export record how its image was made.
type Result struct {
	// Edges is the computed edge map, single channel.
	Edges *raster.Buffer

	// Kind is the algorithm that produced Edges.
	Kind Kind

	// Params is a snapshot of the validated parameter set used.
	Params Params
}

// Apply runs the algorithm selected by kind over an image. It is the single
// dispatch point the pipeline uses after validation; params must already
// have passed Validate(kind, params).
func Apply(kind Kind, img *raster.Buffer, params Params) (*Result, error) {
	var (
		edges *raster.Buffer
		err   error
	)
	switch kind {
	case Sobel:
		edges, err = ApplySobel(img, params)
	case Laplacian:
		edges, err = ApplyLaplacian(img, params)
	case Canny:
		edges, err = ApplyCanny(img, params)
	default:
		return nil, fmt.Errorf("unknown algorithm kind %d", int(kind))
	}
	if err != nil {
		return nil, err
	}
	return &Result{Edges: edges, Kind: kind, Params: params}, nil
}

// SameInputs reports whether another Result was produced by the same
// algorithm and parameters, the equality used for recompute caching.
func (r *Result) SameInputs(kind Kind, params Params) bool {
	return r != nil && r.Kind == kind && r.Params == params
}
