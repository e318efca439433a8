package pipeline

import (
	"sync"

	"github.com/ironsheep/edge-explorer-mcp/internal/filter"
	"github.com/ironsheep/edge-explorer-mcp/internal/raster"
)

// Scheduler runs filter computations off the interaction thread while
// keeping result delivery ordered.
//
// Every Submit is stamped with a generation number; only the most recently
// submitted parameter set is authoritative. A computation that finishes
// after a newer one has already delivered is discarded, so an older result
// can never overwrite a newer one. Cancellation of superseded work is
// best-effort: the computation may run to completion, but its result is
// dropped.
//
// Filter computations are pure functions over immutable buffers, so no
// locking is needed around the work itself, only around the delivery order.
type Scheduler struct {
	deliver func(*filter.Result, error)

	mu        sync.Mutex
	submitted uint64 // generation of the newest Submit
	delivered uint64 // generation of the newest delivery
	pending   sync.WaitGroup
}

// NewScheduler creates a Scheduler that hands each surviving result (or
// validation error) to deliver. The callback runs on the worker goroutine;
// calls are serialized by the scheduler's lock.
func NewScheduler(deliver func(*filter.Result, error)) *Scheduler {
	return &Scheduler{deliver: deliver}
}

// Submit queues one computation over a snapshot of the pipeline inputs and
// returns immediately. Validation runs on the worker too, so a bad parameter
// set surfaces through the delivery callback just like a computed result.
func (s *Scheduler) Submit(img *raster.Buffer, kind filter.Kind, params filter.Params) {
	s.mu.Lock()
	s.submitted++
	gen := s.submitted
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		var (
			result *filter.Result
			err    error
		)
		if err = filter.Validate(kind, params); err == nil {
			result, err = filter.Apply(kind, img, params)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen <= s.delivered {
			// A newer submission already delivered; drop this one.
			return
		}
		s.delivered = gen
		s.deliver(result, err)
	}()
}

// Wait blocks until every in-flight computation has finished or been
// discarded. Useful at shutdown and in tests.
func (s *Scheduler) Wait() {
	s.pending.Wait()
}
