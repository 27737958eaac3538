package pipeline

import (
	"context"
	"sync"

	"github.com/cooperrobillard/linkedin-note/internal/types"
)

// Runner serializes generation runs and coalesces bursts: while a run is in
// flight there is exactly one pending slot, and a newer submission replaces
// the request waiting in it. The superseded submission's channel is closed
// without a result.
type Runner struct {
	orch *Orchestrator

	mu      sync.Mutex
	running bool
	pending *job
}

type job struct {
	ctx context.Context
	req *types.GenerationRequest
	out chan *types.GenerationResult
}

// NewRunner wraps an orchestrator in a coalescing runner.
func NewRunner(orch *Orchestrator) *Runner {
	return &Runner{orch: orch}
}

// Submit queues a request and returns the channel its result will arrive on.
// The channel carries exactly one result and is then closed; a channel closed
// without a value means a later submission superseded this one.
func (r *Runner) Submit(ctx context.Context, req *types.GenerationRequest) <-chan *types.GenerationResult {
	j := &job{ctx: ctx, req: req, out: make(chan *types.GenerationResult, 1)}

	r.mu.Lock()
	if r.running {
		if r.pending != nil {
			close(r.pending.out)
		}
		r.pending = j
		r.mu.Unlock()
		return j.out
	}
	r.running = true
	r.mu.Unlock()

	go r.loop(j)
	return j.out
}

// loop runs the submitted job, then drains the pending slot until it is
// empty.
func (r *Runner) loop(j *job) {
	for {
		result := r.orch.Generate(j.ctx, j.req)
		j.out <- result
		close(j.out)

		r.mu.Lock()
		next := r.pending
		r.pending = nil
		if next == nil {
			r.running = false
			r.mu.Unlock()
			return
		}
		r.mu.Unlock()
		j = next
	}
}
