package loader

import (
	"context"
	"time"

	"github.com/philipparndt/goroom/pkg/scene"
)

// Result is the outcome of a background load
type Result struct {
	Root    *scene.Node
	Err     error
	Elapsed time.Duration
}

// Pending tracks a load running in the background. Its callbacks only ever
// run inside Poll or Wait, on the caller's goroutine, so the render thread can
// mutate the scene without locking.
type Pending struct {
	ctx       context.Context
	results   chan Result
	onLoad    func(*scene.Node, time.Duration)
	onError   func(error)
	delivered bool
}

// LoadAsync starts loading path on a new goroutine. Exactly one of onLoad or
// onError is invoked by a later Poll/Wait, unless ctx is done first.
func LoadAsync(ctx context.Context, path string, onLoad func(*scene.Node, time.Duration), onError func(error)) *Pending {
	p := &Pending{
		ctx:     ctx,
		results: make(chan Result, 1),
		onLoad:  onLoad,
		onError: onError,
	}

	go func() {
		start := time.Now()
		root, err := Load(path)
		p.results <- Result{Root: root, Err: err, Elapsed: time.Since(start)}
	}()

	return p
}

// Poll delivers the result if it is ready. It reports whether a callback ran.
func (p *Pending) Poll() bool {
	if p.delivered {
		return false
	}
	select {
	case res := <-p.results:
		return p.deliver(res)
	default:
		return false
	}
}

// Wait blocks until the result is delivered or ctx is done
func (p *Pending) Wait() bool {
	if p.delivered {
		return false
	}
	select {
	case res := <-p.results:
		return p.deliver(res)
	case <-p.ctx.Done():
		p.delivered = true
		return false
	}
}

// Done reports whether the load has been delivered or abandoned
func (p *Pending) Done() bool {
	return p.delivered
}

func (p *Pending) deliver(res Result) bool {
	p.delivered = true
	if p.ctx.Err() != nil {
		return false
	}
	if res.Err != nil {
		if p.onError != nil {
			p.onError(res.Err)
		}
		return true
	}
	if p.onLoad != nil {
		p.onLoad(res.Root, res.Elapsed)
	}
	return true
}
