package docview

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps renderer instances; each may own a browser (~200MB).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// RendererFactory builds one pooled Renderer.
type RendererFactory func() (*Renderer, error)

// RendererPool manages Renderer instances for parallel rendering.
// Each renderer may own a browser, so they are created lazily on first
// acquire to avoid startup delay.
type RendererPool struct {
	size      int
	factory   RendererFactory
	renderers []*Renderer
	sem       chan *Renderer
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewRendererPool creates a pool with capacity for n renderers built by
// factory. Renderers are created when acquired, not at pool creation.
func NewRendererPool(n int, factory RendererFactory) *RendererPool {
	if n < 1 {
		n = 1
	}
	return &RendererPool{
		size:      n,
		factory:   factory,
		renderers: make([]*Renderer, 0, n),
		sem:       make(chan *Renderer, n),
	}
}

// Acquire gets a renderer from the pool, creating one if capacity remains.
// Blocks until a renderer is released or ctx is done.
func (p *RendererPool) Acquire(ctx context.Context) (*Renderer, error) {
	select {
	case r, ok := <-p.sem:
		return p.received(r, ok)
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Build outside the lock; a failure frees the slot.
		r, err := p.factory()
		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.created--
			return nil, err
		}
		p.renderers = append(p.renderers, r)
		return r, nil
	}
	p.mu.Unlock()

	select {
	case r, ok := <-p.sem:
		return p.received(r, ok)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// received checks a renderer taken from sem. A closed channel still yields
// its buffered renderers, so the closed flag is authoritative.
func (p *RendererPool) received(r *Renderer, ok bool) (*Renderer, error) {
	if !ok {
		return nil, ErrPoolClosed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}
	return r, nil
}

// Release returns a renderer to the pool.
// The send happens under the lock so it cannot race Close; the channel
// has room for every created renderer, so it never blocks.
func (p *RendererPool) Release(r *Renderer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- r
	}
}

// Close releases all renderer resources.
// Returns an aggregated error if multiple renderers fail to close.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
