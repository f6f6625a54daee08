// Package stub is an in-memory media pipeline whose runs are driven by the
// caller. It records every run and how many overlapped.
package stub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bachtran02/go-live-streamer/internal/session"
)

type Pipeline struct {
	// RunErr makes Run fail without starting anything.
	RunErr error
	// IgnoreCancel keeps runs alive after cancellation until Complete or Fail.
	IgnoreCancel bool
	// AckDelay is how long a run takes to acknowledge cancellation.
	AckDelay time.Duration

	mu      sync.Mutex
	runs    []*Run
	started chan *Run

	active    atomic.Int32
	maxActive atomic.Int32
}

func New() *Pipeline {
	return &Pipeline{started: make(chan *Run, 64)}
}

func (p *Pipeline) Run(ctx context.Context, target string) (session.Handle, error) {
	if p.RunErr != nil {
		return nil, p.RunErr
	}

	r := &Run{
		Target: target,
		done:   make(chan struct{}),
		end:    make(chan error, 1),
	}

	n := p.active.Add(1)
	for {
		m := p.maxActive.Load()
		if n <= m || p.maxActive.CompareAndSwap(m, n) {
			break
		}
	}

	p.mu.Lock()
	p.runs = append(p.runs, r)
	p.mu.Unlock()

	go p.loop(ctx, r)

	select {
	case p.started <- r:
	default:
	}
	return r, nil
}

func (p *Pipeline) loop(ctx context.Context, r *Run) {
	var err error
	select {
	case err = <-r.end:
	case <-ctx.Done():
		r.canceled.Store(true)
		if p.IgnoreCancel {
			err = <-r.end
			break
		}
		if p.AckDelay > 0 {
			time.Sleep(p.AckDelay)
		}
		err = ctx.Err()
	}

	p.active.Add(-1)
	r.finish(err)
}

// Started delivers runs as they are launched.
func (p *Pipeline) Started() <-chan *Run { return p.started }

func (p *Pipeline) Runs() []*Run {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*Run(nil), p.runs...)
}

// Active is the number of runs that have not reached Done.
func (p *Pipeline) Active() int32 { return p.active.Load() }

// MaxActive is the highest number of simultaneously running runs observed.
func (p *Pipeline) MaxActive() int32 { return p.maxActive.Load() }

// Run is one launched pipeline; it implements session.Handle.
type Run struct {
	Target string

	done     chan struct{}
	end      chan error
	once     sync.Once
	err      error
	canceled atomic.Bool
}

func (r *Run) Done() <-chan struct{} { return r.done }

func (r *Run) Err() error {
	<-r.done
	return r.err
}

// Complete ends the run as if the media reached its end.
func (r *Run) Complete() { r.signal(nil) }

// Fail ends the run with a pipeline error.
func (r *Run) Fail(err error) { r.signal(err) }

// Canceled reports whether the run observed its context being cancelled.
func (r *Run) Canceled() bool { return r.canceled.Load() }

func (r *Run) signal(err error) {
	select {
	case r.end <- err:
	default:
	}
}

func (r *Run) finish(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}
