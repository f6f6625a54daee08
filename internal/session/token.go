package session

import (
	"context"
	"sync/atomic"

	"github.com/bachtran02/go-live-streamer/internal/log"
)

// Token is the one-shot cancellation signal of a single session attempt.
// Tripping is idempotent: only the first Trip records a cause. The token
// carries the session ID on its context so pipeline logs are correlated.
type Token struct {
	id      string
	ctx     context.Context
	cancel  context.CancelCauseFunc
	claimed atomic.Bool
}

func NewToken(sessionID string) *Token {
	ctx, cancel := context.WithCancelCause(log.ContextWithSessionID(context.Background(), sessionID))
	return &Token{
		id:     sessionID,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (t *Token) ID() string { return t.id }

// Trip cancels the token with cause and reports whether this call was the
// one that tripped it.
func (t *Token) Trip(cause error) bool {
	if !t.claimed.CompareAndSwap(false, true) {
		return false
	}
	t.cancel(cause)
	return true
}

// Tripped reports whether the token has been cancelled. A true result
// guarantees Cause is set.
func (t *Token) Tripped() bool { return t.ctx.Err() != nil }

func (t *Token) Done() <-chan struct{} { return t.ctx.Done() }

// Cause returns the error passed to the winning Trip, or nil.
func (t *Token) Cause() error { return context.Cause(t.ctx) }

// Context is the read-only view handed to the pipeline.
func (t *Token) Context() context.Context { return t.ctx }
