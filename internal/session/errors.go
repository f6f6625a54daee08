package session

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyActive   = errors.New("stream session already active")
	ErrInvalidDuration = errors.New("invalid stream duration")
	ErrInvalidTarget   = errors.New("stream target is empty")
	ErrStartCanceled   = errors.New("stream start canceled")

	// Token causes.
	ErrStopRequested     = errors.New("stop requested")
	ErrDurationExceeded  = errors.New("maximum stream duration reached")
	ErrPipelineEnded     = errors.New("pipeline finished")
	ErrMembershipRevoked = errors.New("voice membership revoked")
	ErrShutdown          = errors.New("controller shutting down")
)

// AlreadyActiveError is returned by Start when the slot is not idle.
type AlreadyActiveError struct {
	Status    Status
	SessionID string
}

func (e *AlreadyActiveError) Error() string {
	return fmt.Sprintf("%s (session %s is %s)", ErrAlreadyActive, e.SessionID, e.Status)
}

func (e *AlreadyActiveError) Is(target error) bool { return target == ErrAlreadyActive }

// PipelineError wraps a failure reported by the media pipeline.
type PipelineError struct {
	Target string
	Err    error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error for %q: %v", e.Target, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
