package gate

import (
	"errors"
	"fmt"
)

var (
	ErrAuth             = errors.New("authentication failed")
	ErrConnection       = errors.New("voice connection failed")
	ErrNotAuthenticated = errors.New("client is not logged in")
	ErrNoChannel        = errors.New("no voice channel selected")
)

// AuthError reports a rejected credential or a transport failure during
// login. It is never retried automatically.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return ErrAuth.Error()
	}
	return fmt.Sprintf("%s: %v", ErrAuth, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// ConnectionError reports a failed join or leave against the remote channel.
type ConnectionError struct {
	Op        string
	GuildID   string
	ChannelID string
	Err       error
}

func (e *ConnectionError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Op, ErrConnection)
	if e.ChannelID != "" {
		msg = fmt.Sprintf("%s (guild=%s channel=%s)", msg, e.GuildID, e.ChannelID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }
