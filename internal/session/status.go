package session

type Status int

const (
	StatusIdle Status = iota
	StatusJoining
	StatusStreaming
	StatusStopping
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusJoining:
		return "joining"
	case StatusStreaming:
		return "streaming"
	case StatusStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Trigger names what ended a session.
type Trigger string

const (
	TriggerStop     Trigger = "stop"
	TriggerTimeout  Trigger = "timeout"
	TriggerPipeline Trigger = "pipeline"
	TriggerRevoked  Trigger = "revoked"
	TriggerShutdown Trigger = "shutdown"
	TriggerAbort    Trigger = "abort"
)
