// Package session owns the single stream slot of the process: the state
// machine that moves a broadcast through Idle, Joining, Streaming and
// Stopping, the per-attempt cancellation token and the duration watchdog.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bachtran02/go-live-streamer/internal/gate"
	"github.com/bachtran02/go-live-streamer/internal/log"
	"github.com/bachtran02/go-live-streamer/internal/metrics"
)

const (
	defaultGracePeriod = time.Second
	leaveTimeout       = 10 * time.Second
)

// Gate is the connection gate as consumed by the controller.
type Gate interface {
	EnsureAuthenticated(ctx context.Context) error
	Join(ctx context.Context, guildID, channelID string) error
	Leave(ctx context.Context) error
	Membership() (gate.Membership, bool)
}

// Pipeline starts the media for target. The returned Handle must reach Done
// soon after ctx is cancelled.
type Pipeline interface {
	Run(ctx context.Context, target string) (Handle, error)
}

// Handle is a running pipeline. Err is valid once Done is closed: nil for a
// natural end, a context error when the run was cancelled, anything else is
// a pipeline failure.
type Handle interface {
	Done() <-chan struct{}
	Err() error
}

type Options struct {
	// GracePeriod bounds the wait for the pipeline after the token trips.
	GracePeriod time.Duration

	DefaultDuration time.Duration
	MaxDuration     time.Duration

	DefaultGuildID   string
	DefaultChannelID string

	// OnError receives failures that happen after Start returned.
	OnError func(Snapshot, error)
}

type StartRequest struct {
	Target    string
	Duration  time.Duration
	GuildID   string
	ChannelID string
}

type Snapshot struct {
	SessionID     string           `json:"session_id,omitempty"`
	Target        string           `json:"target,omitempty"`
	Status        Status           `json:"status"`
	GuildID       string           `json:"guild_id,omitempty"`
	ChannelID     string           `json:"channel_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at,omitzero"`
	StartedAt     time.Time        `json:"started_at,omitzero"`
	DurationLimit time.Duration    `json:"duration_limit,omitempty"`
	Deadline      time.Time        `json:"deadline,omitzero"`
	Membership    *gate.Membership `json:"membership,omitempty"`
}

type attempt struct {
	id        string
	target    string
	guildID   string
	channelID string
	limit     time.Duration
	createdAt time.Time
	startedAt time.Time

	token    *Token
	watchdog *Watchdog
	handle   Handle

	// guarded by Controller.mu
	status  Status
	trigger Trigger

	idle   chan struct{}
	logger zerolog.Logger
}

func (a *attempt) snapshot() Snapshot {
	s := Snapshot{
		SessionID:     a.id,
		Target:        a.target,
		Status:        a.status,
		GuildID:       a.guildID,
		ChannelID:     a.channelID,
		CreatedAt:     a.createdAt,
		StartedAt:     a.startedAt,
		DurationLimit: a.limit,
	}
	if a.watchdog != nil {
		s.Deadline = a.watchdog.Deadline()
	}
	return s
}

type Controller struct {
	gate     Gate
	pipeline Pipeline
	opts     Options
	logger   zerolog.Logger

	mu      sync.Mutex
	current *attempt
}

func NewController(g Gate, p Pipeline, opts Options) *Controller {
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = defaultGracePeriod
	}
	return &Controller{
		gate:     g,
		pipeline: p,
		opts:     opts,
		logger:   log.WithComponent("session"),
	}
}

// Start claims the slot, joins the voice channel and launches the pipeline.
// It returns once the session is Streaming or has been rolled back to Idle.
func (c *Controller) Start(ctx context.Context, req StartRequest) error {
	target := strings.TrimSpace(req.Target)
	if target == "" {
		return ErrInvalidTarget
	}
	limit, err := c.resolveDuration(req.Duration)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if cur := c.current; cur != nil {
		err := &AlreadyActiveError{Status: cur.status, SessionID: cur.id}
		c.mu.Unlock()
		metrics.IncSessionStart("already_active")
		return err
	}
	guildID, channelID, err := c.resolveChannel(req)
	if err != nil {
		c.mu.Unlock()
		metrics.IncSessionStart("join_error")
		return err
	}
	id := uuid.NewString()
	a := &attempt{
		id:        id,
		target:    target,
		guildID:   guildID,
		channelID: channelID,
		limit:     limit,
		createdAt: time.Now(),
		token:     NewToken(id),
		status:    StatusJoining,
		idle:      make(chan struct{}),
	}
	a.logger = c.logger.With().Str("session_id", a.id).Str("target", target).Logger()
	c.current = a
	metrics.SetStatus(StatusJoining.String())
	c.mu.Unlock()

	a.logger.Info().Str("guild_id", guildID).Str("channel_id", channelID).Dur("limit", limit).Msg("starting stream")

	if err := c.connect(ctx, a); err != nil {
		if cause := a.token.Cause(); cause != nil {
			err = fmt.Errorf("%w: %w", ErrStartCanceled, cause)
		}
		a.logger.Error().Err(err).Msg("join failed, session aborted")
		c.abort(a, err)
		metrics.IncSessionStart("join_error")
		return err
	}

	if a.token.Tripped() {
		c.abort(a, a.token.Cause())
		metrics.IncSessionStart("canceled")
		return fmt.Errorf("%w: %w", ErrStartCanceled, a.token.Cause())
	}

	handle, err := c.pipeline.Run(a.token.Context(), target)
	if err != nil && a.token.Tripped() {
		a.logger.Info().Err(err).Msg("stopped while the pipeline was starting")
		c.abort(a, a.token.Cause())
		metrics.IncSessionStart("canceled")
		return fmt.Errorf("%w: %w", ErrStartCanceled, a.token.Cause())
	}
	if err != nil {
		perr := &PipelineError{Target: target, Err: err}
		a.logger.Error().Err(err).Msg("pipeline failed to start")
		c.abort(a, perr)
		metrics.IncSessionStart("pipeline_error")
		return perr
	}

	c.mu.Lock()
	a.handle = handle
	if a.status != StatusJoining {
		/* Stopped while the pipeline was starting; this goroutine owns the teardown */
		c.mu.Unlock()
		c.teardown(a)
		metrics.IncSessionStart("canceled")
		return fmt.Errorf("%w: %w", ErrStartCanceled, a.token.Cause())
	}
	a.status = StatusStreaming
	a.startedAt = time.Now()
	a.watchdog = Schedule(a.token, limit, func() { c.expire(a) })
	metrics.SetStatus(StatusStreaming.String())
	c.mu.Unlock()

	go c.monitor(a)

	metrics.IncSessionStart("ok")
	a.logger.Info().Time("deadline", a.watchdog.Deadline()).Msg("stream started")
	return nil
}

// Stop ends the active session and waits until the slot is Idle again.
// Stopping an idle controller is a no-op.
func (c *Controller) Stop(ctx context.Context) error {
	return c.stopCurrent(ctx, TriggerStop, ErrStopRequested)
}

// Join connects to a voice channel outside of a stream. It refuses to move
// away from the channel an active session streams into.
func (c *Controller) Join(ctx context.Context, guildID, channelID string) error {
	c.mu.Lock()
	if cur := c.current; cur != nil && (cur.guildID != guildID || cur.channelID != channelID) {
		err := &AlreadyActiveError{Status: cur.status, SessionID: cur.id}
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	if err := c.gate.EnsureAuthenticated(ctx); err != nil {
		return err
	}
	return c.gate.Join(ctx, guildID, channelID)
}

// Leave stops any active stream and then releases the voice channel.
func (c *Controller) Leave(ctx context.Context) error {
	if err := c.Stop(ctx); err != nil {
		return err
	}
	return c.gate.Leave(ctx)
}

// Shutdown stops the session and leaves the channel before the process exits.
func (c *Controller) Shutdown(ctx context.Context) error {
	stopErr := c.stopCurrent(ctx, TriggerShutdown, ErrShutdown)
	leaveErr := c.gate.Leave(ctx)
	return errors.Join(stopErr, leaveErr)
}

// HandleRevoked forces the session to Stopping when the remote side took
// away the channel it streams into.
func (c *Controller) HandleRevoked(m gate.Membership) {
	c.mu.Lock()
	a := c.current
	c.mu.Unlock()

	if a == nil || a.guildID != m.GuildID || a.channelID != m.ChannelID {
		return
	}
	a.logger.Warn().Msg("voice membership revoked, stopping stream")
	if c.requestStop(a, TriggerRevoked, ErrMembershipRevoked) {
		go c.teardown(a)
	}
}

func (c *Controller) Status() Snapshot {
	c.mu.Lock()
	snap := Snapshot{Status: StatusIdle}
	if a := c.current; a != nil {
		snap = a.snapshot()
	}
	c.mu.Unlock()

	if m, ok := c.gate.Membership(); ok {
		snap.Membership = &m
	}
	return snap
}

// Idle returns a channel that is closed once the current session, if any,
// has been torn down.
func (c *Controller) Idle() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return c.current.idle
}

func (c *Controller) resolveDuration(d time.Duration) (time.Duration, error) {
	if d == 0 {
		d = c.opts.DefaultDuration
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDuration, d)
	}
	if c.opts.MaxDuration > 0 && d > c.opts.MaxDuration {
		return 0, fmt.Errorf("%w: %s exceeds maximum %s", ErrInvalidDuration, d, c.opts.MaxDuration)
	}
	return d, nil
}

func (c *Controller) resolveChannel(req StartRequest) (string, string, error) {
	if req.GuildID != "" && req.ChannelID != "" {
		return req.GuildID, req.ChannelID, nil
	}
	if m, ok := c.gate.Membership(); ok {
		return m.GuildID, m.ChannelID, nil
	}
	if c.opts.DefaultGuildID != "" && c.opts.DefaultChannelID != "" {
		return c.opts.DefaultGuildID, c.opts.DefaultChannelID, nil
	}
	return "", "", &gate.ConnectionError{Op: "join", Err: gate.ErrNoChannel}
}

// connect runs login and join with a context that also ends when the token
// trips, so a stop during Joining interrupts the I/O.
func (c *Controller) connect(ctx context.Context, a *attempt) error {
	jctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	release := context.AfterFunc(a.token.Context(), func() { cancel(a.token.Cause()) })
	defer release()

	if err := c.gate.EnsureAuthenticated(jctx); err != nil {
		return err
	}
	return c.gate.Join(jctx, a.guildID, a.channelID)
}

// requestStop is the single stop path shared by every trigger. It reports
// whether the caller won the Streaming to Stopping transition and therefore
// owns the teardown.
func (c *Controller) requestStop(a *attempt, trigger Trigger, cause error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != a {
		return false
	}

	switch a.status {
	case StatusJoining:
		/* Start is still running and will tear down when it notices the trip */
		a.status = StatusStopping
		a.trigger = trigger
		a.token.Trip(cause)
		metrics.SetStatus(StatusStopping.String())
		return false
	case StatusStreaming:
		a.status = StatusStopping
		a.trigger = trigger
		a.token.Trip(cause)
		a.watchdog.Cancel()
		metrics.SetStatus(StatusStopping.String())
		return true
	default:
		return false
	}
}

func (c *Controller) stopCurrent(ctx context.Context, trigger Trigger, cause error) error {
	c.mu.Lock()
	a := c.current
	c.mu.Unlock()

	if a == nil {
		c.logger.Debug().Msg("no stream is currently in progress")
		return nil
	}

	if c.requestStop(a, trigger, cause) {
		c.teardown(a)
		return nil
	}

	select {
	case <-a.idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// teardown trips the token, waits for the pipeline up to the grace period
// and returns the slot to Idle.
func (c *Controller) teardown(a *attempt) {
	started := time.Now()
	a.token.Trip(ErrStopRequested)

	if a.handle != nil {
		timer := time.NewTimer(c.opts.GracePeriod)
		select {
		case <-a.handle.Done():
		case <-timer.C:
			metrics.IncGraceExpired()
			a.logger.Warn().Dur("grace", c.opts.GracePeriod).Msg("pipeline did not acknowledge cancellation, forcing idle")
		}
		timer.Stop()
	}

	c.finish(a)
	metrics.ObserveTeardown(time.Since(started).Seconds())
}

// abort rolls a session that never reached Streaming back to Idle.
func (c *Controller) abort(a *attempt, cause error) {
	if cause == nil {
		cause = ErrStartCanceled
	}
	a.token.Trip(cause)
	c.finish(a)
}

func (c *Controller) finish(a *attempt) {
	c.mu.Lock()
	if c.current == a {
		c.current = nil
	}
	a.status = StatusIdle
	trigger := a.trigger
	if trigger == "" {
		trigger = TriggerAbort
	}
	metrics.SetStatus(StatusIdle.String())
	c.mu.Unlock()

	close(a.idle)
	metrics.IncSessionStop(string(trigger))
	a.logger.Info().Str("trigger", string(trigger)).AnErr("cause", a.token.Cause()).Msg("stream stopped")
}

// monitor turns the pipeline's own end into a stop trigger.
func (c *Controller) monitor(a *attempt) {
	<-a.handle.Done()
	if a.token.Tripped() {
		return
	}

	cause := ErrPipelineEnded
	if err := a.handle.Err(); err != nil && !errors.Is(err, context.Canceled) {
		perr := &PipelineError{Target: a.target, Err: err}
		cause = perr
		c.report(a, perr)
	}

	if c.requestStop(a, TriggerPipeline, cause) {
		c.teardown(a)
	}
}

// expire is the watchdog callback: stop the session, then release the
// channel unless a new session already claimed the slot.
func (c *Controller) expire(a *attempt) {
	if !c.requestStop(a, TriggerTimeout, ErrDurationExceeded) {
		return
	}
	metrics.IncWatchdogFired()
	a.logger.Info().Dur("limit", a.limit).Msg("stopping stream after maximum duration")
	c.teardown(a)

	c.mu.Lock()
	busy := c.current != nil
	c.mu.Unlock()
	if busy {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer cancel()
	if err := c.gate.Leave(ctx); err != nil {
		a.logger.Error().Err(err).Msg("leave after timeout failed")
		return
	}
	a.logger.Info().Msg("disconnected from the voice channel after maximum duration")
}

func (c *Controller) report(a *attempt, err error) {
	metrics.IncPipelineError()
	a.logger.Error().Err(err).Msg("pipeline error")

	if c.opts.OnError != nil {
		c.mu.Lock()
		snap := a.snapshot()
		c.mu.Unlock()
		c.opts.OnError(snap, err)
	}
}
