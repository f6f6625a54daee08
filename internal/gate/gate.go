// Package gate tracks whether the remote client is logged in and which voice
// channel it currently occupies.
package gate

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bachtran02/go-live-streamer/internal/log"
	"github.com/bachtran02/go-live-streamer/internal/metrics"
)

// Client is the remote-service primitive the gate forwards to.
type Client interface {
	Ready() bool
	Login(ctx context.Context) error
	JoinVoice(ctx context.Context, guildID, channelID string) error
	LeaveVoice(ctx context.Context) error
}

// Membership is the voice channel slot currently held.
type Membership struct {
	GuildID   string    `json:"guild_id"`
	ChannelID string    `json:"channel_id"`
	JoinedAt  time.Time `json:"joined_at"`
}

func (m Membership) Targets(guildID, channelID string) bool {
	return m.GuildID == guildID && m.ChannelID == channelID
}

type Gate struct {
	client Client
	logger zerolog.Logger

	// opMu serializes remote I/O; mu guards the fields below it.
	opMu sync.Mutex

	mu         sync.RWMutex
	membership *Membership
	listeners  []func(Membership)
}

func New(client Client) *Gate {
	return &Gate{
		client: client,
		logger: log.WithComponent("gate"),
	}
}

// OnRevoked registers fn to run when the membership is dropped by the remote
// side rather than by Leave.
func (g *Gate) OnRevoked(fn func(Membership)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

func (g *Gate) Authenticated() bool {
	return g.client.Ready()
}

func (g *Gate) Membership() (Membership, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.membership == nil {
		return Membership{}, false
	}
	return *g.membership, true
}

func (g *Gate) EnsureAuthenticated(ctx context.Context) error {
	if g.client.Ready() {
		g.logger.Debug().Msg("client is already logged in")
		return nil
	}

	g.opMu.Lock()
	defer g.opMu.Unlock()

	if g.client.Ready() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &AuthError{Err: err}
	}

	if err := g.client.Login(ctx); err != nil {
		metrics.IncGateOp("login", "error")
		g.logger.Error().Err(err).Msg("login failed")
		return &AuthError{Err: err}
	}

	metrics.IncGateOp("login", "ok")
	g.logger.Info().Msg("client logged in")
	return nil
}

func (g *Gate) Join(ctx context.Context, guildID, channelID string) error {
	if guildID == "" || channelID == "" {
		return &ConnectionError{Op: "join", GuildID: guildID, ChannelID: channelID, Err: ErrNoChannel}
	}

	g.opMu.Lock()
	defer g.opMu.Unlock()

	if m, ok := g.Membership(); ok && m.Targets(guildID, channelID) {
		metrics.IncGateOp("join", "noop")
		g.logger.Debug().Str("guild_id", guildID).Str("channel_id", channelID).Msg("already connected to voice channel")
		return nil
	}

	if !g.client.Ready() {
		metrics.IncGateOp("join", "error")
		return &ConnectionError{Op: "join", GuildID: guildID, ChannelID: channelID, Err: ErrNotAuthenticated}
	}
	if err := ctx.Err(); err != nil {
		return &ConnectionError{Op: "join", GuildID: guildID, ChannelID: channelID, Err: err}
	}

	if err := g.client.JoinVoice(ctx, guildID, channelID); err != nil {
		metrics.IncGateOp("join", "error")
		g.logger.Error().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).Msg("join voice channel failed")
		return &ConnectionError{Op: "join", GuildID: guildID, ChannelID: channelID, Err: err}
	}

	g.mu.Lock()
	g.membership = &Membership{GuildID: guildID, ChannelID: channelID, JoinedAt: time.Now()}
	g.mu.Unlock()

	metrics.IncGateOp("join", "ok")
	g.logger.Info().Str("guild_id", guildID).Str("channel_id", channelID).Msg("joined voice channel")
	return nil
}

// Leave releases the membership. The slot is considered released even when
// the remote call fails; the error is still returned.
func (g *Gate) Leave(ctx context.Context) error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	g.mu.Lock()
	m := g.membership
	g.membership = nil
	g.mu.Unlock()

	if m == nil {
		metrics.IncGateOp("leave", "noop")
		return nil
	}

	if err := g.client.LeaveVoice(ctx); err != nil {
		metrics.IncGateOp("leave", "error")
		g.logger.Error().Err(err).Str("channel_id", m.ChannelID).Msg("leave voice channel failed")
		return &ConnectionError{Op: "leave", GuildID: m.GuildID, ChannelID: m.ChannelID, Err: err}
	}

	metrics.IncGateOp("leave", "ok")
	g.logger.Info().Str("guild_id", m.GuildID).Str("channel_id", m.ChannelID).Msg("left voice channel")
	return nil
}

// Revoke drops the membership for guildID after the remote side removed us
// from the channel, and notifies the OnRevoked listeners.
func (g *Gate) Revoke(guildID string) {
	g.mu.Lock()
	m := g.membership
	if m == nil || m.GuildID != guildID {
		g.mu.Unlock()
		return
	}
	g.membership = nil
	listeners := append([]func(Membership){}, g.listeners...)
	g.mu.Unlock()

	metrics.IncGateOp("revoke", "ok")
	g.logger.Warn().Str("guild_id", m.GuildID).Str("channel_id", m.ChannelID).Msg("voice membership revoked")

	for _, fn := range listeners {
		fn(*m)
	}
}
