// Package discord implements the gate client on top of a discordgo gateway
// session and exposes the voice connection as a pipeline sink.
package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/bachtran02/go-live-streamer/internal/log"
)

const loginTimeout = 30 * time.Second

var (
	ErrNotLoggedIn = errors.New("discord: not logged in")
	ErrNoVoice     = errors.New("discord: no voice connection")
)

var loggerOnce sync.Once

// routeLogs sends discordgo's internal logging through zerolog.
func routeLogs(logger zerolog.Logger) {
	loggerOnce.Do(func() {
		discordgo.Logger = func(level, _ int, format string, a ...interface{}) {
			ev := logger.Debug()
			switch level {
			case discordgo.LogError:
				ev = logger.Error()
			case discordgo.LogWarning:
				ev = logger.Warn()
			case discordgo.LogInformational:
				ev = logger.Info()
			}
			ev.Msgf(format, a...)
		}
	})
}

type Client struct {
	token  string
	logger zerolog.Logger

	ready  atomic.Bool
	selfID atomic.Value

	mu          sync.Mutex
	session     *discordgo.Session
	vc          *discordgo.VoiceConnection
	guildID     string
	channelID   string
	onVoiceLost func(guildID string)
}

func New(token string) *Client {
	c := &Client{
		token:  token,
		logger: log.WithComponent("discord"),
	}
	routeLogs(c.logger)
	return c
}

// OnVoiceLost registers fn to run when the account is disconnected or moved
// out of the joined channel by someone else.
func (c *Client) OnVoiceLost(fn func(guildID string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onVoiceLost = fn
}

func (c *Client) Ready() bool {
	return c.ready.Load()
}

func (c *Client) Login(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	s, err := discordgo.New(c.token)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates

	readyCh := make(chan struct{}, 1)
	s.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		if r.User != nil {
			c.selfID.Store(r.User.ID)
		}
		c.ready.Store(true)
		select {
		case readyCh <- struct{}{}:
		default:
		}
	})
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Resumed) { c.ready.Store(true) })
	s.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) { c.ready.Store(false) })
	s.AddHandler(c.onVoiceStateUpdate)

	c.mu.Lock()
	old := c.session
	c.session = nil
	c.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	select {
	case <-readyCh:
	case <-ctx.Done():
		_ = s.Close()
		return fmt.Errorf("wait for ready: %w", ctx.Err())
	}

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	c.logger.Info().Str("user_id", c.self()).Msg("gateway ready")
	return nil
}

func (c *Client) self() string {
	id, _ := c.selfID.Load().(string)
	return id
}

type joinResult struct {
	vc  *discordgo.VoiceConnection
	err error
}

func (c *Client) JoinVoice(ctx context.Context, guildID, channelID string) error {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s == nil {
		return ErrNotLoggedIn
	}

	ch := make(chan joinResult, 1)
	go func() {
		vc, err := s.ChannelVoiceJoin(guildID, channelID, false, true)
		ch <- joinResult{vc: vc, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return fmt.Errorf("voice join: %w", r.err)
		}
		c.mu.Lock()
		c.vc = r.vc
		c.guildID = guildID
		c.channelID = channelID
		c.mu.Unlock()
		return nil
	case <-ctx.Done():
		// A late success still holds the channel; give it back.
		go func() {
			if r := <-ch; r.vc != nil {
				_ = r.vc.Disconnect()
			}
		}()
		return ctx.Err()
	}
}

func (c *Client) LeaveVoice(ctx context.Context) error {
	c.mu.Lock()
	vc := c.vc
	c.vc = nil
	c.guildID, c.channelID = "", ""
	c.mu.Unlock()

	if vc == nil {
		return nil
	}

	errCh := make(chan error, 1)
	go func() { errCh <- vc.Disconnect() }()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("voice disconnect: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Voice returns the active voice connection, or nil.
func (c *Client) Voice() *discordgo.VoiceConnection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vc
}

func (c *Client) onVoiceStateUpdate(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v == nil || v.VoiceState == nil || v.UserID == "" || v.UserID != c.self() {
		return
	}

	c.mu.Lock()
	if c.vc == nil || v.GuildID != c.guildID || v.ChannelID == c.channelID {
		c.mu.Unlock()
		return
	}
	guildID, from := c.guildID, c.channelID
	c.vc = nil
	c.guildID, c.channelID = "", ""
	fn := c.onVoiceLost
	c.mu.Unlock()

	c.logger.Warn().
		Str("guild_id", guildID).
		Str("from_channel_id", from).
		Str("to_channel_id", v.ChannelID).
		Msg("voice connection taken away")

	if fn != nil {
		fn(guildID)
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	s, vc := c.session, c.vc
	c.session, c.vc = nil, nil
	c.mu.Unlock()

	c.ready.Store(false)
	var errs []error
	if vc != nil {
		errs = append(errs, vc.Disconnect())
	}
	if s != nil {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
