package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/bachtran02/go-live-streamer/internal/log"
	"github.com/bachtran02/go-live-streamer/internal/pipeline"
)

const sendTimeout = time.Second

var ErrSendTimeout = errors.New("discord: opus send timed out")

// VoiceSink plays the audio of a run into the current voice connection.
type VoiceSink struct {
	voice  func() *discordgo.VoiceConnection
	logger zerolog.Logger
}

func NewVoiceSink(voice func() *discordgo.VoiceConnection) *VoiceSink {
	return &VoiceSink{voice: voice, logger: log.WithComponent("voice")}
}

func (s *VoiceSink) Name() string     { return "voice" }
func (s *VoiceSink) WantsVideo() bool { return false }

func (s *VoiceSink) Open(ctx context.Context) (pipeline.Publisher, error) {
	vc := s.voice()
	if vc == nil {
		return nil, ErrNoVoice
	}
	if err := vc.Speaking(true); err != nil {
		s.logger.Debug().Err(err).Msg("speaking on")
	}
	return &voicePublisher{
		ctx:    ctx,
		vc:     vc,
		timer:  time.NewTimer(sendTimeout),
		logger: s.logger,
	}, nil
}

type voicePublisher struct {
	ctx    context.Context
	vc     *discordgo.VoiceConnection
	timer  *time.Timer
	logger zerolog.Logger
}

func (p *voicePublisher) WriteAudio(packet []byte, _ time.Duration) error {
	buf := make([]byte, len(packet))
	copy(buf, packet)

	p.timer.Reset(sendTimeout)
	select {
	case p.vc.OpusSend <- buf:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	case <-p.timer.C:
		return ErrSendTimeout
	}
}

// WriteVideo drops video; voice channels carry audio only.
func (p *voicePublisher) WriteVideo([]byte, time.Duration) error { return nil }

func (p *voicePublisher) Close() error {
	p.timer.Stop()
	if err := p.vc.Speaking(false); err != nil {
		p.logger.Debug().Err(err).Msg("speaking off")
	}
	return nil
}
