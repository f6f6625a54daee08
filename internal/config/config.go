package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/bachtran02/go-live-streamer/internal/log"
)

const (
	SinkVoice = "voice"
	SinkWHIP  = "whip"
	SinkNull  = "null"
)

var (
	ErrNilConfig        = errors.New("config is nil")
	ErrValidationFailed = errors.New("config validation failed")
)

func LoadConfig(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	cfg := Default()
	if err = yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type Config struct {
	Discord  DiscordConfig  `yaml:"discord"`
	Grpc     GrpcConfig     `yaml:"grpc"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Stream   StreamConfig   `yaml:"stream"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	MediaMTX MediaMTXConfig `yaml:"mediamtx"`

	// Env lists the environment overrides applied by LoadConfig. They are
	// logged by LogEnv once the logger is configured.
	Env []EnvOverride `yaml:"-"`
}

type EnvOverride struct {
	Key       string
	Value     string
	Sensitive bool
	// Invalid means the value could not be parsed and was ignored.
	Invalid bool
}

type DiscordConfig struct {
	Token     string `yaml:"token" validate:"required"`
	GuildID   string `yaml:"guild_id"`
	ChannelID string `yaml:"channel_id" validate:"required_with=GuildID"`
}

type GrpcConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
}

type StreamConfig struct {
	GracePeriod     time.Duration `yaml:"grace_period" validate:"min=0"`
	DefaultDuration time.Duration `yaml:"default_duration" validate:"gt=0"`
	MaxDuration     time.Duration `yaml:"max_duration" validate:"gtefield=DefaultDuration"`
}

type PipelineConfig struct {
	FFmpegPath string         `yaml:"ffmpeg_path"`
	Sinks      []string       `yaml:"sinks" validate:"min=1,dive,oneof=voice whip null"`
	Encoding   EncodingConfig `yaml:"encoding"`
}

// EncodingConfig is passed through to the ffmpeg pipeline untouched by the
// session controller.
type EncodingConfig struct {
	NoTranscoding   bool   `yaml:"no_transcoding"`
	MinimizeLatency bool   `yaml:"minimize_latency"`
	BitrateVideo    int    `yaml:"bitrate_video" validate:"min=100"`
	BitrateVideoMax int    `yaml:"bitrate_video_max" validate:"gtefield=BitrateVideo"`
	BitrateAudio    int    `yaml:"bitrate_audio" validate:"min=16,max=512"`
	VideoCodec      string `yaml:"video_codec" validate:"oneof=H264"`
	H26xPreset      string `yaml:"h26x_preset" validate:"oneof=ultrafast superfast veryfast faster fast medium slow slower veryslow"`
	Framerate       int    `yaml:"framerate" validate:"min=1,max=120"`
}

type MediaMTXConfig struct {
	WhipEndpoint string `yaml:"whip_endpoint" validate:"omitempty,url"`

	// ICEServers is left as given when set, including an explicit empty list.
	ICEServers []string `yaml:"ice_servers" validate:"dive,required"`
}

// Default returns a config populated with the built-in defaults. The
// encoding defaults match the stream settings used by the bot before the
// options were exposed.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.Pipeline.Encoding.MinimizeLatency = true
	return cfg
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DISCORD_USER_TOKEN"); ok && v != "" {
		c.Discord.Token = v
		c.Env = append(c.Env, EnvOverride{Key: "DISCORD_USER_TOKEN", Sensitive: true})
	}
	if v, ok := os.LookupEnv("STREAMER_GRPC_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err == nil {
			c.Grpc.Port = port
		}
		c.Env = append(c.Env, EnvOverride{Key: "STREAMER_GRPC_PORT", Value: v, Invalid: err != nil})
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
		c.Env = append(c.Env, EnvOverride{Key: "LOG_LEVEL", Value: v})
	}
}

// LogEnv reports the environment overrides recorded by LoadConfig.
func (c Config) LogEnv() {
	logger := log.WithComponent("config")
	for _, o := range c.Env {
		switch {
		case o.Invalid:
			logger.Warn().Str("key", o.Key).Str("value", o.Value).Msg("ignoring invalid environment variable")
		case o.Sensitive:
			logger.Debug().Str("key", o.Key).Bool("sensitive", true).Msg("using environment variable")
		default:
			logger.Debug().Str("key", o.Key).Str("value", o.Value).Msg("using environment variable")
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Grpc.Host == "" {
		c.Grpc.Host = "0.0.0.0"
	}
	if c.Grpc.Port == 0 {
		c.Grpc.Port = 50051
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":9090"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Stream.GracePeriod == 0 {
		c.Stream.GracePeriod = time.Second
	}
	if c.Stream.DefaultDuration == 0 {
		c.Stream.DefaultDuration = 60 * time.Minute
	}
	if c.Stream.MaxDuration == 0 {
		c.Stream.MaxDuration = 24 * time.Hour
	}

	if c.MediaMTX.ICEServers == nil {
		c.MediaMTX.ICEServers = []string{"stun:stun.l.google.com:19302"}
	}

	p := &c.Pipeline
	if p.FFmpegPath == "" {
		p.FFmpegPath = "ffmpeg"
	}
	if len(p.Sinks) == 0 {
		p.Sinks = []string{SinkVoice}
	}

	e := &p.Encoding
	if e.BitrateVideo == 0 {
		e.BitrateVideo = 5000
	}
	if e.BitrateVideoMax == 0 {
		e.BitrateVideoMax = 7500
	}
	if e.BitrateAudio == 0 {
		e.BitrateAudio = 128
	}
	if e.VideoCodec == "" {
		e.VideoCodec = "H264"
	}
	e.VideoCodec = strings.ToUpper(e.VideoCodec)
	if e.H26xPreset == "" {
		e.H26xPreset = "veryfast"
	}
	if e.Framerate == 0 {
		e.Framerate = 30
	}
}

// Validate checks struct tags and the cross-section rules the tags cannot
// express.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, formatValidationErrors(err))
	}

	if slices.Contains(c.Pipeline.Sinks, SinkWHIP) && c.MediaMTX.WhipEndpoint == "" {
		return fmt.Errorf("%w: field 'WhipEndpoint' is required when the whip sink is enabled", ErrValidationFailed)
	}
	if slices.Contains(c.Pipeline.Sinks, SinkNull) && len(c.Pipeline.Sinks) > 1 {
		return fmt.Errorf("%w: the null sink cannot be combined with other sinks", ErrValidationFailed)
	}
	return nil
}

// HasSink reports whether the named sink is enabled.
func (p PipelineConfig) HasSink(name string) bool {
	return slices.Contains(p.Sinks, name)
}

func formatValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		field := fieldErr.Field()
		param := fieldErr.Param()

		switch fieldErr.Tag() {
		case "required", "required_with":
			msgs = append(msgs, fmt.Sprintf("field '%s' is required", field))
		case "min", "gt":
			msgs = append(msgs, fmt.Sprintf("field '%s' must be at least %s", field, param))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field '%s' must be at most %s", field, param))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field '%s' must be one of [%s]", field, param))
		case "gtefield":
			msgs = append(msgs, fmt.Sprintf("field '%s' must be greater than or equal to '%s'", field, param))
		case "url":
			msgs = append(msgs, fmt.Sprintf("field '%s' must be a valid URL", field))
		default:
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", field, fieldErr.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
