package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bachtran02/go-live-streamer/internal/log"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DISCORD_USER_TOKEN", "")
	path := writeConfig(t, `
discord:
  token: abc
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Discord.Token)
	assert.Equal(t, "0.0.0.0", cfg.Grpc.Host)
	assert.Equal(t, 50051, cfg.Grpc.Port)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, time.Second, cfg.Stream.GracePeriod)
	assert.Equal(t, 60*time.Minute, cfg.Stream.DefaultDuration)
	assert.Equal(t, []string{SinkVoice}, cfg.Pipeline.Sinks)

	enc := cfg.Pipeline.Encoding
	assert.False(t, enc.NoTranscoding)
	assert.True(t, enc.MinimizeLatency)
	assert.Equal(t, 5000, enc.BitrateVideo)
	assert.Equal(t, 7500, enc.BitrateVideoMax)
	assert.Equal(t, "H264", enc.VideoCodec)
	assert.Equal(t, "veryfast", enc.H26xPreset)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
discord:
  token: from-file
  guild_id: "1"
  channel_id: "2"
grpc:
  port: 6000
stream:
  grace_period: 250ms
  default_duration: 30m
  max_duration: 2h
pipeline:
  sinks: [voice, whip]
  encoding:
    minimize_latency: false
    bitrate_video: 3000
    bitrate_video_max: 4000
    video_codec: h264
mediamtx:
  whip_endpoint: http://localhost:8889/live/whip
`)
	t.Setenv("DISCORD_USER_TOKEN", "from-env")
	t.Setenv("STREAMER_GRPC_PORT", "7000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Discord.Token)
	assert.Equal(t, 7000, cfg.Grpc.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Stream.GracePeriod)
	assert.Equal(t, 2*time.Hour, cfg.Stream.MaxDuration)
	assert.True(t, cfg.Pipeline.HasSink(SinkWHIP))
	assert.False(t, cfg.Pipeline.Encoding.MinimizeLatency)
	assert.Equal(t, "H264", cfg.Pipeline.Encoding.VideoCodec)
}

func TestEnvOverridesLoggedAfterConfigure(t *testing.T) {
	var buf bytes.Buffer
	log.Configure(log.Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { log.Configure(log.Config{Level: "info"}) })

	path := writeConfig(t, "discord:\n  token: from-file\n")
	t.Setenv("DISCORD_USER_TOKEN", "secret-token")
	t.Setenv("STREAMER_GRPC_PORT", "not-a-port")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "loading does not log")

	assert.Equal(t, []EnvOverride{
		{Key: "DISCORD_USER_TOKEN", Sensitive: true},
		{Key: "STREAMER_GRPC_PORT", Value: "not-a-port", Invalid: true},
		{Key: "LOG_LEVEL", Value: "DEBUG"},
	}, cfg.Env)
	assert.Equal(t, 50051, cfg.Grpc.Port)
	assert.Equal(t, "debug", cfg.Log.Level)

	cfg.LogEnv()
	out := buf.String()
	assert.Contains(t, out, `"key":"DISCORD_USER_TOKEN"`)
	assert.Contains(t, out, "ignoring invalid environment variable")
	assert.Contains(t, out, `"component":"config"`)
	assert.NotContains(t, out, "secret-token")
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing token",
			body: "grpc:\n  port: 1\n",
			want: "field 'Token' is required",
		},
		{
			name: "whip without endpoint",
			body: "discord:\n  token: x\npipeline:\n  sinks: [whip]\n",
			want: "WhipEndpoint",
		},
		{
			name: "bitrate max below min",
			body: "discord:\n  token: x\npipeline:\n  encoding:\n    bitrate_video: 6000\n    bitrate_video_max: 5000\n",
			want: "BitrateVideoMax",
		},
		{
			name: "unknown sink",
			body: "discord:\n  token: x\npipeline:\n  sinks: [rtmp]\n",
			want: "must be one of",
		},
		{
			name: "null combined",
			body: "discord:\n  token: x\npipeline:\n  sinks: [\"null\", voice]\n",
			want: "null sink",
		},
		{
			name: "guild without channel",
			body: "discord:\n  token: x\n  guild_id: \"1\"\n",
			want: "ChannelID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DISCORD_USER_TOKEN", "")
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateNil(t *testing.T) {
	var c *Config
	assert.ErrorIs(t, c.Validate(), ErrNilConfig)
}

func TestExampleConfig(t *testing.T) {
	t.Setenv("DISCORD_USER_TOKEN", "from-env")
	t.Setenv("STREAMER_GRPC_PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadConfig(filepath.Join("..", "..", "config.example.yml"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Discord.Token)
	assert.Equal(t, []string{SinkVoice}, cfg.Pipeline.Sinks)
	assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, cfg.MediaMTX.ICEServers)
	assert.True(t, cfg.Pipeline.Encoding.MinimizeLatency)
}
