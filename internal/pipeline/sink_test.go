package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	name     string
	video    bool
	openErr  error
	writeErr error

	mu        sync.Mutex
	opened    int
	closed    int
	audio     int
	frames    int
	packets   [][]byte
	durations []time.Duration
}

func (s *recordingSink) Name() string     { return s.name }
func (s *recordingSink) WantsVideo() bool { return s.video }

func (s *recordingSink) Open(context.Context) (Publisher, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.mu.Lock()
	s.opened++
	s.mu.Unlock()
	return (*recordingPublisher)(s), nil
}

func (s *recordingSink) counts() (opened, closed, audio, frames int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened, s.closed, s.audio, s.frames
}

func (s *recordingSink) audioPackets() ([][]byte, []time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.packets, s.durations
}

type recordingPublisher recordingSink

func (p *recordingPublisher) WriteAudio(packet []byte, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.audio++
	p.packets = append(p.packets, append([]byte(nil), packet...))
	p.durations = append(p.durations, d)
	return p.writeErr
}

func (p *recordingPublisher) WriteVideo([]byte, time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frames++
	return p.writeErr
}

func (p *recordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

func TestFanoutSingleSinkIsUnwrapped(t *testing.T) {
	s := &recordingSink{name: "voice"}
	assert.Same(t, s, Fanout(s))
}

func TestFanoutRoutesVideoOnlyToVideoSinks(t *testing.T) {
	voice := &recordingSink{name: "voice"}
	whip := &recordingSink{name: "whip", video: true}
	sink := Fanout(voice, whip)

	assert.Equal(t, "voice+whip", sink.Name())
	assert.True(t, sink.WantsVideo())

	pub, err := sink.Open(context.Background())
	require.NoError(t, err)
	require.NoError(t, pub.WriteAudio([]byte{1}, 20*time.Millisecond))
	require.NoError(t, pub.WriteVideo([]byte{2}, 33*time.Millisecond))
	require.NoError(t, pub.Close())

	_, closed, audio, frames := voice.counts()
	assert.Equal(t, 1, closed)
	assert.Equal(t, 1, audio)
	assert.Zero(t, frames)

	_, closed, audio, frames = whip.counts()
	assert.Equal(t, 1, closed)
	assert.Equal(t, 1, audio)
	assert.Equal(t, 1, frames)
}

func TestFanoutOpenFailureClosesOpened(t *testing.T) {
	voice := &recordingSink{name: "voice"}
	whip := &recordingSink{name: "whip", openErr: errors.New("endpoint down")}

	_, err := Fanout(voice, whip).Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open whip")

	opened, closed, _, _ := voice.counts()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
}

func TestNullSink(t *testing.T) {
	pub, err := Null{}.Open(context.Background())
	require.NoError(t, err)
	assert.NoError(t, pub.WriteAudio(nil, 0))
	assert.NoError(t, pub.WriteVideo(nil, 0))
	assert.NoError(t, pub.Close())
}
