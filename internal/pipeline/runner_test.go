//go:build unix

package pipeline

import (
	"bytes"
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bachtran02/go-live-streamer/internal/config"
	"github.com/bachtran02/go-live-streamer/internal/log"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeFFmpeg writes an executable shell script standing in for ffmpeg.
func fakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func waitDone(t *testing.T, done <-chan struct{}, within time.Duration) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(within):
		t.Fatalf("pipeline did not finish within %s", within)
	}
}

func TestRunnerNaturalEnd(t *testing.T) {
	sink := &recordingSink{name: "voice"}
	r := NewRunner(fakeFFmpeg(t, "exit 0"), config.Default().Pipeline.Encoding, sink, time.Second)

	h, err := r.Run(context.Background(), "video1")
	require.NoError(t, err)
	waitDone(t, h.Done(), 5*time.Second)

	assert.NoError(t, h.Err())
	opened, closed, _, _ := sink.counts()
	assert.Equal(t, 1, opened)
	assert.Equal(t, 1, closed)
}

func TestRunnerLogsCarrySessionID(t *testing.T) {
	var buf bytes.Buffer
	log.Configure(log.Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { log.Configure(log.Config{Level: "info"}) })

	sink := &recordingSink{name: "voice"}
	r := NewRunner(fakeFFmpeg(t, "exit 0"), config.Default().Pipeline.Encoding, sink, time.Second)

	ctx := log.ContextWithSessionID(context.Background(), "sess-42")
	h, err := r.Run(ctx, "video1")
	require.NoError(t, err)
	waitDone(t, h.Done(), 5*time.Second)

	var msgs []string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		assert.Equal(t, "sess-42", entry["session_id"], entry["message"])
		assert.Equal(t, "pipeline", entry["component"])
		msgs = append(msgs, entry["message"].(string))
	}
	assert.Contains(t, msgs, "ffmpeg started")
	assert.Contains(t, msgs, "ffmpeg exited")
}

func TestRunnerNaturalEndWithVideo(t *testing.T) {
	sink := &recordingSink{name: "whip", video: true}
	r := NewRunner(fakeFFmpeg(t, "exit 0"), config.Default().Pipeline.Encoding, sink, time.Second)

	h, err := r.Run(context.Background(), "video1")
	require.NoError(t, err)
	waitDone(t, h.Done(), 5*time.Second)
	assert.NoError(t, h.Err())
}

func TestRunnerFailureCarriesStderr(t *testing.T) {
	sink := &recordingSink{name: "voice"}
	script := `echo "video1: No such file or directory" >&2; exit 1`
	r := NewRunner(fakeFFmpeg(t, script), config.Default().Pipeline.Encoding, sink, time.Second)

	h, err := r.Run(context.Background(), "video1")
	require.NoError(t, err)
	waitDone(t, h.Done(), 5*time.Second)

	require.Error(t, h.Err())
	assert.Contains(t, h.Err().Error(), "No such file or directory")
	assert.NotErrorIs(t, h.Err(), context.Canceled)
}

func TestRunnerCancelTerminatesProcess(t *testing.T) {
	sink := &recordingSink{name: "voice"}
	r := NewRunner(fakeFFmpeg(t, "exec sleep 30"), config.Default().Pipeline.Encoding, sink, 500*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	h, err := r.Run(ctx, "video1")
	require.NoError(t, err)

	select {
	case <-h.Done():
		t.Fatal("pipeline ended before cancellation")
	case <-time.After(100 * time.Millisecond):
	}

	begin := time.Now()
	cancel()
	waitDone(t, h.Done(), 3*time.Second)

	assert.ErrorIs(t, h.Err(), context.Canceled)
	assert.Less(t, time.Since(begin), 2*time.Second)
	_, closed, _, _ := sink.counts()
	assert.Equal(t, 1, closed)
}

func TestRunnerCancelEscalatesToKill(t *testing.T) {
	sink := &recordingSink{name: "voice"}
	r := NewRunner(fakeFFmpeg(t, "trap '' TERM; sleep 30"), config.Default().Pipeline.Encoding, sink, 200*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	h, err := r.Run(ctx, "video1")
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	cancel()
	waitDone(t, h.Done(), 3*time.Second)
	assert.ErrorIs(t, h.Err(), context.Canceled)
}

func TestRunnerStartFailureClosesSink(t *testing.T) {
	sink := &recordingSink{name: "voice"}
	r := NewRunner(filepath.Join(t.TempDir(), "missing"), config.Default().Pipeline.Encoding, sink, time.Second)

	_, err := r.Run(context.Background(), "video1")
	require.Error(t, err)

	_, closed, _, _ := sink.counts()
	assert.Equal(t, 1, closed)
}

func TestRunnerSinkOpenFailure(t *testing.T) {
	sink := &recordingSink{name: "whip", openErr: errors.New("no answer")}
	r := NewRunner(fakeFFmpeg(t, "exit 0"), config.Default().Pipeline.Encoding, sink, time.Second)

	_, err := r.Run(context.Background(), "video1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open sink whip")
}

func TestPumpAudioEmptyStream(t *testing.T) {
	sink := &recordingSink{name: "voice"}
	pub, _ := sink.Open(context.Background())
	assert.NoError(t, pumpAudio(bytes.NewReader(nil), pub))
}

func TestPumpAudioGarbage(t *testing.T) {
	sink := &recordingSink{name: "voice"}
	pub, _ := sink.Open(context.Background())
	err := pumpAudio(bytes.NewReader(bytes.Repeat([]byte("not an ogg stream "), 8)), pub)
	assert.ErrorContains(t, err, "read ogg header")
}
