// Package pipeline runs ffmpeg for a stream target and feeds its Opus and
// H264 output into the configured sinks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/pion/webrtc/v4/pkg/media/h264reader"
	"github.com/pion/webrtc/v4/pkg/media/oggreader"
	"github.com/rs/zerolog"

	"github.com/bachtran02/go-live-streamer/internal/config"
	"github.com/bachtran02/go-live-streamer/internal/log"
	"github.com/bachtran02/go-live-streamer/internal/procgroup"
	"github.com/bachtran02/go-live-streamer/internal/session"
)

const (
	opusSampleRate = 48000
	stderrLines    = 64
	stderrTail     = 5
)

// ErrPublish marks failures writing to a sink.
var ErrPublish = errors.New("publish failed")

type Runner struct {
	binPath   string
	enc       config.EncodingConfig
	sink      Sink
	killGrace time.Duration
	logger    zerolog.Logger
}

// NewRunner returns a Runner that spawns binPath for each run. killGrace is
// how long ffmpeg gets between SIGTERM and SIGKILL.
func NewRunner(binPath string, enc config.EncodingConfig, sink Sink, killGrace time.Duration) *Runner {
	if killGrace <= 0 {
		killGrace = 500 * time.Millisecond
	}
	return &Runner{
		binPath:   binPath,
		enc:       enc,
		sink:      sink,
		killGrace: killGrace,
		logger:    log.WithComponent("pipeline"),
	}
}

type handle struct {
	done chan struct{}
	err  error
}

func (h *handle) Done() <-chan struct{} { return h.done }

func (h *handle) Err() error {
	<-h.done
	return h.err
}

// Run starts ffmpeg for target. The returned handle completes after the
// process has exited and the sink is closed.
func (r *Runner) Run(ctx context.Context, target string) (session.Handle, error) {
	logger := log.WithContext(ctx, r.logger).With().Str("target", target).Str("sink", r.sink.Name()).Logger()

	pub, err := r.sink.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open sink %s: %w", r.sink.Name(), err)
	}

	withVideo := r.sink.WantsVideo()
	var readers, writers []*os.File
	closeAll := func(files []*os.File) {
		for _, f := range files {
			_ = f.Close()
		}
	}

	streams := 1
	if withVideo {
		streams = 2
	}
	for i := 0; i < streams; i++ {
		pr, pw, err := os.Pipe()
		if err != nil {
			closeAll(readers)
			closeAll(writers)
			_ = pub.Close()
			return nil, fmt.Errorf("create pipe: %w", err)
		}
		readers = append(readers, pr)
		writers = append(writers, pw)
	}

	ring := NewLineRing(stderrLines)
	cmd := exec.Command(r.binPath, BuildArgs(target, r.enc, withVideo)...)
	cmd.ExtraFiles = writers
	cmd.Stderr = ring
	procgroup.Set(cmd)

	if err := cmd.Start(); err != nil {
		closeAll(readers)
		closeAll(writers)
		_ = pub.Close()
		return nil, fmt.Errorf("start %s: %w", r.binPath, err)
	}
	// The child holds its own copies; ours must go so readers see EOF.
	closeAll(writers)

	logger.Info().Int("pid", cmd.Process.Pid).Bool("video", withVideo).Msg("ffmpeg started")

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	h := &handle{done: make(chan struct{})}
	go r.supervise(ctx, h, cmd, waitCh, pub, readers, ring, logger)
	return h, nil
}

func (r *Runner) supervise(ctx context.Context, h *handle, cmd *exec.Cmd, waitCh <-chan error,
	pub Publisher, readers []*os.File, ring *LineRing, logger zerolog.Logger) {
	pumpFailed := make(chan error, len(readers))
	var wg sync.WaitGroup

	pump := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				pumpFailed <- err
			}
		}()
	}
	pump(func() error { return pumpAudio(readers[0], pub) })
	if len(readers) > 1 {
		frame := time.Second / time.Duration(max(r.enc.Framerate, 1))
		pump(func() error { return pumpVideo(readers[1], pub, frame) })
	}

	var (
		exitErr error
		pumpErr error
	)
	select {
	case exitErr = <-waitCh:
	case <-ctx.Done():
		logger.Debug().Msg("terminating ffmpeg")
		exitErr = procgroup.Terminate(cmd, waitCh, r.killGrace)
	case pumpErr = <-pumpFailed:
		logger.Warn().Err(pumpErr).Msg("sink failed, terminating ffmpeg")
		exitErr = procgroup.Terminate(cmd, waitCh, r.killGrace)
	}

	// The process group is gone, so every writer is closed and the pumps
	// drain to EOF.
	wg.Wait()
	for _, f := range readers {
		_ = f.Close()
	}
	if pumpErr == nil {
		select {
		case pumpErr = <-pumpFailed:
		default:
		}
	}
	if err := pub.Close(); err != nil {
		logger.Debug().Err(err).Msg("sink close")
	}

	switch {
	case ctx.Err() != nil:
		h.err = ctx.Err()
	case pumpErr != nil:
		h.err = pumpErr
	case exitErr != nil:
		tail := ring.LastN(stderrTail)
		if len(tail) == 0 {
			h.err = fmt.Errorf("ffmpeg: %w", exitErr)
		} else {
			h.err = fmt.Errorf("ffmpeg: %w: %s", exitErr, strings.Join(tail, " | "))
		}
	}

	logger.Info().AnErr("result", h.err).Msg("ffmpeg exited")
	close(h.done)
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed)
}

// pumpAudio forwards Opus pages to pub. Each page carries one packet, so the
// granule delta is the packet length. The first audio page has no granule to
// measure from and takes its length from the packet's TOC byte.
func pumpAudio(r io.Reader, pub Publisher) error {
	ogg, _, err := oggreader.NewWith(r)
	if err != nil {
		if isEOF(err) {
			return nil
		}
		return fmt.Errorf("read ogg header: %w", err)
	}

	var last uint64
	for {
		page, header, err := ogg.ParseNextPage()
		if err != nil {
			// A torn page after the ID header is the writer exiting mid-page.
			if isEOF(err) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return fmt.Errorf("read ogg page: %w", err)
		}
		if header.GranulePosition <= last {
			continue
		}

		var d time.Duration
		if last == 0 {
			d = opusDuration(page)
		}
		if d == 0 {
			d = time.Duration(header.GranulePosition-last) * time.Second / opusSampleRate
		}
		last = header.GranulePosition

		if err := pub.WriteAudio(page, d); err != nil {
			return fmt.Errorf("%w: audio: %w", ErrPublish, err)
		}
	}
}

var (
	silkFrames   = [...]time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond, 60 * time.Millisecond}
	hybridFrames = [...]time.Duration{10 * time.Millisecond, 20 * time.Millisecond}
	celtFrames   = [...]time.Duration{2500 * time.Microsecond, 5 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond}
)

// opusDuration returns the playback length of an Opus packet (RFC 6716
// section 3.1), or 0 when the packet is too short to tell.
func opusDuration(packet []byte) time.Duration {
	if len(packet) == 0 {
		return 0
	}
	toc := packet[0]

	var frame time.Duration
	switch config := toc >> 3; {
	case config < 12:
		frame = silkFrames[config%4]
	case config < 16:
		frame = hybridFrames[config%2]
	default:
		frame = celtFrames[config%4]
	}

	switch toc & 0x3 {
	case 0:
		return frame
	case 1, 2:
		return 2 * frame
	default:
		if len(packet) < 2 {
			return 0
		}
		return time.Duration(packet[1]&0x3f) * frame
	}
}

func pumpVideo(r io.Reader, pub Publisher, frame time.Duration) error {
	h264, err := h264reader.NewReader(r)
	if err != nil {
		return fmt.Errorf("open h264 reader: %w", err)
	}
	for {
		nal, err := h264.NextNAL()
		if err != nil {
			if isEOF(err) {
				return nil
			}
			return fmt.Errorf("read h264: %w", err)
		}
		if err := pub.WriteVideo(nal.Data, frame); err != nil {
			return fmt.Errorf("%w: video: %w", ErrPublish, err)
		}
	}
}
