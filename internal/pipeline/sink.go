package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sink is a destination for the encoded streams of one run. Open is called
// once per run; the Publisher it returns is closed when the run ends.
type Sink interface {
	Name() string
	WantsVideo() bool
	Open(ctx context.Context) (Publisher, error)
}

// Publisher receives Opus packets and H264 NAL units with their playout
// duration.
type Publisher interface {
	WriteAudio(packet []byte, duration time.Duration) error
	WriteVideo(nal []byte, duration time.Duration) error
	Close() error
}

// Fanout combines sinks into one. Opening fails if any sink fails to open.
func Fanout(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return fanout(sinks)
}

type fanout []Sink

func (f fanout) Name() string {
	name := ""
	for i, s := range f {
		if i > 0 {
			name += "+"
		}
		name += s.Name()
	}
	return name
}

func (f fanout) WantsVideo() bool {
	for _, s := range f {
		if s.WantsVideo() {
			return true
		}
	}
	return false
}

func (f fanout) Open(ctx context.Context) (Publisher, error) {
	pubs := make(multiPublisher, 0, len(f))
	for _, s := range f {
		p, err := s.Open(ctx)
		if err != nil {
			_ = pubs.Close()
			return nil, fmt.Errorf("open %s: %w", s.Name(), err)
		}
		pubs = append(pubs, target{pub: p, video: s.WantsVideo()})
	}
	return pubs, nil
}

type target struct {
	pub   Publisher
	video bool
}

type multiPublisher []target

func (m multiPublisher) WriteAudio(packet []byte, duration time.Duration) error {
	for _, t := range m {
		if err := t.pub.WriteAudio(packet, duration); err != nil {
			return err
		}
	}
	return nil
}

func (m multiPublisher) WriteVideo(nal []byte, duration time.Duration) error {
	for _, t := range m {
		if !t.video {
			continue
		}
		if err := t.pub.WriteVideo(nal, duration); err != nil {
			return err
		}
	}
	return nil
}

func (m multiPublisher) Close() error {
	var errs []error
	for _, t := range m {
		errs = append(errs, t.pub.Close())
	}
	return errors.Join(errs...)
}

// Null discards everything. Used for dry runs.
type Null struct{}

func (Null) Name() string     { return "null" }
func (Null) WantsVideo() bool { return false }

func (Null) Open(context.Context) (Publisher, error) { return nullPublisher{}, nil }

type nullPublisher struct{}

func (nullPublisher) WriteAudio([]byte, time.Duration) error { return nil }
func (nullPublisher) WriteVideo([]byte, time.Duration) error { return nil }
func (nullPublisher) Close() error                           { return nil }
