// Package webrtc_session publishes a run to a WHIP endpoint (MediaMTX) over a
// pion peer connection carrying one Opus and one H264 track.
package webrtc_session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/rs/zerolog"

	"github.com/bachtran02/go-live-streamer/internal/log"
	"github.com/bachtran02/go-live-streamer/internal/pipeline"
)

const deleteTimeout = 5 * time.Second

var ErrPeerFailed = errors.New("webrtc: peer connection failed")

// WHIPSink opens one WHIP session per run.
type WHIPSink struct {
	endpoint   string
	iceServers []string
	client     *http.Client
	logger     zerolog.Logger
}

func NewWHIPSink(endpoint string, iceServers []string) *WHIPSink {
	return &WHIPSink{
		endpoint:   endpoint,
		iceServers: iceServers,
		client:     &http.Client{Timeout: 15 * time.Second},
		logger:     log.WithComponent("whip"),
	}
}

func (s *WHIPSink) Name() string     { return "whip" }
func (s *WHIPSink) WantsVideo() bool { return true }

func (s *WHIPSink) Open(ctx context.Context) (pipeline.Publisher, error) {
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

type WebRTCSession struct {
	PeerConnection *webrtc.PeerConnection
	AudioTrack     *webrtc.TrackLocalStaticSample
	VideoTrack     *webrtc.TrackLocalStaticSample

	// resource is the session URL from the Location header, deleted on Close.
	resource string
	client   *http.Client
	failed   atomic.Bool
	logger   zerolog.Logger
}

func newMediaEngine() (*webrtc.MediaEngine, error) {
	mediaEngine := &webrtc.MediaEngine{}

	if err := mediaEngine.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: webrtc.RTPCodecCapability{
			MimeType:    webrtc.MimeTypeOpus,
			ClockRate:   48000,
			Channels:    2,
			SDPFmtpLine: "minptime=10;useinbandfec=1;stereo=1;sprop-stereo=1;maxaveragebitrate=128000;cbr=1",
		},
		PayloadType: 111,
	}, webrtc.RTPCodecTypeAudio); err != nil {
		return nil, err
	}

	if err := mediaEngine.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: webrtc.RTPCodecCapability{
			MimeType:    webrtc.MimeTypeH264,
			ClockRate:   90000,
			SDPFmtpLine: "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=42e01f",
		},
		PayloadType: 102,
	}, webrtc.RTPCodecTypeVideo); err != nil {
		return nil, err
	}
	return mediaEngine, nil
}

func (s *WHIPSink) connect(ctx context.Context) (sess *WebRTCSession, err error) {
	mediaEngine, err := newMediaEngine()
	if err != nil {
		return nil, err
	}

	var iceServers []webrtc.ICEServer
	if len(s.iceServers) > 0 {
		iceServers = []webrtc.ICEServer{{URLs: s.iceServers}}
	}

	api := webrtc.NewAPI(webrtc.WithMediaEngine(mediaEngine))
	peerConnection, err := api.NewPeerConnection(webrtc.Configuration{ICEServers: iceServers})
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			s.logger.Debug().Err(err).Msg("closing peer connection after failed setup")
			_ = peerConnection.Close()
		}
	}()

	audioTrack, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus}, "audio", "go-live-streamer",
	)
	if err != nil {
		return nil, err
	}
	videoTrack, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeH264}, "video", "go-live-streamer",
	)
	if err != nil {
		return nil, err
	}

	for _, track := range []webrtc.TrackLocal{audioTrack, videoTrack} {
		if _, err = peerConnection.AddTransceiverFromTrack(track, webrtc.RTPTransceiverInit{
			Direction: webrtc.RTPTransceiverDirectionSendonly,
		}); err != nil {
			return nil, err
		}
	}

	sess = &WebRTCSession{
		PeerConnection: peerConnection,
		AudioTrack:     audioTrack,
		VideoTrack:     videoTrack,
		client:         s.client,
		logger:         s.logger,
	}
	peerConnection.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		s.logger.Debug().Str("state", state.String()).Msg("peer connection state")
		if state == webrtc.PeerConnectionStateFailed {
			sess.failed.Store(true)
		}
	})

	offer, err := peerConnection.CreateOffer(nil)
	if err != nil {
		return nil, err
	}

	gatherComplete := webrtc.GatheringCompletePromise(peerConnection)
	if err = peerConnection.SetLocalDescription(offer); err != nil {
		return nil, err
	}
	select {
	case <-gatherComplete:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	answer, location, err := s.post(ctx, peerConnection.LocalDescription().SDP)
	if err != nil {
		return nil, err
	}
	sess.resource = location

	if err = peerConnection.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeAnswer,
		SDP:  answer,
	}); err != nil {
		return nil, err
	}

	s.logger.Info().Str("endpoint", s.endpoint).Str("resource", location).Msg("WHIP session established")
	return sess, nil
}

// post sends the offer and returns the answer SDP and the absolute session
// resource URL.
func (s *WHIPSink) post(ctx context.Context, offer string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader([]byte(offer)))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/sdp")

	res, err := s.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("WHIP failed with status: %d", res.StatusCode)
	}

	answer, err := io.ReadAll(res.Body)
	if err != nil {
		return "", "", fmt.Errorf("read answer: %w", err)
	}

	location := ""
	if loc := res.Header.Get("Location"); loc != "" {
		base, err := url.Parse(s.endpoint)
		if err != nil {
			return "", "", err
		}
		ref, err := url.Parse(loc)
		if err != nil {
			return "", "", fmt.Errorf("bad Location header: %w", err)
		}
		location = base.ResolveReference(ref).String()
	}
	return string(answer), location, nil
}

func (s *WebRTCSession) write(track *webrtc.TrackLocalStaticSample, data []byte, d time.Duration) error {
	if s.failed.Load() {
		return ErrPeerFailed
	}
	if err := track.WriteSample(media.Sample{Data: data, Duration: d}); err != nil {
		if errors.Is(err, io.ErrClosedPipe) {
			return fmt.Errorf("%s track closed: %w", track.Kind(), err)
		}
		return err
	}
	return nil
}

func (s *WebRTCSession) WriteAudio(packet []byte, d time.Duration) error {
	return s.write(s.AudioTrack, packet, d)
}

func (s *WebRTCSession) WriteVideo(nal []byte, d time.Duration) error {
	return s.write(s.VideoTrack, nal, d)
}

// Close tears down the WHIP resource and the peer connection.
func (s *WebRTCSession) Close() error {
	var errs []error
	if s.resource != "" {
		ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.resource, nil)
		if err == nil {
			var res *http.Response
			if res, err = s.client.Do(req); err == nil {
				_ = res.Body.Close()
			}
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("resource", s.resource).Msg("WHIP delete failed")
			errs = append(errs, err)
		}
	}
	if s.PeerConnection != nil {
		errs = append(errs, s.PeerConnection.Close())
	}
	return errors.Join(errs...)
}
