package server

import (
	"context"
	"errors"
	"math"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/bachtran02/go-live-streamer/internal/gate"
	"github.com/bachtran02/go-live-streamer/internal/pipeline/stub"
	"github.com/bachtran02/go-live-streamer/internal/session"
	pb "github.com/bachtran02/go-live-streamer/proto/gen/streamer-proto"
)

type fakeClient struct {
	mu    sync.Mutex
	ready bool
}

func (f *fakeClient) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func (f *fakeClient) Login(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ready = true
	return nil
}

func (f *fakeClient) JoinVoice(context.Context, string, string) error { return nil }
func (f *fakeClient) LeaveVoice(context.Context) error                { return nil }

type env struct {
	client pb.StreamControllerClient
	ctrl   *session.Controller
	pipe   *stub.Pipeline
}

func newEnv(t *testing.T) *env {
	t.Helper()

	pipe := stub.New()
	g := gate.New(&fakeClient{})
	ctrl := session.NewController(g, pipe, session.Options{
		GracePeriod:      200 * time.Millisecond,
		DefaultDuration:  time.Hour,
		MaxDuration:      2 * time.Hour,
		DefaultGuildID:   "guild-1",
		DefaultChannelID: "voice-1",
	})

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(ServerOptions()...)
	pb.RegisterStreamControllerServer(srv, NewServer(ctrl))
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = ctrl.Shutdown(ctx)
		_ = conn.Close()
		srv.Stop()
	})
	return &env{client: pb.NewStreamControllerClient(conn), ctrl: ctrl, pipe: pipe}
}

func TestStartStopOverGRPC(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	resp, err := e.client.StartStream(ctx, &pb.StartStreamRequest{
		Target:          "https://example.com/video.mp4",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "streaming", resp.GetState())
	assert.Equal(t, "https://example.com/video.mp4", resp.GetTarget())
	assert.Equal(t, "voice-1", resp.GetChannelId())
	assert.NotEmpty(t, resp.GetSessionId())
	assert.Equal(t, 30*time.Minute, resp.GetDurationLimit().AsDuration())
	assert.True(t, resp.GetDeadline().AsTime().After(resp.GetStartedAt().AsTime()))

	_, err = e.client.StartStream(ctx, &pb.StartStreamRequest{Target: "video2"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	resp, err = e.client.StopStream(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "idle", resp.GetState())
	assert.Nil(t, resp.GetStartedAt())

	runs := e.pipe.Runs()
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Canceled())
}

func TestStartStreamInvalidArguments(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.client.StartStream(ctx, &pb.StartStreamRequest{Target: "  "})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = e.client.StartStream(ctx, &pb.StartStreamRequest{Target: "video1", DurationMinutes: 180})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = e.client.StartStream(ctx, &pb.StartStreamRequest{Target: "video1", DurationMinutes: math.Inf(1)})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = e.client.JoinChannel(ctx, &pb.JoinChannelRequest{ChannelId: "voice-1"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	assert.Empty(t, e.pipe.Runs())
}

func TestJoinLeaveOverGRPC(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	resp, err := e.client.JoinChannel(ctx, &pb.JoinChannelRequest{GuildId: "guild-2", ChannelId: "voice-9"})
	require.NoError(t, err)
	require.NotNil(t, resp.GetMembership())
	assert.Equal(t, "voice-9", resp.GetMembership().GetChannelId())
	assert.NotNil(t, resp.GetMembership().GetJoinedAt())

	resp, err = e.client.StartStream(ctx, &pb.StartStreamRequest{Target: "video1"})
	require.NoError(t, err)
	assert.Equal(t, "voice-9", resp.GetChannelId(), "start uses the current channel")

	resp, err = e.client.LeaveChannel(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "idle", resp.GetState())
	assert.Nil(t, resp.GetMembership())

	resp, err = e.client.GetStatus(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "idle", resp.GetState())
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"already active", &session.AlreadyActiveError{Status: session.StatusStreaming}, codes.FailedPrecondition},
		{"invalid target", session.ErrInvalidTarget, codes.InvalidArgument},
		{"invalid duration", session.ErrInvalidDuration, codes.InvalidArgument},
		{"auth", &gate.AuthError{Err: errors.New("bad token")}, codes.Unauthenticated},
		{"connection", &gate.ConnectionError{Op: "join", Err: gate.ErrNoChannel}, codes.Unavailable},
		{"pipeline", &session.PipelineError{Target: "x", Err: errors.New("exit 1")}, codes.Internal},
		{"start canceled", session.ErrStartCanceled, codes.Aborted},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"canceled", context.Canceled, codes.Canceled},
		{"other", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(toStatus(tt.err)))
		})
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	ic := RecoveryInterceptor(zerolog.Nop())
	_, err := ic(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: pb.StreamController_GetStatus_FullMethodName},
		func(context.Context, any) (any, error) { panic("boom") })
	assert.Equal(t, codes.Internal, status.Code(err))
}
