// Package server exposes the session controller over gRPC and serves the
// admin HTTP endpoints.
package server

import (
	"context"
	"errors"
	"math"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/bachtran02/go-live-streamer/internal/gate"
	"github.com/bachtran02/go-live-streamer/internal/session"
	pb "github.com/bachtran02/go-live-streamer/proto/gen/streamer-proto"
)

// Controller is the part of session.Controller the server drives.
type Controller interface {
	Start(ctx context.Context, req session.StartRequest) error
	Stop(ctx context.Context) error
	Join(ctx context.Context, guildID, channelID string) error
	Leave(ctx context.Context) error
	Status() session.Snapshot
}

type StreamControllerService struct {
	pb.UnimplementedStreamControllerServer
	ctrl Controller
}

func NewServer(ctrl Controller) *StreamControllerService {
	return &StreamControllerService{ctrl: ctrl}
}

func (s *StreamControllerService) StartStream(ctx context.Context, req *pb.StartStreamRequest) (*pb.Status, error) {
	minutes := req.GetDurationMinutes()
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes > math.MaxInt64/float64(time.Minute) {
		return nil, status.Errorf(codes.InvalidArgument, "duration_minutes out of range: %v", minutes)
	}

	err := s.ctrl.Start(ctx, session.StartRequest{
		Target:    req.GetTarget(),
		Duration:  time.Duration(minutes * float64(time.Minute)),
		GuildID:   req.GetGuildId(),
		ChannelID: req.GetChannelId(),
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toProto(s.ctrl.Status()), nil
}

func (s *StreamControllerService) StopStream(ctx context.Context, _ *emptypb.Empty) (*pb.Status, error) {
	if err := s.ctrl.Stop(ctx); err != nil {
		return nil, toStatus(err)
	}
	return toProto(s.ctrl.Status()), nil
}

func (s *StreamControllerService) JoinChannel(ctx context.Context, req *pb.JoinChannelRequest) (*pb.Status, error) {
	if req.GetGuildId() == "" || req.GetChannelId() == "" {
		return nil, status.Error(codes.InvalidArgument, "guild_id and channel_id are required")
	}

	if err := s.ctrl.Join(ctx, req.GetGuildId(), req.GetChannelId()); err != nil {
		return nil, toStatus(err)
	}
	return toProto(s.ctrl.Status()), nil
}

func (s *StreamControllerService) LeaveChannel(ctx context.Context, _ *emptypb.Empty) (*pb.Status, error) {
	if err := s.ctrl.Leave(ctx); err != nil {
		return nil, toStatus(err)
	}
	return toProto(s.ctrl.Status()), nil
}

func (s *StreamControllerService) GetStatus(context.Context, *emptypb.Empty) (*pb.Status, error) {
	return toProto(s.ctrl.Status()), nil
}

func timestamp(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return nil
	}
	return timestamppb.New(t)
}

func toProto(snap session.Snapshot) *pb.Status {
	out := &pb.Status{
		SessionId: snap.SessionID,
		Target:    snap.Target,
		State:     snap.Status.String(),
		GuildId:   snap.GuildID,
		ChannelId: snap.ChannelID,
		CreatedAt: timestamp(snap.CreatedAt),
		StartedAt: timestamp(snap.StartedAt),
		Deadline:  timestamp(snap.Deadline),
	}
	if snap.DurationLimit > 0 {
		out.DurationLimit = durationpb.New(snap.DurationLimit)
	}
	if m := snap.Membership; m != nil {
		out.Membership = &pb.Membership{
			GuildId:   m.GuildID,
			ChannelId: m.ChannelID,
			JoinedAt:  timestamp(m.JoinedAt),
		}
	}
	return out
}

// toStatus maps controller errors onto gRPC codes.
func toStatus(err error) error {
	var perr *session.PipelineError
	code := codes.Internal

	switch {
	case errors.Is(err, session.ErrAlreadyActive):
		code = codes.FailedPrecondition
	case errors.Is(err, session.ErrInvalidTarget), errors.Is(err, session.ErrInvalidDuration):
		code = codes.InvalidArgument
	case errors.Is(err, session.ErrStartCanceled):
		code = codes.Aborted
	case errors.Is(err, gate.ErrAuth):
		code = codes.Unauthenticated
	case errors.Is(err, gate.ErrConnection):
		code = codes.Unavailable
	case errors.As(err, &perr):
		code = codes.Internal
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	}
	return status.Error(code, err.Error())
}
