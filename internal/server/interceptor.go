package server

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/bachtran02/go-live-streamer/internal/log"
)

const requestIDHeader = "x-request-id"

// RequestIDInterceptor puts the caller's x-request-id, or a fresh one, on
// the context.
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(requestIDHeader); len(v) > 0 {
				id = v[0]
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		return handler(log.ContextWithRequestID(ctx, id), req)
	}
}

func LoggingInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		begin := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		l := log.WithContext(ctx, logger)
		ev := l.Info()
		switch code {
		case codes.OK:
		case codes.Internal, codes.Unknown:
			ev = l.Error().Err(err)
		default:
			ev = l.Warn().Err(err)
		}
		ev.Str("grpc.method", info.FullMethod).
			Str("grpc.code", code.String()).
			Dur("duration", time.Since(begin)).
			Msg("grpc call")
		return resp, err
	}
}

func RecoveryInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error().
					Str("grpc.method", info.FullMethod).
					Interface("panic", p).
					Str("stack", string(debug.Stack())).
					Msg("gRPC panic recovered")
				err = status.Errorf(codes.Internal, "internal server error: %v", p)
			}
		}()
		return handler(ctx, req)
	}
}

// ServerOptions returns the interceptor chain used by the service.
func ServerOptions() []grpc.ServerOption {
	logger := log.WithComponent("grpc")
	return []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor(logger),
			RequestIDInterceptor(),
			LoggingInterceptor(logger),
		),
	}
}
