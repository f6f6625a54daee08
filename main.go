package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/bachtran02/go-live-streamer/internal/config"
	"github.com/bachtran02/go-live-streamer/internal/discord"
	"github.com/bachtran02/go-live-streamer/internal/gate"
	"github.com/bachtran02/go-live-streamer/internal/log"
	"github.com/bachtran02/go-live-streamer/internal/pipeline"
	"github.com/bachtran02/go-live-streamer/internal/server"
	"github.com/bachtran02/go-live-streamer/internal/session"
	"github.com/bachtran02/go-live-streamer/internal/webrtc_session"
	pb "github.com/bachtran02/go-live-streamer/proto/gen/streamer-proto"
)

const shutdownTimeout = 15 * time.Second

func main() {

	cfgPath := flag.String("config", "config.yml", "path to config file")
	addr := flag.String("addr", "localhost:50051", "controller address for client commands")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "       %s [-addr host:port] start <target> [minutes] | stop | status | join <guild> <channel> | leave\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		log.Configure(log.Config{Level: "warn"})
		os.Exit(runCommand(*addr, flag.Args()))
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log.Configure(log.Config{Level: cfg.Log.Level})
	cfg.LogEnv()

	if err := run(cfg); err != nil {
		log.L().Fatal().Err(err).Msg("streamer exited")
	}
}

func buildSink(cfg config.Config, dc *discord.Client) pipeline.Sink {
	var sinks []pipeline.Sink
	for _, name := range cfg.Pipeline.Sinks {
		switch name {
		case config.SinkVoice:
			sinks = append(sinks, discord.NewVoiceSink(dc.Voice))
		case config.SinkWHIP:
			sinks = append(sinks, webrtc_session.NewWHIPSink(cfg.MediaMTX.WhipEndpoint, cfg.MediaMTX.ICEServers))
		case config.SinkNull:
			sinks = append(sinks, pipeline.Null{})
		}
	}
	return pipeline.Fanout(sinks...)
}

func run(cfg config.Config) error {
	logger := log.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dc := discord.New(cfg.Discord.Token)
	g := gate.New(dc)
	dc.OnVoiceLost(g.Revoke)

	sink := buildSink(cfg, dc)
	runner := pipeline.NewRunner(cfg.Pipeline.FFmpegPath, cfg.Pipeline.Encoding, sink, cfg.Stream.GracePeriod/2)

	ctrl := session.NewController(g, runner, session.Options{
		GracePeriod:      cfg.Stream.GracePeriod,
		DefaultDuration:  cfg.Stream.DefaultDuration,
		MaxDuration:      cfg.Stream.MaxDuration,
		DefaultGuildID:   cfg.Discord.GuildID,
		DefaultChannelID: cfg.Discord.ChannelID,
		OnError: func(snap session.Snapshot, err error) {
			logger.Error().Err(err).
				Str("session_id", snap.SessionID).
				Str("target", snap.Target).
				Msg("stream ended with an error")
		},
	})
	g.OnRevoked(ctrl.HandleRevoked)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Grpc.Host, cfg.Grpc.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcServer := grpc.NewServer(server.ServerOptions()...)
	pb.RegisterStreamControllerServer(grpcServer, server.NewServer(ctrl))

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.NewAdminRouter(ctrl.Status),
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info().Str("addr", lis.Addr().String()).Msg("gRPC server listening")
		return grpcServer.Serve(lis)
	})
	eg.Go(func() error {
		logger.Info().Str("addr", cfg.HTTP.Addr).Msg("admin HTTP server listening")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := ctrl.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("controller shutdown")
		}
		grpcServer.GracefulStop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("admin HTTP shutdown")
		}
		return dc.Close()
	})

	return eg.Wait()
}

func runCommand(addr string, args []string) int {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", addr, err)
		return 1
	}
	defer conn.Close()

	client := pb.NewStreamControllerClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var resp *pb.Status
	switch cmd := args[0]; {
	case cmd == "start" && len(args) >= 2:
		req := &pb.StartStreamRequest{Target: args[1]}
		if len(args) >= 3 {
			req.DurationMinutes, err = strconv.ParseFloat(args[2], 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "bad minutes %q: %v\n", args[2], err)
				return 2
			}
		}
		resp, err = client.StartStream(ctx, req)
	case cmd == "stop":
		resp, err = client.StopStream(ctx, &emptypb.Empty{})
	case cmd == "status":
		resp, err = client.GetStatus(ctx, &emptypb.Empty{})
	case cmd == "join" && len(args) == 3:
		resp, err = client.JoinChannel(ctx, &pb.JoinChannelRequest{GuildId: args[1], ChannelId: args[2]})
	case cmd == "leave":
		resp, err = client.LeaveChannel(ctx, &emptypb.Empty{})
	default:
		flag.Usage()
		return 2
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Println(protojson.MarshalOptions{Multiline: true}.Format(resp))
	return 0
}
