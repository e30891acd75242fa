// Command classifier serves the reference content-safety model over gRPC.
package main

import (
	"context"
	"errors"
	"fmt"
	"mood-chat/ai"
	"mood-chat/auth"
	"mood-chat/infrastructure/grpc/safetypb"
	"mood-chat/infrastructure/grpc/server"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/grpc"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	model := ai.NewModel(ai.DefaultFeatures, ai.DefaultLexicon, ai.DefaultBias, config.Threshold)

	var options []grpc.ServerOption
	if config.AuthSecret != "" {
		issuer := auth.NewTokenIssuer(config.AuthSecret, time.Hour)
		options = append(options, grpc.UnaryInterceptor(auth.UnaryInterceptor(issuer, auth.RoleClassifier)))
	} else {
		log.Warn("AUTH_SECRET not set, classifier accepts unauthenticated calls")
	}
	s := grpc.NewServer(options...)
	safetypb.RegisterSafetyClassifierServer(s, server.NewClassifierServer(log, model))

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting classifier", "address", address, "threshold", config.Threshold)
		if err := s.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}
	s.GracefulStop()
	return nil
}
