package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mood-chat/auth"
	"mood-chat/infrastructure/api"
	"mood-chat/infrastructure/grpc/client"
	"mood-chat/infrastructure/websocket"
	"mood-chat/moderation"
	"mood-chat/observability"
	"mood-chat/repositories"
	"mood-chat/runtime"
	"mood-chat/runtime/workers"
	"mood-chat/search"
	"mood-chat/services"
	"mood-chat/session"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run keeps every defer (database, index, connections) inside one function so
// they all execute before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Storage (BadgerDB + Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		logger.Info("Debug Badger inspector available",
			"url", fmt.Sprintf("http://localhost:%d/inspect?prefix=%s", config.DebugPort, repositories.IncidentPrefix))
		database.StartDebugServer(db, config.DebugPort, "/inspect", IncidentMapper)
	}

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	keywordRepository := repositories.NewKeywordRepository(db, logger)
	ledger := search.NewLedger(logger,
		repositories.NewIncidentRepository(db, logger),
		search.NewIncidentIndex(blugeWriter))

	// 3. Supervision & keyword bootstrap
	supervisor := workers.NewSupervisor(logger, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(logger, supervisor, keywordRepository, runtime.NewEmbeddedKeywordLoader())
	phrases, err := orchestrator.PrepareKeywords()
	if err != nil {
		return exitRuntime, fmt.Errorf("keyword bootstrap failed: %w", err)
	}
	matcher, err := moderation.NewKeywordMatcher(phrases)
	if err != nil {
		return exitRuntime, err
	}

	// 4. External classifier
	issuer := auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration)
	classifierToken := ""
	if config.ClassifierAuth {
		// The sidecar only checks the role, the token lives as long as the process.
		long := auth.NewTokenIssuer(config.AuthSecret, 100*365*24*time.Hour)
		if classifierToken, err = long.Generate("chat-server", auth.RoleClassifier); err != nil {
			return exitRuntime, fmt.Errorf("classifier token: %w", err)
		}
	}
	conn, err := client.Dial(config.ClassifierAddr, classifierToken)
	if err != nil {
		return exitRuntime, fmt.Errorf("classifier client: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// 5. Chat core
	metrics := observability.NewMetrics()
	monitor, err := observability.NewMonitor(logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("process monitor: %w", err)
	}
	store := session.NewStore(logger, config.BufferSize)
	registry := runtime.NewRegistry(logger)
	gate := moderation.NewGate(logger, matcher, client.NewClassifierClient(conn),
		config.ClassifierTimeout, config.UnsafeThreshold)
	chatService := services.NewChatService(logger, store, registry,
		services.NewMatchmaker(logger, store, registry, metrics),
		services.NewRelay(logger, store, registry, gate, ledger, metrics),
		services.NewLifecycle(logger, store, registry),
	)

	orchestrator.
		Add(store).
		Add(workers.NewMonitoringWorker(logger, store, monitor, metrics, config.MetricInterval)).
		Start(ctx)

	// 6. HTTP server
	router := api.NewRouter(api.Dependencies{
		Log:       logger,
		WS:        websocket.NewHandler(logger, chatService, config.ConnectionBufferSize, config.Origins()),
		Chat:      chatService,
		Monitor:   monitor,
		Metrics:   metrics,
		Auth:      services.NewAuthService(config.AdminPasswordHash, issuer),
		Issuer:    issuer,
		Incidents: ledger,
		Keywords:  keywordRepository,
		Gate:      gate,
	})
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		// Websocket handlers watch this context to close their sockets on shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	exitCode, runErr := exitOK, error(nil)
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		exitCode, runErr = exitRuntime, err
	}

	// 8. Graceful shutdown: stop accepting, then stop the core
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	orchestrator.Stop()
	logger.Info("Program stopped cleanly")

	return exitCode, runErr
}

func buildBadgerOpts(config Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}

// IncidentMapper renders incident records in the debug inspector.
func IncidentMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	if !strings.HasPrefix(key, repositories.IncidentPrefix) {
		return row
	}
	incident, err := repositories.DecodeIncident(val)
	if err != nil {
		row.Detail = "Error: decode failed"
		return row
	}
	row.Type = strings.ToUpper(string(incident.Outcome))
	row.Detail = strings.Join(incident.Keywords, ", ")
	row.Scores = fmt.Sprintf("score:%.2f lang:%s", incident.Score, incident.Lang)
	return row
}
