package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/graphmsg/backend/internal/auth"
	"github.com/graphmsg/backend/internal/config"
	"github.com/graphmsg/backend/internal/graph"
	"github.com/graphmsg/backend/internal/logging"
	"github.com/graphmsg/backend/internal/repository"
	"github.com/graphmsg/backend/internal/server"
	"github.com/graphmsg/backend/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging())

	graphClient, err := buildGraphClient(ctx, logger, cfg.Graph())
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := graphClient.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	repo := repository.New(graphClient)
	messageService := service.NewMessageService(repo, logger.With("component", "messages"))
	apiHandlers := server.NewAPIHandlers(logger, messageService)

	httpCfg := cfg.HTTP()
	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.GraphHealthService{Client: graphClient},
		API:              apiHandlers,
		Guard:            auth.NewGuard(cfg.APIKey),
		AllowedOrigins:   httpCfg.AllowedOrigins,
		AllowCredentials: httpCfg.AllowCredentials,
	})

	srv := server.New(logger, httpCfg, router)
	logger.Info("message api configured", "addr", srv.Addr(), "allowedOrigins", httpCfg.AllowedOrigins)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.GraphConfig) (graph.Client, error) {
	client, err := graph.NewNeo4jClient(ctx, graph.Options{
		URI:      cfg.URI,
		Database: cfg.Database,
		Username: cfg.Username,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.URI, "database", cfg.Database)
	return client, nil
}
