package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/samber/lo"

	"github.com/graphmsg/backend/internal/config"
	"github.com/graphmsg/backend/internal/generator"
	"github.com/graphmsg/backend/internal/graph"
	"github.com/graphmsg/backend/internal/logging"
	"github.com/graphmsg/backend/internal/repository"
	"github.com/graphmsg/backend/internal/service"
)

func main() {
	var (
		file    = flag.String("file", "./seed-data/messages.json", "JSON array of message texts to create")
		workers = flag.Int("workers", 4, "Number of concurrent workers submitting creates")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging()).With("component", "seed")

	texts, err := generator.ReadTexts(*file)
	if err != nil {
		logger.Error("failed to load messages", "error", err, "path", *file)
		os.Exit(1)
	}
	texts = lo.Filter(texts, func(text string, _ int) bool {
		return strings.TrimSpace(text) != ""
	})
	if len(texts) == 0 {
		logger.Error("messages dataset empty", "path", *file)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

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

	svc := service.NewMessageService(repository.New(graphClient), logger)
	creator := service.NewBulkCreator(svc, *workers)

	start := time.Now()
	logger.Info("seeding messages", "count", len(texts), "workers", *workers)
	ids, err := creator.CreateAll(ctx, texts)
	created := len(lo.Compact(ids))
	if err != nil {
		logger.Error("seeding failed", "error", err, "created", created)
		os.Exit(1)
	}

	logger.Info("seeding complete", "duration", time.Since(start).String(), "created", created)
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
