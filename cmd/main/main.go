package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/NeRF-or-Nothing/go-scene-server/internal/config"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/log"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/models/scene"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/services"
	"github.com/NeRF-or-Nothing/go-scene-server/internal/web"
)

func main() {
	// Load configuration, seeded from .env when present
	cfg, err := config.Load(".env")
	if err != nil {
		panic(fmt.Sprintf("Error loading configuration: %s", err))
	}

	// Create webserver logger
	logger, err := log.NewLogger(cfg.Development, cfg.Debug, cfg.LogOutputs)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newSceneSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Error creating scene source:", err)
	}
	defer closeSource()

	sceneService := services.NewSceneService(source, logger)
	if cfg.EventFile != "" {
		sceneService.WithEventSource(scene.FileSource{Path: cfg.EventFile})
	}
	if cfg.Strict {
		if err := sceneService.Preflight(ctx); err != nil {
			logger.Fatal("Scene preflight failed:", err)
		}
	}

	server := web.NewWebServer(web.Options{
		StaticDir:    cfg.StaticDir,
		CORSOrigins:  cfg.CORSOrigins,
		EnableEvents: cfg.EnableEvents,
	}, sceneService, logger)

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error shutting down server:", err)
		}
	}()

	logger.Infof("Starting server on %s, scenes from %s", cfg.Address(), source)
	if err := server.Run(cfg.Host, cfg.Port); err != nil {
		logger.Fatal("Error starting web server:", err)
	}
}

// newSceneSource resolves the configured scene source. The returned func releases its resources.
func newSceneSource(ctx context.Context, cfg *config.Config, logger *log.Logger) (scene.Source, func(), error) {
	switch cfg.Source {
	case config.SourceFile:
		return scene.FileSource{Path: cfg.SceneFile}, func() {}, nil
	case config.SourceMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				logger.Error("Error disconnecting MongoDB client:", err)
			}
		}
		sceneManager := scene.NewSceneManager(client, cfg.MongoDatabase, cfg.MongoCollection, logger)
		return sceneManager.Source(cfg.SceneID), disconnect, nil
	default:
		return scene.FixtureSource{Name: "showroom", Build: scene.Showroom}, func() {}, nil
	}
}
