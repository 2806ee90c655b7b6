package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"detectserver/internal/config"
	"detectserver/internal/logger"
	"detectserver/internal/repository/sqlite"
	"detectserver/internal/routes"
	"detectserver/internal/services"
	"detectserver/internal/services/ai"
	"detectserver/internal/services/websocket"
	"detectserver/internal/storage"
)

type App struct {
	config   *config.Config
	logger   *logger.Logger
	db       *sqlite.DB
	engine   *ai.Engine
	hub      *websocket.HubService
	pipeline *services.Pipeline
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg.LogDirectory)

	store, err := storage.NewFileStore(cfg.UploadDirectory)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	repo := sqlite.NewRecordRepository(db)

	engine, err := ai.NewEngine(cfg.ModelPath, cfg.ConfigPath, cfg.ConfidenceThreshold, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	hub := websocket.NewHubService(log)
	pipeline := services.NewPipeline(store, engine, repo, hub, log)

	return &App{
		config:   cfg,
		logger:   log,
		db:       db,
		engine:   engine,
		hub:      hub,
		pipeline: pipeline,
	}, nil
}

func (a *App) Run() error {
	go a.hub.Run()

	router := routes.SetupRoutes(a.pipeline, a.hub, a.config, a.logger)

	a.logger.Info("Object detection server listening on http://localhost:%d", a.config.Port)
	a.logger.Info("Uploads: %s", a.config.UploadDirectory)
	a.logger.Info("Database: %s", a.config.DatabasePath)
	a.logger.Info("Model: %s", a.config.ModelPath)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}

// Close releases the engine and the database.
func (a *App) Close() {
	a.engine.Close()
	a.db.Close()
}
