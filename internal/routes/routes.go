package routes

import (
	"net/http"

	"detectserver/internal/config"
	"detectserver/internal/handlers"
	"detectserver/internal/logger"
	"detectserver/internal/middleware"
	"detectserver/internal/services"
	"detectserver/internal/services/websocket"
)

// SetupRoutes registers API endpoints, static serving of stored uploads,
// and wraps the mux with the CORS middleware.
func SetupRoutes(pipeline *services.Pipeline, hub *websocket.HubService, cfg *config.Config, logger *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Stored originals and annotated copies
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDirectory))))

	// API endpoints
	mux.HandleFunc("/upload-image/", handlers.UploadImageHandler(pipeline, cfg, logger))
	mux.HandleFunc("/detections/", handlers.DetectionsHandler(pipeline, logger))

	// Live record feed
	mux.HandleFunc("/ws", handlers.ViewWebsocketHandler(hub, logger))

	// Health check
	mux.HandleFunc("/", handlers.HealthHandler())

	return middleware.CORS(mux)
}
