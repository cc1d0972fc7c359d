package handler

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"pdf-ocr-converter/internal/config"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	convertHandler := NewConvertHandler(
		container.Registry,
		container.Runner,
		container.Config,
		container.Logger,
	)

	router.Use(Recovery(container.Logger))
	router.Use(RequestLogging(container.Logger))

	// Health check endpoint
	router.HandleFunc("/health", convertHandler.Health).Methods("GET")

	// Conversion task lifecycle
	router.HandleFunc("/api/convert", convertHandler.Convert).Methods("POST")
	router.HandleFunc("/api/status", convertHandler.Status).Methods("GET")
	router.HandleFunc("/download/{task_id}", convertHandler.Download).Methods("GET")

	// Web UI, when a static directory is configured
	if dir := container.Config.GetStaticDir(); dir != "" {
		if _, err := os.Stat(dir); err == nil {
			router.PathPrefix("/").Handler(http.FileServer(http.Dir(dir))).Methods("GET")
		} else {
			container.Logger.Warn("Static directory not found, serving API only", "dir", dir)
		}
	}

	// Configure CORS. The converter is self-hosted and unauthenticated,
	// so any origin may talk to the API.
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300,
	})

	return c.Handler(router)
}
