package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pdf-ocr-converter/internal/config"
	"pdf-ocr-converter/internal/handler"
	"pdf-ocr-converter/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container := config.NewContainer()

	// A missing Tesseract install only shows up once a conversion runs;
	// warn at startup so the operator finds out before users do.
	if err := service.CheckTesseract(); err != nil {
		container.Logger.Warn("Tesseract OCR is not properly configured; conversions will fail", "error", err)
	}

	for _, dir := range []string{container.Config.GetUploadPath(), container.Config.GetDownloadPath()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			container.Logger.Error("Failed to create working directory", err, "dir", dir)
			os.Exit(1)
		}
	}

	// Router
	router := handler.NewRouter(container)

	// start server
	server := &http.Server{
		Addr:    ":" + container.Config.GetServerPort(),
		Handler: router,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	_ = server.Close()

	container.Logger.Info("Server exited")
}
