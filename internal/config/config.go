package config

import (
	"os"
	"strconv"

	"pdf-ocr-converter/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort   string
	UploadPath   string
	DownloadPath string
	StaticDir    string
	MaxFileSize  int64
	LogLevel     string
	DefaultLang  string
	DefaultDPI   int
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:   getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:   getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		DownloadPath: getEnvOrDefault("DOWNLOAD_PATH", "./downloads"),
		StaticDir:    getEnvOrDefault("STATIC_DIR", ""),
		MaxFileSize:  getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		DefaultLang:  getEnvOrDefault("OCR_LANG", domain.DefaultLang),
		DefaultDPI:   getEnvIntOrDefault("OCR_DPI", domain.DefaultDPI),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the directory uploaded PDFs are written to
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetDownloadPath returns the directory produced documents are written to
func (c *AppConfig) GetDownloadPath() string {
	return c.DownloadPath
}

// GetStaticDir returns the directory with the web UI assets, empty when
// the server runs API-only
func (c *AppConfig) GetStaticDir() string {
	return c.StaticDir
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetDefaultLang returns the OCR language used when a request omits one
func (c *AppConfig) GetDefaultLang() string {
	return c.DefaultLang
}

// GetDefaultDPI returns the rasterization resolution used when a request omits one
func (c *AppConfig) GetDefaultDPI() int {
	return c.DefaultDPI
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
