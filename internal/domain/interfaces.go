package domain

import "context"

// ProgressFunc reports per-page progress while a conversion runs.
// done is the number of pages finished, total the page count of the PDF.
type ProgressFunc func(done, total int)

// Converter runs the full conversion pipeline for one PDF: rasterize each
// page, recognize its text, and assemble a Word document at outputPath.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string, params ConversionParams, onPage ProgressFunc) error
}

// TaskRegistry is the process-wide store of conversion tasks. All reads and
// writes from concurrent goroutines go through it.
type TaskRegistry interface {
	Create(filename string, params ConversionParams) *Task
	Get(id string) (*Task, error)
	Update(id string, apply func(*Task)) (*Task, error)
}

// TaskRunner executes a task's conversion off the request path and records
// the outcome in the registry.
type TaskRunner interface {
	Start(id string)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetDownloadPath() string
	GetStaticDir() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetDefaultLang() string
	GetDefaultDPI() int
}
