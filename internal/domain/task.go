package domain

import "time"

// TaskStatus represents the lifecycle state of a conversion task
type TaskStatus string

const (
	TaskStatusQueued     TaskStatus = "queued"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// IsTerminal reports whether the status is final. Terminal tasks never
// transition again.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// ConversionParams holds the OCR options for a single conversion.
// Immutable once the task starts.
type ConversionParams struct {
	Lang string // Tesseract language code, e.g. "eng"
	DPI  int    // rasterization resolution
}

// Task is one asynchronous PDF-to-Word conversion request.
//
// Exactly one of OutputPath/Error is set once the task reaches a terminal
// state. Progress is only meaningful while the task is processing.
type Task struct {
	ID          string           `json:"id"`
	Status      TaskStatus       `json:"status"`
	Progress    int              `json:"progress"`
	Filename    string           `json:"filename"`
	InputPath   string           `json:"-"`
	OutputPath  string           `json:"-"`
	Error       string           `json:"error,omitempty"`
	Params      ConversionParams `json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}

// OutputFilename derives the download name for the produced document from
// the original upload name (extension replaced with .docx).
func (t *Task) OutputFilename() string {
	return ReplaceExtension(t.Filename, ".docx")
}
