package domain

import "errors"

// Domain errors
var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskTerminal        = errors.New("task already in a terminal state")
	ErrUnreadablePDF       = errors.New("could not read PDF")
	ErrTesseractMissing    = errors.New("tesseract OCR engine is not available")
	ErrNoInputFiles        = errors.New("no PDF files found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
