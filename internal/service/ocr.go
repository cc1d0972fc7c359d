package service

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"pdf-ocr-converter/internal/domain"
	apperrors "pdf-ocr-converter/pkg/errors"
)

// OCREngine recognizes text on rasterized page images via Tesseract.
// A fresh gosseract client is created per page; the binding does not
// guarantee clients are safe for reuse across language changes.
type OCREngine struct {
	logger domain.Logger
}

// NewOCREngine creates a Tesseract-backed OCR engine.
func NewOCREngine(logger domain.Logger) *OCREngine {
	return &OCREngine{logger: logger}
}

// Recognize runs OCR on a PNG-encoded page image and returns the plain
// text. An empty result is not an error; blank pages happen.
func (e *OCREngine) Recognize(image []byte, lang string, dpi int) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("set language %q: %w", lang, err)
		}
	}
	if dpi > 0 {
		if err := client.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(dpi)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// CheckTesseract verifies the Tesseract engine is installed and reachable.
// Called once at startup (server and CLIs) so a misconfigured host fails
// loudly instead of per task.
func CheckTesseract() (err error) {
	defer func() {
		// gosseract can panic rather than return an error when the
		// native library is absent.
		if r := recover(); r != nil {
			err = apperrors.NewDependencyError(
				fmt.Sprintf("tesseract unavailable: %v", r), domain.ErrTesseractMissing)
		}
	}()

	client := gosseract.NewClient()
	defer client.Close()

	if v := client.Version(); v == "" {
		return apperrors.NewDependencyError("tesseract reported no version", domain.ErrTesseractMissing)
	}
	return nil
}
