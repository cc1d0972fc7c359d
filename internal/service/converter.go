// Package service implements the conversion pipeline: rasterize each PDF
// page, recognize its text with OCR, and assemble the result into a Word
// document.
package service

import (
	"context"
	"fmt"

	"pdf-ocr-converter/internal/domain"
	apperrors "pdf-ocr-converter/pkg/errors"
)

// PDFConverter is the concrete domain.Converter. It is stateless and safe
// for concurrent use; each Convert call opens its own document and OCR
// clients.
type PDFConverter struct {
	ocr    *OCREngine
	logger domain.Logger
}

// NewConverter creates the production converter.
func NewConverter(logger domain.Logger) *PDFConverter {
	return &PDFConverter{
		ocr:    NewOCREngine(logger),
		logger: logger,
	}
}

// Convert runs the full pipeline for one PDF. onPage, when non-nil, is
// called after every recognized page. Errors carry the failing stage in
// their message so a task's error string is actionable on its own.
func (c *PDFConverter) Convert(ctx context.Context, inputPath, outputPath string, params domain.ConversionParams, onPage domain.ProgressFunc) error {
	params = domain.NormalizeParams(params)

	ras, err := OpenPDF(inputPath)
	if err != nil {
		return err
	}
	defer ras.Close()

	total := ras.PageCount()
	if total == 0 {
		return domain.ErrUnreadablePDF
	}

	c.logger.Info("Converting PDF", "file", inputPath, "pages", total, "lang", params.Lang, "dpi", params.DPI)

	pages := make([]string, 0, total)
	for page := 0; page < total; page++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("conversion aborted: %w", err)
		}

		image, err := ras.RenderPage(page, params.DPI)
		if err != nil {
			return err
		}

		text, err := c.ocr.Recognize(image, params.Lang, params.DPI)
		if err != nil {
			return apperrors.NewProcessingError(fmt.Sprintf("ocr page %d", page+1), err)
		}
		if text == "" {
			c.logger.Debug("Page produced no text", "file", inputPath, "page", page+1)
		}
		pages = append(pages, text)

		if onPage != nil {
			onPage(page+1, total)
		}
	}

	if err := BuildDocument(pages, outputPath); err != nil {
		return fmt.Errorf("assemble document: %w", err)
	}
	return nil
}
