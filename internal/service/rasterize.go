package service

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"

	"pdf-ocr-converter/internal/domain"
)

// Rasterizer renders PDF pages to images suitable for OCR. It wraps the
// MuPDF bindings; one Rasterizer holds one open document and is not safe
// for concurrent page access.
type Rasterizer struct {
	doc *fitz.Document
}

// OpenPDF opens a PDF for rasterization. Unreadable files (corrupt,
// encrypted, not a PDF at all) surface as domain.ErrUnreadablePDF.
func OpenPDF(path string) (*Rasterizer, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadablePDF, err)
	}
	return &Rasterizer{doc: doc}, nil
}

// PageCount returns the number of pages in the document.
func (r *Rasterizer) PageCount() int {
	return r.doc.NumPage()
}

// RenderPage rasterizes a zero-based page at the given DPI and returns it
// as PNG bytes. The page is converted to grayscale first; Tesseract does
// its own binarization and grayscale input keeps the payload small.
func (r *Rasterizer) RenderPage(page int, dpi int) ([]byte, error) {
	img, err := r.doc.ImageDPI(page, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("rasterize page %d: %w", page+1, err)
	}

	gray := imaging.Grayscale(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode page %d: %w", page+1, err)
	}
	return buf.Bytes(), nil
}

// Close releases the underlying document.
func (r *Rasterizer) Close() error {
	return r.doc.Close()
}
