package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fumiama/go-docx"
)

// BuildDocument assembles recognized page texts into a Word document at
// outputPath. Each page gets a centered "Page N" heading and its
// paragraphs; pages are separated by page breaks, mirroring the source
// PDF's pagination.
//
// The file is written to a temporary name and renamed into place, so a
// failed write never leaves a half-document behind for download.
func BuildDocument(pages []string, outputPath string) error {
	w := docx.New().WithDefaultTheme()

	for i, pageText := range pages {
		if i > 0 {
			w.AddParagraph().AddPageBreaks()
		}

		heading := w.AddParagraph().Justification("center")
		heading.AddText(fmt.Sprintf("Page %d", i+1)).Size("28").Bold()

		for _, para := range SplitParagraphs(pageText) {
			w.AddParagraph().AddText(para)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	tmp := outputPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write document: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close document: %w", err)
	}

	if err := os.Rename(tmp, outputPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize document: %w", err)
	}
	return nil
}
