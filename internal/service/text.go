package service

import "strings"

// SplitParagraphs breaks recognized page text into paragraphs on blank
// lines. Single newlines inside a paragraph are OCR line wrapping, not
// structure, and are flattened to spaces.
func SplitParagraphs(text string) []string {
	// Normalize line breaks
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	paragraphs := strings.Split(text, "\n\n")

	var result []string
	for _, para := range paragraphs {
		para = strings.ReplaceAll(para, "\n", " ")
		para = strings.TrimSpace(para)
		if para != "" {
			result = append(result, sanitizeText(para))
		}
	}

	return result
}

// sanitizeText strips NULL bytes, stray control characters, and surrogate
// code points that Tesseract occasionally emits on noisy scans. Tabs are
// kept; the paragraph splitter has already consumed newlines.
func sanitizeText(text string) string {
	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == 0x00:
			continue
		case r == 0x09:
			result.WriteRune(r)
		case r >= 0x20 && r < 0x7F:
			result.WriteRune(r)
		case r >= 0x7F && r <= 0x10FFFF:
			// Exclude surrogates, which are invalid in UTF-8 output
			if r < 0xD800 || r > 0xDFFF {
				result.WriteRune(r)
			}
		}
	}

	return result.String()
}
