package service

import "testing"

func TestSplitParagraphs(t *testing.T) {
	text := "First line\nwrapped by OCR.\n\nSecond paragraph.\n\n\n\nThird."
	paras := SplitParagraphs(text)

	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %v", len(paras), paras)
	}
	if paras[0] != "First line wrapped by OCR." {
		t.Fatalf("line wrap not flattened: %q", paras[0])
	}
	if paras[1] != "Second paragraph." {
		t.Fatalf("unexpected second paragraph: %q", paras[1])
	}
	if paras[2] != "Third." {
		t.Fatalf("unexpected third paragraph: %q", paras[2])
	}
}

func TestSplitParagraphsNormalizesLineBreaks(t *testing.T) {
	paras := SplitParagraphs("a\r\n\r\nb\rwrapped\n\nc")
	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %v", len(paras), paras)
	}
	if paras[1] != "b wrapped" {
		t.Fatalf("CR not normalized: %q", paras[1])
	}
}

func TestSplitParagraphsEmptyInput(t *testing.T) {
	if paras := SplitParagraphs("   \n\n \n"); len(paras) != 0 {
		t.Fatalf("expected no paragraphs for whitespace input, got %v", paras)
	}
}

func TestSanitizeTextStripsControlCharacters(t *testing.T) {
	in := "hello\x00 world\x07 café"
	got := sanitizeText(in)
	if got != "hello world café" {
		t.Fatalf("unexpected sanitized text: %q", got)
	}
}
