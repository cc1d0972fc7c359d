package service

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildDocumentWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.docx")

	pages := []string{
		"First page text.\n\nWith a second paragraph.",
		"", // blank page, still gets its heading
		"Third page.",
	}
	if err := BuildDocument(pages, out); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("output is empty")
	}

	// A .docx is a zip archive; check the signature so a corrupt writer
	// does not pass silently.
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Fatal("output does not look like a docx (zip) file")
	}

	// No temp file left behind.
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file not cleaned up: %v", err)
	}
}

func TestBuildDocumentCreatesParentDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "deep", "nested", "result.docx")

	if err := BuildDocument([]string{"text"}, out); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}
