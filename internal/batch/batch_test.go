package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"pdf-ocr-converter/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...interface{})             {}
func (nopLogger) Error(msg string, err error, fields ...interface{}) {}
func (nopLogger) Debug(msg string, fields ...interface{})            {}
func (nopLogger) Warn(msg string, fields ...interface{})             {}

// mockConverter fails any file whose name contains "corrupt" and writes a
// marker file otherwise. It also tracks peak concurrency.
type mockConverter struct {
	mu      sync.Mutex
	active  int32
	peak    int32
	started []string
}

func (m *mockConverter) Convert(ctx context.Context, inputPath, outputPath string, params domain.ConversionParams, onPage domain.ProgressFunc) error {
	cur := atomic.AddInt32(&m.active, 1)
	defer atomic.AddInt32(&m.active, -1)
	for {
		p := atomic.LoadInt32(&m.peak)
		if cur <= p || atomic.CompareAndSwapInt32(&m.peak, p, cur) {
			break
		}
	}

	m.mu.Lock()
	m.started = append(m.started, inputPath)
	m.mu.Unlock()

	if strings.Contains(filepath.Base(inputPath), "corrupt") {
		return errors.New("could not read PDF: damaged file")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte("docx"), 0o644)
}

func writePDFs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestRunCountsSuccessesAndFailures(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writePDFs(t, inDir, "a.pdf", "b.pdf", "corrupt1.pdf", "nested/c.pdf", "corrupt2.pdf")

	driver := NewDriver(&mockConverter{}, nopLogger{}, 2)
	summary, err := driver.Run(context.Background(), inDir, outDir, domain.ConversionParams{})
	if err != nil {
		t.Fatalf("run failed to start: %v", err)
	}

	if summary.Succeeded != 3 {
		t.Fatalf("expected 3 successes, got %d", summary.Succeeded)
	}
	if summary.Failed != 2 {
		t.Fatalf("expected 2 failures, got %d", summary.Failed)
	}
	if len(summary.Results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(summary.Results))
	}

	for _, res := range summary.Results {
		corrupt := strings.Contains(filepath.Base(res.File), "corrupt")
		if corrupt && res.Err == nil {
			t.Errorf("corrupt file %s reported success", res.File)
		}
		if !corrupt && res.Err != nil {
			t.Errorf("valid file %s reported failure: %v", res.File, res.Err)
		}
	}

	// Output directory mirrors the input layout.
	if _, err := os.Stat(filepath.Join(outDir, "nested", "c.docx")); err != nil {
		t.Fatalf("mirrored output missing: %v", err)
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	inDir := t.TempDir()
	writePDFs(t, inDir, "a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf", "f.pdf")

	conv := &mockConverter{}
	driver := NewDriver(conv, nopLogger{}, 2)
	if _, err := driver.Run(context.Background(), inDir, t.TempDir(), domain.ConversionParams{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if peak := atomic.LoadInt32(&conv.peak); peak > 2 {
		t.Fatalf("worker pool exceeded its bound: peak %d", peak)
	}
	if len(conv.started) != 6 {
		t.Fatalf("expected 6 conversions, got %d", len(conv.started))
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	driver := NewDriver(&mockConverter{}, nopLogger{}, 1)

	_, err := driver.Run(context.Background(), t.TempDir(), "", domain.ConversionParams{})
	if !errors.Is(err, domain.ErrNoInputFiles) {
		t.Fatalf("expected ErrNoInputFiles, got %v", err)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	driver := NewDriver(&mockConverter{}, nopLogger{}, 1)

	_, err := driver.Run(context.Background(), filepath.Join(t.TempDir(), "nope"), "", domain.ConversionParams{})
	if err == nil {
		t.Fatal("expected an error for a missing input directory")
	}
}

func TestOutputPathFor(t *testing.T) {
	got, err := OutputPathFor("/in/sub/doc.pdf", "/in", "/out")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join("/out", "sub", "doc.docx") {
		t.Fatalf("unexpected mirrored path: %s", got)
	}

	got, err = OutputPathFor("/in/doc.pdf", "/in", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join("/in", "doc.docx") {
		t.Fatalf("unexpected alongside path: %s", got)
	}
}

func TestFindPDFsIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writePDFs(t, dir, "a.pdf", "b.PDF", "deep/c.pdf")
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	files, err := FindPDFs(dir)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 PDFs, got %d: %v", len(files), files)
	}
}
