// Package batch fans the conversion pipeline out across a directory of
// PDFs with a bounded worker pool.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"pdf-ocr-converter/internal/domain"
)

// Result records the outcome for a single input file.
type Result struct {
	File    string
	Output  string
	Err     error
	Elapsed time.Duration
}

// Summary aggregates a whole batch run. Individual failures do not abort
// the run; they are counted here instead.
type Summary struct {
	Succeeded int
	Failed    int
	Results   []Result
}

// Driver converts every PDF under an input directory using a fixed-size
// worker pool.
type Driver struct {
	conv    domain.Converter
	logger  domain.Logger
	workers int
}

// NewDriver creates a batch driver. workers <= 0 selects one worker per
// available CPU.
func NewDriver(conv domain.Converter, logger domain.Logger, workers int) *Driver {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Driver{
		conv:    conv,
		logger:  logger,
		workers: workers,
	}
}

// Run converts all PDFs found under inputDir. When outputDir is empty,
// each document is written next to its source file. The returned error is
// only non-nil when the run itself could not start (missing directory, no
// inputs); per-file failures live in the Summary.
func (d *Driver) Run(ctx context.Context, inputDir, outputDir string, params domain.ConversionParams) (*Summary, error) {
	files, err := FindPDFs(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w under %s", domain.ErrNoInputFiles, inputDir)
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	params = domain.NormalizeParams(params)
	d.logger.Info("Starting batch conversion", "files", len(files), "workers", d.workers, "lang", params.Lang, "dpi", params.DPI)

	sem := make(chan struct{}, d.workers)
	results := make(chan Result, len(files))
	var wg sync.WaitGroup

	for _, file := range files {
		wg.Add(1)
		go func(file string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- Result{File: file, Err: ctx.Err()}
				return
			}

			results <- d.convertOne(ctx, file, inputDir, outputDir, params)
		}(file)
	}

	wg.Wait()
	close(results)

	summary := &Summary{Results: make([]Result, 0, len(files))}
	for res := range results {
		if res.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, res)
	}
	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].File < summary.Results[j].File
	})

	d.logger.Info("Batch conversion finished", "succeeded", summary.Succeeded, "failed", summary.Failed)
	return summary, nil
}

func (d *Driver) convertOne(ctx context.Context, file, inputDir, outputDir string, params domain.ConversionParams) Result {
	outPath, err := OutputPathFor(file, inputDir, outputDir)
	if err != nil {
		return Result{File: file, Err: err}
	}

	start := time.Now()
	err = d.conv.Convert(ctx, file, outPath, params, nil)
	elapsed := time.Since(start)

	if err != nil {
		d.logger.Error("Conversion failed", err, "file", file)
		return Result{File: file, Err: err, Elapsed: elapsed}
	}

	d.logger.Info("Converted", "file", file, "output", outPath, "elapsed", elapsed.Round(time.Millisecond))
	return Result{File: file, Output: outPath, Elapsed: elapsed}
}

// FindPDFs walks dir recursively and returns every .pdf file, sorted.
func FindPDFs(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan input directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// OutputPathFor mirrors a source file's relative location under outputDir
// with the extension replaced. An empty outputDir keeps the document next
// to its source.
func OutputPathFor(file, inputDir, outputDir string) (string, error) {
	name := domain.ReplaceExtension(file, ".docx")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(file), name), nil
	}

	rel, err := filepath.Rel(inputDir, file)
	if err != nil {
		return "", fmt.Errorf("resolve output path for %s: %w", file, err)
	}
	return filepath.Join(outputDir, filepath.Dir(rel), name), nil
}
