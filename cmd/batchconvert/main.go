// Command batchconvert converts every PDF under a directory into Word
// documents using a bounded worker pool.
//
// Usage:
//
//	batchconvert [-o outdir] [-l lang] [-d dpi] [-w workers] <input-dir>
//
// Individual file failures are reported in the summary but do not affect
// the exit code; only a run that cannot start exits non-zero.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"pdf-ocr-converter/internal/batch"
	"pdf-ocr-converter/internal/domain"
	"pdf-ocr-converter/internal/service"
	"pdf-ocr-converter/pkg/logger"
)

type options struct {
	inputDir  string
	outputDir string
	lang      string
	dpi       int
	workers   int
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "batchconvert: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "batchconvert: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("batchconvert", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: batchconvert [flags] <input-dir>\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.outputDir, "o", "", "output directory (default: alongside each input)")
	fs.StringVar(&opts.outputDir, "output-dir", "", "output directory (long form of -o)")
	fs.StringVar(&opts.lang, "l", domain.DefaultLang, "OCR language")
	fs.StringVar(&opts.lang, "lang", domain.DefaultLang, "OCR language (long form of -l)")
	fs.IntVar(&opts.dpi, "d", domain.DefaultDPI, "rasterization DPI")
	fs.IntVar(&opts.dpi, "dpi", domain.DefaultDPI, "rasterization DPI (long form of -d)")
	fs.IntVar(&opts.workers, "w", 0, "worker pool size (default: number of CPUs)")
	fs.IntVar(&opts.workers, "workers", 0, "worker pool size (long form of -w)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, fmt.Errorf("expected exactly one input directory, got %d arguments", fs.NArg())
	}
	opts.inputDir = fs.Arg(0)
	return opts, nil
}

func run(opts options) error {
	if err := service.CheckTesseract(); err != nil {
		return err
	}

	appLogger := logger.NewLoggerTo(os.Stderr, os.Getenv("LOG_LEVEL"))
	conv := service.NewConverter(appLogger)
	driver := batch.NewDriver(conv, appLogger, opts.workers)

	params := domain.ConversionParams{Lang: opts.lang, DPI: opts.dpi}
	summary, err := driver.Run(context.Background(), opts.inputDir, opts.outputDir, params)
	if err != nil {
		return err
	}

	for _, res := range summary.Results {
		if res.Err != nil {
			fmt.Printf("FAIL %s: %v\n", res.File, res.Err)
		} else {
			fmt.Printf("OK   %s -> %s (%s)\n", res.File, res.Output, res.Elapsed.Round(time.Millisecond))
		}
	}
	fmt.Printf("%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	return nil
}
