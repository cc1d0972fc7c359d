// Command pdf2word converts a single PDF into an editable Word document
// using OCR.
//
// Usage:
//
//	pdf2word [-o output.docx] [-l lang] [-d dpi] input.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pdf-ocr-converter/internal/domain"
	"pdf-ocr-converter/internal/service"
	"pdf-ocr-converter/pkg/logger"
)

type options struct {
	input  string
	output string
	lang   string
	dpi    int
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdf2word: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pdf2word: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("pdf2word", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: pdf2word [flags] <input.pdf>\n")
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.output, "o", "", "output document path (default: input with .docx extension)")
	fs.StringVar(&opts.output, "output", "", "output document path (long form of -o)")
	fs.StringVar(&opts.lang, "l", domain.DefaultLang, "OCR language")
	fs.StringVar(&opts.lang, "lang", domain.DefaultLang, "OCR language (long form of -l)")
	fs.IntVar(&opts.dpi, "d", domain.DefaultDPI, "rasterization DPI")
	fs.IntVar(&opts.dpi, "dpi", domain.DefaultDPI, "rasterization DPI (long form of -d)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, fmt.Errorf("expected exactly one input PDF, got %d arguments", fs.NArg())
	}
	opts.input = fs.Arg(0)
	if opts.output == "" {
		opts.output = opts.input
	}
	opts.output = ensureDocx(opts.output)
	return opts, nil
}

// ensureDocx forces a .docx extension on the output path, keeping its
// directory. The default output is the input path with the extension
// swapped, so "docs/scan.pdf" produces "docs/scan.docx".
func ensureDocx(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return path
	}
	return filepath.Join(filepath.Dir(path), domain.ReplaceExtension(path, ".docx"))
}

func run(opts options) error {
	if err := service.CheckTesseract(); err != nil {
		return err
	}

	appLogger := logger.NewLoggerTo(os.Stderr, os.Getenv("LOG_LEVEL"))
	conv := service.NewConverter(appLogger)

	params := domain.NormalizeParams(domain.ConversionParams{Lang: opts.lang, DPI: opts.dpi})
	onPage := func(done, total int) {
		appLogger.Info("Page converted", "page", done, "total", total)
	}

	if err := conv.Convert(context.Background(), opts.input, opts.output, params, onPage); err != nil {
		return err
	}

	fmt.Println(opts.output)
	return nil
}
