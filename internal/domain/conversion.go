package domain

import (
	"path/filepath"
	"strings"
)

// Defaults for conversion parameters, shared by the HTTP API and the CLIs.
const (
	DefaultLang = "eng"
	DefaultDPI  = 300

	// DPI bounds accepted from callers. Values outside are clamped rather
	// than rejected so a sloppy client still gets a usable document.
	MinDPI = 72
	MaxDPI = 1200
)

// ClampDPI normalizes a requested resolution into the supported range.
// Zero or negative values fall back to the default.
func ClampDPI(dpi int) int {
	if dpi <= 0 {
		return DefaultDPI
	}
	if dpi < MinDPI {
		return MinDPI
	}
	if dpi > MaxDPI {
		return MaxDPI
	}
	return dpi
}

// NormalizeParams fills in defaults for empty fields and clamps the DPI.
func NormalizeParams(p ConversionParams) ConversionParams {
	if strings.TrimSpace(p.Lang) == "" {
		p.Lang = DefaultLang
	}
	p.DPI = ClampDPI(p.DPI)
	return p
}

// ReplaceExtension swaps the extension of name, keeping only the base name
// so uploaded paths can never escape the download directory.
func ReplaceExtension(name, ext string) string {
	base := filepath.Base(name)
	old := filepath.Ext(base)
	return strings.TrimSuffix(base, old) + ext
}
