// Package source turns input files into documents of styled spans.
//
// Every adapter implements [SpanSource]. [Open] picks the adapter from the
// file's content, falling back to its extension:
//
//   - PDF - glyph runs decoded with github.com/ledongthuc/pdf
//   - JSON - span dumps and MuPDF structured text ("mutool draw -F stext.json")
//   - hOCR - OCR output with word boxes
//   - Image - scanned pages recognized by Tesseract (requires -tags ocr)
//
// All adapters report coordinates in PDF user space: Y grows upward and
// pages are 0-indexed.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/sectioner/format"
	"github.com/tsawler/sectioner/model"
)

// ErrUnsupportedFormat is returned when no adapter handles an input
var ErrUnsupportedFormat = errors.New("source: unsupported input format")

// SpanSource yields the pages of a document with their spans
type SpanSource interface {
	Pages(ctx context.Context) (*model.Document, error)
}

// Config holds options shared by all adapters
type Config struct {
	// MaxPages stops decoding at this page count (<= 0 decodes every page)
	MaxPages int

	// Language is the Tesseract language for image input
	// Default: "eng"
	Language string

	// MinOCRWidth upscales narrower images before OCR
	// Default: 1600 pixels
	MinOCRWidth int

	// Logger receives decoding warnings
	Logger logrus.FieldLogger
}

// Option configures an adapter
type Option func(*Config)

// WithMaxPages limits the number of pages decoded
func WithMaxPages(n int) Option {
	return func(c *Config) { c.MaxPages = n }
}

// WithLanguage sets the OCR language
func WithLanguage(lang string) Option {
	return func(c *Config) { c.Language = lang }
}

// WithLogger sets the logger for decoding warnings
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) { c.Logger = l }
}

func newConfig(opts []Option) Config {
	c := Config{
		Language:    "eng",
		MinOCRWidth: 1600,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Logger = l
	}
	return c
}

// Open returns the adapter for the file at path
func Open(path string, opts ...Option) (SpanSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	detected, err := format.DetectFromReader(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("detecting format of %s: %w", path, err)
	}
	if detected == format.Unknown {
		detected = format.Detect(path)
	}

	switch detected {
	case format.PDF:
		return NewPDFSource(path, opts...), nil
	case format.JSON:
		return NewJSONFileSource(path, opts...), nil
	case format.HOCR:
		return NewHOCRFileSource(path, opts...), nil
	case format.Image:
		return NewImageSource(path, opts...), nil
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// inRange reports whether a 0-based page index is within the limit
func inRange(index, maxPages int) bool {
	return maxPages <= 0 || index < maxPages
}
