// Package sectioner splits the text of paginated documents into page
// sections of heading and paragraph blocks.
//
// Basic usage:
//
//	out, err := sectioner.Open("document.pdf").Text(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	out, err := sectioner.Open("report.pdf").
//	    MaxPages(10).
//	    Strategy(layout.StrategySpan).
//	    StitchSentences().
//	    HTML(ctx)
//
// Inputs may be PDF, span JSON, MuPDF structured text JSON, hOCR or (with
// the ocr build tag) scanned images. The layout and source packages are
// available for lower-level use.
package sectioner

import (
	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/source"
)

// Open returns an Extractor for the file at path. The input format is
// detected when a terminal operation runs.
//
// Example:
//
//	out, err := sectioner.Open("document.pdf").Text(ctx)
func Open(path string) *Extractor {
	return &Extractor{
		filename: path,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor that reads pages from src
func FromSource(src source.SpanSource) *Extractor {
	return &Extractor{
		src:     src,
		options: defaultOptions(),
	}
}

// FromDocument creates an Extractor over an already decoded document.
// The document is not modified.
func FromDocument(doc *model.Document) *Extractor {
	return &Extractor{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	out := sectioner.Must(sectioner.Open("document.pdf").Text(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
