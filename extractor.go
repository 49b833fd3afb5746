package sectioner

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/sectioner/layout"
	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/render"
	"github.com/tsawler/sectioner/source"
	"github.com/tsawler/sectioner/text"
)

// Extractor provides a fluent interface for sectioning documents.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Input (exactly one is set)
	filename string
	src      source.SpanSource
	doc      *model.Document

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		src:      e.src,
		doc:      e.doc,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// MaxPages limits processing to the first n pages (<= 0 processes every
// page). Pages beyond the limit are neither decoded nor profiled.
//
// Example:
//
//	out, err := sectioner.Open("doc.pdf").MaxPages(10).Text(ctx)
func (e *Extractor) MaxPages(n int) *Extractor {
	newExt := e.clone()
	newExt.options.maxPages = n
	return newExt
}

// MergeHeadings controls whether consecutive heading lines accumulate into
// one block (the default) or each become a block of their own.
func (e *Extractor) MergeHeadings(merge bool) *Extractor {
	newExt := e.clone()
	newExt.options.mergeHeadings = merge
	return newExt
}

// Strategy selects the heading classification strategy.
//
// Example:
//
//	out, err := sectioner.Open("doc.pdf").Strategy(layout.StrategySpan).Text(ctx)
func (e *Extractor) Strategy(s layout.Strategy) *Extractor {
	newExt := e.clone()
	newExt.options.strategy = s
	return newExt
}

// Policy selects the line grouping policy
func (e *Extractor) Policy(p layout.Policy) *Extractor {
	newExt := e.clone()
	newExt.options.policy = p
	return newExt
}

// Tolerance sets the vertical distance in points within which spans share
// a line. Without it the policy's default applies: 3 for proximity
// grouping, 4 for streaming.
func (e *Extractor) Tolerance(points float64) *Extractor {
	newExt := e.clone()
	newExt.options.tolerance = points
	return newExt
}

// MaxGap sets the horizontal gap in points beyond which spans at the same
// height start a new line group
func (e *Extractor) MaxGap(points float64) *Extractor {
	newExt := e.clone()
	newExt.options.maxGap = points
	return newExt
}

// StitchSentences starts a new paragraph block whenever the open block
// already ends a sentence.
//
// Example:
//
//	out, err := sectioner.Open("doc.pdf").StitchSentences().Boundary("punkt").Text(ctx)
func (e *Extractor) StitchSentences() *Extractor {
	newExt := e.clone()
	newExt.options.stitch = true
	return newExt
}

// Boundary selects the sentence boundary detector by name: "punct" or
// "punkt". An unknown name fails the terminal operation.
func (e *Extractor) Boundary(name string) *Extractor {
	newExt := e.clone()
	b, err := text.NewBoundary(name)
	if err != nil {
		if newExt.err == nil {
			newExt.err = err
		}
		return newExt
	}
	newExt.options.boundary = b
	return newExt
}

// BoundaryDetector sets a custom sentence boundary detector
func (e *Extractor) BoundaryDetector(b text.BoundaryDetector) *Extractor {
	newExt := e.clone()
	newExt.options.boundary = b
	return newExt
}

// DropRunningText removes headers and footers that repeat across pages
// before analysis.
func (e *Extractor) DropRunningText() *Extractor {
	newExt := e.clone()
	newExt.options.dropRunningText = true
	return newExt
}

// Language sets the Tesseract language used for image input
func (e *Extractor) Language(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.language = lang
	return newExt
}

// Workers sets how many pages are processed concurrently in each phase
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = n
	return newExt
}

// Logger sets the logger for decoding and analysis progress
func (e *Extractor) Logger(l logrus.FieldLogger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations (execute the pipeline and return results)
// ============================================================================

// Document decodes the input and returns its pages.
func (e *Extractor) Document(ctx context.Context) (*model.Document, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.doc != nil {
		return e.doc, nil
	}

	src := e.src
	if src == nil {
		if e.filename == "" {
			return nil, fmt.Errorf("no input specified")
		}
		opened, err := source.Open(e.filename, e.options.sourceOptions()...)
		if err != nil {
			return nil, err
		}
		src = opened
	}

	doc, err := src.Pages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read pages: %w", err)
	}
	return doc, nil
}

// Analyze runs the pipeline and returns the style profile together with
// the page sections. A document without text fails with
// layout.ErrEmptyDocument.
func (e *Extractor) Analyze(ctx context.Context) (*layout.Analysis, error) {
	doc, err := e.Document(ctx)
	if err != nil {
		return nil, err
	}
	return layout.NewAnalyzerWithConfig(e.options.analyzerConfig()).Run(ctx, doc)
}

// Sections runs the pipeline and returns one section per analyzed page.
func (e *Extractor) Sections(ctx context.Context) ([]model.PageSection, error) {
	res, err := e.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	return res.Sections, nil
}

// Render runs the pipeline and writes the sections to w in the named
// format ("text", "html" or "json").
func (e *Extractor) Render(ctx context.Context, w io.Writer, format string) error {
	renderer, err := render.Format(format)
	if err != nil {
		return err
	}
	sections, err := e.Sections(ctx)
	if err != nil {
		return err
	}
	return renderer(w, sections)
}

// Text returns the plain text listing of the sections:
//
//	Page 1:
//	1 [H]: INTRODUCTION
//	2-4 [P]: Body text ...
//
// Example:
//
//	out, err := sectioner.Open("document.pdf").Text(ctx)
func (e *Extractor) Text(ctx context.Context) (string, error) {
	return e.renderString(ctx, "text")
}

// HTML returns the sections as HTML <section> elements
func (e *Extractor) HTML(ctx context.Context) (string, error) {
	return e.renderString(ctx, "html")
}

// JSON returns the sections as a JSON array
func (e *Extractor) JSON(ctx context.Context) (string, error) {
	return e.renderString(ctx, "json")
}

// ============================================================================
// Internal helpers
// ============================================================================

func (e *Extractor) renderString(ctx context.Context, format string) (string, error) {
	var buf bytes.Buffer
	if err := e.Render(ctx, &buf, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}
