package layout

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

// ErrEmptyDocument is returned when a document has no text spans left to
// analyze
var ErrEmptyDocument = errors.New("layout: no text spans in document")

// AnalyzerConfig holds configuration for the analyzer and its components
type AnalyzerConfig struct {
	// MaxPages excludes pages whose index is at or beyond it from both
	// phases (<= 0 keeps every page)
	// Default: 100
	MaxPages int

	// DropPageNumbers removes digit-only spans before profiling
	// Default: true
	DropPageNumbers bool

	// DropRunningText removes headers and footers repeated across pages
	// Default: false
	DropRunningText bool

	// Workers is the number of pages processed concurrently in each phase
	// Default: 1
	Workers int

	ProfileConfig     ProfileConfig
	LineConfig        LineConfig
	ClassifierConfig  ClassifierConfig
	MergeConfig       MergeConfig
	RunningTextConfig RunningTextConfig

	// Logger receives progress messages
	// Default: discards everything
	Logger logrus.FieldLogger
}

// DefaultAnalyzerConfig returns the default analyzer configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		MaxPages:          100,
		DropPageNumbers:   true,
		Workers:           1,
		ProfileConfig:     DefaultProfileConfig(),
		LineConfig:        DefaultLineConfig(),
		ClassifierConfig:  DefaultClassifierConfig(),
		MergeConfig:       DefaultMergeConfig(),
		RunningTextConfig: DefaultRunningTextConfig(),
	}
}

// Analysis is the result of a run
type Analysis struct {
	// Profile is the frozen document style profile
	Profile *StyleProfile

	// Sections holds one entry per analyzed page, in page order
	Sections []model.PageSection
}

// BlockCount returns the number of blocks across all sections
func (a *Analysis) BlockCount() int {
	n := 0
	for _, s := range a.Sections {
		n += len(s.Blocks)
	}
	return n
}

// Analyzer runs the sectioning pipeline over a document in two phases.
// Phase one groups lines and builds the style profile over every page;
// phase two classifies and merges each page against the frozen profile.
// No page is classified before the profile is complete.
type Analyzer struct {
	config     AnalyzerConfig
	logger     logrus.FieldLogger
	grouper    *LineGrouper
	classifier Classifier
	merger     *SectionMerger
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	logger := config.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Analyzer{
		config:     config,
		logger:     logger,
		grouper:    NewLineGrouperWithConfig(config.LineConfig),
		classifier: NewClassifier(config.ClassifierConfig),
		merger:     NewSectionMergerWithConfig(config.MergeConfig),
	}
}

// Analyze returns the page sections of doc
func (a *Analyzer) Analyze(ctx context.Context, doc *model.Document) ([]model.PageSection, error) {
	res, err := a.Run(ctx, doc)
	if err != nil {
		return nil, err
	}
	return res.Sections, nil
}

// Run analyzes doc and also returns the style profile
func (a *Analyzer) Run(ctx context.Context, doc *model.Document) (*Analysis, error) {
	start := time.Now()

	prepared := a.prepare(doc)
	spans := prepared.SpanCount()
	if spans == 0 {
		return nil, ErrEmptyDocument
	}
	a.logger.WithFields(logrus.Fields{
		"pages": len(prepared.Pages),
		"spans": spans,
	}).Debug("document prepared")

	// Phase one
	lines, err := a.groupPages(ctx, prepared)
	if err != nil {
		return nil, err
	}
	profile, err := NewProfilerWithConfig(a.profileConfig()).Build(ctx, prepared)
	if err != nil {
		return nil, err
	}
	var lengths []int
	for _, page := range lines {
		for _, g := range page {
			lengths = append(lengths, g.Length())
		}
	}
	profile.MedianLength = MedianLength(lengths)

	a.logger.WithFields(logrus.Fields{
		"styles":        len(profile.Counts),
		"common_styles": len(profile.Common),
		"median_length": profile.MedianLength,
		"average_size":  profile.AverageSize,
	}).Debug("style profile built")

	// Phase two
	sections, err := a.classifyPages(ctx, prepared, lines, profile)
	if err != nil {
		return nil, err
	}

	res := &Analysis{Profile: profile, Sections: sections}
	a.logger.WithFields(logrus.Fields{
		"pages":    len(sections),
		"blocks":   res.BlockCount(),
		"duration": time.Since(start),
	}).Info("analysis complete")
	return res, nil
}

func (a *Analyzer) profileConfig() ProfileConfig {
	cfg := a.config.ProfileConfig
	if cfg.Workers < a.config.Workers {
		cfg.Workers = a.config.Workers
	}
	return cfg
}

// prepare truncates the document and drops spans that never reach output
func (a *Analyzer) prepare(doc *model.Document) *model.Document {
	truncated := doc.Truncate(a.config.MaxPages)

	pages := make([]model.Page, len(truncated.Pages))
	for i, p := range truncated.Pages {
		pages[i] = p
		pages[i].Spans = nil
		for _, s := range p.Spans {
			if s.IsBlank() {
				continue
			}
			if a.config.DropPageNumbers && text.IsNumeric(s.Text) {
				continue
			}
			pages[i].Spans = append(pages[i].Spans, s)
		}
	}

	if a.config.DropRunningText {
		pages = NewRunningTextFilterWithConfig(a.config.RunningTextConfig).Filter(pages)
	}
	return &model.Document{Pages: pages}
}

// forEachPage runs fn for every page index with the configured concurrency
func (a *Analyzer) forEachPage(ctx context.Context, n int, fn func(i int)) error {
	g, ctx := errgroup.WithContext(ctx)
	if a.config.Workers > 1 {
		g.SetLimit(a.config.Workers)
	} else {
		g.SetLimit(1)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
			return nil
		})
	}
	return g.Wait()
}

func (a *Analyzer) groupPages(ctx context.Context, doc *model.Document) ([][]LineGroup, error) {
	lines := make([][]LineGroup, len(doc.Pages))
	err := a.forEachPage(ctx, len(doc.Pages), func(i int) {
		lines[i] = a.grouper.Group(doc.Pages[i].Spans)
	})
	return lines, err
}

func (a *Analyzer) classifyPages(ctx context.Context, doc *model.Document, lines [][]LineGroup, profile *StyleProfile) ([]model.PageSection, error) {
	sections := make([]model.PageSection, len(doc.Pages))
	err := a.forEachPage(ctx, len(doc.Pages), func(i int) {
		units := a.classifyLines(lines[i], profile)
		sections[i] = model.PageSection{
			Page:   doc.Pages[i].Index,
			Blocks: a.merger.Merge(units),
		}
	})
	return sections, err
}

// classifyLines classifies the lines of one page
func (a *Analyzer) classifyLines(lines []LineGroup, profile *StyleProfile) []ClassifiedUnit {
	if a.config.ClassifierConfig.Strategy == StrategySpan {
		return a.classifySpans(lines, profile)
	}

	units := make([]ClassifiedUnit, len(lines))
	for i, g := range lines {
		units[i] = ClassifiedUnit{
			Kind:  a.classifier.Classify(Unit{Spans: g.Spans}, profile),
			Line:  g.Index,
			Text:  g.Text(),
			Spans: g.Spans,
		}
	}
	return units
}

// classifySpans classifies every span against the next span on the page.
// Runs of same-kind spans within a line become one unit; units are
// numbered in order so line ranges keep increasing.
func (a *Analyzer) classifySpans(lines []LineGroup, profile *StyleProfile) []ClassifiedUnit {
	var flat []model.Span
	for _, g := range lines {
		flat = append(flat, g.Spans...)
	}

	var units []ClassifiedUnit
	pos := 0
	for _, g := range lines {
		var run []model.Span
		var runKind model.Kind
		emit := func() {
			if len(run) == 0 {
				return
			}
			units = append(units, ClassifiedUnit{
				Kind:  runKind,
				Line:  len(units) + 1,
				Text:  LineGroup{Spans: run}.Text(),
				Spans: run,
			})
			run = nil
		}

		for _, s := range g.Spans {
			ref := 0.0
			if pos+1 < len(flat) {
				ref = flat[pos+1].Size
			}
			pos++

			kind := a.classifier.Classify(Unit{Spans: []model.Span{s}, Reference: ref}, profile)
			if len(run) > 0 && kind != runKind {
				emit()
			}
			runKind = kind
			run = append(run, s)
		}
		emit()
	}
	return units
}
