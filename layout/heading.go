package layout

import (
	"strings"

	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

// Strategy selects the heading classification policy
type Strategy int

const (
	// StrategyLine classifies whole lines using the style profile, the
	// median line length and the line's style mix
	StrategyLine Strategy = iota

	// StrategySpan classifies individual spans by comparing their size with
	// the next span on the page, so a heading run inside a line is found
	StrategySpan

	// StrategyCommonStyle marks every line whose dominant style is not a
	// body style as a heading
	StrategyCommonStyle
)

// String returns the strategy name
func (s Strategy) String() string {
	switch s {
	case StrategySpan:
		return "span"
	case StrategyCommonStyle:
		return "common"
	default:
		return "line"
	}
}

// ParseStrategy parses a strategy name as accepted on the command line
func ParseStrategy(s string) (Strategy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line", "":
		return StrategyLine, true
	case "span":
		return StrategySpan, true
	case "common", "common-style":
		return StrategyCommonStyle, true
	}
	return StrategyLine, false
}

// ClassifierConfig holds configuration for heading classification
type ClassifierConfig struct {
	// Strategy is the classification policy
	// Default: StrategyLine
	Strategy Strategy

	// HeadingLengthRatio: a non-body line shorter than this fraction of the
	// median line length is a heading
	// Default: 0.6
	HeadingLengthRatio float64

	// MaxHeadingStyles: a longer line mixing more distinct styles than this
	// is body text with inline emphasis
	// Default: 2
	MaxHeadingStyles int

	// SizeRatio: a span larger than this multiple of its reference size is
	// a heading (StrategySpan)
	// Default: 1.15
	SizeRatio float64

	// EmphasisSizeRatio: a bold or all-caps span at least this multiple of
	// its reference size is a heading (StrategySpan)
	// Default: 1.025
	EmphasisSizeRatio float64
}

// DefaultClassifierConfig returns the default classification configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Strategy:           StrategyLine,
		HeadingLengthRatio: 0.6,
		MaxHeadingStyles:   2,
		SizeRatio:          1.15,
		EmphasisSizeRatio:  1.025,
	}
}

// Unit is the input to a classifier: a line, or a single span for the
// span strategy
type Unit struct {
	Spans []model.Span

	// Reference is the neighbour font size a span is compared with
	// (StrategySpan). Zero means no neighbour; the document average is
	// used instead.
	Reference float64
}

// Text returns the unit's text
func (u Unit) Text() string {
	return LineGroup{Spans: u.Spans}.Text()
}

// Length returns the number of characters in the unit's spans
func (u Unit) Length() int {
	return spansLength(u.Spans)
}

// IsEmpty reports whether the unit has no visible text
func (u Unit) IsEmpty() bool {
	for _, s := range u.Spans {
		if !s.IsBlank() {
			return false
		}
	}
	return true
}

// Classifier decides whether a unit is a heading or a paragraph.
// Implementations are pure: the same unit and profile always give the same
// kind, and empty units are paragraphs.
type Classifier interface {
	Classify(unit Unit, profile *StyleProfile) model.Kind
}

// NewClassifier returns the classifier for config.Strategy
func NewClassifier(config ClassifierConfig) Classifier {
	switch config.Strategy {
	case StrategySpan:
		return &SpanClassifier{config: config}
	case StrategyCommonStyle:
		return CommonStyleClassifier{}
	default:
		return &LineClassifier{config: config}
	}
}

// LineClassifier implements StrategyLine
type LineClassifier struct {
	config ClassifierConfig
}

// Classify implements Classifier
func (c *LineClassifier) Classify(unit Unit, profile *StyleProfile) model.Kind {
	if unit.IsEmpty() {
		return model.KindParagraph
	}

	sig, distinct, _ := DominantSignature(unit.Spans)
	if profile.IsCommon(sig) {
		return model.KindParagraph
	}

	median := 0
	if profile != nil {
		median = profile.MedianLength
	}
	if float64(unit.Length()) < c.config.HeadingLengthRatio*float64(median) {
		return model.KindHeading
	}

	if distinct > c.config.MaxHeadingStyles {
		return model.KindParagraph
	}
	return model.KindHeading
}

// SpanClassifier implements StrategySpan. Units are expected to hold a
// single span; with more, the first span decides.
type SpanClassifier struct {
	config ClassifierConfig
}

// Classify implements Classifier
func (c *SpanClassifier) Classify(unit Unit, profile *StyleProfile) model.Kind {
	if unit.IsEmpty() {
		return model.KindParagraph
	}

	span := unit.Spans[0]
	if text.IsNumeric(span.Text) {
		return model.KindParagraph
	}
	if profile.IsCommon(SignatureOf(span)) {
		return model.KindParagraph
	}

	ref := unit.Reference
	if ref <= 0 && profile != nil {
		ref = profile.AverageSize
	}
	if ref <= 0 {
		return model.KindParagraph
	}

	if span.Size > c.config.SizeRatio*ref {
		return model.KindHeading
	}
	emphasised := span.Bold || text.IsAllCaps(span.Text)
	if emphasised && span.Size >= c.config.EmphasisSizeRatio*ref {
		return model.KindHeading
	}
	return model.KindParagraph
}

// CommonStyleClassifier implements StrategyCommonStyle
type CommonStyleClassifier struct{}

// Classify implements Classifier
func (CommonStyleClassifier) Classify(unit Unit, profile *StyleProfile) model.Kind {
	if unit.IsEmpty() {
		return model.KindParagraph
	}
	sig, _, _ := DominantSignature(unit.Spans)
	if profile.IsCommon(sig) {
		return model.KindParagraph
	}
	return model.KindHeading
}
