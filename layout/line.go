package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

// Policy selects how spans are clustered into lines
type Policy int

const (
	// PolicyProximity sorts spans top to bottom, left to right and keeps a
	// span on the current line only if it is vertically aligned with and
	// horizontally close to the previous span. Two columns at the same
	// height therefore stay apart.
	PolicyProximity Policy = iota

	// PolicyStreamingY walks spans in decoder order and starts a new line
	// whenever the vertical position jumps by more than the tolerance.
	// It trusts the decoder's reading order.
	PolicyStreamingY
)

// String returns the policy name
func (p Policy) String() string {
	switch p {
	case PolicyStreamingY:
		return "streaming"
	default:
		return "proximity"
	}
}

// ParsePolicy parses a policy name as accepted on the command line
func ParsePolicy(s string) (Policy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "proximity", "":
		return PolicyProximity, true
	case "streaming", "streaming-y", "y":
		return PolicyStreamingY, true
	}
	return PolicyProximity, false
}

// LineConfig holds configuration for line grouping
type LineConfig struct {
	// Policy is the grouping policy
	// Default: PolicyProximity
	Policy Policy

	// VerticalTolerance is the largest vertical offset, in points, between
	// spans on the same line. Zero selects DefaultTolerance(Policy).
	// Default: 3
	VerticalTolerance float64

	// MaxHorizontalGap is the widest gap, in points, between a span and the
	// previous span's right edge on the same line. Only PolicyProximity
	// uses it.
	// Default: 40
	MaxHorizontalGap float64
}

// DefaultLineConfig returns the default line grouping configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		Policy:            PolicyProximity,
		VerticalTolerance: DefaultTolerance(PolicyProximity),
		MaxHorizontalGap:  40,
	}
}

// DefaultTolerance returns the vertical tolerance a policy uses when none
// is configured: 3 points for PolicyProximity, 4 for PolicyStreamingY
func DefaultTolerance(p Policy) float64 {
	if p == PolicyStreamingY {
		return 4
	}
	return 3
}

// LineGroup is a run of spans on one visual line band. It is the unit
// the classifier works on.
type LineGroup struct {
	// Index is the 1-based position of the line on its page
	Index int

	// Spans in policy order
	Spans []model.Span

	// BBox is the union of the span boxes
	BBox model.BBox
}

// Text returns the line's span texts, separated by a space where the
// spans' boxes leave a word gap
func (g LineGroup) Text() string {
	return joinSpans(g.Spans)
}

// Length returns the number of characters in the line's spans, not
// counting the separators Text inserts
func (g LineGroup) Length() int {
	return spansLength(g.Spans)
}

// LineGrouper clusters the spans of a page into lines
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a line grouper with default configuration
func NewLineGrouper() *LineGrouper {
	return &LineGrouper{config: DefaultLineConfig()}
}

// NewLineGrouperWithConfig creates a line grouper with custom configuration
func NewLineGrouperWithConfig(config LineConfig) *LineGrouper {
	if config.VerticalTolerance <= 0 {
		config.VerticalTolerance = DefaultTolerance(config.Policy)
	}
	return &LineGrouper{config: config}
}

// Group clusters spans into lines. Every span ends up in exactly one group
// and groups are indexed 1..n in output order.
func (g *LineGrouper) Group(spans []model.Span) []LineGroup {
	if len(spans) == 0 {
		return nil
	}

	var runs [][]model.Span
	switch g.config.Policy {
	case PolicyStreamingY:
		runs = g.groupStreaming(spans)
	default:
		runs = g.groupProximity(spans)
	}

	groups := make([]LineGroup, len(runs))
	for i, run := range runs {
		groups[i] = LineGroup{
			Index: i + 1,
			Spans: run,
			BBox:  model.BoundsOf(run),
		}
	}
	return groups
}

// groupProximity sorts by quantized Y (top first) then X, and opens a new
// line when a span is off the previous span's band or too far to its right
func (g *LineGrouper) groupProximity(spans []model.Span) [][]model.Span {
	tol := g.config.VerticalTolerance
	base := 2 * tol

	sorted := make([]model.Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		qi, qj := quantize(sorted[i].BBox.Y0, base), quantize(sorted[j].BBox.Y0, base)
		if qi != qj {
			return qi > qj
		}
		return sorted[i].BBox.X0 < sorted[j].BBox.X0
	})

	var runs [][]model.Span
	current := []model.Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := current[len(current)-1]
		sameBand := math.Abs(s.BBox.Y0-last.BBox.Y0) < tol
		near := s.BBox.X0 <= last.BBox.X1+g.config.MaxHorizontalGap
		if sameBand && near {
			current = append(current, s)
			continue
		}
		runs = append(runs, current)
		current = []model.Span{s}
	}
	return append(runs, current)
}

// groupStreaming keeps decoder order and splits on vertical jumps
func (g *LineGrouper) groupStreaming(spans []model.Span) [][]model.Span {
	var runs [][]model.Span
	current := []model.Span{spans[0]}
	currentY := spans[0].BBox.Y0
	for _, s := range spans[1:] {
		if math.Abs(s.BBox.Y0-currentY) > g.config.VerticalTolerance {
			runs = append(runs, current)
			current = nil
		}
		current = append(current, s)
		currentY = s.BBox.Y0
	}
	return append(runs, current)
}

func joinSpans(spans []model.Span) string {
	frags := make([]text.Fragment, len(spans))
	for i, s := range spans {
		frags[i] = text.Fragment{Text: s.Text, X0: s.BBox.X0, X1: s.BBox.X1, Size: s.Size}
	}
	return text.JoinFragments(frags)
}

func spansLength(spans []model.Span) int {
	n := 0
	for _, s := range spans {
		n += text.RuneLength(strings.TrimSpace(s.Text))
	}
	return n
}

// quantize rounds v to the nearest multiple of base, halves to even.
// It only stabilises sort order.
func quantize(v, base float64) float64 {
	if base <= 0 {
		return v
	}
	return base * math.RoundToEven(v/base)
}
