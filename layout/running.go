package layout

import (
	"strings"
	"unicode"

	"github.com/tsawler/sectioner/model"
)

// RunningTextConfig holds configuration for running header/footer removal
type RunningTextConfig struct {
	// HeaderRegionHeight is the height from the top of the page searched
	// for running headers
	// Default: 72 points (1 inch)
	HeaderRegionHeight float64

	// FooterRegionHeight is the height from the bottom of the page searched
	// for running footers
	// Default: 72 points (1 inch)
	FooterRegionHeight float64

	// MinOccurrenceRatio is the fraction of pages a text must repeat on
	// Default: 0.5
	MinOccurrenceRatio float64

	// MinPages is the minimum page count for detection to run
	// Default: 2
	MinPages int
}

// DefaultRunningTextConfig returns the default running text configuration
func DefaultRunningTextConfig() RunningTextConfig {
	return RunningTextConfig{
		HeaderRegionHeight: 72,
		FooterRegionHeight: 72,
		MinOccurrenceRatio: 0.5,
		MinPages:           2,
	}
}

// RunningTextFilter removes headers and footers repeated across pages
type RunningTextFilter struct {
	config RunningTextConfig
}

// NewRunningTextFilter creates a filter with default configuration
func NewRunningTextFilter() *RunningTextFilter {
	return &RunningTextFilter{config: DefaultRunningTextConfig()}
}

// NewRunningTextFilterWithConfig creates a filter with custom configuration
func NewRunningTextFilterWithConfig(config RunningTextConfig) *RunningTextFilter {
	return &RunningTextFilter{config: config}
}

type runningKey struct {
	footer bool
	text   string
}

// Filter returns copies of pages without spans that sit in the header or
// footer zone and repeat, digits aside, on enough pages
func (f *RunningTextFilter) Filter(pages []model.Page) []model.Page {
	if len(pages) < f.config.MinPages || len(pages) < 2 {
		return pages
	}

	keys := make([][]*runningKey, len(pages))
	seen := make(map[runningKey]map[int]bool)
	for i, p := range pages {
		keys[i] = make([]*runningKey, len(p.Spans))
		top, bottom := pageExtent(p)
		for j, s := range p.Spans {
			norm := normalizeRunning(s.Text)
			if len([]rune(norm)) < 3 {
				continue
			}
			var k runningKey
			switch {
			case top-s.BBox.Y1 < f.config.HeaderRegionHeight:
				k = runningKey{text: norm}
			case s.BBox.Y0-bottom < f.config.FooterRegionHeight:
				k = runningKey{footer: true, text: norm}
			default:
				continue
			}
			keys[i][j] = &k
			if seen[k] == nil {
				seen[k] = make(map[int]bool)
			}
			seen[k][i] = true
		}
	}

	minOccurrences := int(float64(len(pages)) * f.config.MinOccurrenceRatio)
	if minOccurrences < 2 {
		minOccurrences = 2
	}

	out := make([]model.Page, len(pages))
	for i, p := range pages {
		out[i] = p
		out[i].Spans = nil
		for j, s := range p.Spans {
			if k := keys[i][j]; k != nil && len(seen[*k]) >= minOccurrences {
				continue
			}
			out[i].Spans = append(out[i].Spans, s)
		}
	}
	return out
}

// pageExtent returns the top and bottom Y of the page. Content lying in
// [-Height, 0] comes from negated y-down coordinates. The content extent is
// used when the page size is unknown or the content fits neither range.
func pageExtent(p model.Page) (top, bottom float64) {
	box := model.BoundsOf(p.Spans)
	switch {
	case p.Height <= 0:
		return box.Y1, box.Y0
	case box.IsEmpty() || (box.Y0 >= 0 && box.Y1 <= p.Height):
		return p.Height, 0
	case box.Y0 >= -p.Height && box.Y1 <= 0:
		return 0, -p.Height
	}
	return box.Y1, box.Y0
}

// normalizeRunning lowercases text, replaces digit runs with '#' and
// collapses whitespace, so "Page 3" and "Page 14" compare equal
func normalizeRunning(s string) string {
	var b strings.Builder
	inDigits := false
	for _, r := range strings.Join(strings.Fields(s), " ") {
		if unicode.IsDigit(r) {
			if !inDigits {
				b.WriteRune('#')
			}
			inDigits = true
			continue
		}
		inDigits = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
