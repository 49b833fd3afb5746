package layout

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/sectioner/model"
)

// ProfileConfig holds configuration for style profiling
type ProfileConfig struct {
	// TopStyles is the number of most frequent signatures retained
	// Default: 20
	TopStyles int

	// CommonCliff ends the common set at the first signature whose count is
	// below this fraction of the previous common signature's count
	// Default: 0.4
	CommonCliff float64

	// Workers is the number of pages tallied concurrently (<= 1 is sequential)
	// Default: 1
	Workers int
}

// DefaultProfileConfig returns the default profiling configuration
func DefaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		TopStyles:   20,
		CommonCliff: 0.4,
		Workers:     1,
	}
}

// StyleCount pairs a signature with its occurrence count
type StyleCount struct {
	Signature StyleSignature
	Count     int
}

// StyleProfile is the document-wide frequency table of style signatures.
// It is read-only once the analyzer's first phase completes and may be
// shared between goroutines.
type StyleProfile struct {
	// Counts maps every signature seen to its number of spans
	Counts map[StyleSignature]int

	// Ranked holds the TopStyles most frequent signatures, most frequent
	// first; ties keep discovery order
	Ranked []StyleCount

	// Common is the prefix of Ranked treated as body text
	Common []StyleCount

	// Total is the number of spans profiled
	Total int

	// AverageSize is the mean span font size
	AverageSize float64

	// MedianLength is the upper median of line text lengths in characters
	MedianLength int

	common map[StyleSignature]bool
}

// IsCommon reports whether sig is a body-text signature
func (p *StyleProfile) IsCommon(sig StyleSignature) bool {
	if p == nil {
		return false
	}
	return p.common[sig]
}

// IsEmpty reports whether the profile was built from no spans
func (p *StyleProfile) IsEmpty() bool {
	return p == nil || p.Total == 0
}

// BuildProfile tallies the signatures of spans in the order given
func BuildProfile(spans []model.Span, config ProfileConfig) *StyleProfile {
	t := newTally()
	for _, s := range spans {
		t.add(s)
	}
	return t.profile(config)
}

// MedianLength returns the upper median of lengths (the element at n/2
// after sorting), or 0 for an empty slice
func MedianLength(lengths []int) int {
	if len(lengths) == 0 {
		return 0
	}
	sorted := make([]int, len(lengths))
	copy(sorted, lengths)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}

// Profiler builds style profiles for whole documents
type Profiler struct {
	config ProfileConfig
}

// NewProfiler creates a profiler with default configuration
func NewProfiler() *Profiler {
	return &Profiler{config: DefaultProfileConfig()}
}

// NewProfilerWithConfig creates a profiler with custom configuration
func NewProfilerWithConfig(config ProfileConfig) *Profiler {
	return &Profiler{config: config}
}

// Build profiles every span of doc. With Workers > 1 pages are tallied
// concurrently and reduced in page order, so the result is identical to a
// sequential pass.
func (p *Profiler) Build(ctx context.Context, doc *model.Document) (*StyleProfile, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return newTally().profile(p.config), nil
	}

	tallies := make([]*tally, len(doc.Pages))
	g, ctx := errgroup.WithContext(ctx)
	if p.config.Workers > 1 {
		g.SetLimit(p.config.Workers)
	} else {
		g.SetLimit(1)
	}

	for i := range doc.Pages {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := newTally()
			for _, s := range doc.Pages[i].Spans {
				t.add(s)
			}
			tallies[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newTally()
	for _, t := range tallies {
		total.merge(t)
	}
	return total.profile(p.config), nil
}

// tally accumulates signature counts in discovery order
type tally struct {
	counts  map[StyleSignature]int
	order   []StyleSignature
	sizeSum float64
	spans   int
}

func newTally() *tally {
	return &tally{counts: make(map[StyleSignature]int)}
}

func (t *tally) add(s model.Span) {
	t.inc(SignatureOf(s), 1)
	t.sizeSum += s.Size
	t.spans++
}

func (t *tally) inc(sig StyleSignature, n int) {
	if _, seen := t.counts[sig]; !seen {
		t.order = append(t.order, sig)
	}
	t.counts[sig] += n
}

// merge folds o into t; signatures new to t are discovered in o's order
func (t *tally) merge(o *tally) {
	for _, sig := range o.order {
		t.inc(sig, o.counts[sig])
	}
	t.sizeSum += o.sizeSum
	t.spans += o.spans
}

func (t *tally) profile(config ProfileConfig) *StyleProfile {
	p := &StyleProfile{
		Counts: t.counts,
		Total:  t.spans,
		common: make(map[StyleSignature]bool),
	}
	if t.spans > 0 {
		p.AverageSize = t.sizeSum / float64(t.spans)
	}

	ranked := make([]StyleCount, 0, len(t.order))
	for _, sig := range t.order {
		ranked = append(ranked, StyleCount{Signature: sig, Count: t.counts[sig]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if config.TopStyles > 0 && len(ranked) > config.TopStyles {
		ranked = ranked[:config.TopStyles]
	}
	p.Ranked = ranked

	for i, sc := range ranked {
		if i > 0 && float64(sc.Count) < config.CommonCliff*float64(ranked[i-1].Count) {
			break
		}
		p.Common = append(p.Common, sc)
		p.common[sc.Signature] = true
	}
	return p
}
