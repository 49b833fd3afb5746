package layout

import (
	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

// ClassifiedUnit is one classified line (or sub-line run) ready to merge
type ClassifiedUnit struct {
	// Kind is the unit's classification
	Kind model.Kind

	// Line is the unit's 1-based line number on its page
	Line int

	// Text is the unit's text
	Text string

	// Spans are the spans the unit covers
	Spans []model.Span
}

// MergeConfig holds configuration for block merging
type MergeConfig struct {
	// MergeHeadings accumulates consecutive heading lines into one block.
	// When false every heading line is emitted as its own block.
	// Default: true
	MergeHeadings bool

	// StitchSentences starts a new paragraph block when the open one
	// already ends a sentence
	// Default: false
	StitchSentences bool

	// Boundary decides sentence ends for StitchSentences
	// Default: text.PunctuationBoundary
	Boundary text.BoundaryDetector
}

// DefaultMergeConfig returns the default merge configuration
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		MergeHeadings: true,
		Boundary:      text.PunctuationBoundary{},
	}
}

// SectionMerger folds classified units into blocks
type SectionMerger struct {
	config MergeConfig
}

// NewSectionMerger creates a merger with default configuration
func NewSectionMerger() *SectionMerger {
	return &SectionMerger{config: DefaultMergeConfig()}
}

// NewSectionMergerWithConfig creates a merger with custom configuration
func NewSectionMergerWithConfig(config MergeConfig) *SectionMerger {
	if config.Boundary == nil {
		config.Boundary = text.PunctuationBoundary{}
	}
	return &SectionMerger{config: config}
}

// Merge folds the units of one page, in order, into blocks. Consecutive
// units of the same kind share a block; every unit lands in exactly one
// block.
func (m *SectionMerger) Merge(units []ClassifiedUnit) []model.Block {
	var st mergeState
	for _, u := range units {
		st = m.step(st, u)
	}
	return st.close().blocks
}

// mergeState is the fold accumulator
type mergeState struct {
	blocks []model.Block
	open   *openBlock
}

type openBlock struct {
	kind   model.Kind
	start  int
	end    int
	pieces []string
	spans  []model.Span
}

func (m *SectionMerger) step(st mergeState, u ClassifiedUnit) mergeState {
	if st.open != nil && m.continues(st.open, u) {
		st.open.end = u.Line
		st.open.pieces = append(st.open.pieces, u.Text)
		st.open.spans = append(st.open.spans, u.Spans...)
		return st
	}

	st = st.close()
	st.open = &openBlock{
		kind:   u.Kind,
		start:  u.Line,
		end:    u.Line,
		pieces: []string{u.Text},
		spans:  append([]model.Span(nil), u.Spans...),
	}
	return st
}

// continues reports whether u extends the open block
func (m *SectionMerger) continues(open *openBlock, u ClassifiedUnit) bool {
	if open.kind != u.Kind {
		return false
	}
	if u.Kind == model.KindHeading && !m.config.MergeHeadings {
		return false
	}
	if u.Kind == model.KindParagraph && m.config.StitchSentences {
		last := open.pieces[len(open.pieces)-1]
		if m.config.Boundary.IsBoundary(last, u.Text) {
			return false
		}
	}
	return true
}

func (st mergeState) close() mergeState {
	if st.open == nil {
		return st
	}
	o := st.open
	st.blocks = append(st.blocks, model.Block{
		Kind:      o.kind,
		StartLine: o.start,
		EndLine:   o.end,
		Text:      text.JoinLines(o.pieces),
		Spans:     o.spans,
	})
	st.open = nil
	return st
}
