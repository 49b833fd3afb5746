package layout

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/sectioner/model"
)

// ============================================================================
// End-to-end scenario
// ============================================================================

func TestAnalyzer_TwoPageDocument(t *testing.T) {
	for _, strategy := range []Strategy{StrategyLine, StrategySpan, StrategyCommonStyle} {
		t.Run(strategy.String(), func(t *testing.T) {
			config := DefaultAnalyzerConfig()
			config.ClassifierConfig.Strategy = strategy

			sections, err := NewAnalyzerWithConfig(config).Analyze(context.Background(), twoPageDocument())
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if len(sections) != 2 {
				t.Fatalf("Expected 2 sections, got %d", len(sections))
			}

			checkBlocks(t, sections[0].Blocks, []blockSummary{
				{model.KindHeading, 1, 1, "INTRODUCTION"},
				{model.KindParagraph, 2, 4, strings.Join([]string{bodyLine1, bodyLine2, bodyLine3}, " ")},
			})

			if sections[1].Page != 1 {
				t.Errorf("Expected second section for page 1, got %d", sections[1].Page)
			}
			checkBlocks(t, sections[1].Blocks, []blockSummary{
				{model.KindParagraph, 1, 4, strings.Join([]string{bodyLine1, bodyLine2, bodyLine3, bodyLine1}, " ")},
			})
			if len(sections[1].Headings()) != 0 {
				t.Error("Expected no heading on page 2")
			}
		})
	}
}

// ============================================================================
// Properties
// ============================================================================

func TestAnalyzer_PageNumbersSuppressed(t *testing.T) {
	doc := twoPageDocument()
	doc.Pages[0].Spans = append(doc.Pages[0].Spans, makeBoldSpan("7", 72, 500, 10, 30))

	sections, err := NewAnalyzer().Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	for _, s := range sections {
		for _, b := range s.Blocks {
			for _, span := range b.Spans {
				if span.Text == "7" || span.Text == "1" || span.Text == "2" {
					t.Errorf("Page number %q reached block %q", span.Text, b.Text)
				}
			}
			if b.Text == "7" {
				t.Error("Page number classified as a block")
			}
		}
	}
}

func TestAnalyzer_EmptyDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  *model.Document
	}{
		{"nil document", nil},
		{"no pages", &model.Document{}},
		{"empty pages", &model.Document{Pages: []model.Page{{Index: 0}, {Index: 1}}}},
		{"only page numbers", &model.Document{Pages: []model.Page{{Index: 0, Spans: []model.Span{makeSpan("12", 0, 0, 10, 11)}}}}},
		{"only blanks", &model.Document{Pages: []model.Page{{Index: 0, Spans: []model.Span{makeSpan("  ", 0, 0, 10, 11)}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnalyzer().Analyze(context.Background(), tt.doc)
			if !errors.Is(err, ErrEmptyDocument) {
				t.Errorf("Expected ErrEmptyDocument, got %v", err)
			}
		})
	}
}

func TestAnalyzer_MaxPages(t *testing.T) {
	config := DefaultAnalyzerConfig()
	config.MaxPages = 1

	res, err := NewAnalyzerWithConfig(config).Run(context.Background(), twoPageDocument())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Sections) != 1 || res.Sections[0].Page != 0 {
		t.Fatalf("Expected only page 0, got %+v", res.Sections)
	}
	// page 2's body lines are excluded from the profile as well
	if res.Profile.Total != 4 {
		t.Errorf("Expected 4 profiled spans, got %d", res.Profile.Total)
	}
}

func TestAnalyzer_MaxPagesExcludesEverything(t *testing.T) {
	doc := twoPageDocument()
	doc.Pages[0].Index = 5
	doc.Pages[1].Index = 6

	config := DefaultAnalyzerConfig()
	config.MaxPages = 5
	_, err := NewAnalyzerWithConfig(config).Analyze(context.Background(), doc)
	if !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("Expected ErrEmptyDocument, got %v", err)
	}
}

// mixedDocument has inline headings, two columns and uneven lines
func mixedDocument() *model.Document {
	var pages []model.Page
	for p := 0; p < 5; p++ {
		spans := []model.Span{
			makeBoldSpan("SECTION", 72, 740, 80, 16),
			makeBoldSpan("Lead in.", 72, 700, 60, 11.5),
			makeSpan("Body text follows the lead in and keeps going", 140, 700, 300, 11),
			makeSpan("left column body text that wraps to the", 72, 660, 200, 11),
			makeSpan("right column body text at the same height", 340, 660, 200, 11),
			makeSpan("next line of the left column with a hyphen-", 72, 646, 200, 11),
			makeSpan("ated word", 72, 632, 200, 11),
			makeSpan("Note", 72, 600, 40, 9),
			makeSpan("12", 300, 40, 10, 11),
		}
		pages = append(pages, model.Page{Index: p, Width: 612, Height: 792, Spans: onPage(p, spans...)})
	}
	return &model.Document{Pages: pages}
}

func TestAnalyzer_CoverageAndMonotonicRanges(t *testing.T) {
	for _, strategy := range []Strategy{StrategyLine, StrategySpan, StrategyCommonStyle} {
		for _, policy := range []Policy{PolicyProximity, PolicyStreamingY} {
			for _, mergeHeadings := range []bool{true, false} {
				config := DefaultAnalyzerConfig()
				config.ClassifierConfig.Strategy = strategy
				config.LineConfig.Policy = policy
				config.MergeConfig.MergeHeadings = mergeHeadings

				doc := mixedDocument()
				sections, err := NewAnalyzerWithConfig(config).Analyze(context.Background(), doc)
				if err != nil {
					t.Fatalf("%v/%v: Analyze() error = %v", strategy, policy, err)
				}

				for i, s := range sections {
					covered := 0
					prevEnd := 0
					for _, b := range s.Blocks {
						if b.StartLine > b.EndLine {
							t.Errorf("%v/%v: block %s has inverted range", strategy, policy, b.LineRange())
						}
						if b.StartLine <= prevEnd {
							t.Errorf("%v/%v: block %s overlaps previous end %d", strategy, policy, b.LineRange(), prevEnd)
						}
						prevEnd = b.EndLine
						covered += len(b.Spans)
					}
					// every span except the page number
					want := len(doc.Pages[i].Spans) - 1
					if covered != want {
						t.Errorf("%v/%v: page %d covers %d spans, want %d", strategy, policy, i, covered, want)
					}
				}
			}
		}
	}
}

func TestAnalyzer_Deterministic(t *testing.T) {
	analyzer := NewAnalyzer()

	first, err := analyzer.Run(context.Background(), mixedDocument())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := analyzer.Run(context.Background(), mixedDocument())
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !reflect.DeepEqual(first.Sections, again.Sections) {
			t.Fatal("Sections differ between runs")
		}
		if !reflect.DeepEqual(first.Profile.Ranked, again.Profile.Ranked) {
			t.Fatal("Profiles differ between runs")
		}
	}
}

func TestAnalyzer_ParallelMatchesSequential(t *testing.T) {
	sequential, err := NewAnalyzer().Analyze(context.Background(), mixedDocument())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	config := DefaultAnalyzerConfig()
	config.Workers = 4
	parallel, err := NewAnalyzerWithConfig(config).Analyze(context.Background(), mixedDocument())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if !reflect.DeepEqual(sequential, parallel) {
		t.Error("Parallel analysis differs from sequential analysis")
	}
}

func TestAnalyzer_SpanStrategyFindsInlineHeading(t *testing.T) {
	config := DefaultAnalyzerConfig()
	config.ClassifierConfig.Strategy = StrategySpan

	sections, err := NewAnalyzerWithConfig(config).Analyze(context.Background(), mixedDocument())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	var found bool
	for _, b := range sections[0].Headings() {
		if strings.Contains(b.Text, "Lead in.") {
			found = true
		}
		if strings.Contains(b.Text, "Body text follows") {
			t.Errorf("Body run classified as heading: %q", b.Text)
		}
	}
	if !found {
		t.Errorf("Expected bold lead-in to be a heading, got %+v", summarize(sections[0].Blocks))
	}
}

func TestAnalyzer_HyphenatedLinesJoined(t *testing.T) {
	sections, err := NewAnalyzer().Analyze(context.Background(), mixedDocument())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	var joined bool
	for _, b := range sections[0].Paragraphs() {
		if strings.Contains(b.Text, "hyphenated word") {
			joined = true
		}
	}
	if !joined {
		t.Errorf("Expected repaired hyphenation, got %+v", summarize(sections[0].Blocks))
	}
}

func TestAnalyzer_DropRunningText(t *testing.T) {
	config := DefaultAnalyzerConfig()
	config.DropRunningText = true

	doc := &model.Document{Pages: runningPages(3)}
	sections, err := NewAnalyzerWithConfig(config).Analyze(context.Background(), doc)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	for _, s := range sections {
		if len(s.Blocks) != 1 || s.Blocks[0].Text != bodyLine1 {
			t.Errorf("Page %d: expected only the body line, got %+v", s.Page, summarize(s.Blocks))
		}
	}
}

func TestAnalyzer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewAnalyzer().Analyze(ctx, twoPageDocument()); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
