// Package layout infers headings and paragraphs from styled text spans.
//
// # Pipeline
//
// The [Analyzer] runs in two phases over a [model.Document]:
//
//  1. Every page is grouped into lines by the [LineGrouper] and every span
//     is tallied into a [StyleProfile] by the [Profiler].
//  2. With the profile frozen, each page's lines are classified by a
//     [Classifier] and folded into blocks by the [SectionMerger].
//
// Phase two never starts before phase one has seen the whole document.
//
//	analyzer := layout.NewAnalyzer()
//	sections, err := analyzer.Analyze(ctx, doc)
//	if errors.Is(err, layout.ErrEmptyDocument) {
//	    // nothing to section
//	}
//
// # Style Profile
//
// Spans are fingerprinted by [StyleSignature] (bold, italic, all caps,
// size, decoder style tag). The most frequent signatures are ranked and the
// leading run, cut at the first count below 40% of its predecessor, is the
// set of body styles.
//
// # Strategies
//
//   - [StrategyLine] - body style, line length and style mix (default)
//   - [StrategySpan] - span size against the next span on the page
//   - [StrategyCommonStyle] - anything not in a body style is a heading
//
// # Configuration
//
//	config := layout.DefaultAnalyzerConfig()
//	config.MaxPages = 10
//	config.LineConfig.Policy = layout.PolicyStreamingY
//	config.LineConfig.VerticalTolerance = 4
//	config.MergeConfig.MergeHeadings = false
//	analyzer := layout.NewAnalyzerWithConfig(config)
package layout
