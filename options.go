package sectioner

import (
	"github.com/sirupsen/logrus"

	"github.com/tsawler/sectioner/layout"
	"github.com/tsawler/sectioner/source"
	"github.com/tsawler/sectioner/text"
)

// extractOptions holds configuration for a run
type extractOptions struct {
	// Input
	maxPages int
	language string

	// Line grouping
	policy    layout.Policy
	tolerance float64 // zero: the policy's default
	maxGap    float64

	// Classification and merging
	strategy        layout.Strategy
	mergeHeadings   bool
	stitch          bool
	boundary        text.BoundaryDetector
	dropRunningText bool

	// Execution
	workers int
	logger  logrus.FieldLogger
}

// defaultOptions returns the default extraction options
func defaultOptions() extractOptions {
	lines := layout.DefaultLineConfig()
	return extractOptions{
		maxPages:      100,
		language:      "eng",
		policy:        lines.Policy,
		maxGap:        lines.MaxHorizontalGap,
		strategy:      layout.StrategyLine,
		mergeHeadings: true,
		boundary:      text.PunctuationBoundary{},
		workers:       1,
	}
}

// clone creates a copy of extractOptions. Every field is a value or a
// shared read-only collaborator.
func (o extractOptions) clone() extractOptions {
	return o
}

// analyzerConfig translates the options into a layout configuration
func (o extractOptions) analyzerConfig() layout.AnalyzerConfig {
	config := layout.DefaultAnalyzerConfig()
	config.MaxPages = o.maxPages
	config.Workers = o.workers
	config.DropRunningText = o.dropRunningText
	config.Logger = o.logger

	config.ProfileConfig.Workers = o.workers
	config.LineConfig.Policy = o.policy
	config.LineConfig.VerticalTolerance = o.tolerance
	if o.tolerance <= 0 {
		config.LineConfig.VerticalTolerance = layout.DefaultTolerance(o.policy)
	}
	config.LineConfig.MaxHorizontalGap = o.maxGap
	config.ClassifierConfig.Strategy = o.strategy
	config.MergeConfig.MergeHeadings = o.mergeHeadings
	config.MergeConfig.StitchSentences = o.stitch
	config.MergeConfig.Boundary = o.boundary
	return config
}

// sourceOptions translates the options into adapter options
func (o extractOptions) sourceOptions() []source.Option {
	opts := []source.Option{
		source.WithMaxPages(o.maxPages),
		source.WithLanguage(o.language),
	}
	if o.logger != nil {
		opts = append(opts, source.WithLogger(o.logger))
	}
	return opts
}
