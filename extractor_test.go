package sectioner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsawler/sectioner/internal/testpdf"
	"github.com/tsawler/sectioner/layout"
	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

// twoPagePDF writes a heading followed by three body lines on page 1 and
// two body lines on page 2
func twoPagePDF(t *testing.T) string {
	t.Helper()
	data := testpdf.Build(
		testpdf.Page{
			{Text: "INTRODUCTION", Bold: true, Size: 24, X: 72, Y: 700},
			{Text: "The first line of the body text runs on", Size: 11, X: 72, Y: 670},
			{Text: "and the second line keeps it going until", Size: 11, X: 72, Y: 656},
			{Text: "the third line finishes the paragraph.", Size: 11, X: 72, Y: 642},
		},
		testpdf.Page{
			{Text: "Page two opens with ordinary body text", Size: 11, X: 72, Y: 700},
			{Text: "and closes with a second ordinary line.", Size: 11, X: 72, Y: 686},
		},
	)
	path := filepath.Join(t.TempDir(), "two-page.pdf")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func span(txt string, y, size float64, bold bool, page int) model.Span {
	return model.Span{
		Text: txt,
		BBox: model.NewBBox(72, y, 72+float64(len(txt))*size*0.5, y+size),
		Size: size,
		Bold: bold,
		Page: page,
	}
}

func memoryDocument() *model.Document {
	return &model.Document{Pages: []model.Page{
		{Index: 0, Width: 612, Height: 792, Spans: []model.Span{
			span("OVERVIEW", 700, 20, true, 0),
			span("Plain body text that fills a line of the page", 670, 11, false, 0),
			span("more plain body text that fills another line", 656, 11, false, 0),
		}},
		{Index: 1, Width: 612, Height: 792, Spans: []model.Span{
			span("Second page body text filling a whole line", 700, 11, false, 1),
			span("7", 40, 11, false, 1),
		}},
	}}
}

func TestOpen_TwoPageDocument(t *testing.T) {
	out, err := Open(twoPagePDF(t)).Text(context.Background())
	require.NoError(t, err)

	want := "Page 1:\n" +
		"1 [H]: INTRODUCTION\n" +
		"2-4 [P]: The first line of the body text runs on and the second line keeps it going until the third line finishes the paragraph.\n" +
		"\n" +
		"Page 2:\n" +
		"1-2 [P]: Page two opens with ordinary body text and closes with a second ordinary line.\n" +
		"\n"
	require.Equal(t, want, out)
}

func TestOpen_MaxPages(t *testing.T) {
	sections, err := Open(twoPagePDF(t)).MaxPages(1).Sections(context.Background())
	require.NoError(t, err)
	require.Len(t, sections, 1)
	require.Equal(t, 0, sections[0].Page)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nonexistent.pdf")).Text(context.Background())
	require.Error(t, err)
}

func TestNoInput(t *testing.T) {
	_, err := (&Extractor{options: defaultOptions()}).Sections(context.Background())
	require.Error(t, err)
}

func TestFromDocument_Strategies(t *testing.T) {
	for _, s := range []layout.Strategy{layout.StrategyLine, layout.StrategySpan, layout.StrategyCommonStyle} {
		t.Run(s.String(), func(t *testing.T) {
			sections, err := FromDocument(memoryDocument()).Strategy(s).Sections(context.Background())
			require.NoError(t, err)
			require.Len(t, sections, 2)

			first := sections[0]
			require.Len(t, first.Headings(), 1)
			require.Equal(t, "OVERVIEW", first.Headings()[0].Text)
			require.Empty(t, sections[1].Headings())

			for _, sec := range sections {
				for _, b := range sec.Blocks {
					require.NotEqual(t, "7", b.Text)
				}
			}
		})
	}
}

func TestFromDocument_Empty(t *testing.T) {
	_, err := FromDocument(&model.Document{}).Text(context.Background())
	require.ErrorIs(t, err, layout.ErrEmptyDocument)
}

func TestRenderFormats(t *testing.T) {
	ext := FromDocument(memoryDocument())
	ctx := context.Background()

	html, err := ext.HTML(ctx)
	require.NoError(t, err)
	require.Contains(t, html, `<h2 data-lines="1">OVERVIEW</h2>`)

	js, err := ext.JSON(ctx)
	require.NoError(t, err)
	require.Contains(t, js, `"kind": "heading"`)

	var sb strings.Builder
	require.NoError(t, ext.Render(ctx, &sb, "text"))
	require.True(t, strings.HasPrefix(sb.String(), "Page 1:\n1 [H]: OVERVIEW\n"))

	require.Error(t, ext.Render(ctx, &sb, "pdf"))
}

func TestChainImmutability(t *testing.T) {
	base := FromDocument(memoryDocument())
	derived := base.Strategy(layout.StrategySpan).MaxPages(1).MergeHeadings(false).Workers(4)

	require.Equal(t, layout.StrategyLine, base.options.strategy)
	require.Equal(t, 100, base.options.maxPages)
	require.True(t, base.options.mergeHeadings)
	require.Equal(t, 1, base.options.workers)

	require.Equal(t, layout.StrategySpan, derived.options.strategy)
	require.Equal(t, 1, derived.options.maxPages)
	require.False(t, derived.options.mergeHeadings)
	require.Equal(t, 4, derived.options.workers)
}

func TestBoundary(t *testing.T) {
	_, err := FromDocument(memoryDocument()).Boundary("regex").Text(context.Background())
	require.ErrorIs(t, err, text.ErrUnknownBoundary)

	ext := FromDocument(memoryDocument()).StitchSentences().Boundary("punct")
	require.NoError(t, ext.err)
	require.True(t, ext.options.stitch)
	require.IsType(t, text.PunctuationBoundary{}, ext.options.boundary)
}

func TestAnalyzerConfig(t *testing.T) {
	ext := FromDocument(memoryDocument()).
		Policy(layout.PolicyStreamingY).
		Tolerance(5).
		MaxGap(12).
		DropRunningText().
		Workers(3)

	config := ext.options.analyzerConfig()
	require.Equal(t, layout.PolicyStreamingY, config.LineConfig.Policy)
	require.Equal(t, 5.0, config.LineConfig.VerticalTolerance)
	require.Equal(t, 12.0, config.LineConfig.MaxHorizontalGap)
	require.True(t, config.DropRunningText)
	require.Equal(t, 3, config.Workers)
	require.Equal(t, 3, config.ProfileConfig.Workers)
	require.True(t, config.DropPageNumbers)
}

func TestAnalyzerConfig_DefaultTolerance(t *testing.T) {
	tests := []struct {
		name string
		ext  *Extractor
		want float64
	}{
		{"proximity", FromDocument(memoryDocument()), 3},
		{"streaming", FromDocument(memoryDocument()).Policy(layout.PolicyStreamingY), 4},
		{"streaming explicit", FromDocument(memoryDocument()).Policy(layout.PolicyStreamingY).Tolerance(2.5), 2.5},
		{"explicit before policy", FromDocument(memoryDocument()).Tolerance(6).Policy(layout.PolicyStreamingY), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := tt.ext.options.analyzerConfig()
			require.Equal(t, tt.want, config.LineConfig.VerticalTolerance)
		})
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	seq, err := FromDocument(memoryDocument()).Sections(ctx)
	require.NoError(t, err)
	par, err := FromDocument(memoryDocument()).Workers(4).Sections(ctx)
	require.NoError(t, err)
	require.Equal(t, seq, par)
}

func TestMust(t *testing.T) {
	require.Equal(t, 3, Must(3, nil))
	require.Panics(t, func() {
		Must(FromDocument(&model.Document{}).Text(context.Background()))
	})
}
