package layout

import (
	"github.com/tsawler/sectioner/model"
)

// makeSpan creates a regular test span whose box starts at (x, y)
func makeSpan(txt string, x, y, width, size float64) model.Span {
	return model.Span{
		Text: txt,
		BBox: model.NewBBox(x, y, x+width, y+size),
		Size: size,
	}
}

// makeBoldSpan creates a bold test span
func makeBoldSpan(txt string, x, y, width, size float64) model.Span {
	s := makeSpan(txt, x, y, width, size)
	s.Bold = true
	return s
}

// onPage sets the page index of spans
func onPage(page int, spans ...model.Span) []model.Span {
	out := make([]model.Span, len(spans))
	for i, s := range spans {
		s.Page = page
		out[i] = s
	}
	return out
}

const (
	bodyLine1 = "Layout analysis turns positioned text into structured blocks"
	bodyLine2 = "of headings and paragraphs while keeping the line numbers of"
	bodyLine3 = "every block so downstream tools can trace text to its source."
)

// twoPageDocument is a document whose first page has a 24pt bold caps
// heading above three body lines and whose second page is body text only.
// Both pages carry a page number in the footer.
func twoPageDocument() *model.Document {
	page1 := onPage(0,
		makeBoldSpan("INTRODUCTION", 72, 700, 180, 24),
		makeSpan(bodyLine1, 72, 670, 400, 11),
		makeSpan(bodyLine2, 72, 656, 400, 11),
		makeSpan(bodyLine3, 72, 642, 400, 11),
		makeSpan("1", 300, 40, 6, 11),
	)
	page2 := onPage(1,
		makeSpan(bodyLine1, 72, 700, 400, 11),
		makeSpan(bodyLine2, 72, 686, 400, 11),
		makeSpan(bodyLine3, 72, 672, 400, 11),
		makeSpan(bodyLine1, 72, 658, 400, 11),
		makeSpan("2", 300, 40, 6, 11),
	)
	return &model.Document{Pages: []model.Page{
		{Index: 0, Width: 612, Height: 792, Spans: page1},
		{Index: 1, Width: 612, Height: 792, Spans: page2},
	}}
}
