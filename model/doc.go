// Package model provides the data structures shared by every stage of the
// sectioning pipeline.
//
// Span sources produce a [Document] made of [Page] values, each holding the
// immutable [Span] fragments reported by a decoder. The layout package turns
// those spans into [PageSection] values: ordered lists of classified [Block]
// values that the render package writes out.
//
// # Geometry
//
// All coordinates use PDF user space: X grows to the right and Y grows
// upward, so the top of a page has the largest Y. [BBox] stores the two
// corners (X0, Y0) and (X1, Y1). Sources whose native coordinates grow
// downward (hOCR, MuPDF stext) flip them before building spans.
//
// # Blocks
//
// A [Block] is a maximal run of same-[Kind] line groups on one page. It
// records the 1-based page-local line range it covers and its merged text:
//
//	for _, section := range sections {
//	    for _, block := range section.Blocks {
//	        fmt.Println(block.LineRange(), block.Kind.Initial(), block.Text)
//	    }
//	}
package model
