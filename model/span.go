package model

import "strings"

// Span is the smallest unit of styled text reported by a document decoder.
// Spans are values and are never mutated once a source has produced them.
type Span struct {
	// Text is the span's text content
	Text string

	// BBox is the span's bounding box in page coordinates
	BBox BBox

	// Size is the font size in points
	Size float64

	// Bold and Italic describe the font weight and slant
	Bold   bool
	Italic bool

	// Page is the 0-based page index the span belongs to
	Page int

	// Font is the decoder's font name, if known
	Font string

	// Style is an optional line-level style tag supplied by the decoder
	// (for example the hOCR line class). It takes part in style signatures.
	Style string
}

// IsBlank returns true if the span has no visible text
func (s Span) IsBlank() bool {
	return strings.TrimSpace(s.Text) == ""
}

// BoundsOf returns the union of the spans' bounding boxes
func BoundsOf(spans []Span) BBox {
	var box BBox
	for _, s := range spans {
		box = box.Union(s.BBox)
	}
	return box
}
