package model

import (
	"strconv"
	"strings"
)

// Kind is the classification of a block of text
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
)

// String returns the classification name
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	default:
		return "paragraph"
	}
}

// Initial returns the uppercase first letter of the classification name,
// as written in the text output ("H" or "P")
func (k Kind) Initial() string {
	return strings.ToUpper(k.String()[:1])
}

// ParseKind parses a classification name
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heading", "header", "h":
		return KindHeading, true
	case "paragraph", "p":
		return KindParagraph, true
	}
	return KindParagraph, false
}

// Block is a maximal run of consecutive same-kind line groups on a page
type Block struct {
	Kind Kind

	// StartLine and EndLine are the 1-based, inclusive page-local indexes
	// of the first and last line group in the block
	StartLine int
	EndLine   int

	// Text is the merged text of the block
	Text string

	// Spans are the spans the block subsumes, in line order
	Spans []Span
}

// LineRange returns "start-end", or just "start" for a single-line block
func (b Block) LineRange() string {
	if b.StartLine == b.EndLine {
		return strconv.Itoa(b.StartLine)
	}
	return strconv.Itoa(b.StartLine) + "-" + strconv.Itoa(b.EndLine)
}

// LineCount returns the number of line groups in the block
func (b Block) LineCount() int {
	return b.EndLine - b.StartLine + 1
}

// PageSection holds the classified blocks of one page
type PageSection struct {
	Page   int // 0-based page index
	Blocks []Block
}

// Headings returns the heading blocks of the section
func (s PageSection) Headings() []Block {
	return s.blocksOfKind(KindHeading)
}

// Paragraphs returns the paragraph blocks of the section
func (s PageSection) Paragraphs() []Block {
	return s.blocksOfKind(KindParagraph)
}

func (s PageSection) blocksOfKind(k Kind) []Block {
	var result []Block
	for _, b := range s.Blocks {
		if b.Kind == k {
			result = append(result, b)
		}
	}
	return result
}
