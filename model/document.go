package model

// Page is one page of decoded spans
type Page struct {
	Index  int     // 0-based page index
	Width  float64 // Page width in points (0 if unknown)
	Height float64 // Page height in points (0 if unknown)
	Spans  []Span  // Spans in decoder order
}

// Document is the ordered set of pages produced by a span source
type Document struct {
	Pages []Page
}

// SpanCount returns the number of spans across all pages
func (d *Document) SpanCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		n += len(p.Spans)
	}
	return n
}

// AllSpans returns every span in page order, then decoder order
func (d *Document) AllSpans() []Span {
	if d == nil {
		return nil
	}
	spans := make([]Span, 0, d.SpanCount())
	for _, p := range d.Pages {
		spans = append(spans, p.Spans...)
	}
	return spans
}

// Truncate returns a copy of the document without pages whose index is at
// or beyond maxPages. A non-positive maxPages keeps every page.
func (d *Document) Truncate(maxPages int) *Document {
	if d == nil {
		return &Document{}
	}
	out := &Document{Pages: make([]Page, 0, len(d.Pages))}
	for _, p := range d.Pages {
		if maxPages > 0 && p.Index >= maxPages {
			continue
		}
		out.Pages = append(out.Pages, p)
	}
	return out
}
