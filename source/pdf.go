package source

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/sectioner/font"
	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

const (
	// spanGapRatio is the glyph gap that ends a span
	spanGapRatio = 2.0

	// baselineRatio is the baseline shift that ends a span
	baselineRatio = 0.5
)

// PDFSource decodes PDF files
type PDFSource struct {
	path   string
	config Config
}

// NewPDFSource creates a source for the PDF file at path
func NewPDFSource(path string, opts ...Option) *PDFSource {
	return &PDFSource{path: path, config: newConfig(opts)}
}

// Pages implements SpanSource
func (s *PDFSource) Pages(ctx context.Context) (*model.Document, error) {
	f, r, err := pdf.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", s.path, err)
	}
	defer f.Close()

	return readPDF(ctx, r, s.config)
}

// ReadPDF decodes a PDF held in memory or any other io.ReaderAt
func ReadPDF(ctx context.Context, r io.ReaderAt, size int64, opts ...Option) (*model.Document, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}
	return readPDF(ctx, reader, newConfig(opts))
}

func readPDF(ctx context.Context, r *pdf.Reader, config Config) (*model.Document, error) {
	doc := &model.Document{}
	n := r.NumPage()
	for i := 1; i <= n; i++ {
		index := i - 1
		if !inRange(index, config.MaxPages) {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		spans, err := pageSpans(p, index)
		if err != nil {
			config.Logger.WithFields(logrus.Fields{
				"page":  index,
				"error": err,
			}).Warn("skipping undecodable page")
			spans = nil
		}

		width, height := mediaBox(p)
		doc.Pages = append(doc.Pages, model.Page{
			Index:  index,
			Width:  width,
			Height: height,
			Spans:  spans,
		})
	}
	return doc, nil
}

// pageSpans decodes one page. The decoder panics on some malformed
// content streams; those panics are returned as errors.
func pageSpans(p pdf.Page, index int) (spans []model.Span, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoding page %d: %v", index, r)
		}
	}()

	b := &spanBuilder{page: index}
	for _, t := range p.Content().Text {
		b.add(t)
	}
	return b.finish(), nil
}

// mediaBox returns the page size, searching inherited attributes
func mediaBox(p pdf.Page) (width, height float64) {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.IsNull() || box.Len() < 4 {
			continue
		}
		width = box.Index(2).Float64() - box.Index(0).Float64()
		height = box.Index(3).Float64() - box.Index(1).Float64()
		return math.Abs(width), math.Abs(height)
	}
	return 0, 0
}

// spanBuilder assembles glyph runs into spans. A span ends when the font
// or size changes, the baseline moves, or the next glyph is far away.
type spanBuilder struct {
	page  int
	spans []model.Span

	open     bool
	buf      strings.Builder
	font     string
	size     float64
	baseline float64
	x0, x1   float64
}

func (b *spanBuilder) add(t pdf.Text) {
	if t.S == "" || t.S == "\n" || t.S == "\r" {
		return
	}

	if b.open && b.continues(t) {
		gap := t.X - b.x1
		if gap > text.WordGapRatio*b.size && !strings.HasSuffix(b.buf.String(), " ") && t.S != " " {
			b.buf.WriteByte(' ')
		}
		b.buf.WriteString(t.S)
		b.x1 = math.Max(b.x1, t.X+t.W)
		return
	}

	b.flush()
	b.open = true
	b.font = t.Font
	b.size = t.FontSize
	b.baseline = t.Y
	b.x0 = t.X
	b.x1 = t.X + t.W
	b.buf.WriteString(t.S)
}

func (b *spanBuilder) continues(t pdf.Text) bool {
	if t.Font != b.font || t.FontSize != b.size {
		return false
	}
	if math.Abs(t.Y-b.baseline) > baselineRatio*b.size {
		return false
	}
	gap := t.X - b.x1
	return gap <= spanGapRatio*b.size && gap >= -b.size
}

func (b *spanBuilder) flush() {
	if !b.open {
		return
	}
	s := text.Normalize(b.buf.String())
	if s != "" {
		name := font.Parse(b.font)
		b.spans = append(b.spans, model.Span{
			Text:   s,
			BBox:   model.NewBBox(b.x0, b.baseline, b.x1, b.baseline+b.size),
			Size:   b.size,
			Bold:   name.Bold,
			Italic: name.Italic,
			Page:   b.page,
			Font:   name.Base,
		})
	}
	b.buf.Reset()
	b.open = false
}

func (b *spanBuilder) finish() []model.Span {
	b.flush()
	return b.spans
}
