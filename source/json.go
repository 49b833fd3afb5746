package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

// JSONSource reads span dumps:
//
//	{"pages": [{"index": 0, "width": 612, "height": 792, "spans": [
//	  {"text": "Intro", "bbox": [72, 700, 140, 724], "size": 24, "bold": true}
//	]}]}
//
// and MuPDF structured text ("mutool draw -F stext.json"), whose y-down
// coordinates are flipped into page space when the page height is given,
// and negated otherwise, so that the top of the page sorts first.
type JSONSource struct {
	open   func() (io.ReadCloser, error)
	config Config
}

// NewJSONSource creates a source reading JSON from data
func NewJSONSource(data []byte, opts ...Option) *JSONSource {
	return &JSONSource{
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
		config: newConfig(opts),
	}
}

// NewJSONFileSource creates a source for the JSON file at path
func NewJSONFileSource(path string, opts ...Option) *JSONSource {
	return &JSONSource{
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
		config: newConfig(opts),
	}
}

type jsonDocument struct {
	Pages []jsonPage `json:"pages"`
}

type jsonPage struct {
	Index  *int         `json:"index"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Spans  []jsonSpan   `json:"spans"`
	Blocks []stextBlock `json:"blocks"`
}

type jsonSpan struct {
	Text   string     `json:"text"`
	BBox   [4]float64 `json:"bbox"`
	Size   float64    `json:"size"`
	Bold   bool       `json:"bold"`
	Italic bool       `json:"italic"`
	Font   string     `json:"font"`
	Style  string     `json:"style"`
}

type stextBlock struct {
	Type  string      `json:"type"`
	Lines []stextLine `json:"lines"`
}

type stextLine struct {
	BBox stextBox  `json:"bbox"`
	Font stextFont `json:"font"`
	Text string    `json:"text"`
}

type stextBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type stextFont struct {
	Name   string  `json:"name"`
	Family string  `json:"family"`
	Weight string  `json:"weight"`
	Style  string  `json:"style"`
	Size   float64 `json:"size"`
}

// Pages implements SpanSource
func (s *JSONSource) Pages(ctx context.Context) (*model.Document, error) {
	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("opening JSON: %w", err)
	}
	defer rc.Close()

	var raw jsonDocument
	if err := json.NewDecoder(rc).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	doc := &model.Document{}
	for i, jp := range raw.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		index := i
		if jp.Index != nil {
			index = *jp.Index
		}
		if !inRange(index, s.config.MaxPages) {
			continue
		}

		page := model.Page{Index: index, Width: jp.Width, Height: jp.Height}
		for _, js := range jp.Spans {
			if span, ok := js.span(index); ok {
				page.Spans = append(page.Spans, span)
			}
		}
		for _, b := range jp.Blocks {
			if b.Type != "" && b.Type != "text" {
				continue
			}
			for _, l := range b.Lines {
				if span, ok := l.span(index, jp.Height); ok {
					page.Spans = append(page.Spans, span)
				}
			}
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func (js jsonSpan) span(page int) (model.Span, bool) {
	t := text.Normalize(js.Text)
	if t == "" {
		return model.Span{}, false
	}
	size := js.Size
	box := model.NewBBox(js.BBox[0], js.BBox[1], js.BBox[2], js.BBox[3])
	if size <= 0 {
		size = box.Height()
	}
	return model.Span{
		Text:   t,
		BBox:   box,
		Size:   size,
		Bold:   js.Bold,
		Italic: js.Italic,
		Page:   page,
		Font:   js.Font,
		Style:  js.Style,
	}, true
}

func (l stextLine) span(page int, height float64) (model.Span, bool) {
	t := text.Normalize(l.Text)
	if t == "" {
		return model.Span{}, false
	}
	style := strings.ToLower(l.Font.Style)
	top := height - l.BBox.Y
	return model.Span{
		Text:   t,
		BBox:   model.NewBBox(l.BBox.X, top-l.BBox.H, l.BBox.X+l.BBox.W, top),
		Size:   l.Font.Size,
		Bold:   strings.EqualFold(l.Font.Weight, "bold"),
		Italic: style == "italic" || style == "oblique",
		Page:   page,
		Font:   l.Font.Name,
		Style:  l.Font.Family,
	}, true
}
