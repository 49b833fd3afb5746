package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

// lineClasses are the hOCR classes of text lines. The class is kept as
// the span style, so captions and headers form their own signatures.
var lineClasses = map[string]bool{
	"ocr_line":      true,
	"ocr_header":    true,
	"ocr_caption":   true,
	"ocr_textfloat": true,
}

// HOCRSource reads hOCR documents
type HOCRSource struct {
	open   func() (io.ReadCloser, error)
	config Config
}

// NewHOCRSource creates a source reading hOCR from data
func NewHOCRSource(data []byte, opts ...Option) *HOCRSource {
	return &HOCRSource{
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
		config: newConfig(opts),
	}
}

// NewHOCRFileSource creates a source for the hOCR file at path
func NewHOCRFileSource(path string, opts ...Option) *HOCRSource {
	return &HOCRSource{
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
		config: newConfig(opts),
	}
}

// Pages implements SpanSource
func (s *HOCRSource) Pages(ctx context.Context) (*model.Document, error) {
	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("opening hOCR: %w", err)
	}
	defer rc.Close()

	return parseHOCR(ctx, rc, s.config)
}

// hocrContext tracks the enclosing page and line during the walk
type hocrContext struct {
	doc  *model.Document
	page *model.Page

	// top is the page bbox's top edge in image coordinates
	top float64

	lineClass  string
	lineBottom float64
	lineSize   float64
	inLine     bool

	config Config
}

func parseHOCR(ctx context.Context, r io.Reader, config Config) (*model.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	hc := &hocrContext{doc: &model.Document{}, config: config}
	if err := hc.walk(ctx, root); err != nil {
		return nil, err
	}
	hc.closePage()
	return hc.doc, nil
}

func (hc *hocrContext) walk(ctx context.Context, n *html.Node) error {
	if n.Type == html.ElementNode {
		classes := strings.Fields(getAttr(n, "class"))
		switch {
		case hasClass(classes, "ocr_page"):
			if err := ctx.Err(); err != nil {
				return err
			}
			hc.openPage(n)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if err := hc.walk(ctx, c); err != nil {
					return err
				}
			}
			hc.closePage()
			return nil

		case hasLineClass(classes) && hc.page != nil:
			saved := *hc
			hc.enterLine(n, classes)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if err := hc.walk(ctx, c); err != nil {
					return err
				}
			}
			hc.lineClass, hc.lineBottom, hc.lineSize, hc.inLine = saved.lineClass, saved.lineBottom, saved.lineSize, saved.inLine
			return nil

		case hasClass(classes, "ocrx_word") && hc.page != nil:
			hc.addWord(n)
			return nil
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := hc.walk(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (hc *hocrContext) openPage(n *html.Node) {
	hc.closePage()

	props := parseTitle(getAttr(n, "title"))
	index := len(hc.doc.Pages)
	if v, ok := props["ppageno"]; ok && len(v) > 0 {
		if i, err := strconv.Atoi(v[0]); err == nil {
			index = i
		}
	}

	page := &model.Page{Index: index}
	if box, ok := propBox(props); ok {
		page.Width = box[2] - box[0]
		page.Height = box[3] - box[1]
		hc.top = box[1]
	}
	hc.page = page
}

func (hc *hocrContext) closePage() {
	if hc.page == nil {
		return
	}
	if inRange(hc.page.Index, hc.config.MaxPages) {
		hc.doc.Pages = append(hc.doc.Pages, *hc.page)
	}
	hc.page = nil
}

func (hc *hocrContext) enterLine(n *html.Node, classes []string) {
	props := parseTitle(getAttr(n, "title"))
	hc.inLine = true
	hc.lineClass = ""
	for _, c := range classes {
		if lineClasses[c] {
			hc.lineClass = c
			break
		}
	}
	hc.lineBottom = 0
	if box, ok := propBox(props); ok {
		hc.lineBottom = box[3]
	}
	hc.lineSize = propFloat(props, "x_size")
}

// addWord emits one span per word. Words of a line share the line's
// bottom edge so that descenders do not split the line.
func (hc *hocrContext) addWord(n *html.Node) {
	t := text.Normalize(getTextContent(n))
	if t == "" {
		return
	}

	props := parseTitle(getAttr(n, "title"))
	box, ok := propBox(props)
	if !ok {
		return
	}

	bottom := box[3]
	if hc.inLine && hc.lineBottom > 0 {
		bottom = hc.lineBottom
	}

	size := propFloat(props, "x_fsize")
	if size <= 0 {
		size = hc.lineSize
	}
	if size <= 0 {
		size = box[3] - box[1]
	}

	page := hc.page
	flip := func(y float64) float64 {
		if page.Height > 0 {
			return page.Height - (y - hc.top)
		}
		return -y
	}

	page.Spans = append(page.Spans, model.Span{
		Text:   t,
		BBox:   model.NewBBox(box[0], flip(bottom), box[2], flip(box[1])),
		Size:   size,
		Bold:   containsElement(n, "strong", "b"),
		Italic: containsElement(n, "em", "i"),
		Page:   page.Index,
		Style:  hc.lineClass,
	})
}

// parseTitle splits an hOCR title attribute ("bbox 0 0 10 10; x_size 12")
// into properties
func parseTitle(title string) map[string][]string {
	props := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		props[fields[0]] = fields[1:]
	}
	return props
}

func propBox(props map[string][]string) ([4]float64, bool) {
	var box [4]float64
	v, ok := props["bbox"]
	if !ok || len(v) < 4 {
		return box, false
	}
	for i := 0; i < 4; i++ {
		f, err := strconv.ParseFloat(v[i], 64)
		if err != nil {
			return box, false
		}
		box[i] = f
	}
	return box, true
}

func propFloat(props map[string][]string, key string) float64 {
	v, ok := props[key]
	if !ok || len(v) == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(v[0], 64)
	if err != nil {
		return 0
	}
	return f
}

func hasClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}

func hasLineClass(classes []string) bool {
	for _, c := range classes {
		if lineClasses[c] {
			return true
		}
	}
	return false
}

// containsElement reports whether n has a descendant with one of the tags
func containsElement(n *html.Node, tags ...string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			for _, tag := range tags {
				if c.Data == tag {
					return true
				}
			}
			if containsElement(c, tags...) {
				return true
			}
		}
	}
	return false
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getTextContent returns the concatenated text of n's descendants
func getTextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
