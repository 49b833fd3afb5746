package render

import (
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

// HTML writes one <section> per page. Headings become <h2> and paragraphs
// <p>; every block carries its line range in data-lines, and right-to-left
// blocks are marked dir="rtl".
func HTML(w io.Writer, sections []model.PageSection) error {
	for _, section := range visible(sections) {
		if err := html.Render(w, sectionNode(section)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func sectionNode(section model.PageSection) *html.Node {
	node := element(atom.Section, html.Attribute{
		Key: "data-page",
		Val: strconv.Itoa(section.Page + 1),
	})
	for _, block := range section.Blocks {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
		node.AppendChild(blockNode(block))
	}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
	return node
}

func blockNode(block model.Block) *html.Node {
	tag := atom.P
	if block.Kind == model.KindHeading {
		tag = atom.H2
	}
	attrs := []html.Attribute{{Key: "data-lines", Val: block.LineRange()}}
	if text.DetectDirection(block.Text) == text.RTL {
		attrs = append(attrs, html.Attribute{Key: "dir", Val: "rtl"})
	}
	node := element(tag, attrs...)
	node.AppendChild(&html.Node{Type: html.TextNode, Data: block.Text})
	return node
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}
