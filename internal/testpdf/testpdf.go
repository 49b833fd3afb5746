// Package testpdf writes small, uncompressed PDF files for tests.
package testpdf

import (
	"bytes"
	"fmt"
	"strings"
)

// Line is one run of text drawn with a single font
type Line struct {
	Text string
	Bold bool
	Size float64
	X, Y float64
}

// Page is the text of one US Letter page
type Page []Line

// Build returns a PDF whose pages show the given lines in Helvetica and
// Helvetica-Bold with WinAnsi encoding
func Build(pages ...Page) []byte {
	var objects []string

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>",
			strings.Join(kids, " "), len(pages)),
		fontObject("Helvetica"),
		fontObject("Helvetica-Bold"),
	)

	for i, p := range pages {
		content := contentStream(p)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R /F2 4 0 R >> >> /Contents %d 0 R >>", 6+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// fontObject declares a standard font with uniform 500-unit widths for
// the printable ASCII range
func fontObject(base string) string {
	widths := make([]string, 95)
	for i := range widths {
		widths[i] = "500"
	}
	return fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>",
		base, strings.Join(widths, " "))
}

func contentStream(p Page) string {
	var sb strings.Builder
	for _, l := range p {
		font := "F1"
		if l.Bold {
			font = "F2"
		}
		fmt.Fprintf(&sb, "BT /%s %g Tf %g %g Td (%s) Tj ET\n", font, l.Size, l.X, l.Y, escape(l.Text))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// escape escapes PDF literal string delimiters
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
