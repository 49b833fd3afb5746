package render

import (
	"bufio"
	"io"
	"strconv"

	"github.com/tsawler/sectioner/model"
)

// Text writes the plain text listing:
//
//	Page 1:
//	1 [H]: INTRODUCTION
//	2-4 [P]: Body text ...
//
// Each page ends with a blank line. Pages without blocks are skipped.
func Text(w io.Writer, sections []model.PageSection) error {
	bw := bufio.NewWriter(w)
	for _, section := range visible(sections) {
		bw.WriteString("Page ")
		bw.WriteString(strconv.Itoa(section.Page + 1))
		bw.WriteString(":\n")
		for _, block := range section.Blocks {
			bw.WriteString(block.LineRange())
			bw.WriteString(" [")
			bw.WriteString(block.Kind.Initial())
			bw.WriteString("]: ")
			bw.WriteString(block.Text)
			bw.WriteByte('\n')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
