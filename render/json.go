package render

import (
	"encoding/json"
	"io"

	"github.com/tsawler/sectioner/model"
)

type jsonBlock struct {
	Kind      string `json:"kind"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Text      string `json:"text"`
}

type jsonSection struct {
	Page   int         `json:"page"`
	Blocks []jsonBlock `json:"blocks"`
}

// JSON writes the sections as an indented array of
// {"page", "blocks": [{"kind", "start_line", "end_line", "text"}]}.
// Pages are 1-based, matching the text listing.
func JSON(w io.Writer, sections []model.PageSection) error {
	out := make([]jsonSection, 0, len(sections))
	for _, section := range visible(sections) {
		js := jsonSection{
			Page:   section.Page + 1,
			Blocks: make([]jsonBlock, 0, len(section.Blocks)),
		}
		for _, b := range section.Blocks {
			js.Blocks = append(js.Blocks, jsonBlock{
				Kind:      b.Kind.String(),
				StartLine: b.StartLine,
				EndLine:   b.EndLine,
				Text:      b.Text,
			})
		}
		out = append(out, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
