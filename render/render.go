// Package render writes classified page sections in the supported output
// formats: the line-tagged plain text listing, HTML and JSON.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/sectioner/model"
)

// ErrUnknownFormat is returned by [Format] for an unsupported name
var ErrUnknownFormat = errors.New("render: unknown output format")

// Renderer writes page sections to w
type Renderer func(w io.Writer, sections []model.PageSection) error

// Names lists the accepted format names
var Names = []string{"text", "html", "json"}

// Format returns the renderer registered under name. Matching is case
// insensitive; "txt" is accepted for "text".
func Format(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "txt", "":
		return Text, nil
	case "html":
		return HTML, nil
	case "json":
		return JSON, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// visible returns the sections that have at least one block, in order
func visible(sections []model.PageSection) []model.PageSection {
	out := make([]model.PageSection, 0, len(sections))
	for _, s := range sections {
		if len(s.Blocks) > 0 {
			out = append(out, s)
		}
	}
	return out
}
