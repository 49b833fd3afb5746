package layout

import (
	"fmt"
	"strings"

	"github.com/tsawler/sectioner/model"
	"github.com/tsawler/sectioner/text"
)

// StyleSignature is the formatting fingerprint of a span. It is comparable
// and used directly as a map key.
type StyleSignature struct {
	Bold    bool
	Italic  bool
	AllCaps bool
	Size    float64
	Style   string
}

// SignatureOf returns the style signature of a span
func SignatureOf(s model.Span) StyleSignature {
	return StyleSignature{
		Bold:    s.Bold,
		Italic:  s.Italic,
		AllCaps: text.IsAllCaps(s.Text),
		Size:    s.Size,
		Style:   s.Style,
	}
}

// String returns a compact description such as "11pt bold caps"
func (s StyleSignature) String() string {
	parts := []string{fmt.Sprintf("%gpt", s.Size)}
	if s.Bold {
		parts = append(parts, "bold")
	}
	if s.Italic {
		parts = append(parts, "italic")
	}
	if s.AllCaps {
		parts = append(parts, "caps")
	}
	if s.Style != "" {
		parts = append(parts, s.Style)
	}
	return strings.Join(parts, " ")
}

// DominantSignature returns the most frequent signature among spans and the
// number of distinct signatures. Ties go to the signature seen first.
// ok is false when spans is empty.
func DominantSignature(spans []model.Span) (sig StyleSignature, distinct int, ok bool) {
	if len(spans) == 0 {
		return StyleSignature{}, 0, false
	}

	counts := make(map[StyleSignature]int, len(spans))
	var order []StyleSignature
	for _, s := range spans {
		k := SignatureOf(s)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best, len(order), true
}
