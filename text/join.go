package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// JoinLines trims each piece and joins the pieces with a single space.
// When a piece ends in a letter followed by '-', the hyphen and the joining
// space are removed so that words split across lines are restored. Empty
// pieces are skipped.
func JoinLines(pieces []string) string {
	var buf []byte
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(buf) == 0 {
			buf = append(buf, p...)
			continue
		}
		if endsWithBreakHyphen(buf) {
			buf = buf[:len(buf)-1]
		} else {
			buf = append(buf, ' ')
		}
		buf = append(buf, p...)
	}
	return string(buf)
}

// WordGapRatio is the horizontal gap between two runs on a line, relative
// to the font size, that stands for a word space
const WordGapRatio = 0.15

// Fragment is a run of text with its horizontal extent on a line
type Fragment struct {
	Text   string
	X0, X1 float64
	Size   float64
}

// JoinFragments joins the runs of one visual line. A space is inserted
// where the text already carries one at the join, where the gap between
// the runs is wider than WordGapRatio of the font size, where the next run
// starts left of the previous one, or where a run has no extent. Hyphens
// are kept: runs split on a style change are not line breaks.
func JoinFragments(frags []Fragment) string {
	var buf []byte
	var prev Fragment
	prevSpace := false
	for _, f := range frags {
		t := strings.TrimSpace(f.Text)
		if t == "" {
			if len(buf) > 0 && f.Text != "" {
				prevSpace = true
			}
			continue
		}
		if len(buf) > 0 && (prevSpace || spacedBetween(prev, f)) {
			buf = append(buf, ' ')
		}
		buf = append(buf, t...)
		prev = f
		prevSpace = endsWithSpace(f.Text)
	}
	return string(buf)
}

func spacedBetween(prev, next Fragment) bool {
	if startsWithSpace(next.Text) {
		return true
	}
	if prev.X1 <= prev.X0 || next.X1 <= next.X0 {
		return true
	}
	size := prev.Size
	if next.Size > size {
		size = next.Size
	}
	gap := next.X0 - prev.X1
	return gap > WordGapRatio*size || gap < -size
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}

// endsWithBreakHyphen reports whether b ends in "<letter>-"
func endsWithBreakHyphen(b []byte) bool {
	if len(b) < 2 || b[len(b)-1] != '-' {
		return false
	}
	r, _ := utf8.DecodeLastRune(b[:len(b)-1])
	return unicode.IsLetter(r)
}
