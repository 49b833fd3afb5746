package text

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// BoundaryDetector decides whether a sentence ends between two fragments
type BoundaryDetector interface {
	IsBoundary(prev, next string) bool
}

// ErrUnknownBoundary is returned by NewBoundary for an unsupported name
var ErrUnknownBoundary = errors.New("text: unknown sentence boundary detector")

// NewBoundary returns the detector registered under name: "punct" for
// PunctuationBoundary, "punkt" for SentenceBoundary
func NewBoundary(name string) (BoundaryDetector, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "punct", "punctuation":
		return PunctuationBoundary{}, nil
	case "punkt", "sentence", "sentences":
		return NewSentenceBoundary()
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownBoundary)
}

// closers may trail terminal punctuation: `He said "Stop."`
const closers = `"')]}’”»`

// EndsWithTerminal reports whether s ends with '.', '?' or '!', optionally
// followed by closing quotes or brackets
func EndsWithTerminal(s string) bool {
	s = strings.TrimRight(strings.TrimSpace(s), closers)
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r == '.' || r == '?' || r == '!'
}

// PunctuationBoundary treats any terminal punctuation as a sentence end
type PunctuationBoundary struct{}

// IsBoundary implements BoundaryDetector
func (PunctuationBoundary) IsBoundary(prev, _ string) bool {
	return EndsWithTerminal(prev)
}

// SentenceBoundary uses the Punkt sentence tokenizer trained on English to
// tell real sentence ends from abbreviations and initials.
// It is safe for concurrent use.
type SentenceBoundary struct {
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSentenceBoundary loads the English Punkt model
func NewSentenceBoundary() (*SentenceBoundary, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("loading sentence tokenizer: %w", err)
	}
	return &SentenceBoundary{tokenizer: tokenizer}, nil
}

// IsBoundary implements BoundaryDetector. Fragments that do not end with
// terminal punctuation are never a boundary; otherwise the tokenizer must
// place a sentence end exactly at the join.
func (b *SentenceBoundary) IsBoundary(prev, next string) bool {
	prev = strings.TrimSpace(prev)
	next = strings.TrimSpace(next)
	if !EndsWithTerminal(prev) {
		return false
	}
	if next == "" {
		return true
	}

	joined := prev + " " + next

	b.mu.Lock()
	tokens := b.tokenizer.Tokenize(joined)
	b.mu.Unlock()

	offset := 0
	for _, s := range tokens {
		t := strings.TrimSpace(s.Text)
		if t == "" {
			continue
		}
		idx := strings.Index(joined[offset:], t)
		if idx < 0 {
			continue
		}
		end := offset + idx + len(t)
		if end == len(prev) {
			return true
		}
		if end > len(prev) {
			return false
		}
		offset = end
	}
	return false
}
