// Package text provides the string-level helpers of the sectioning pipeline.
//
// # Normalization
//
// Decoders report text in many compatibility forms (ligatures, full-width
// digits, non-breaking spaces). [Normalize] folds them with Unicode NFKC and
// collapses whitespace so that style signatures and text lengths are stable.
//
// # Predicates
//
//   - [IsAllCaps] - at least one cased letter and no lowercase letters
//   - [IsNumeric] - digits only, used to drop page numbers
//   - [EndsWithTerminal] - ends a sentence with '.', '?' or '!'
//
// # Joining
//
// [JoinLines] merges the lines of a block: each piece is trimmed, pieces are
// joined with a single space, and a word broken by a line-end hyphen is
// rejoined. Hyphens inside a piece are never touched:
//
//	text.JoinLines([]string{"inter-", "national"}) // "international"
//	text.JoinLines([]string{"well-known facts"})    // "well-known facts"
//
// # Sentence Boundaries
//
// A [BoundaryDetector] decides whether two adjacent fragments are separated
// by a sentence boundary. [PunctuationBoundary] looks at the trailing
// punctuation only; [SentenceBoundary] runs the Punkt tokenizer so that
// abbreviations such as "e.g." do not end a sentence.
//
// # Direction
//
// [DetectDirection] reports whether a string is dominantly left-to-right or
// right-to-left, so renderers can mark RTL blocks.
package text
