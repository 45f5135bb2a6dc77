// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"strings"

	"pii-scrub/internal/detector"
)

// continuationMarker prefixes sub-word fragments that continue the
// preceding token (WordPiece convention).
const continuationMarker = "##"

// ReassembleWords merges sub-word fragments back into whole words and
// resolves each word to absolute offsets in the original text.
//
// Tokens are walked in the order the classifier returned them: a
// continuation fragment is appended to the current word, extending its end;
// any other fragment starts a new word. A word's score is the maximum of its
// fragment scores.
//
// When the classifier supplied no offsets for a word, the word is located by
// searching the chunk text starting at the end of the previously resolved
// word, never before it, so an earlier duplicate substring cannot be
// matched. A word that cannot be located is dropped: without a trustworthy
// offset it cannot be safely masked. Resolved chunk-local offsets are
// converted to absolute ones by adding the chunk's offset.
func ReassembleWords(chunk detector.Chunk, tokens []detector.RawToken) []detector.Word {
	var words []detector.Word
	var current *pendingWord
	searchFrom := 0

	flush := func() {
		if current == nil {
			return
		}
		if word, ok := current.resolve(chunk, &searchFrom); ok {
			words = append(words, word)
		}
		current = nil
	}

	for _, token := range tokens {
		fragment := token.Fragment
		if fragment == "" {
			continue
		}

		if strings.HasPrefix(fragment, continuationMarker) && current != nil {
			current.text += strings.TrimPrefix(fragment, continuationMarker)
			if token.End != nil {
				current.end = token.End
			}
			if token.Score > current.score {
				current.score = token.Score
			}
			continue
		}

		flush()

		category := CategoryForLabel(token.Label)
		if category == "" {
			continue
		}
		current = &pendingWord{
			text:     strings.TrimPrefix(fragment, continuationMarker),
			category: category,
			score:    token.Score,
			start:    token.Start,
			end:      token.End,
		}
	}
	flush()

	return words
}

// pendingWord accumulates fragments until the next word boundary.
type pendingWord struct {
	text     string
	category string
	score    float64
	start    *int
	end      *int
}

// resolve turns the accumulated fragments into a Word with absolute offsets.
// searchFrom is advanced past every resolved word so that offset recovery by
// text search is anchored after the previous match.
func (w *pendingWord) resolve(chunk detector.Chunk, searchFrom *int) (detector.Word, bool) {
	start, end := -1, -1
	if w.start != nil && w.end != nil {
		start, end = *w.start, *w.end
		if start < 0 || end > len(chunk.Text) || start >= end {
			start, end = -1, -1
		}
	}

	if start < 0 {
		if *searchFrom >= len(chunk.Text) {
			return detector.Word{}, false
		}
		idx := strings.Index(chunk.Text[*searchFrom:], w.text)
		if idx < 0 {
			return detector.Word{}, false
		}
		start = *searchFrom + idx
		end = start + len(w.text)
	}

	if end > *searchFrom {
		*searchFrom = end
	}

	return detector.Word{
		Text:     chunk.Text[start:end],
		Category: w.category,
		Score:    w.score,
		Start:    chunk.Offset + start,
		End:      chunk.Offset + end,
	}, true
}
