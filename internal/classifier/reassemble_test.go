// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-scrub/internal/detector"
)

func intPtr(v int) *int { return &v }

func token(fragment, label string, score float64, start, end int) detector.RawToken {
	return detector.RawToken{
		Fragment: fragment,
		Label:    label,
		Score:    score,
		Start:    intPtr(start),
		End:      intPtr(end),
	}
}

func TestReassembleWords_MergesContinuationFragments(t *testing.T) {
	chunk := detector.Chunk{Text: "Call Johansson today", Offset: 0}
	tokens := []detector.RawToken{
		token("Johans", "B-PER", 0.91, 5, 11),
		token("##son", "I-PER", 0.97, 11, 14),
	}

	words := ReassembleWords(chunk, tokens)

	require.Len(t, words, 1)
	assert.Equal(t, "Johansson", words[0].Text)
	assert.Equal(t, detector.CategoryPerson, words[0].Category)
	assert.Equal(t, 5, words[0].Start)
	assert.Equal(t, 14, words[0].End)
	// Score is the max of the constituent fragment scores.
	assert.Equal(t, 0.97, words[0].Score)
}

func TestReassembleWords_RecoversMissingOffsets(t *testing.T) {
	chunk := detector.Chunk{Text: "ask Maria about Maria", Offset: 0}
	tokens := []detector.RawToken{
		{Fragment: "Maria", Label: "B-PER", Score: 0.9},
		{Fragment: "Maria", Label: "B-PER", Score: 0.8},
	}

	words := ReassembleWords(chunk, tokens)

	// The second occurrence must be found after the first, not at the
	// earlier duplicate substring.
	require.Len(t, words, 2)
	assert.Equal(t, 4, words[0].Start)
	assert.Equal(t, 9, words[0].End)
	assert.Equal(t, 16, words[1].Start)
	assert.Equal(t, 21, words[1].End)
}

func TestReassembleWords_DropsUnresolvableWord(t *testing.T) {
	chunk := detector.Chunk{Text: "no such token here", Offset: 0}
	tokens := []detector.RawToken{
		{Fragment: "zzz", Label: "B-PER", Score: 0.9},
	}

	words := ReassembleWords(chunk, tokens)
	assert.Empty(t, words, "a word that cannot be located cannot be safely masked")
}

func TestReassembleWords_ConvertsToAbsoluteOffsets(t *testing.T) {
	chunk := detector.Chunk{Text: "meet Alice now", Offset: 200}
	tokens := []detector.RawToken{
		token("Alice", "B-PER", 0.95, 5, 10),
	}

	words := ReassembleWords(chunk, tokens)

	require.Len(t, words, 1)
	assert.Equal(t, 205, words[0].Start)
	assert.Equal(t, 210, words[0].End)
}

func TestReassembleWords_SkipsOutsideLabels(t *testing.T) {
	chunk := detector.Chunk{Text: "Alice went home", Offset: 0}
	tokens := []detector.RawToken{
		token("Alice", "B-PER", 0.95, 0, 5),
		token("went", "O", 0.99, 6, 10),
		token("home", "O", 0.99, 11, 15),
	}

	words := ReassembleWords(chunk, tokens)

	require.Len(t, words, 1)
	assert.Equal(t, "Alice", words[0].Text)
}

func TestReassembleWords_InvalidSuppliedOffsetsFallBackToSearch(t *testing.T) {
	chunk := detector.Chunk{Text: "ping Bob", Offset: 0}
	tokens := []detector.RawToken{
		// End past the chunk: offsets are untrustworthy, recover by search.
		token("Bob", "B-PER", 0.9, 90, 93),
	}

	words := ReassembleWords(chunk, tokens)

	require.Len(t, words, 1)
	assert.Equal(t, 5, words[0].Start)
	assert.Equal(t, 8, words[0].End)
}

func TestCategoryForLabel(t *testing.T) {
	cases := []struct {
		label    string
		category string
	}{
		{"B-PER", detector.CategoryPerson},
		{"I-PER", detector.CategoryPerson},
		{"PERSON", detector.CategoryPerson},
		{"B-EMAIL", detector.CategoryEmail},
		{"phone", detector.CategoryPhone},
		{"B-LOC", detector.CategoryCity},
		{"O", ""},
		{"", ""},
		{"B-SOMETHING_ELSE", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.category, CategoryForLabel(tc.label), "label %q", tc.label)
	}
}
