// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package detector

import "fmt"

// Source identifies which detection path produced a span.
type Source string

const (
	// SourcePattern marks spans produced by the deterministic rule table.
	SourcePattern Source = "pattern"
	// SourceModel marks spans produced by the contextual classifier.
	SourceModel Source = "model"
)

// Canonical category names shared by the pattern rules, the classifier
// label mapping, the plausibility filter, and the placeholder tag table.
const (
	CategoryEmail        = "email"
	CategoryPhone        = "phone"
	CategoryCreditCard   = "creditCard"
	CategoryNationalID   = "nationalId"
	CategoryIPAddress    = "ipAddress"
	CategoryIBAN         = "iban"
	CategoryPerson       = "person"
	CategoryCity         = "city"
	CategoryAddress      = "address"
	CategoryDate         = "date"
	CategoryOrganization = "organization"
)

// Span represents a detected region of sensitive text.
//
// Invariant: 0 <= Start <= End <= len(text) and Value == text[Start:End]
// at the time of detection. The masking engine re-verifies the slice before
// substituting, so a span with drifted coordinates is skipped, never applied.
type Span struct {
	Category   string  `json:"category"`
	Value      string  `json:"value"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Source     Source  `json:"source"`
	Confidence float64 `json:"confidence"` // 0..1, pattern spans are always 1.0
}

// String returns a debug representation without the sensitive value.
func (s Span) String() string {
	return fmt.Sprintf("%s[%d:%d](%s, %.2f)", s.Category, s.Start, s.End, s.Source, s.Confidence)
}

// Overlaps reports whether two spans share at least one character.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Chunk is a bounded-length window of the original text submitted to the
// classifier. Offset is the chunk's character offset into the original text;
// consecutive chunks overlap so entities crossing a window boundary are fully
// contained in at least one chunk.
type Chunk struct {
	Text   string
	Offset int
}

// RawToken is one sub-word prediction as returned by the classifier.
// Start/End are chunk-local character offsets and may be absent; Fragment may
// carry a sub-word continuation marker ("##" prefix).
type RawToken struct {
	Fragment string  `json:"fragment"`
	Label    string  `json:"label"`
	Score    float64 `json:"score"`
	Start    *int    `json:"start,omitempty"`
	End      *int    `json:"end,omitempty"`
}

// Word is a reassembled token: continuation fragments merged into one text,
// offsets resolved to absolute positions, score = max of constituent scores.
type Word struct {
	Text     string
	Category string
	Score    float64
	Start    int
	End      int
}

// MergedEntity is a fusion of consecutive same-category words.
// Score is the minimum of the constituent scores: a weak link anywhere
// lowers trust in the whole phrase.
type MergedEntity struct {
	Text     string
	Category string
	Score    float64
	Start    int
	End      int
}

// Span converts a merged entity into a model-sourced span.
func (e MergedEntity) Span() Span {
	return Span{
		Category:   e.Category,
		Value:      e.Text,
		Start:      e.Start,
		End:        e.End,
		Source:     SourceModel,
		Confidence: e.Score,
	}
}
