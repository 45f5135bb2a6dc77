// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package chunker splits text that exceeds the classifier's maximum input
// length into overlapping windows, recording each window's character offset
// into the original text.
package chunker

// Chunk invariants: offsets are strictly increasing, every character is
// covered by at least one window, and consecutive windows overlap by a fixed
// margin so any entity shorter than the overlap is fully contained in at
// least one window.

import (
	"pii-scrub/internal/detector"
)

const (
	// DefaultMaxChars matches the bounded input length of typical
	// transformer NER models after tokenization headroom.
	DefaultMaxChars = 512
	// DefaultOverlap is the margin shared by consecutive windows.
	DefaultOverlap = 50
)

// Split slides a window of maxChars over the text, stepping by
// maxChars-overlap, clipping the final window to the text length.
// Text not exceeding maxChars yields a single chunk at offset 0.
// An overlap >= maxChars is clamped to maxChars-1 so the step stays positive.
func Split(text string, maxChars, overlap int) []detector.Chunk {
	if text == "" {
		return nil
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChars {
		overlap = maxChars - 1
	}

	if len(text) <= maxChars {
		return []detector.Chunk{{Text: text, Offset: 0}}
	}

	step := maxChars - overlap
	chunks := make([]detector.Chunk, 0, len(text)/step+1)
	for start := 0; start < len(text); start += step {
		end := start + maxChars
		if end >= len(text) {
			chunks = append(chunks, detector.Chunk{Text: text[start:], Offset: start})
			break
		}
		chunks = append(chunks, detector.Chunk{Text: text[start:end], Offset: start})
	}
	return chunks
}
