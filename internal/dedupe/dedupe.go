// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package dedupe reconciles pattern-sourced and model-sourced spans into a
// single ordered, non-overlapping set.
package dedupe

import (
	"sort"

	"pii-scrub/internal/detector"
)

// Reconcile sorts the combined span set by start offset and greedily keeps
// every span that does not character-overlap an already-kept span.
//
// Tie-break rule: when two spans start at the same offset, a pattern-sourced
// span structurally wins over a model-sourced one; among spans of the same
// source, input order decides. Pattern matches are exact structural hits, so
// their boundaries are more trustworthy than classifier boundaries.
func Reconcile(spans []detector.Span) []detector.Span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]detector.Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Source == detector.SourcePattern &&
			sorted[j].Source != detector.SourcePattern
	})

	kept := make([]detector.Span, 0, len(sorted))
	for _, span := range sorted {
		if overlapsAny(kept, span) {
			continue
		}
		kept = append(kept, span)
	}
	return kept
}

// overlapsAny only needs to look at the last kept span: the kept set is
// start-ordered and non-overlapping, so any collision is with the most
// recently kept span.
func overlapsAny(kept []detector.Span, span detector.Span) bool {
	if len(kept) == 0 {
		return false
	}
	return kept[len(kept)-1].Overlaps(span)
}
