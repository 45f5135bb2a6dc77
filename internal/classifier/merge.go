// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"sort"

	"pii-scrub/internal/detector"
)

// MergeGap is the maximum character gap bridged when fusing consecutive
// same-category words into one entity. It covers separating whitespace or
// punctuation ("Dr. Jane Doe"), not arbitrary distance.
const MergeGap = 2

// MergeEntities fuses consecutive same-category words into multi-word
// entities. Words are first sorted by start offset, so chunk results may
// arrive in any order.
//
// A word joins the current entity when its category matches and it starts at
// most MergeGap characters after the entity's end. The gap may be negative:
// overlapping windows re-detect words near a chunk boundary, and those
// duplicates must fuse into the entity instead of opening a competitor at the
// same offsets. On fusion the entity text is re-sliced from the original text
// between the entity's start and the furthest end seen, so intervening
// punctuation is preserved verbatim, and the entity score becomes the minimum
// of the two: a weak link anywhere lowers trust in the whole phrase.
func MergeEntities(text string, words []detector.Word) []detector.MergedEntity {
	sorted := make([]detector.Word, 0, len(words))
	for _, word := range words {
		// A word without a resolved start cannot be sliced or masked.
		if word.Start < 0 || word.End > len(text) || word.Start >= word.End {
			continue
		}
		sorted = append(sorted, word)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var entities []detector.MergedEntity
	for _, word := range sorted {
		if len(entities) > 0 {
			current := &entities[len(entities)-1]
			if word.Category == current.Category && word.Start-current.End <= MergeGap {
				if word.End > current.End {
					current.End = word.End
					current.Text = text[current.Start:current.End]
				}
				if word.Score < current.Score {
					current.Score = word.Score
				}
				continue
			}
		}
		entities = append(entities, detector.MergedEntity{
			Text:     text[word.Start:word.End],
			Category: word.Category,
			Score:    word.Score,
			Start:    word.Start,
			End:      word.End,
		})
	}
	return entities
}
