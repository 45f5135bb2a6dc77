// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package masker performs position-stable, reversible text substitution:
// retained spans are replaced with stable placeholder tokens and the
// original values are recorded in a session MappingStore so the redaction
// can be undone.
package masker

import (
	"sort"
	"strings"

	"pii-scrub/internal/detector"
	"pii-scrub/internal/observability"
)

// Result holds the substituted text, the spans that were actually applied
// for review display, and this call's placeholder mappings in masking order.
// Mappings is what Unmask needs: the session store accumulates entries across
// every Mask call, but a masked text can only be restored from the mappings
// of the call that produced it.
type Result struct {
	MaskedText   string
	AppliedSpans []detector.Span
	Mappings     []Mapping
}

// Engine applies placeholder substitutions and records them in a store.
type Engine struct {
	store    *MappingStore
	observer *observability.StandardObserver
}

// NewEngine creates a masking engine appending to the given store.
// A nil store gets a fresh session store.
func NewEngine(store *MappingStore) *Engine {
	if store == nil {
		store = NewMappingStore()
	}
	return &Engine{store: store}
}

// SetObserver sets the observability component
func (e *Engine) SetObserver(observer *observability.StandardObserver) {
	e.observer = observer
}

// Store returns the engine's session mapping store.
func (e *Engine) Store() *MappingStore {
	return e.store
}

// Mask substitutes a placeholder for every span and appends the
// placeholder -> original value mapping to the store.
//
// Spans are processed in descending start order so earlier replacements
// never shift the coordinates of spans not yet processed. Before each
// substitution the text slice at [start,end) is compared to the span's
// recorded value; on mismatch the span is skipped rather than corrupting
// the output. Masking never fails: stale spans degrade the result, they do
// not abort it.
func (e *Engine) Mask(text string, spans []detector.Span) Result {
	var finishTiming func(bool, map[string]interface{})
	if e.observer != nil {
		finishTiming = e.observer.StartTiming("masking_engine", "mask")
	}

	sorted := make([]detector.Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start > sorted[j].Start
	})

	masked := text
	var applied []detector.Span
	var mappings []Mapping
	for _, span := range sorted {
		if span.Start < 0 || span.End > len(masked) || span.Start >= span.End {
			continue
		}
		if masked[span.Start:span.End] != span.Value {
			// Coordinate drift upstream; skipping is the only safe move.
			continue
		}
		placeholder := Placeholder(span.Category)
		masked = masked[:span.Start] + placeholder + masked[span.End:]
		e.store.Append(placeholder, span.Value)
		mappings = append(mappings, Mapping{Placeholder: placeholder, Value: span.Value})
		applied = append(applied, span)
	}

	// Back into ascending order for review display.
	sort.SliceStable(applied, func(i, j int) bool {
		return applied[i].Start < applied[j].Start
	})

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"span_count":    len(spans),
			"applied_count": len(applied),
		})
	}
	return Result{MaskedText: masked, AppliedSpans: applied, Mappings: mappings}
}

// Unmask substitutes a Mask call's recorded values back into the
// placeholders of its masked text, reconstructing the pre-masking text
// exactly. mappings must come from the Result whose MaskedText is being
// restored: the session store can hold entries from several Mask calls, and
// restoring from the whole store would pair another text's values with this
// text's placeholders.
//
// Mappings are recorded in masking order (descending start), so walking them
// in reverse pairs each entry with placeholder occurrences left to right. A
// cursor advances past every restoration, which keeps repeated placeholders
// (two emails both become "[REDACTED_EMAIL]") paired with the right values.
// The second return value counts mappings whose placeholder was not found in
// the text; zero means the restoration is complete.
func (e *Engine) Unmask(masked string, mappings []Mapping) (string, int) {
	var restored strings.Builder
	cursor := 0
	missed := 0
	for i := len(mappings) - 1; i >= 0; i-- {
		entry := mappings[i]
		idx := strings.Index(masked[cursor:], entry.Placeholder)
		if idx < 0 {
			missed++
			continue
		}
		start := cursor + idx
		restored.WriteString(masked[cursor:start])
		restored.WriteString(entry.Value)
		cursor = start + len(entry.Placeholder)
	}
	restored.WriteString(masked[cursor:])
	return restored.String(), missed
}
