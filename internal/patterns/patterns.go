// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package patterns implements the deterministic detection path: an ordered
// table of structural rules evaluated over raw text. It is always available,
// requires no model, and emits spans with confidence 1.0.
package patterns

import (
	"sort"

	"pii-scrub/internal/detector"
	"pii-scrub/internal/observability"
)

// Detector evaluates the ordered rule table against raw text.
type Detector struct {
	rules    []Rule
	observer *observability.StandardObserver
}

// NewDetector creates a pattern detector with the default rule table.
func NewDetector() *Detector {
	return &Detector{rules: defaultRules()}
}

// NewDetectorWithRules creates a pattern detector with a custom rule table.
// Rules are evaluated in slice order.
func NewDetectorWithRules(rules []Rule) *Detector {
	return &Detector{rules: rules}
}

// SetObserver sets the observability component
func (d *Detector) SetObserver(observer *observability.StandardObserver) {
	d.observer = observer
}

// WithCategories returns a detector restricted to the given categories,
// preserving the relative order of the remaining rules. A nil map keeps
// every rule.
func (d *Detector) WithCategories(enabled map[string]bool) *Detector {
	if enabled == nil {
		return d
	}
	var kept []Rule
	for _, rule := range d.rules {
		if enabled[rule.Category] {
			kept = append(kept, rule)
		}
	}
	return &Detector{rules: kept, observer: d.observer}
}

// Rules returns the rule table in evaluation order.
func (d *Detector) Rules() []Rule {
	return d.rules
}

// Detect runs every rule over the text and returns the matches as spans
// ordered by start offset. Absence of a match is not a failure; overlapping
// matches across rules are left for the span deduplicator to resolve.
func (d *Detector) Detect(text string) []detector.Span {
	var finishTiming func(bool, map[string]interface{})
	if d.observer != nil {
		finishTiming = d.observer.StartTiming("pattern_detector", "detect")
	}

	var spans []detector.Span
	for _, rule := range d.rules {
		for _, loc := range rule.Pattern.FindAllStringIndex(text, -1) {
			value := text[loc[0]:loc[1]]
			if rule.Validate != nil && !rule.Validate(value) {
				continue
			}
			spans = append(spans, detector.Span{
				Category:   rule.Category,
				Value:      value,
				Start:      loc[0],
				End:        loc[1],
				Source:     detector.SourcePattern,
				Confidence: 1.0,
			})
		}
	}

	// Stable sort keeps rule-table order for spans starting at the same
	// offset, so the more specific rule stays first.
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start < spans[j].Start
	})

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{"span_count": len(spans), "text_length": len(text)})
	}
	return spans
}
