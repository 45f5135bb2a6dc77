// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package filter applies per-category confidence floors and format-sanity
// checks to classifier-sourced spans before they are merged with pattern
// results. A span is discarded when its confidence does not exceed the
// category floor or when any applicable plausibility check fails.
package filter

import (
	"pii-scrub/internal/detector"
	"pii-scrub/internal/observability"
)

// Check is one composable plausibility validator. It returns false to
// discard the span value.
type Check func(value string) bool

// CategoryRule holds the confidence floor and the plausibility checks for
// one category.
type CategoryRule struct {
	Floor  float64
	Checks []Check
}

// Filter evaluates spans against a data-driven table keyed by category.
type Filter struct {
	rules    map[string]CategoryRule
	observer *observability.StandardObserver
}

// New creates a filter with the default per-category table. Floors are high
// for high-harm, high-false-positive categories (government ID numbers,
// phone numbers) and lower for broad ones (city names).
func New() *Filter {
	return &Filter{rules: defaultRules()}
}

// NewWithRules creates a filter with a custom table. Categories missing from
// the table get no floor and only the generic checks.
func NewWithRules(rules map[string]CategoryRule) *Filter {
	return &Filter{rules: rules}
}

// SetObserver sets the observability component
func (f *Filter) SetObserver(observer *observability.StandardObserver) {
	f.observer = observer
}

// SetFloor overrides the confidence floor for a category, keeping its checks.
func (f *Filter) SetFloor(category string, floor float64) {
	rule := f.rules[category]
	rule.Floor = floor
	f.rules[category] = rule
}

// Apply returns the spans that survive the confidence floor and every
// applicable plausibility check. Format checks are absolute: they discard a
// span regardless of its confidence score.
func (f *Filter) Apply(spans []detector.Span) []detector.Span {
	var finishTiming func(bool, map[string]interface{})
	if f.observer != nil {
		finishTiming = f.observer.StartTiming("plausibility_filter", "apply")
	}

	var kept []detector.Span
	for _, span := range spans {
		if f.Keep(span) {
			kept = append(kept, span)
		}
	}

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"input_count": len(spans),
			"kept_count":  len(kept),
		})
	}
	return kept
}

// Keep reports whether a single span passes the filter.
func (f *Filter) Keep(span detector.Span) bool {
	rule, hasRule := f.rules[span.Category]
	if hasRule && span.Confidence <= rule.Floor {
		return false
	}
	if !passesGenericChecks(span.Category, span.Value) {
		return false
	}
	for _, check := range rule.Checks {
		if !check(span.Value) {
			return false
		}
	}
	return true
}
