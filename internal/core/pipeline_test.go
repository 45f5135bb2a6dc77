// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-scrub/internal/classifier"
	"pii-scrub/internal/detector"
)

// fakeClassifier returns canned tokens for chunks whose text contains the
// trigger substring, and fails for chunks containing the failOn substring.
type fakeClassifier struct {
	trigger string
	tokens  func(chunkText string) []detector.RawToken
	failOn  string
	calls   int
}

func (f *fakeClassifier) Classify(ctx context.Context, chunkText string, options classifier.Options) ([]detector.RawToken, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.failOn != "" && strings.Contains(chunkText, f.failOn) {
		return nil, errors.New("inference backend unavailable")
	}
	if f.trigger != "" && !strings.Contains(chunkText, f.trigger) {
		return nil, nil
	}
	return f.tokens(chunkText), nil
}

// personTokens emits one word-level person token for each occurrence of the
// given words in the chunk text, with chunk-local offsets.
func personTokens(words ...string) func(string) []detector.RawToken {
	return func(chunkText string) []detector.RawToken {
		var tokens []detector.RawToken
		for _, w := range words {
			idx := strings.Index(chunkText, w)
			if idx < 0 {
				continue
			}
			start, end := idx, idx+len(w)
			tokens = append(tokens, detector.RawToken{
				Fragment: w,
				Label:    "B-PER",
				Score:    0.95,
				Start:    &start,
				End:      &end,
			})
		}
		return tokens
	}
}

func TestDetect_PatternOnlyWithoutClassifier(t *testing.T) {
	p := NewPipeline(DefaultPipelineConfig(), nil)

	text := "Contact jane.doe@example.com or 555-123-4567"
	spans := p.Detect(context.Background(), text)

	require.Len(t, spans, 2)
	assert.Equal(t, detector.CategoryEmail, spans[0].Category)
	assert.Equal(t, detector.CategoryPhone, spans[1].Category)
}

func TestDetect_CombinesPatternAndModelSpans(t *testing.T) {
	clf := &fakeClassifier{trigger: "Jane", tokens: personTokens("Jane", "Doe")}
	p := NewPipeline(DefaultPipelineConfig(), clf)

	text := "Contact Jane Doe at jane.doe@example.com"
	spans := p.Detect(context.Background(), text)

	require.Len(t, spans, 2)
	assert.Equal(t, detector.CategoryPerson, spans[0].Category)
	assert.Equal(t, "Jane Doe", spans[0].Value)
	assert.Equal(t, detector.SourceModel, spans[0].Source)
	assert.Equal(t, detector.CategoryEmail, spans[1].Category)
	assert.Equal(t, detector.SourcePattern, spans[1].Source)
}

func TestDetect_SpansWithinBoundsAndNonOverlapping(t *testing.T) {
	clf := &fakeClassifier{trigger: "Jane", tokens: personTokens("Jane", "Doe")}
	p := NewPipeline(DefaultPipelineConfig(), clf)

	text := "Jane Doe, jane.doe@example.com, 555-123-4567, 123-45-6789"
	spans := p.Detect(context.Background(), text)

	for i, span := range spans {
		assert.GreaterOrEqual(t, span.Start, 0)
		assert.LessOrEqual(t, span.End, len(text))
		assert.Equal(t, text[span.Start:span.End], span.Value)
		if i > 0 {
			assert.GreaterOrEqual(t, span.Start, spans[i-1].End, "spans must not overlap")
		}
	}
}

func TestDetect_ClassifierFailureFallsBackToPatterns(t *testing.T) {
	clf := &fakeClassifier{failOn: "Contact"}
	p := NewPipeline(DefaultPipelineConfig(), clf)

	text := "Contact jane.doe@example.com or 555-123-4567"
	spans := p.Detect(context.Background(), text)

	require.Len(t, spans, 2, "pattern spans must survive a classifier failure")
	for _, span := range spans {
		assert.Equal(t, detector.SourcePattern, span.Source)
	}
}

func TestDetect_SingleChunkFailureDegradesThatChunkOnly(t *testing.T) {
	// Two chunks: the first fails, the second succeeds. The second chunk's
	// entity must still be detected with absolute offsets.
	config := DefaultPipelineConfig()
	config.MaxChars = 40
	config.Overlap = 10

	clf := &fakeClassifier{
		trigger: "Doe",
		tokens:  personTokens("Jane", "Doe"),
		failOn:  "FAILME",
	}
	p := NewPipeline(config, clf)

	filler := "FAILME " + strings.Repeat("x", 40) + " then Jane Doe appears"
	spans := p.Detect(context.Background(), filler)

	require.NotEmpty(t, spans, "surviving chunks must still contribute")
	found := false
	for _, span := range spans {
		if span.Category == detector.CategoryPerson {
			found = true
			assert.Equal(t, filler[span.Start:span.End], span.Value)
		}
	}
	assert.True(t, found, "expected a person span from the healthy chunk")
	assert.Greater(t, clf.calls, 1, "all chunks must be attempted")
}

func TestDetect_EntityStraddlingChunkBoundary(t *testing.T) {
	// "Jane Doe" sits at offsets 35-43: the first window sees only "Jane",
	// the second sees the whole name. The duplicate detections must collapse
	// into one full-width span, never a truncated one that leaves the tail
	// unmasked.
	config := DefaultPipelineConfig()
	config.MaxChars = 40
	config.Overlap = 10

	clf := &fakeClassifier{trigger: "Jane", tokens: personTokens("Jane", "Doe")}
	p := NewPipeline(config, clf)

	text := strings.Repeat("x", 35) + "Jane Doe"
	spans := p.Detect(context.Background(), text)

	require.Len(t, spans, 1)
	assert.Equal(t, detector.CategoryPerson, spans[0].Category)
	assert.Equal(t, "Jane Doe", spans[0].Value)
	assert.Equal(t, 35, spans[0].Start)
	assert.Equal(t, 43, spans[0].End)
	assert.Greater(t, clf.calls, 1, "both windows must be classified")
}

func TestDetect_EmptyTextYieldsNoSpans(t *testing.T) {
	p := NewPipeline(DefaultPipelineConfig(), &fakeClassifier{})
	assert.Empty(t, p.Detect(context.Background(), ""))
}

func TestDetect_CategoryRestriction(t *testing.T) {
	config := DefaultPipelineConfig()
	config.Categories = ParseCategories("email")

	clf := &fakeClassifier{trigger: "Jane", tokens: personTokens("Jane")}
	p := NewPipeline(config, clf)

	text := "Jane, jane.doe@example.com, 555-123-4567"
	spans := p.Detect(context.Background(), text)

	require.Len(t, spans, 1)
	assert.Equal(t, detector.CategoryEmail, spans[0].Category)
}

func TestMaskRoundTripThroughPipeline(t *testing.T) {
	p := NewPipeline(DefaultPipelineConfig(), nil)

	text := "Contact jane.doe@example.com or 555-123-4567"
	spans := p.Detect(context.Background(), text)
	result := p.Mask(text, spans)

	assert.Equal(t, "Contact [REDACTED_EMAIL] or [REDACTED_PHONE]", result.MaskedText)
	restored, missed := p.Unmask(result.MaskedText, result.Mappings)
	assert.Equal(t, text, restored)
	assert.Zero(t, missed)
}

func TestMask_IdempotentOnAlreadyMaskedText(t *testing.T) {
	p := NewPipeline(DefaultPipelineConfig(), nil)

	text := "Contact jane.doe@example.com or 555-123-4567"
	first := p.Mask(text, p.Detect(context.Background(), text))

	// Placeholder tokens never match any pattern rule, so a second pass
	// detects nothing and changes nothing.
	second := p.Mask(first.MaskedText, p.Detect(context.Background(), first.MaskedText))
	assert.Equal(t, first.MaskedText, second.MaskedText)
	assert.Empty(t, second.AppliedSpans)
}

func TestParseCategories(t *testing.T) {
	all := ParseCategories("all")
	for _, category := range KnownCategories() {
		assert.True(t, all[category], "category %s", category)
	}

	some := ParseCategories(" email , phone ")
	assert.True(t, some[detector.CategoryEmail])
	assert.True(t, some[detector.CategoryPhone])
	assert.False(t, some[detector.CategoryPerson])

	unknown := ParseCategories("email,bogus")
	assert.True(t, unknown[detector.CategoryEmail])
	_, exists := unknown["bogus"]
	assert.False(t, exists)
}
