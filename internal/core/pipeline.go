// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core wires the detection pipeline together: the deterministic
// pattern path runs unconditionally, the classifier path runs when a
// classifier is available, and the two result sets are reconciled into one
// non-overlapping span set that the masking engine can consume.
package core

import (
	"context"
	"sync"
	"time"

	"pii-scrub/internal/chunker"
	"pii-scrub/internal/classifier"
	"pii-scrub/internal/dedupe"
	"pii-scrub/internal/detector"
	"pii-scrub/internal/filter"
	"pii-scrub/internal/masker"
	"pii-scrub/internal/observability"
	"pii-scrub/internal/patterns"
)

// PipelineConfig holds tunables for one pipeline instance.
type PipelineConfig struct {
	// MaxChars and Overlap bound the classifier input windows.
	MaxChars int
	Overlap  int
	// Timeout is the soft budget for the whole classifier path. When it
	// expires the pipeline proceeds with whatever chunks completed,
	// degrading to pattern-only in the worst case.
	Timeout time.Duration
	// Concurrency bounds simultaneous chunk classifications.
	Concurrency int
	// Categories, when non-nil, restricts detection to the enabled
	// categories (pattern rules and model labels alike).
	Categories map[string]bool
}

// DefaultPipelineConfig returns sensible defaults for interactive use.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MaxChars:    chunker.DefaultMaxChars,
		Overlap:     chunker.DefaultOverlap,
		Timeout:     10 * time.Second,
		Concurrency: 4,
	}
}

// Pipeline is the detection entry point. The classifier is an optional
// injected capability: nil means the pipeline runs pattern-only. All other
// components are owned by the pipeline; no state is retained across Detect
// calls except the session MappingStore.
type Pipeline struct {
	config     PipelineConfig
	patterns   *patterns.Detector
	classifier classifier.Classifier
	filter     *filter.Filter
	engine     *masker.Engine
	observer   *observability.StandardObserver
}

// NewPipeline creates a pipeline. clf may be nil for pattern-only operation.
func NewPipeline(config PipelineConfig, clf classifier.Classifier) *Pipeline {
	if config.MaxChars <= 0 {
		config.MaxChars = chunker.DefaultMaxChars
	}
	if config.Overlap < 0 || config.Overlap >= config.MaxChars {
		config.Overlap = chunker.DefaultOverlap
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}

	return &Pipeline{
		config:     config,
		patterns:   patterns.NewDetector().WithCategories(config.Categories),
		classifier: clf,
		filter:     filter.New(),
		engine:     masker.NewEngine(nil),
	}
}

// SetObserver sets the observability component on the pipeline and every
// stage that reports through it.
func (p *Pipeline) SetObserver(observer *observability.StandardObserver) {
	p.observer = observer
	p.patterns.SetObserver(observer)
	p.filter.SetObserver(observer)
	p.engine.SetObserver(observer)
}

// Filter exposes the plausibility filter for floor overrides from config.
func (p *Pipeline) Filter() *filter.Filter {
	return p.filter
}

// Store returns the session mapping store.
func (p *Pipeline) Store() *masker.MappingStore {
	return p.engine.Store()
}

// Detect returns the final non-overlapping, start-ordered span set for the
// text. It is a pure function of the text and the classifier's current
// availability: an empty result is a valid answer, and classifier-side
// failures never surface as errors, they only reduce the model-sourced
// spans.
func (p *Pipeline) Detect(ctx context.Context, text string) []detector.Span {
	var finishTiming func(bool, map[string]interface{})
	if p.observer != nil {
		finishTiming = p.observer.StartTiming("pipeline", "detect")
	}

	patternSpans := p.patterns.Detect(text)

	var modelSpans []detector.Span
	if p.classifier != nil && text != "" {
		modelSpans = p.detectWithClassifier(ctx, text)
	}

	// Pattern spans first: at equal start offsets the deduplicator lets
	// the earlier, pattern-sourced span win.
	combined := make([]detector.Span, 0, len(patternSpans)+len(modelSpans))
	combined = append(combined, patternSpans...)
	combined = append(combined, modelSpans...)
	final := dedupe.Reconcile(combined)

	if finishTiming != nil {
		finishTiming(true, map[string]interface{}{
			"text_length":   len(text),
			"pattern_spans": len(patternSpans),
			"model_spans":   len(modelSpans),
			"final_spans":   len(final),
		})
	}
	return final
}

// detectWithClassifier runs the chunk -> classify -> reassemble -> merge ->
// filter path. Chunks are classified with bounded concurrency; ordering of
// results does not matter because the entity merger re-sorts by offset. A
// single chunk's failure degrades results for that chunk only.
func (p *Pipeline) detectWithClassifier(ctx context.Context, text string) []detector.Span {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	chunks := chunker.Split(text, p.config.MaxChars, p.config.Overlap)

	var (
		mu    sync.Mutex
		words []detector.Word
	)
	sem := make(chan struct{}, p.config.Concurrency)
	var wg sync.WaitGroup

	for _, chunk := range chunks {
		wg.Add(1)
		go func(chunk detector.Chunk) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			tokens, err := p.classifier.Classify(ctx, chunk.Text, classifier.Options{
				MaxLength: p.config.MaxChars,
			})
			if err != nil {
				// Not fatal: this chunk contributes no tokens.
				p.observeChunkFailure(chunk, err)
				return
			}

			chunkWords := classifier.ReassembleWords(chunk, tokens)
			mu.Lock()
			words = append(words, chunkWords...)
			mu.Unlock()
		}(chunk)
	}
	wg.Wait()

	entities := classifier.MergeEntities(text, words)

	spans := make([]detector.Span, 0, len(entities))
	for _, entity := range entities {
		if p.config.Categories != nil && !p.config.Categories[entity.Category] {
			continue
		}
		spans = append(spans, entity.Span())
	}
	return p.filter.Apply(spans)
}

func (p *Pipeline) observeChunkFailure(chunk detector.Chunk, err error) {
	if p.observer == nil {
		return
	}
	p.observer.LogOperation(observability.StandardObservabilityData{
		Component:  "pipeline",
		Operation:  "classify_chunk",
		Success:    false,
		Error:      err.Error(),
		TextLength: len(chunk.Text),
		Metadata:   map[string]interface{}{"chunk_offset": chunk.Offset},
	})
}

// Mask substitutes placeholders for the spans and records the reversal
// mapping in the session store. Deterministic given its inputs; its only
// side effect is appending to the MappingStore.
func (p *Pipeline) Mask(text string, spans []detector.Span) masker.Result {
	return p.engine.Mask(text, spans)
}

// Unmask restores a Mask call's recorded values into its masked text,
// using the mappings carried in that call's Result. It returns the restored
// text and the number of mappings whose placeholder was not found.
func (p *Pipeline) Unmask(masked string, mappings []masker.Mapping) (string, int) {
	return p.engine.Unmask(masked, mappings)
}
