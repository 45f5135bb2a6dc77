// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"pii-scrub/internal/detector"
	"pii-scrub/internal/formatters"
)

// Formatter implements JSON output formatting
type Formatter struct{}

func init() {
	formatters.Register(&Formatter{})
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Machine-readable JSON output"
}

// output is the stable JSON envelope.
type output struct {
	Source     string          `json:"source"`
	SpanCount  int             `json:"span_count"`
	Spans      []detector.Span `json:"spans"`
	MaskedText string          `json:"masked_text,omitempty"`
}

func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	spans := report.Spans
	if spans == nil {
		spans = []detector.Span{}
	}
	data, err := json.MarshalIndent(output{
		Source:     report.SourceName,
		SpanCount:  len(spans),
		Spans:      spans,
		MaskedText: report.MaskedText,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal output: %w", err)
	}
	return string(data), nil
}
