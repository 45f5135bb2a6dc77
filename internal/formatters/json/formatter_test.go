// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	gojson "encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-scrub/internal/detector"
	"pii-scrub/internal/formatters"
)

func TestFormat_Envelope(t *testing.T) {
	report := formatters.Report{
		SourceName: "stdin",
		Spans: []detector.Span{
			{
				Category:   detector.CategoryEmail,
				Value:      "jane.doe@example.com",
				Start:      8,
				End:        28,
				Source:     detector.SourcePattern,
				Confidence: 1.0,
			},
		},
		MaskedText: "Contact [REDACTED_EMAIL]",
	}

	out, err := (&Formatter{}).Format(report, formatters.FormatterOptions{})
	require.NoError(t, err)

	var decoded struct {
		Source     string          `json:"source"`
		SpanCount  int             `json:"span_count"`
		Spans      []detector.Span `json:"spans"`
		MaskedText string          `json:"masked_text"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "stdin", decoded.Source)
	assert.Equal(t, 1, decoded.SpanCount)
	require.Len(t, decoded.Spans, 1)
	assert.Equal(t, detector.CategoryEmail, decoded.Spans[0].Category)
	assert.Equal(t, "Contact [REDACTED_EMAIL]", decoded.MaskedText)
}

func TestFormat_EmptySpansIsValid(t *testing.T) {
	out, err := (&Formatter{}).Format(formatters.Report{SourceName: "f.txt"}, formatters.FormatterOptions{})
	require.NoError(t, err)
	assert.Contains(t, out, `"span_count": 0`)
	assert.Contains(t, out, `"spans": []`)
}
