// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"pii-scrub/internal/formatters"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"high":   color.New(color.FgRed),
			"medium": color.New(color.FgYellow),
			"low":    color.New(color.FgGreen),
			"header": color.New(color.FgWhite, color.Bold),
		},
	}
}

func init() {
	formatters.Register(NewFormatter())
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors"
}

func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	// Disable colors if requested
	if options.NoColor {
		color.NoColor = true
	}

	if len(report.Spans) == 0 && report.MaskedText == "" {
		return "No PII found.", nil
	}

	var builder strings.Builder
	if len(report.Spans) > 0 {
		header := fmt.Sprintf("Found %d span(s) in %s:", len(report.Spans), report.SourceName)
		builder.WriteString(f.colors["header"].Sprint(header))
		builder.WriteString("\n")
	}

	for _, span := range report.Spans {
		level := confidenceLevel(span.Confidence)
		line := fmt.Sprintf("  [%s] %s %d-%d", strings.ToUpper(level), span.Category, span.Start, span.End)
		if options.Verbose {
			line += fmt.Sprintf(" %q (source=%s, confidence=%.2f)", span.Value, span.Source, span.Confidence)
		}
		builder.WriteString(f.colors[level].Sprint(line))
		builder.WriteString("\n")
	}

	if report.MaskedText != "" {
		builder.WriteString(f.colors["header"].Sprint("Masked output:"))
		builder.WriteString("\n")
		builder.WriteString(report.MaskedText)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}

func confidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "high"
	case confidence >= 0.6:
		return "medium"
	default:
		return "low"
	}
}
