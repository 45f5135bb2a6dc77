// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package preprocessors turns CLI input sources into plain text for the
// detection pipeline. Plain text files pass through; PDF files get their
// text extracted page by page.
package preprocessors

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ProcessedContent holds extracted text ready for detection.
type ProcessedContent struct {
	SourceName string
	Text       string
}

// FromReader reads everything from a stream (typically stdin).
func FromReader(r io.Reader, sourceName string) (*ProcessedContent, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sourceName, err)
	}
	return &ProcessedContent{SourceName: sourceName, Text: string(data)}, nil
}

// FromFile extracts text from a file, routing on extension.
func FromFile(path string) (*ProcessedContent, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", path, err)
		}
		return &ProcessedContent{SourceName: path, Text: string(data)}, nil
	}
}
