// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// maxPDFPages caps extraction time for very large documents.
const maxPDFPages = 50

// extractPDF extracts text from a PDF document using ledongthuc/pdf.
// Pages that fail to decode are skipped; extraction fails only when the
// document itself cannot be opened.
func extractPDF(path string) (*ProcessedContent, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF %s: %w", path, err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > maxPDFPages {
		pageCount = maxPDFPages
	}

	var buf bytes.Buffer
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	return &ProcessedContent{SourceName: path, Text: buf.String()}, nil
}
