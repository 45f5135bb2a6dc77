// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"strings"

	"pii-scrub/internal/detector"
)

// labelCategories maps model label names (after stripping any BIO prefix) to
// canonical categories. Labels not in the table are ignored, as is the
// outside label.
var labelCategories = map[string]string{
	"PER":          detector.CategoryPerson,
	"PERSON":       detector.CategoryPerson,
	"NAME":         detector.CategoryPerson,
	"EMAIL":        detector.CategoryEmail,
	"PHONE":        detector.CategoryPhone,
	"TELEPHONENUM": detector.CategoryPhone,
	"CREDITCARD":   detector.CategoryCreditCard,
	"SSN":          detector.CategoryNationalID,
	"IDNUM":        detector.CategoryNationalID,
	"IP":           detector.CategoryIPAddress,
	"IPADDR":       detector.CategoryIPAddress,
	"LOC":          detector.CategoryCity,
	"CITY":         detector.CategoryCity,
	"GPE":          detector.CategoryCity,
	"ADDRESS":      detector.CategoryAddress,
	"STREET":       detector.CategoryAddress,
	"DATE":         detector.CategoryDate,
	"DOB":          detector.CategoryDate,
	"ORG":          detector.CategoryOrganization,
}

// CategoryForLabel resolves a raw model label to a canonical category.
// Returns "" for the outside label and for unrecognized labels.
func CategoryForLabel(label string) string {
	name := strings.ToUpper(strings.TrimSpace(label))
	if name == "" || name == "O" || name == "OUTSIDE" {
		return ""
	}
	// BIO scheme prefixes carry position, not identity.
	for _, prefix := range []string{"B-", "I-", "E-", "S-"} {
		if strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	return labelCategories[name]
}
