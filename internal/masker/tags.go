// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package masker

import (
	"strings"

	"pii-scrub/internal/detector"
)

// categoryTags maps internal category names to the human-readable uppercase
// tags used inside placeholders. This table is the bit-exact contract for
// placeholder text: downstream restoration depends on it, so changing an
// entry is a breaking change.
var categoryTags = map[string]string{
	detector.CategoryEmail:        "EMAIL",
	detector.CategoryPhone:        "PHONE",
	detector.CategoryCreditCard:   "CREDIT_CARD",
	detector.CategoryNationalID:   "SSN",
	detector.CategoryIPAddress:    "IP",
	detector.CategoryIBAN:         "IBAN",
	detector.CategoryPerson:       "NAME",
	detector.CategoryCity:         "CITY",
	detector.CategoryAddress:      "ADDRESS",
	detector.CategoryDate:         "DATE",
	detector.CategoryOrganization: "ORG",
}

// TagFor returns the placeholder tag for a category, falling back to an
// uppercased form of the category name for unknown categories.
func TagFor(category string) string {
	if tag, ok := categoryTags[category]; ok {
		return tag
	}
	return strings.ToUpper(category)
}

// Placeholder returns the literal placeholder text for a category, e.g.
// "[REDACTED_EMAIL]". The bracket-and-tag form is excluded from every
// pattern rule and model category by construction, which makes masking
// idempotent under re-application.
func Placeholder(category string) string {
	return "[REDACTED_" + TagFor(category) + "]"
}
