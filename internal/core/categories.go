// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"strings"

	"pii-scrub/internal/detector"
)

// KnownCategories lists every category the pipeline can detect.
func KnownCategories() []string {
	return []string{
		detector.CategoryEmail,
		detector.CategoryPhone,
		detector.CategoryCreditCard,
		detector.CategoryNationalID,
		detector.CategoryIPAddress,
		detector.CategoryIBAN,
		detector.CategoryPerson,
		detector.CategoryCity,
		detector.CategoryAddress,
		detector.CategoryDate,
		detector.CategoryOrganization,
	}
}

// ParseCategories converts a comma-separated category list into an
// enabled-categories map. "all" or an empty string enables every category;
// unknown names are ignored.
func ParseCategories(spec string) map[string]bool {
	result := make(map[string]bool)
	for _, category := range KnownCategories() {
		result[category] = false
	}

	if spec == "" || strings.TrimSpace(spec) == "all" {
		for category := range result {
			result[category] = true
		}
		return result
	}

	for _, part := range strings.Split(spec, ",") {
		if name := strings.TrimSpace(part); name != "" {
			if _, exists := result[name]; exists {
				result[name] = true
			}
		}
	}
	return result
}
