// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"strings"
	"unicode"

	"pii-scrub/internal/detector"
)

// identifierCategories are structurally mixed by nature (digits, letters,
// symbols), so the generic tokenization-noise check does not apply to them.
var identifierCategories = map[string]bool{
	detector.CategoryEmail:      true,
	detector.CategoryPhone:      true,
	detector.CategoryCreditCard: true,
	detector.CategoryNationalID: true,
	detector.CategoryIPAddress:  true,
	detector.CategoryIBAN:       true,
	detector.CategoryDate:       true,
	detector.CategoryAddress:    true, // street numbers mix digits and letters
}

// emailStopwords are short pronoun/noun fragments the classifier tends to
// mislabel as email addresses.
var emailStopwords = map[string]bool{
	"i": true, "me": true, "my": true, "you": true, "we": true,
	"he": true, "she": true, "it": true, "at": true, "mail": true,
	"email": true, "e-mail": true,
}

func defaultRules() map[string]CategoryRule {
	return map[string]CategoryRule{
		detector.CategoryNationalID:   {Floor: 0.85, Checks: []Check{checkNationalID}},
		detector.CategoryPhone:        {Floor: 0.80, Checks: []Check{checkPhone}},
		detector.CategoryCreditCard:   {Floor: 0.80},
		detector.CategoryEmail:        {Floor: 0.70, Checks: []Check{checkEmail}},
		detector.CategoryIPAddress:    {Floor: 0.70, Checks: []Check{checkIPAddress}},
		detector.CategoryDate:         {Floor: 0.65, Checks: []Check{checkDate}},
		detector.CategoryAddress:      {Floor: 0.60, Checks: []Check{checkAddress}},
		detector.CategoryPerson:       {Floor: 0.60},
		detector.CategoryOrganization: {Floor: 0.55},
		detector.CategoryCity:         {Floor: 0.50},
	}
}

// passesGenericChecks applies the category-independent sanity checks.
func passesGenericChecks(category, value string) bool {
	if len(value) < 2 {
		return false
	}
	// Mixed letters and digits with no '@' or '.' is almost always
	// tokenization noise for non-identifier categories.
	if !identifierCategories[category] && mixedAlphanumeric(value) &&
		!strings.ContainsAny(value, "@.") {
		return false
	}
	return true
}

func mixedAlphanumeric(value string) bool {
	hasLetter, hasDigit := false, false
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func checkEmail(value string) bool {
	if emailStopwords[strings.ToLower(value)] {
		return false
	}
	return strings.ContainsAny(value, "@.")
}

// checkIPAddress requires the network-address shape: leading digits
// followed by a dot.
func checkIPAddress(value string) bool {
	i := 0
	for i < len(value) && value[i] >= '0' && value[i] <= '9' {
		i++
	}
	return i > 0 && i < len(value) && value[i] == '.'
}

func checkPhone(value string) bool {
	n := digitCount(value)
	if n < 7 || n > 15 {
		return false
	}
	return !isSeparator(rune(value[0])) && !isSeparator(rune(value[len(value)-1]))
}

func checkDate(value string) bool {
	n := digitCount(value)
	if n < 4 {
		return false
	}
	if isSeparator(rune(value[len(value)-1])) {
		return false
	}
	return strings.ContainsAny(value, "/-.") || n >= 6
}

func checkAddress(value string) bool {
	if len(value) < 3 {
		return false
	}
	// Bare short numbers are ZIP-fragment noise, not addresses.
	if digitCount(value) == len(value) && len(value) < 5 {
		return false
	}
	return true
}

func checkNationalID(value string) bool {
	return digitCount(value) >= 9
}

func digitCount(value string) int {
	n := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// isSeparator covers formatting characters between digit groups. A leading
// '+' is an international dialing prefix, not a separator.
func isSeparator(r rune) bool {
	switch r {
	case '-', '.', '/', ' ', '(', ')':
		return true
	}
	return false
}
