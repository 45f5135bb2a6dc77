// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package patterns

import (
	"regexp"
	"strings"

	"pii-scrub/internal/detector"
)

// Rule is one entry in the ordered pattern table. Rule order is a first-class
// invariant: structurally specific categories (national IDs, card numbers)
// are listed before looser ones so a broad rule never claims a region a
// stricter rule already describes. Overlap resolution itself happens in the
// span deduplicator.
type Rule struct {
	Name     string
	Category string
	Pattern  *regexp.Regexp

	// Validate, when non-nil, is a structural sanity check applied to each
	// raw match (e.g. Luhn for card numbers, octet range for IPs).
	Validate func(match string) bool
}

// defaultRules returns the ordered rule table. regexp.Regexp carries no
// match cursor between calls, so each rule is stateless and safe to reuse
// across invocations and goroutines.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:     "ssn_dashed",
			Category: detector.CategoryNationalID,
			Pattern:  regexp.MustCompile(`\b\d{3}[- ]\d{2}[- ]\d{4}\b`),
			Validate: validSSN,
		},
		{
			Name:     "credit_card",
			Category: detector.CategoryCreditCard,
			Pattern:  regexp.MustCompile(`\b(?:\d{4}[ -]?){3}\d{1,4}\b`),
			Validate: validLuhn,
		},
		{
			Name:     "iban",
			Category: detector.CategoryIBAN,
			Pattern:  regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`),
		},
		{
			Name:     "email",
			Category: detector.CategoryEmail,
			Pattern:  regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		},
		{
			Name:     "ipv4",
			Category: detector.CategoryIPAddress,
			Pattern:  regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			Validate: validIPv4,
		},
		{
			Name:     "phone_intl",
			Category: detector.CategoryPhone,
			Pattern:  regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{2,4}[-.\s]?\d{3,4}[-.\s]?\d{2,4}`),
			Validate: validPhoneDigits,
		},
		{
			Name:     "phone_us",
			Category: detector.CategoryPhone,
			Pattern:  regexp.MustCompile(`\b(?:\(\d{3}\)[-.\s]?|\d{3}[-.\s])\d{3}[-.\s]\d{4}\b`),
			Validate: validPhoneDigits,
		},
	}
}

// validSSN rejects area/group/serial values the SSA never issues.
func validSSN(match string) bool {
	digits := digitsOf(match)
	if len(digits) != 9 {
		return false
	}
	area, group, serial := digits[:3], digits[3:5], digits[5:]
	if area == "000" || area == "666" || area >= "900" {
		return false
	}
	return group != "00" && serial != "0000"
}

// validLuhn applies the Luhn checksum to the digits of a candidate card number.
func validLuhn(match string) bool {
	digits := digitsOf(match)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	sum := 0
	parity := len(digits) % 2
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == parity {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

func validIPv4(match string) bool {
	for _, octet := range strings.Split(match, ".") {
		if len(octet) > 1 && octet[0] == '0' {
			return false
		}
		n := 0
		for _, r := range octet {
			n = n*10 + int(r-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}

func validPhoneDigits(match string) bool {
	n := len(digitsOf(match))
	return n >= 7 && n <= 15
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
