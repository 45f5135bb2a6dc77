// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"fmt"
	"sort"
	"sync"

	"pii-scrub/internal/detector"
)

// Report is the shared input for all output formatters.
type Report struct {
	Spans      []detector.Span
	MaskedText string // empty when masking was not requested
	SourceName string // file path or "stdin"
}

// FormatterOptions controls formatter behavior.
type FormatterOptions struct {
	Verbose bool
	NoColor bool
}

// Formatter renders a detection report.
type Formatter interface {
	Name() string
	Description() string
	Format(report Report, options FormatterOptions) (string, error)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Formatter)
)

// Register adds a formatter to the registry. Called from formatter package
// init functions.
func Register(f Formatter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[f.Name()] = f
}

// Get returns a registered formatter by name.
func Get(name string) (Formatter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if f, ok := registry[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("unknown output format %q (available: %v)", name, names())
}

// Names returns the registered formatter names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return names()
}

func names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
