// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package masker

import "sync"

// Mapping is one placeholder -> original value entry.
type Mapping struct {
	Placeholder string
	Value       string
}

// MappingStore is the session-scoped, ordered record of substitutions made
// by the masking engine. It lives for the process only and is never a cache:
// every masking call may append entries, and an entry is never overwritten.
// Appends are serialized so concurrent sessions cannot lose updates.
// Restoration does not read the store: each Mask call's Result carries its
// own mappings, because store entries from different texts must not be
// paired with one another's placeholders.
type MappingStore struct {
	mu      sync.Mutex
	entries []Mapping
}

// NewMappingStore creates an empty store.
func NewMappingStore() *MappingStore {
	return &MappingStore{}
}

// Append records one substitution.
func (s *MappingStore) Append(placeholder, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Mapping{Placeholder: placeholder, Value: value})
}

// Entries returns a copy of the recorded substitutions in append order.
func (s *MappingStore) Entries() []Mapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Mapping, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Len returns the number of recorded substitutions.
func (s *MappingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear discards all entries. Called at session end.
func (s *MappingStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
