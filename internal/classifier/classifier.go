// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classifier consumes the contextual span classifier and turns its
// raw sub-word predictions into merged, absolutely-positioned entities.
//
// The classifier itself is an external collaborator: it may be absent, still
// initializing, slow, or failing per call. This package only defines the
// contract and the post-processing (token reassembly, label mapping, entity
// merging); it never manages model lifecycle.
package classifier

import (
	"context"

	"pii-scrub/internal/detector"
)

// Options bounds a single classification call.
type Options struct {
	// MaxLength is the maximum chunk length the model accepts.
	MaxLength int
}

// Classifier is the consumed inference contract. Implementations must be
// callable repeatedly; a failed call contributes no tokens for that chunk
// and the pipeline continues with the remaining chunks.
type Classifier interface {
	// Classify returns sub-word entity predictions for one chunk's text,
	// in left-to-right order. Token offsets are chunk-local and may be
	// absent; fragments may carry the "##" sub-word continuation marker.
	Classify(ctx context.Context, chunkText string, options Options) ([]detector.RawToken, error)
}
