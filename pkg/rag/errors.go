package rag

import "errors"

// Failure kinds for the retrieval pipeline. The router matches on these to
// decide how loudly to log before degrading to the registry.
var (
	// ErrUnavailable means the pipeline is missing a dependency (no
	// database, no model) and cannot generate at all.
	ErrUnavailable = errors.New("rag: pipeline unavailable")

	// ErrEmbedding means the query could not be embedded.
	ErrEmbedding = errors.New("rag: query embedding failed")

	// ErrRetrieval means the vector search failed or found nothing relevant.
	ErrRetrieval = errors.New("rag: retrieval failed")

	// ErrGeneration means the model call failed or produced an empty answer.
	ErrGeneration = errors.New("rag: answer generation failed")
)
