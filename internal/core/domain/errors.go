package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	// An upsert with an empty link is the canonical case: it is a data
	// integrity fault and is never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates required configuration is missing or
	// malformed. Raised at startup before any network call; fatal.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEnrichmentFailed indicates AI enrichment exhausted its retries or
	// produced an unparseable response. Callers log it and continue without
	// enrichment fields for the affected posting.
	ErrEnrichmentFailed = errors.New("enrichment failed")

	// ErrLLMUnavailable indicates the LLM service is not configured or
	// unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrBackendUnavailable indicates the row store backend could not be
	// reached or constructed.
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// ErrRateLimited indicates a provider API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
