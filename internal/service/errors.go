package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found or is owned by
	// someone else. Ownership misses are reported as not-found on purpose.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTradeType is returned when an unknown trade is provided
	ErrInvalidTradeType = errors.New("invalid trade type")

	// ErrGenerationUnavailable is returned when quote generation is requested
	// but no AI provider is configured
	ErrGenerationUnavailable = errors.New("quote generation is not available")

	// ErrNoQuote is returned when a job has no quote yet
	ErrNoQuote = errors.New("job has no quote")
)
