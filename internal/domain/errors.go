// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an input fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned when a credential is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a task or stored artifact does not exist,
	// or when it exists but belongs to a different owner.
	ErrNotFound = errors.New("not found")

	// ErrUpstream is returned when the generation provider cannot be reached
	// or answers with a non-success HTTP status.
	ErrUpstream = errors.New("upstream provider error")

	// ErrUpstreamRejected is returned when the provider answers the request
	// but reports a business failure (for example a content policy violation).
	ErrUpstreamRejected = errors.New("upstream provider rejected the request")

	// ErrUpstreamContract is returned when the provider response is malformed,
	// for example when it omits the task identifier.
	ErrUpstreamContract = errors.New("upstream provider response violated contract")

	// ErrDerivation is returned when a thumbnail cannot be derived from a video.
	ErrDerivation = errors.New("thumbnail derivation failed")

	// ErrStorage is returned when the object store fails an I/O operation.
	ErrStorage = errors.New("object storage error")

	// ErrInvalidTransition is returned when a task status change is not allowed.
	ErrInvalidTransition = errors.New("invalid task status transition")
)
