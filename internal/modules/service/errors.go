package service

import "errors"

// Sentinel errors the handler boundary maps onto HTTP statuses.
var (
	// ErrValidation marks missing or malformed required input.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks an entity that is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken marks a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidLogin marks a failed credential check.
	ErrInvalidLogin = errors.New("invalid email or password")

	// ErrTooManyLogins marks a login rejected by the attempt limiter.
	ErrTooManyLogins = errors.New("too many login attempts")

	// ErrUpstream marks a transport or auth failure talking to the completion endpoint.
	ErrUpstream = errors.New("completion service unavailable")

	// ErrUpstreamFormat marks a completion reply that did not match the
	// required structured-output contract.
	ErrUpstreamFormat = errors.New("failed to parse completion response")
)
