package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Provider call errors. Adapters convert transport and API failures into
	// exactly one of these before anything reaches the orchestrator, so the
	// fallback chain can dispatch with errors.Is without knowing which
	// backend produced the failure.

	// ErrProviderUnavailable indicates the provider is unreachable or not
	// configured. Skipped silently by the fallback chain.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderAuth indicates rejected credentials. Skipped, but logged
	// loudly since it points at misconfiguration rather than transient failure.
	ErrProviderAuth = errors.New("provider authentication failed")

	// ErrProviderRateLimited indicates the provider's API rate limit was hit.
	ErrProviderRateLimited = errors.New("provider rate limited")

	// ErrProviderNetwork indicates a timeout or connection failure.
	ErrProviderNetwork = errors.New("provider network failure")

	// ErrMalformedResponse indicates the model returned output that could not
	// be parsed for a structured endpoint. The provider is skipped for the
	// current request only; it is not marked globally unavailable.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrNoProvidersAvailable is the terminal failure when the entire
	// fallback chain has been exhausted. This is the only provider-related
	// error callers ever see.
	ErrNoProvidersAvailable = errors.New("no providers available")
)

// UnavailableMessage is the safe user-facing text every surface renders when
// ErrNoProvidersAvailable is returned. Raw provider errors never reach users.
const UnavailableMessage = "The assistant is temporarily unavailable. Please try again in a moment."
