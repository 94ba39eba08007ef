// Package apperr defines the error taxonomy shared by the fetcher, the
// repository and the HTTP layer. Errors are matched with errors.Is and
// mapped to a kind string for the JSON error envelope.
package apperr

import "errors"

var (
	// ErrUpstreamUnavailable marks a network or HTTP failure against an
	// upstream data provider.
	ErrUpstreamUnavailable = errors.New("upstream data source unavailable")

	// ErrUpstreamMalformed marks an upstream payload that could not be parsed.
	ErrUpstreamMalformed = errors.New("upstream payload malformed")

	// ErrStoreUnavailable marks any store connectivity or write failure.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrNotFound marks a lookup for a name with no stored record.
	ErrNotFound = errors.New("record not found")

	// ErrNothingToRender marks an image request against an empty store.
	ErrNothingToRender = errors.New("nothing to render")

	// ErrInvalidParameter is reserved for strict parameter validation.
	// Current policy is graceful fallback, so nothing returns it yet.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Kind returns the stable identifier used in error envelopes.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUpstreamUnavailable):
		return "UpstreamUnavailable"
	case errors.Is(err, ErrUpstreamMalformed):
		return "UpstreamMalformedData"
	case errors.Is(err, ErrStoreUnavailable):
		return "StoreUnavailable"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrNothingToRender):
		return "NothingToRender"
	case errors.Is(err, ErrInvalidParameter):
		return "InvalidParameter"
	default:
		return "Internal"
	}
}
