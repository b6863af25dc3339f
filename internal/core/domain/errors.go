package domain

import "errors"

var (
	// ErrCatalogUnavailable wraps transport failures of the catalog backend.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrInvalidArgument    = errors.New("invalid argument")
	// ErrMalformedFragment marks a URL fragment that could not be decoded.
	// The URL parser recovers from it locally; it only surfaces in logs.
	ErrMalformedFragment = errors.New("malformed url fragment")
)
