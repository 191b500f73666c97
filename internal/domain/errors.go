package domain

import "errors"

// Sentinel errors surfaced across package boundaries; match with errors.Is.
var (
	// ErrConfiguration marks fatal startup problems such as missing
	// credentials. Not recoverable at request time.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrQuotaExceeded means the daily upstream budget is spent and no
	// cached batch exists to fall back on.
	ErrQuotaExceeded = errors.New("daily api quota exceeded")

	// ErrUpstreamUnavailable means the fetch failed and the cache holds
	// nothing at all.
	ErrUpstreamUnavailable = errors.New("upstream news source unavailable")
)
