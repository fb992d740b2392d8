package market

import (
	"fmt"

	"platwatch/internal/model"
)

// TransportError reports a failed HTTP exchange with the marketplace: either
// a network-level failure (Err set) or a non-success status (StatusCode set).
type TransportError struct {
	Platform   model.Platform
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("market: request for platform %s failed: %v", e.Platform, e.Err)
	}
	return fmt.Sprintf("market: platform %s returned status %d", e.Platform, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	Platform model.Platform
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("market: undecodable response for platform %s: %v", e.Platform, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
