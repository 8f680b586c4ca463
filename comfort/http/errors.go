package http

import "errors"

// Write-path errors come in three flavors so operators can tell
// "server is down" from "server is broken" from "server said no".
var (
	// ErrUnreachable covers network-level failures and timeouts.
	ErrUnreachable = errors.New("remote service unreachable")

	// ErrUnexpectedResponse covers bodies that are not the JSON the
	// API contract promises (upstream HTML error pages included).
	ErrUnexpectedResponse = errors.New("unexpected response from remote service")
)

// APIError is an application-level rejection: a well-formed response
// whose error message is surfaced to the operator verbatim.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
