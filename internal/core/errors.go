package core

import (
	"fmt"
)

// APIError is returned when the Graph API answers with a non-2xx status.
// Message carries the embedded error message when the response body parsed
// as Graph error JSON, otherwise the raw response text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph API request failed: status %d: %s", e.StatusCode, e.Message)
}

// IdentityError is returned when the acting user's id or mailbox address
// cannot be resolved.
type IdentityError struct {
	Reason string
}

func (e *IdentityError) Error() string {
	return "identity resolution failed: " + e.Reason
}

// SelectionError is returned when no message is selected in the host UI or
// its identifier cannot be resolved.
type SelectionError struct {
	Reason string
}

func (e *SelectionError) Error() string {
	return "message selection failed: " + e.Reason
}
