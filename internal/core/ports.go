package core

import (
	"context"
	"encoding/json"
)

// GraphAPI defines the interface for authenticated Graph REST calls
type GraphAPI interface {
	// Get issues a GET against base+path+query with a bearer token.
	// path must begin with "/"; query, if non-empty, must begin with "?".
	Get(ctx context.Context, token, path, query string) (json.RawMessage, error)

	// Post issues a POST with a JSON-serialized body
	Post(ctx context.Context, token, path string, body any) (json.RawMessage, error)
}

// TokenProvider defines the interface for acquiring bearer tokens.
// Implementations must be safe to initialize more than once.
type TokenProvider interface {
	// Acquire returns an access token covering the given scopes
	Acquire(ctx context.Context, scopes []string) (string, error)
}

// MailboxSession is the host mailbox context for one command invocation.
// It is passed explicitly rather than read from ambient host state so the
// pipeline is testable without a live mail client.
type MailboxSession interface {
	// ItemID returns the host-internal identifier of the selected message,
	// or "" when nothing is selected
	ItemID() string

	// ConvertToRestID translates the host-internal identifier into its
	// REST-addressable form
	ConvertToRestID(itemID string) string

	// UserEmailAddress returns the signed-in user's mailbox address, or ""
	// when the session does not carry one
	UserEmailAddress() string
}
