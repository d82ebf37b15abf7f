package msal

import (
	"context"
	"fmt"
)

// StaticProvider returns a fixed token. Intended for development setups
// where a token is provisioned out of band, and for tests.
type StaticProvider struct {
	token string
}

// NewStaticProvider creates a provider that always returns the given token
func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: token}
}

// Acquire returns the configured token regardless of scopes
func (p *StaticProvider) Acquire(_ context.Context, _ []string) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("no static token configured")
	}
	return p.token, nil
}
