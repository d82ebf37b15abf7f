package msal

import (
	"context"
	"fmt"
	"sync"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/confidential"
	"go.uber.org/zap"
)

// Exchanger trades the add-in's SSO assertion for a Graph token using the
// on-behalf-of flow. One exchanger is shared across requests; a lightweight
// per-request provider binds it to an assertion.
type Exchanger struct {
	tenantID     string
	clientID     string
	clientSecret string
	authority    string
	logger       *zap.Logger

	initOnce sync.Once
	initErr  error
	client   confidential.Client
}

// NewExchanger creates a new on-behalf-of token exchanger
func NewExchanger(tenantID, clientID, clientSecret, authority string, logger *zap.Logger) *Exchanger {
	return &Exchanger{
		tenantID:     tenantID,
		clientID:     clientID,
		clientSecret: clientSecret,
		authority:    authority,
		logger:       logger,
	}
}

// Initialize builds the underlying MSAL confidential client. Safe to call
// any number of times.
func (e *Exchanger) Initialize(_ context.Context) error {
	e.initOnce.Do(func() {
		cred, err := confidential.NewCredFromSecret(e.clientSecret)
		if err != nil {
			e.initErr = err
			return
		}
		authority := fmt.Sprintf("%s/%s", e.authority, e.tenantID)
		e.client, e.initErr = confidential.New(authority, e.clientID, cred)
	})
	if e.initErr != nil {
		return fmt.Errorf("failed to create MSAL confidential client: %w", e.initErr)
	}
	return nil
}

// ForAssertion returns a token provider bound to one incoming SSO assertion
func (e *Exchanger) ForAssertion(assertion string) *OBOProvider {
	return &OBOProvider{exchanger: e, assertion: assertion}
}

// OBOProvider implements core.TokenProvider for a single incoming assertion
type OBOProvider struct {
	exchanger *Exchanger
	assertion string
}

// Initialize forwards to the shared exchanger's idempotent initialization
func (p *OBOProvider) Initialize(ctx context.Context) error {
	return p.exchanger.Initialize(ctx)
}

// Acquire exchanges the bound assertion for an access token covering the
// given scopes.
func (p *OBOProvider) Acquire(ctx context.Context, scopes []string) (string, error) {
	if p.assertion == "" {
		return "", fmt.Errorf("no user assertion supplied for on-behalf-of exchange")
	}
	if err := p.exchanger.Initialize(ctx); err != nil {
		return "", err
	}

	result, err := p.exchanger.client.AcquireTokenOnBehalfOf(ctx, p.assertion, scopes)
	if err != nil {
		return "", fmt.Errorf("on-behalf-of token exchange failed: %w", err)
	}

	p.exchanger.logger.Debug("Exchanged assertion for Graph token",
		zap.Strings("scopes", scopes))
	return result.AccessToken, nil
}
