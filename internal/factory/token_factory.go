package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phishguard/outlook-threat-reporter/internal/adapters/msal"
	"github.com/phishguard/outlook-threat-reporter/internal/config"
	"github.com/phishguard/outlook-threat-reporter/internal/core"
)

// TokenFactory creates token providers for the configured auth flow
type TokenFactory struct {
	flow       string
	exchanger  *msal.Exchanger
	deviceCode *msal.DeviceCodeProvider
	static     *msal.StaticProvider
}

// NewTokenFactory creates a new token factory based on the configuration
func NewTokenFactory(cfg *config.Config, logger *zap.Logger) (*TokenFactory, error) {
	auth := cfg.GetAuth()

	f := &TokenFactory{flow: auth.Flow}
	switch auth.Flow {
	case "obo":
		f.exchanger = msal.NewExchanger(auth.TenantID, auth.ClientID, auth.ClientSecret, auth.Authority, logger)
	case "devicecode":
		f.deviceCode = msal.NewDeviceCodeProvider(auth.TenantID, auth.ClientID, auth.Authority, logger)
	case "static":
		f.static = msal.NewStaticProvider(auth.StaticToken)
	default:
		return nil, fmt.Errorf("unsupported auth flow: %s", auth.Flow)
	}

	return f, nil
}

// ForAssertion returns the token provider to use for one command. Only the
// on-behalf-of flow consumes the caller's assertion; the other flows
// acquire tokens independently of it.
func (f *TokenFactory) ForAssertion(assertion string) core.TokenProvider {
	switch f.flow {
	case "obo":
		return f.exchanger.ForAssertion(assertion)
	case "devicecode":
		return f.deviceCode
	default:
		return f.static
	}
}

// Provider returns the flow's standalone token provider, for callers that
// have no incoming assertion (the CLI).
func (f *TokenFactory) Provider() core.TokenProvider {
	return f.ForAssertion("")
}
