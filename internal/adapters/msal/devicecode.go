package msal

import (
	"context"
	"fmt"
	"sync"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"
	"go.uber.org/zap"
)

// DeviceCodeProvider acquires delegated tokens through the device-code flow.
// Cached accounts are tried silently first so repeated runs do not prompt.
type DeviceCodeProvider struct {
	tenantID  string
	clientID  string
	authority string
	logger    *zap.Logger

	initOnce sync.Once
	initErr  error
	client   public.Client
}

// NewDeviceCodeProvider creates a new device-code token provider
func NewDeviceCodeProvider(tenantID, clientID, authority string, logger *zap.Logger) *DeviceCodeProvider {
	return &DeviceCodeProvider{
		tenantID:  tenantID,
		clientID:  clientID,
		authority: authority,
		logger:    logger,
	}
}

// Initialize builds the underlying MSAL public client. Safe to call any
// number of times; only the first call does work.
func (p *DeviceCodeProvider) Initialize(_ context.Context) error {
	p.initOnce.Do(func() {
		authority := fmt.Sprintf("%s/%s", p.authority, p.tenantID)
		p.client, p.initErr = public.New(p.clientID, public.WithAuthority(authority))
	})
	if p.initErr != nil {
		return fmt.Errorf("failed to create MSAL public client: %w", p.initErr)
	}
	return nil
}

// Acquire returns an access token for the given scopes, prompting the user
// with a device code when no cached account can be used silently.
func (p *DeviceCodeProvider) Acquire(ctx context.Context, scopes []string) (string, error) {
	if err := p.Initialize(ctx); err != nil {
		return "", err
	}

	accounts, err := p.client.Accounts(ctx)
	if err == nil && len(accounts) > 0 {
		result, err := p.client.AcquireTokenSilent(ctx, scopes, public.WithSilentAccount(accounts[0]))
		if err == nil {
			p.logger.Debug("Acquired token silently",
				zap.String("account", accounts[0].PreferredUsername))
			return result.AccessToken, nil
		}
		p.logger.Debug("Silent token acquisition failed, falling back to device code",
			zap.Error(err))
	}

	deviceCode, err := p.client.AcquireTokenByDeviceCode(ctx, scopes)
	if err != nil {
		return "", fmt.Errorf("failed to start device code flow: %w", err)
	}

	// The message carries the verification URL and the code to enter
	fmt.Println(deviceCode.Result.Message)

	result, err := deviceCode.AuthenticationResult(ctx)
	if err != nil {
		return "", fmt.Errorf("device code authentication failed: %w", err)
	}

	p.logger.Info("Authenticated via device code",
		zap.String("account", result.Account.PreferredUsername))
	return result.AccessToken, nil
}
