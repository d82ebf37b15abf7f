package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	graph := cfg.GetGraph()
	assert.Equal(t, "https://graph.microsoft.com/beta", graph.BaseURL)
	assert.Equal(t, 60*time.Second, graph.Timeout)

	auth := cfg.GetAuth()
	assert.Equal(t, "obo", auth.Flow)
	assert.Equal(t, "https://login.microsoftonline.com", auth.Authority)

	srv := cfg.GetServer()
	assert.Equal(t, "0.0.0.0:8083", srv.ListenAddress)
	assert.Contains(t, srv.AllowedOrigins, "https://outlook.office.com")
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("graph.base_url", "https://graph.microsoft.com/v1.0")
	v.Set("auth.flow", "devicecode")
	v.Set("auth.tenant_id", "tenant")
	v.Set("auth.client_id", "client")
	v.Set("server.listen_address", "127.0.0.1:9090")
	cfg := NewFromViper(v)

	assert.Equal(t, "https://graph.microsoft.com/v1.0", cfg.GetGraph().BaseURL)

	auth := cfg.GetAuth()
	require.Equal(t, "devicecode", auth.Flow)
	assert.Equal(t, "tenant", auth.TenantID)
	assert.Equal(t, "client", auth.ClientID)

	assert.Equal(t, "127.0.0.1:9090", cfg.GetServer().ListenAddress)
}
