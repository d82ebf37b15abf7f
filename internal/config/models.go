package config

import (
	"time"
)

// GraphConfig represents the configuration for the Graph API client
type GraphConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AuthConfig represents the token-acquisition configuration
type AuthConfig struct {
	Flow         string
	TenantID     string
	ClientID     string
	ClientSecret string
	Authority    string
	StaticToken  string
}

// ServerConfig represents the HTTP command surface configuration
type ServerConfig struct {
	ListenAddress  string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// GetGraph returns the Graph client configuration
func (c *Config) GetGraph() GraphConfig {
	return GraphConfig{
		BaseURL: c.GetString("graph.base_url"),
		Timeout: c.v.GetDuration("graph.timeout"),
	}
}

// GetAuth returns the token-acquisition configuration
func (c *Config) GetAuth() AuthConfig {
	return AuthConfig{
		Flow:         c.GetString("auth.flow"),
		TenantID:     c.GetString("auth.tenant_id"),
		ClientID:     c.GetString("auth.client_id"),
		ClientSecret: c.GetString("auth.client_secret"),
		Authority:    c.GetString("auth.authority"),
		StaticToken:  c.GetString("auth.static_token"),
	}
}

// GetServer returns the HTTP server configuration
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress:  c.GetString("server.listen_address"),
		AllowedOrigins: c.GetStringSlice("server.allowed_origins"),
		ReadTimeout:    c.v.GetDuration("server.read_timeout"),
		WriteTimeout:   c.v.GetDuration("server.write_timeout"),
	}
}
