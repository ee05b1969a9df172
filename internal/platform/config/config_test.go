// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushost/api/internal/platform/config"
)

// setBaseEnv provides the variables every environment needs. Individual tests
// override or extend it.
func setBaseEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/nexushost_test")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("CORS_ORIGIN", "http://localhost:3000")
}

// setIntegrationEnv fills the credentials required outside development.
func setIntegrationEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("EMAIL_FROM", "noreply@example.com")
	t.Setenv("PANEL_API_URL", "https://panel.example.com/api")
	t.Setenv("PANEL_API_KEY", "panel-key")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
}

/*
TestLoad_DevelopmentDefaults verifies that the minimal variable set is enough
for a development machine and that defaults fill in the rest.
*/
func TestLoad_DevelopmentDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 10, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "NexusHost", cfg.AppName)
}

/*
TestLoad_ShortSessionSecret verifies that a weak cookie-signing secret is
rejected at startup.
*/
func TestLoad_ShortSessionSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_SECRET", "too-short")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

/*
TestLoad_ProductionRequiresIntegrations verifies that each integration
credential pair blocks startup outside development when absent.
*/
func TestLoad_ProductionRequiresIntegrations(t *testing.T) {
	cases := []struct {
		name    string
		unset   []string
		wantMsg string
	}{
		{
			name:    "smtp",
			unset:   []string{"SMTP_HOST", "EMAIL_FROM"},
			wantMsg: "SMTP_HOST and EMAIL_FROM",
		},
		{
			name:    "panel",
			unset:   []string{"PANEL_API_URL", "PANEL_API_KEY"},
			wantMsg: "PANEL_API_URL and PANEL_API_KEY",
		},
		{
			name:    "stripe",
			unset:   []string{"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET"},
			wantMsg: "STRIPE_SECRET_KEY and STRIPE_WEBHOOK_SECRET",
		},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			setBaseEnv(t)
			setIntegrationEnv(t)
			t.Setenv("ENVIRONMENT", "production")
			for _, key := range testCase.unset {
				t.Setenv(key, "")
			}

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.wantMsg)
		})
	}
}

/*
TestLoad_ProductionComplete verifies that a fully provisioned production
environment loads cleanly.
*/
func TestLoad_ProductionComplete(t *testing.T) {
	setBaseEnv(t)
	setIntegrationEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://panel.example.com/api", cfg.PanelAPIURL)
	assert.Equal(t, "sk_test_123", cfg.StripeSecretKey)
}
