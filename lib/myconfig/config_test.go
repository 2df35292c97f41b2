package myconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		val, found := env[key]
		return val, found
	}
}

func TestConfig(t *testing.T) {
	t.Run("Development defaults", func(t *testing.T) {
		cfg, err := FromLookup(lookupFrom(map[string]string{}))
		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.False(t, cfg.IsProduction())
		assert.Equal(t, "sk_test_PLACEHOLDER", cfg.Stripe.SecretKey)
		assert.Equal(t, "whsec_PLACEHOLDER", cfg.Stripe.WebhookSecret)
		assert.Equal(t, "http://localhost:8080", cfg.Frontend.BaseURL)
		assert.Equal(t, 1.0, cfg.Checkout.MinDonation)
		assert.Equal(t, StoreFile, cfg.Store.Kind)
		assert.Equal(t, "transactions.json", cfg.Store.TransactionsFile)
	})

	t.Run("Explicit values", func(t *testing.T) {
		cfg, err := FromLookup(lookupFrom(map[string]string{
			"PORT":                   "3001",
			"APP_ENV":                "production",
			"STRIPE_SECRET_KEY":      "sk_live_123",
			"STRIPE_WEBHOOK_SECRET":  "whsec_123",
			"STRIPE_PUBLISHABLE_KEY": "pk_live_123",
			"FRONTEND_URL":           "https://tickets.example.com/",
			"CRM_API_URL":            "https://crm.example.com/api",
			"MIN_DONATION":           "25",
			"TRANSACTION_STORE":      "sqlite",
		}))
		assert.NoError(t, err)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "https://tickets.example.com", cfg.Frontend.BaseURL)
		assert.Equal(t, 25.0, cfg.Checkout.MinDonation)
		assert.Equal(t, StoreSQLite, cfg.Store.Kind)
	})

	t.Run("Production rejects placeholders", func(t *testing.T) {
		_, err := FromLookup(lookupFrom(map[string]string{
			"APP_ENV": "production",
		}))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY is required in production")
		assert.Contains(t, err.Error(), "STRIPE_WEBHOOK_SECRET is required in production")
	})

	t.Run("Invalid values", func(t *testing.T) {
		_, err := FromLookup(lookupFrom(map[string]string{
			"FRONTEND_URL":      "not-a-url",
			"MIN_DONATION":      "-1",
			"TRANSACTION_STORE": "redis",
		}))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "FRONTEND_URL must be an absolute url")
		assert.Contains(t, err.Error(), "MIN_DONATION must be positive")
		assert.Contains(t, err.Error(), "unknown TRANSACTION_STORE 'redis'")
	})

	t.Run("Datastore requires project", func(t *testing.T) {
		_, err := FromLookup(lookupFrom(map[string]string{
			"TRANSACTION_STORE": "datastore",
		}))
		assert.Error(t, err)

		cfg, err := FromLookup(lookupFrom(map[string]string{
			"TRANSACTION_STORE":    "datastore",
			"GOOGLE_CLOUD_PROJECT": "myproject",
		}))
		assert.NoError(t, err)
		assert.Equal(t, "myproject", cfg.ProjectID)
	})

	t.Run("Unparseable minimum donation", func(t *testing.T) {
		_, err := FromLookup(lookupFrom(map[string]string{"MIN_DONATION": "abc"}))
		assert.Error(t, err)
	})
}
