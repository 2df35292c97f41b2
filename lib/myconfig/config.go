package myconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	placeholderSecretKey      = "sk_test_PLACEHOLDER"
	placeholderWebhookSecret  = "whsec_PLACEHOLDER"
	placeholderPublishableKey = "pk_test_PLACEHOLDER"
)

type StoreKind string

const (
	StoreFile      StoreKind = "file"
	StoreDatastore StoreKind = "datastore"
	StoreSQLite    StoreKind = "sqlite"
)

type Config struct {
	Port        string
	Environment string
	ProjectID   string
	Stripe      StripeConfig
	Frontend    FrontendConfig
	CRM         CRMConfig
	Checkout    CheckoutConfig
	Store       StoreConfig
}

type StripeConfig struct {
	SecretKey      string
	WebhookSecret  string
	PublishableKey string
}

type FrontendConfig struct {
	// BaseURL is used to compose the success and cancel urls of a checkout session
	BaseURL string
}

type CRMConfig struct {
	BaseURL string
}

type CheckoutConfig struct {
	MinDonation float64
}

type StoreConfig struct {
	Kind             StoreKind
	TransactionsFile string
	SQLiteDSN        string
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads an optional .env file followed by the process environment.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %s", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds and validates the configuration from an arbitrary key-value source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if val, found := lookup(key); found && val != "" {
			return val
		}
		return fallback
	}

	minDonation, err := strconv.ParseFloat(get("MIN_DONATION", "1"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MIN_DONATION: %s", err)
	}

	cfg := Config{
		Port:        get("PORT", "8080"),
		Environment: get("APP_ENV", "development"),
		ProjectID:   get("GOOGLE_CLOUD_PROJECT", ""),
		Stripe: StripeConfig{
			SecretKey:      get("STRIPE_SECRET_KEY", placeholderSecretKey),
			WebhookSecret:  get("STRIPE_WEBHOOK_SECRET", placeholderWebhookSecret),
			PublishableKey: get("STRIPE_PUBLISHABLE_KEY", placeholderPublishableKey),
		},
		Frontend: FrontendConfig{
			BaseURL: strings.TrimSuffix(get("FRONTEND_URL", "http://localhost:8080"), "/"),
		},
		CRM: CRMConfig{
			BaseURL: strings.TrimSuffix(get("CRM_API_URL", "http://localhost:4000/api"), "/"),
		},
		Checkout: CheckoutConfig{
			MinDonation: minDonation,
		},
		Store: StoreConfig{
			Kind:             StoreKind(get("TRANSACTION_STORE", string(StoreFile))),
			TransactionsFile: get("TRANSACTIONS_FILE", "transactions.json"),
			SQLiteDSN:        get("SQLITE_DSN", "file:transactions.db?cache=shared"),
		},
	}

	err = cfg.validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	errs := []error{}

	for name, raw := range map[string]string{"FRONTEND_URL": c.Frontend.BaseURL, "CRM_API_URL": c.CRM.BaseURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute url, got '%s'", name, raw))
		}
	}

	if c.Checkout.MinDonation <= 0 {
		errs = append(errs, fmt.Errorf("MIN_DONATION must be positive, got %v", c.Checkout.MinDonation))
	}

	switch c.Store.Kind {
	case StoreFile, StoreSQLite:
	case StoreDatastore:
		if c.ProjectID == "" {
			errs = append(errs, fmt.Errorf("TRANSACTION_STORE=datastore requires GOOGLE_CLOUD_PROJECT"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown TRANSACTION_STORE '%s'", c.Store.Kind))
	}

	if c.IsProduction() {
		if c.Stripe.SecretKey == placeholderSecretKey {
			errs = append(errs, fmt.Errorf("STRIPE_SECRET_KEY is required in production"))
		}
		if c.Stripe.WebhookSecret == placeholderWebhookSecret {
			errs = append(errs, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required in production"))
		}
		if c.Stripe.PublishableKey == placeholderPublishableKey {
			errs = append(errs, fmt.Errorf("STRIPE_PUBLISHABLE_KEY is required in production"))
		}
	}

	return errors.Join(errs...)
}
