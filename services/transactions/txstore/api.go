package txstore

import (
	"context"
	"fmt"
	"time"

	"github.com/MarcGrol/benefitcheckout/lib/myconfig"
	"github.com/MarcGrol/benefitcheckout/lib/mystore"
)

// TransactionRecord is one completed checkout. Records are only ever appended.
type TransactionRecord struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"type"`
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"payment_status"`
	Timestamp     time.Time `json:"timestamp"`
}

//go:generate mockgen -source=api.go -package txstore -destination store_mock.go Store
type Store interface {
	Append(c context.Context, record TransactionRecord) error
	List(c context.Context) ([]TransactionRecord, error)
}

// New opens the configured backend. The returned cleanup releases its resources.
func New(c context.Context, cfg myconfig.Config) (Store, func(), error) {
	switch cfg.Store.Kind {
	case myconfig.StoreFile:
		return NewFileStore(cfg.Store.TransactionsFile), func() {}, nil

	case myconfig.StoreDatastore:
		store, cleanup, err := mystore.New[TransactionRecord](c, cfg.ProjectID)
		if err != nil {
			return nil, nil, fmt.Errorf("error creating datastore store: %s", err)
		}
		return NewEntityStore(store), cleanup, nil

	case myconfig.StoreSQLite:
		return NewSQLiteStore(c, cfg.Store.SQLiteDSN)

	default:
		return nil, nil, fmt.Errorf("unknown transaction store %q", cfg.Store.Kind)
	}
}
