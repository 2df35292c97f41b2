package txstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type transactionRow struct {
	bun.BaseModel `bun:"table:transactions"`

	ID            string    `bun:"id,pk"`
	Email         string    `bun:"email,notnull"`
	Amount        float64   `bun:"amount,notnull"`
	Type          string    `bun:"type,notnull"`
	Currency      string    `bun:"currency"`
	PaymentStatus string    `bun:"payment_status"`
	RecordedAt    time.Time `bun:"recorded_at,notnull"`
}

type sqliteStore struct {
	db *bun.DB
}

// NewSQLiteStore opens the database and creates the transactions table when missing.
func NewSQLiteStore(c context.Context, dsn string) (Store, func(), error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening sqlite database: %s", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.NewCreateTable().Model((*transactionRow)(nil)).IfNotExists().Exec(c)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("error creating transactions table: %s", err)
	}

	return &sqliteStore{db: db}, func() { db.Close() }, nil
}

// Append ignores a record whose session id is already stored.
func (s *sqliteStore) Append(c context.Context, record TransactionRecord) error {
	row := transactionRow{
		ID:            record.ID,
		Email:         record.Email,
		Amount:        record.Amount,
		Type:          record.Type,
		Currency:      record.Currency,
		PaymentStatus: record.PaymentStatus,
		RecordedAt:    record.Timestamp,
	}
	_, err := s.db.NewInsert().Model(&row).On("CONFLICT (id) DO NOTHING").Exec(c)
	if err != nil {
		return fmt.Errorf("error inserting transaction %s: %s", record.ID, err)
	}
	return nil
}

func (s *sqliteStore) List(c context.Context) ([]TransactionRecord, error) {
	rows := []transactionRow{}
	err := s.db.NewSelect().Model(&rows).OrderExpr("rowid ASC").Scan(c)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %s", err)
	}

	records := make([]TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, TransactionRecord{
			ID:            row.ID,
			Email:         row.Email,
			Amount:        row.Amount,
			Type:          row.Type,
			Currency:      row.Currency,
			PaymentStatus: row.PaymentStatus,
			Timestamp:     row.RecordedAt,
		})
	}
	return records, nil
}
