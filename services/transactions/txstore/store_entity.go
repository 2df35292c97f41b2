package txstore

import (
	"context"
	"sort"

	"github.com/MarcGrol/benefitcheckout/lib/mystore"
)

// entityStore keeps one entity per checkout session, so a redelivered event is stored once.
type entityStore struct {
	store mystore.Store[TransactionRecord]
}

func NewEntityStore(store mystore.Store[TransactionRecord]) Store {
	return &entityStore{
		store: store,
	}
}

func (s *entityStore) Append(c context.Context, record TransactionRecord) error {
	return s.store.RunInTransaction(c, func(c context.Context) error {
		_, exists, err := s.store.Get(c, record.ID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		return s.store.Put(c, record.ID, record)
	})
}

func (s *entityStore) List(c context.Context) ([]TransactionRecord, error) {
	records, err := s.store.List(c)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
	return records, nil
}
