package txstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileStore keeps all records as one pretty-printed json array. Every append rewrites the whole file.
// The mutex serializes appends within the process; separate processes sharing a file can still race.
// Redelivered events are appended again.
type fileStore struct {
	sync.Mutex
	filename string
}

func NewFileStore(filename string) Store {
	return &fileStore{
		filename: filename,
	}
}

func (s *fileStore) Append(c context.Context, record TransactionRecord) error {
	s.Lock()
	defer s.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}

	records = append(records, record)

	return s.write(records)
}

func (s *fileStore) List(c context.Context) ([]TransactionRecord, error) {
	s.Lock()
	defer s.Unlock()

	return s.read()
}

func (s *fileStore) read() ([]TransactionRecord, error) {
	data, err := os.ReadFile(s.filename)
	if errors.Is(err, os.ErrNotExist) {
		return []TransactionRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %s", s.filename, err)
	}

	records := []TransactionRecord{}
	err = json.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %s", s.filename, err)
	}
	return records, nil
}

// write replaces the file in one rename so a crash never leaves a truncated log behind.
func (s *fileStore) write(records []TransactionRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing transactions: %s", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filename), filepath.Base(s.filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file for %s: %s", s.filename, err)
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("error writing %s: %s", tmp.Name(), err)
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("error closing %s: %s", tmp.Name(), err)
	}

	err = os.Rename(tmp.Name(), s.filename)
	if err != nil {
		return fmt.Errorf("error replacing %s: %s", s.filename, err)
	}
	return nil
}
