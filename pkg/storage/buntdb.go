package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/tidwall/buntdb"
)

// BuntStorage implements RunStorage using BuntDB
type BuntStorage struct {
	lastID int64
	db     *buntdb.DB
}

// FromMemory creates an in-memory storage
func FromMemory() (RunStorage, error) {
	return NewBuntStorage(":memory:")
}

// FromFile creates a file-based storage
func FromFile(file string) (RunStorage, error) {
	return NewBuntStorage(file)
}

// NewBuntStorage creates a new BuntDB storage instance
func NewBuntStorage(sourceFile string) (RunStorage, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	err = db.CreateIndex("created_index", "*", buntdb.IndexJSON("created_at"))
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	storage := &BuntStorage{db: db}

	// Resume the ID sequence from the records already in the file so a
	// reopened database never overwrites earlier runs
	err = db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("", func(key, _ string) bool {
			if id, err := strconv.ParseInt(key, 10, 64); err == nil && id > storage.lastID {
				storage.lastID = id
			}
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan existing records: %w", err)
	}

	return storage, nil
}

func (b *BuntStorage) getID() int64 {
	return atomic.AddInt64(&b.lastID, 1)
}

// SaveRun stores a new run record
func (b *BuntStorage) SaveRun(record *Record) error {
	return b.db.Update(func(tx *buntdb.Tx) error {
		record.ID = b.getID()
		content, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}

		_, _, err = tx.Set(strconv.FormatInt(record.ID, 10), string(content), nil)
		if err != nil {
			return fmt.Errorf("failed to store record: %w", err)
		}
		return nil
	})
}

// Runs retrieves records in creation order, applying the given filters
func (b *BuntStorage) Runs(filters ...RunFilter) ([]*Record, error) {
	records := make([]*Record, 0)

	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("created_index", func(_, value string) bool {
			var record Record
			if err := json.Unmarshal([]byte(value), &record); err != nil {
				return true
			}

			for _, filter := range filters {
				if !filter(record) {
					return true
				}
			}

			records = append(records, &record)
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over records: %w", err)
	}

	return records, nil
}

// Close closes the database
func (b *BuntStorage) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
