package db

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const (
	bucketCounters = "Counters"
	keyLookups     = "lookups"
)

// BoltStorage implements storage interface for BoltDB
type BoltStorage struct {
	db *bolt.DB
}

// Increment lookups counter
func (b *BoltStorage) Increment() (int64, error) {
	var total uint64
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketCounters))
		value, err := decodeCounter(bucket.Get([]byte(keyLookups)))
		if err != nil {
			return err
		}
		total = value + 1
		data := make([]byte, 8)
		binary.BigEndian.PutUint64(data, total)
		if err := bucket.Put([]byte(keyLookups), data); err != nil {
			return fmt.Errorf("failed to put counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int64(total), nil
}

// Total returns lookups counter value
func (b *BoltStorage) Total() (int64, error) {
	var total uint64
	err := b.db.View(func(tx *bolt.Tx) error {
		var err error
		total, err = decodeCounter(tx.Bucket([]byte(bucketCounters)).Get([]byte(keyLookups)))
		return err
	})
	if err != nil {
		return 0, err
	}
	return int64(total), nil
}

func decodeCounter(data []byte) (uint64, error) {
	if len(data) == 0 {
		return 0, nil
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("invalid counter value of %d bytes", len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}

// NewBoltStorage creates BoltStorage instance and initialize buckets
func NewBoltStorage(db *bolt.DB) (*BoltStorage, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCounters))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltStorage{db: db}, nil
}
