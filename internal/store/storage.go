package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Slot names of the persisted preference collections
const (
	SlotWatchlist = "watchlist"
	SlotLiked     = "likedMovies"
	SlotDisliked  = "dislikedMovies"
	SlotWatched   = "watchedMovies"
)

var bucketPreferences = []byte("preferences")

// ErrClosed is returned by storage operations after Close
var ErrClosed = errors.New("storage closed")

// SlotStorage persists named byte slots. Load returns nil data and no error
// for a slot that was never saved.
type SlotStorage interface {
	Load(slot string) ([]byte, error)
	Save(slot string, data []byte) error
	Close() error
}

// BoltStorage keeps slots as keys of a single bbolt bucket
type BoltStorage struct {
	db *bolt.DB
}

// OpenBoltStorage opens (or creates) the database at path
func OpenBoltStorage(path string) (*BoltStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStorage{db: db}, nil
}

func (s *BoltStorage) Load(slot string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(slot)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data, err
}

func (s *BoltStorage) Save(slot string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketPreferences)
		if err != nil {
			return err
		}
		return b.Put([]byte(slot), data)
	})
}

func (s *BoltStorage) Close() error {
	return s.db.Close()
}

// MemoryStorage keeps slots in a map. Used when no data directory is configured.
type MemoryStorage struct {
	mu     sync.Mutex
	slots  map[string][]byte
	closed bool
}

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[string][]byte)}
}

func (s *MemoryStorage) Load(slot string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	data, ok := s.slots[slot]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStorage) Save(slot string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.slots[slot] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
