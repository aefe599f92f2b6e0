// Package apikeys persists consumer API keys in a Pebble store. The
// key value is the record key; the value only ever exposes name and
// creation time. Every read-modify-write runs under one mutex so
// concurrent creations cannot lose updates.
package apikeys

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"fileconv/logger"
	"fileconv/utils"

	"github.com/cockroachdb/pebble"
)

var (
	db *pebble.DB
	mu sync.Mutex
)

// tokenBytes sizes the random token; 32 bytes → 43 url-safe chars.
const tokenBytes = 32

// defaultName labels keys created without a display name.
const defaultName = "consumer"

// Key is the listable part of a consumer key record. The key value
// itself is returned exactly once, at creation.
type Key struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// Open opens the key store at the given path, creating it if needed.
func Open(path string) error {
	var err error
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Errorf("Failed to open key store: %v", err)
		return err
	}
	return nil
}

// Close closes the key store.
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Create generates a new consumer key, persists it and returns the key
// value. The value is not retrievable afterward.
func Create(name string) (string, Key, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}

	token, err := utils.GenerateToken(tokenBytes)
	if err != nil {
		return "", Key{}, err
	}
	rec := Key{
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	encoded, err := json.Marshal(rec)
	if err != nil {
		return "", Key{}, err
	}

	mu.Lock()
	defer mu.Unlock()
	if err := db.Set([]byte(token), encoded, pebble.Sync); err != nil {
		return "", Key{}, err
	}
	return token, rec, nil
}

// Exists reports whether the given key value is in the store.
func Exists(key string) bool {
	if key == "" {
		return false
	}
	mu.Lock()
	defer mu.Unlock()
	_, closer, err := db.Get([]byte(key))
	if err != nil {
		if !errors.Is(err, pebble.ErrNotFound) {
			logger.Errorf("Key store lookup failed: %v", err)
		}
		return false
	}
	closer.Close()
	return true
}

// List returns name and creation time for every stored key, never the
// key values. Records that fail to decode are skipped.
func List() ([]Key, error) {
	mu.Lock()
	defer mu.Unlock()

	iter, err := db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	keys := []Key{}
	for iter.First(); iter.Valid(); iter.Next() {
		var rec Key
		if err := json.Unmarshal(iter.Value(), &rec); err != nil {
			logger.Warnf("Skipping malformed key record: %v", err)
			continue
		}
		keys = append(keys, rec)
	}
	return keys, iter.Error()
}

// Empty reports whether the store holds no consumer keys.
func Empty() bool {
	mu.Lock()
	defer mu.Unlock()

	iter, err := db.NewIter(nil)
	if err != nil {
		logger.Errorf("Key store scan failed: %v", err)
		return true
	}
	defer iter.Close()
	return !iter.First()
}
