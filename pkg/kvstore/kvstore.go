// Package kvstore provides the key-value persistence used by the draw
// history stores, backed by Badger.
package kvstore

import "errors"

var (
	ErrKeyEmpty    = errors.New("key is empty")
	ErrKeyNotFound = errors.New("key not found")
)

// KVPair is one listed key-value entry.
type KVPair struct {
	Key   string
	Value []byte
}

// KVStore is a simple key-value store with JSON convenience accessors.
type KVStore interface {
	Get(key string) (string, error)
	Set(key string, value string) error

	// GetAny unmarshals the stored JSON into value; the bool reports
	// whether the key existed.
	GetAny(key string, value any) (bool, error)
	SetAny(key string, value any) error

	List(prefix string) ([]*KVPair, error)
	Delete(key string) error
	Close() error
}
