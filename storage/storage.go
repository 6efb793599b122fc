// Package storage keeps small string records across restarts, the way a
// browser keeps values in localStorage.
package storage

import "errors"

var ErrClosed = errors.New("storage: closed")

// Store is a durable key/value store
type Store interface {
	// Get returns the value stored under key and whether it exists
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error
	Close() error
}
