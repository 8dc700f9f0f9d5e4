// ABOUTME: Charm KV client wrapper using the transactional Do API.
// ABOUTME: Short-lived connections so the CLI and MCP server never contend for the lock.

package charm

import (
	"errors"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

const (
	// DBName is the default charm kv database for journl.
	DBName = "journl"
)

var ErrKeyNotFound = errors.New("key not found")

// Client holds configuration for KV operations. It does not hold a
// connection: each operation opens the database, runs, and closes it.
type Client struct {
	dbName string
}

// Option configures a Client.
type Option func(*Client)

// WithDBName sets the database name.
func WithDBName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.dbName = name
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{dbName: DBName}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) DBName() string {
	return c.dbName
}

// Get retrieves a value by key (read-only, no lock contention).
func (c *Client) Get(key []byte) ([]byte, error) {
	var val []byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		val, err = k.Get(key)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

// Set stores a value with the given key. Nothing is synced to a charm
// server; the database is used as a local store only.
func (c *Client) Set(key, value []byte) error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Set(key, value)
	})
}

// Delete removes a key.
func (c *Client) Delete(key []byte) error {
	err := kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Delete(key)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrKeyNotFound
	}
	return err
}
