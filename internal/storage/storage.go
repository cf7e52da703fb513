// Package storage is the durable key-value store behind the client session.
// Values are strings; callers serialize structured values themselves.
package storage

import (
	"fmt"

	"github.com/shiptrain/portal/config"
)

// Drivers
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Storage is a string key-value store scoped to one deployment
type Storage interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Remove deletes key; removing a missing key is not an error
	Remove(key string) error
	Close() error
}

// Open returns the configured driver, scoped to origin
func Open(cfg config.StorageConfig, origin string) (Storage, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, "":
		return NewSQLite(cfg.Path, origin)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
