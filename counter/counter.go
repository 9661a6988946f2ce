// Package counter keeps named visit counters.
//
// Every Store increments with a single atomic statement on the backing store, so
// concurrent increments of the same name never lose updates and no in-process
// locking is involved outside of MemoryStore.
package counter

import (
	"context"
	"errors"
	"fmt"
)

// Store kinds
const (
	KindDB     = "db"
	KindRedis  = "redis"
	KindMemory = "memory"
)

// ErrInvalidName is returned for an empty counter name
var ErrInvalidName = errors.New("invalid counter name")

// Counter is one named counter
type Counter struct {
	Name   string `json:"name"`
	Visits int64  `json:"visits"`
}

// Store is the backing store of the counters
type Store interface {
	// Kind of the store
	Kind() string
	// Get returns the visits of name, 0 when name was never incremented
	Get(ctx context.Context, name string) (visits int64, err error)
	// Incr creates name with 1 visit or adds 1 to it, in one atomic round-trip,
	// and returns the visits after the increment
	Incr(ctx context.Context, name string) (visits int64, err error)
}

// QueryError is a failed store round-trip
type QueryError struct {
	Op   string
	Name string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s counter %q: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the store error
func (e *QueryError) Unwrap() error {
	return e.Err
}
