// Package store defines the document store the core components persist to:
// schemaless records in named collections with point lookups, predicate
// scans and atomic single-field mutations.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by Get when no document has the given id.
var ErrNotFound = errors.New("document not found")

// Record is one stored document. Values are JSON-compatible: strings,
// float64, bool, []interface{}, map[string]interface{}.
type Record map[string]interface{}

// Document pairs a record with its store-assigned id.
type Document struct {
	ID     string
	Record Record
}

// Predicate filters documents during a Scan. A nil predicate matches all.
type Predicate func(id string, rec Record) bool

// Store is the persistence contract shared by the sqlite-backed and
// in-memory implementations.
//
// AtomicIncrement, AtomicListAppend and AtomicListRemove mutate a single
// field without a caller-visible read-modify-write; they are the only safe
// way to touch a semester's current_capital and transactions fields under
// concurrent writers. Update is a partial overwrite and carries no such
// guarantee.
type Store interface {
	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Record, error)
	// Add inserts a new record and returns its assigned id.
	Add(ctx context.Context, collection string, fields Record) (string, error)
	// Update merges fields into an existing record. Missing documents are
	// ErrNotFound.
	Update(ctx context.Context, collection, id string, fields Record) error
	// Delete removes a record. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Scan returns matching documents in insertion order.
	Scan(ctx context.Context, collection string, pred Predicate) ([]Document, error)

	// AtomicIncrement adds delta to a numeric field, treating an absent
	// field as zero.
	AtomicIncrement(ctx context.Context, collection, id, field string, delta float64) error
	// AtomicListAppend appends value to a list field unless an equal
	// element is already present.
	AtomicListAppend(ctx context.Context, collection, id, field string, value interface{}) error
	// AtomicListRemove removes every element equal to value from a list
	// field.
	AtomicListRemove(ctx context.Context, collection, id, field string, value interface{}) error
}

// Decode unmarshals a record into a typed struct via a JSON round-trip.
func Decode(rec Record, v interface{}) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
