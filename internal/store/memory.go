package store

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

var _ Store = (*Memory)(nil)

// Memory is an in-memory Store used by tests and ephemeral runs. Records are
// deep-copied on the way in and out so callers never alias stored state.
type Memory struct {
	mu          sync.Mutex
	collections map[string]*memCollection
}

type memCollection struct {
	docs  map[string]Record
	order []string // insertion order of live ids
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memCollection)}
}

func (m *Memory) coll(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string]Record)}
		m.collections[name] = c
	}
	return c
}

// normalize round-trips a value through JSON so stored state matches what a
// durable store would hand back (float64 numbers, []interface{} lists).
func normalize(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeRecord(rec Record) (Record, error) {
	out, err := normalize(map[string]interface{}(rec))
	if err != nil {
		return nil, err
	}
	norm, ok := out.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("record did not normalize to an object")
	}
	return Record(norm), nil
}

func (m *Memory) Get(_ context.Context, collection, id string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.coll(collection).docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return normalizeRecord(rec)
}

func (m *Memory) Add(_ context.Context, collection string, fields Record) (string, error) {
	norm, err := normalizeRecord(fields)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.coll(collection)
	id := uuid.NewString()
	c.docs[id] = norm
	c.order = append(c.order, id)
	return id, nil
}

func (m *Memory) Update(_ context.Context, collection, id string, fields Record) error {
	norm, err := normalizeRecord(fields)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.coll(collection).docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range norm {
		rec[k] = v
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.coll(collection)
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Scan(_ context.Context, collection string, pred Predicate) ([]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.coll(collection)
	var out []Document
	for _, id := range c.order {
		rec, err := normalizeRecord(c.docs[id])
		if err != nil {
			return nil, err
		}
		if pred != nil && !pred(id, rec) {
			continue
		}
		out = append(out, Document{ID: id, Record: rec})
	}
	return out, nil
}

func (m *Memory) AtomicIncrement(_ context.Context, collection, id, field string, delta float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.coll(collection).docs[id]
	if !ok {
		return ErrNotFound
	}
	cur, err := numericValue(rec[field])
	if err != nil {
		return fmt.Errorf("field %q: %w", field, err)
	}
	rec[field] = cur + delta
	return nil
}

func (m *Memory) AtomicListAppend(_ context.Context, collection, id, field string, value interface{}) error {
	norm, err := normalize(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.coll(collection).docs[id]
	if !ok {
		return ErrNotFound
	}
	list, err := listValue(rec[field])
	if err != nil {
		return fmt.Errorf("field %q: %w", field, err)
	}
	for _, existing := range list {
		if reflect.DeepEqual(existing, norm) {
			return nil
		}
	}
	rec[field] = append(list, norm)
	return nil
}

func (m *Memory) AtomicListRemove(_ context.Context, collection, id, field string, value interface{}) error {
	norm, err := normalize(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.coll(collection).docs[id]
	if !ok {
		return ErrNotFound
	}
	list, err := listValue(rec[field])
	if err != nil {
		return fmt.Errorf("field %q: %w", field, err)
	}
	kept := list[:0]
	for _, existing := range list {
		if !reflect.DeepEqual(existing, norm) {
			kept = append(kept, existing)
		}
	}
	rec[field] = kept
	return nil
}

func numericValue(v interface{}) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

func listValue(v interface{}) ([]interface{}, error) {
	switch l := v.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return l, nil
	default:
		return nil, fmt.Errorf("not a list: %T", v)
	}
}
