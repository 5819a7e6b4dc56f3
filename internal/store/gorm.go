package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// document is one row of the documents table: a JSON record keyed by
// (collection, doc_id). The auto-incremented seq preserves insertion order
// for scans.
type document struct {
	Seq        uint   `gorm:"primaryKey;autoIncrement"`
	Collection string `gorm:"size:64;index:idx_documents_coll_id,unique;not null"`
	DocID      string `gorm:"size:36;column:doc_id;index:idx_documents_coll_id,unique;not null"`
	Data       []byte `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var _ Store = (*Gorm)(nil)

// Gorm is the durable Store, backed by a single documents table.
//
// SQLite has no native atomic JSON-field operations, so the Atomic* methods
// run a read-modify-write inside a database transaction; SQLite serializes
// write transactions, which preserves the single-field atomicity the
// semester aggregate depends on.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates the documents table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&document{}); err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}
	return nil
}

func (g *Gorm) Get(ctx context.Context, collection, id string) (Record, error) {
	var doc document
	err := g.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeData(doc.Data)
}

func (g *Gorm) Add(ctx context.Context, collection string, fields Record) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	doc := document{
		Collection: collection,
		DocID:      uuid.NewString(),
		Data:       data,
	}
	if err := g.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return "", err
	}
	return doc.DocID, nil
}

func (g *Gorm) Update(ctx context.Context, collection, id string, fields Record) error {
	return g.mutate(ctx, collection, id, func(rec Record) error {
		norm, err := normalizeRecord(fields)
		if err != nil {
			return err
		}
		for k, v := range norm {
			rec[k] = v
		}
		return nil
	})
}

func (g *Gorm) Delete(ctx context.Context, collection, id string) error {
	return g.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		Delete(&document{}).Error
}

func (g *Gorm) Scan(ctx context.Context, collection string, pred Predicate) ([]Document, error) {
	var docs []document
	err := g.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("seq ASC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}

	var out []Document
	for _, doc := range docs {
		rec, err := decodeData(doc.Data)
		if err != nil {
			return nil, err
		}
		if pred != nil && !pred(doc.DocID, rec) {
			continue
		}
		out = append(out, Document{ID: doc.DocID, Record: rec})
	}
	return out, nil
}

func (g *Gorm) AtomicIncrement(ctx context.Context, collection, id, field string, delta float64) error {
	return g.mutate(ctx, collection, id, func(rec Record) error {
		cur, err := numericValue(rec[field])
		if err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		rec[field] = cur + delta
		return nil
	})
}

func (g *Gorm) AtomicListAppend(ctx context.Context, collection, id, field string, value interface{}) error {
	norm, err := normalize(value)
	if err != nil {
		return err
	}
	return g.mutate(ctx, collection, id, func(rec Record) error {
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
	})
}

func (g *Gorm) AtomicListRemove(ctx context.Context, collection, id, field string, value interface{}) error {
	norm, err := normalize(value)
	if err != nil {
		return err
	}
	return g.mutate(ctx, collection, id, func(rec Record) error {
		list, err := listValue(rec[field])
		if err != nil {
			return fmt.Errorf("field %q: %w", field, err)
		}
		kept := make([]interface{}, 0, len(list))
		for _, existing := range list {
			if !reflect.DeepEqual(existing, norm) {
				kept = append(kept, existing)
			}
		}
		rec[field] = kept
		return nil
	})
}

// mutate applies fn to the record inside a single write transaction.
func (g *Gorm) mutate(ctx context.Context, collection, id string, fn func(rec Record) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc document
		err := tx.Where("collection = ? AND doc_id = ?", collection, id).
			Take(&doc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		rec, err := decodeData(doc.Data)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Model(&document{}).
			Where("seq = ?", doc.Seq).
			Update("data", data).Error
	})
}

func decodeData(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return rec, nil
}
