// Package store owns the durable representation of the record collections:
// one xlsx workbook per collection plus a directory of uploaded documents.
// Every mutation goes load whole collection -> modify in memory -> save whole
// collection; no partial or append API exists.
package store

import "context"

// Record is one row of a collection, keyed by column name. Columns absent
// from a row are simply missing from the map.
type Record = map[string]string

// Store loads and saves named record collections. Save replaces the persisted
// collection wholesale; implementations must never expose a partially written
// collection to a concurrent reader.
type Store interface {
	Load(ctx context.Context, collection string) ([]Record, error)
	Save(ctx context.Context, collection string, records []Record) error
}
