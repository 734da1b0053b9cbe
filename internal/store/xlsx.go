package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/anbuchelva/cams/internal/domain"
)

const sheetName = "Sheet1"

// XLSX persists each collection as a single-sheet xlsx workbook under dir.
// The column set of a collection is fixed at construction time; unknown
// record keys are dropped on save.
type XLSX struct {
	dir     string
	schemas map[string][]string
}

// NewXLSX creates the data directory and a header-only workbook for every
// collection that does not exist yet.
func NewXLSX(dir string, schemas map[string][]string) (*XLSX, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &XLSX{dir: dir, schemas: schemas}
	for collection := range schemas {
		path := s.path(collection)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := s.Save(context.Background(), collection, nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *XLSX) path(collection string) string {
	return filepath.Join(s.dir, collection+".xlsx")
}

// Load reads the whole collection in row order. The first row is the header;
// short rows yield records without the trailing columns.
func (s *XLSX) Load(ctx context.Context, collection string) ([]Record, error) {
	f, err := excelize.OpenFile(s.path(collection))
	if err != nil {
		return nil, &domain.StorageError{Collection: collection, Op: "load", Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, &domain.StorageError{Collection: collection, Op: "load", Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{}
		for i, cell := range row {
			if i >= len(header) || cell == "" {
				continue
			}
			rec[header[i]] = cell
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save replaces the persisted collection. The workbook is written to a temp
// file in the same directory and renamed over the old one, so a concurrent
// Load never sees a partial write.
func (s *XLSX) Save(ctx context.Context, collection string, records []Record) error {
	header, ok := s.schemas[collection]
	if !ok {
		return &domain.StorageError{Collection: collection, Op: "save", Err: fmt.Errorf("unknown collection")}
	}

	f := excelize.NewFile()
	defer f.Close()

	headerRow := make([]any, len(header))
	for i, col := range header {
		headerRow[i] = col
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return &domain.StorageError{Collection: collection, Op: "save", Err: err}
	}
	for n, rec := range records {
		row := make([]any, len(header))
		for i, col := range header {
			row[i] = rec[col]
		}
		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return &domain.StorageError{Collection: collection, Op: "save", Err: err}
		}
	}

	// SaveAs infers the workbook format from the file extension, so the
	// temp file must keep the .xlsx suffix.
	tmp := filepath.Join(s.dir, collection+".tmp.xlsx")
	if err := f.SaveAs(tmp); err != nil {
		return &domain.StorageError{Collection: collection, Op: "save", Err: err}
	}
	if err := os.Rename(tmp, s.path(collection)); err != nil {
		os.Remove(tmp)
		return &domain.StorageError{Collection: collection, Op: "save", Err: err}
	}
	return nil
}
