package workbook

import "context"

// Snapshot is a loaded workbook together with what the normalizer had to drop
// or coerce while reading it.
type Snapshot struct {
	Workbook Workbook
	Report   Report
}

// Repository loads and stores the tracker file. Load returns a copy the caller
// may edit; Save replaces the three tracker sheets and nothing else.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, wb Workbook) error
}
