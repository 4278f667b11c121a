package memory

import (
	"context"
	"sync"

	"lynx/internal/domain/workbook"
)

// Workbooks holds one normalized workbook in memory.
type Workbooks struct {
	mu    sync.RWMutex
	snap  workbook.Snapshot
	saves int
}

func NewWorkbooks(wb workbook.Workbook) *Workbooks {
	return &Workbooks{snap: workbook.Snapshot{Workbook: wb.Clone()}}
}

func (r *Workbooks) Load(context.Context) (workbook.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return workbook.Snapshot{Workbook: r.snap.Workbook.Clone(), Report: r.snap.Report}, nil
}

func (r *Workbooks) Save(_ context.Context, wb workbook.Workbook) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = workbook.Snapshot{Workbook: wb.Clone()}
	r.saves++
	return nil
}

// Saves counts committed writes.
func (r *Workbooks) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

var _ workbook.Repository = (*Workbooks)(nil)
