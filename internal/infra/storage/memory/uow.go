package memory

import (
	"context"
	"errors"
	"sync"

	"lynx/internal/app/uow"
	"lynx/internal/domain/preferences"
	"lynx/internal/domain/workbook"
)

var (
	// ErrFactoryMisconfigured indicates missing repositories.
	ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")
	ErrReadOnlyUnit         = errors.New("memory: write in a read-only unit of work")
	ErrUnitClosed           = errors.New("memory: unit of work already finished")
)

// Factory opens units that stage workbook writes in memory and apply them to
// the underlying repository on commit. Write units are serialized; read-only
// units never block.
type Factory struct {
	Workbooks   workbook.Repository
	Preferences preferences.Store

	writer *sync.Mutex
}

func NewFactory(workbooks workbook.Repository, prefs preferences.Store) Factory {
	return Factory{Workbooks: workbooks, Preferences: prefs, writer: &sync.Mutex{}}
}

func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.Workbooks == nil || f.Preferences == nil || f.writer == nil {
		return nil, ErrFactoryMisconfigured
	}
	u := &Unit{workbooks: f.Workbooks, prefs: f.Preferences, readOnly: opts.ReadOnly}
	if !opts.ReadOnly {
		f.writer.Lock()
		u.release = f.writer.Unlock
	}
	return u, nil
}

// Unit is a uow.UnitOfWork over a workbook repository and a side-state store.
type Unit struct {
	workbooks workbook.Repository
	prefs     preferences.Store
	readOnly  bool
	release   func()

	staged *workbook.Workbook
	done   bool
}

func (u *Unit) Workbook() workbook.Repository { return stagedWorkbook{u} }

func (u *Unit) Preferences() preferences.Store { return u.prefs }

func (u *Unit) Commit(ctx context.Context) error {
	if u.done {
		return ErrUnitClosed
	}
	defer u.finish()
	if u.staged == nil {
		return nil
	}
	return u.workbooks.Save(ctx, *u.staged)
}

func (u *Unit) Rollback(context.Context) error {
	if u.done {
		return nil
	}
	u.finish()
	return nil
}

func (u *Unit) finish() {
	u.done = true
	u.staged = nil
	if u.release != nil {
		u.release()
		u.release = nil
	}
}

// stagedWorkbook reads the unit's pending write back before the stored copy.
type stagedWorkbook struct {
	u *Unit
}

func (s stagedWorkbook) Load(ctx context.Context) (workbook.Snapshot, error) {
	if s.u.staged != nil {
		return workbook.Snapshot{Workbook: s.u.staged.Clone()}, nil
	}
	return s.u.workbooks.Load(ctx)
}

func (s stagedWorkbook) Save(_ context.Context, wb workbook.Workbook) error {
	if s.u.readOnly {
		return ErrReadOnlyUnit
	}
	if s.u.done {
		return ErrUnitClosed
	}
	staged := wb.Clone()
	s.u.staged = &staged
	return nil
}
